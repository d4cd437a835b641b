// Package session owns the websocket lifecycle for one game room at a time:
// dial, prime with GET_STATE, feed frames to the store, and tear down
// deterministically. Exactly one session exists per manager; opening a new
// room replaces the old session, never adds to it.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mjoseph28/game28-client/internal/protocol"
	"github.com/mjoseph28/game28-client/internal/store"
)

const (
	// DefaultStateTimeout bounds the wait for the first STATE_UPDATE after a
	// successful dial.
	DefaultStateTimeout = 2000 * time.Millisecond

	writeTimeout = 3 * time.Second
)

// Session is the ephemeral per-room connection state. Disposed is a guard
// flag, not a lifecycle state: disposal can race any in-flight callback, and
// a disposed session's callbacks must all be no-ops.
type Session struct {
	mu         sync.Mutex
	roomID     string
	conn       Conn
	gotState   bool
	disposed   bool
	stateTimer *time.Timer
}

// Manager is the single-slot session registry. The current session is
// replaced, never appended to, and torn down before its successor is created.
type Manager struct {
	// Dial and StateTimeout may be overridden before the first Open.
	Dial         Dialer
	StateTimeout time.Duration

	mu      sync.Mutex
	current *Session

	store   *store.Store
	baseURL string
	log     *zap.Logger
}

// NewManager wires a manager to its store. baseURL is the websocket origin,
// e.g. "ws://localhost:8000".
func NewManager(st *store.Store, baseURL string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		Dial:         DialWebsocket,
		StateTimeout: DefaultStateTimeout,
		store:        st,
		baseURL:      baseURL,
		log:          log,
	}
}

// Open connects to a room, replacing any current session first. On success a
// GET_STATE is sent immediately; the server is not assumed to push state
// unsolicited. A dial failure surfaces as the closed-before-state warning and
// is returned; the manager does not retry.
func (m *Manager) Open(ctx context.Context, roomID string) error {
	m.mu.Lock()
	if m.current != nil {
		m.teardownLocked(m.current)
	}
	sess := &Session{roomID: roomID}
	m.current = sess
	m.mu.Unlock()

	m.store.Reset()
	m.log.Info("opening room socket", zap.String("roomID", roomID))

	conn, err := m.Dial(ctx, m.baseURL+"/ws/games/"+roomID)
	if err != nil {
		m.log.Warn("dial failed", zap.String("roomID", roomID), zap.Error(err))
		sess.mu.Lock()
		stale := sess.disposed
		sess.mu.Unlock()
		if !stale {
			m.store.SetWarning("socket closed before any state was received (may be a transient dev reload)")
			m.store.SetStatus(store.StatusClosed)
			m.dropIfCurrent(sess)
		}
		return err
	}

	sess.mu.Lock()
	if sess.disposed {
		// Torn down while dialing; the late connection must not leak.
		sess.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	sess.conn = conn
	sess.stateTimer = time.AfterFunc(m.StateTimeout, func() { m.onStateTimeout(sess) })
	sess.mu.Unlock()

	m.store.SetStatus(store.StatusOpen)
	m.writeCommand(sess, protocol.GetState{})
	go m.readLoop(sess)
	return nil
}

// Close tears down the current session. Safe to call repeatedly and with no
// session open.
func (m *Manager) Close() {
	m.mu.Lock()
	closed := false
	if m.current != nil {
		m.teardownLocked(m.current)
		m.current = nil
		closed = true
	}
	m.mu.Unlock()
	if closed {
		m.store.SetStatus(store.StatusClosed)
	}
}

// Send serializes a command onto the current socket. A send while the socket
// is not open-ready is dropped with a warning; commands are never queued.
func (m *Manager) Send(cmd protocol.Command) {
	m.mu.Lock()
	sess := m.current
	m.mu.Unlock()

	if sess == nil {
		m.store.SetWarning("not connected; command dropped")
		return
	}
	sess.mu.Lock()
	ready := sess.conn != nil && !sess.disposed
	sess.mu.Unlock()
	if !ready || m.store.Status() != store.StatusOpen {
		m.store.SetWarning("socket is not ready; command dropped")
		return
	}
	m.writeCommand(sess, cmd)
}

func (m *Manager) writeCommand(sess *Session, cmd protocol.Command) {
	data, err := protocol.EncodeCommand(cmd)
	if err != nil {
		m.store.SetWarning("could not encode command: " + err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := sess.conn.Write(ctx, data); err != nil {
		// Transient transport trouble while still connected is soft; the
		// close event is the sole authority for terminal disconnect.
		m.store.SetWarning("send failed: " + err.Error())
	}
}

// readLoop pumps frames until the socket dies. Frames are handled one at a
// time, fully, in delivery order.
func (m *Manager) readLoop(sess *Session) {
	for {
		data, err := sess.conn.Read(context.Background())
		if err != nil {
			m.onClose(sess, err)
			return
		}
		m.onFrame(sess, data)
	}
}

func (m *Manager) onFrame(sess *Session, data []byte) {
	sess.mu.Lock()
	if sess.disposed {
		sess.mu.Unlock()
		return
	}
	msg, err := protocol.ParseInbound(data)
	if err != nil {
		sess.mu.Unlock()
		m.store.SetWarning("ignoring bad frame: " + err.Error())
		return
	}
	if _, ok := msg.(protocol.StateUpdate); ok && !sess.gotState {
		sess.gotState = true
		if sess.stateTimer != nil {
			sess.stateTimer.Stop()
		}
	}
	sess.mu.Unlock()

	m.store.Apply(msg)
}

func (m *Manager) onClose(sess *Session, err error) {
	sess.mu.Lock()
	if sess.disposed {
		sess.mu.Unlock()
		return
	}
	sess.disposed = true
	if sess.stateTimer != nil {
		sess.stateTimer.Stop()
	}
	gotState := sess.gotState
	sess.mu.Unlock()

	m.log.Warn("socket closed", zap.String("roomID", sess.roomID), zap.Error(err))
	if gotState {
		m.store.SetWarning("connection closed")
	} else {
		m.store.SetWarning("connection closed before any state was received (may be a transient dev reload)")
	}
	m.store.SetStatus(store.StatusClosed)
	m.dropIfCurrent(sess)
}

func (m *Manager) onStateTimeout(sess *Session) {
	sess.mu.Lock()
	if sess.disposed || sess.gotState {
		sess.mu.Unlock()
		return
	}
	sess.mu.Unlock()

	// Hard error, no automatic retry.
	m.store.SetFatal("timed out waiting for game state")
}

// teardownLocked marks the session disposed before touching the socket, so
// callbacks already queued for the old socket become no-ops instead of
// mutating a replaced session's state. Idempotent.
func (m *Manager) teardownLocked(sess *Session) {
	sess.mu.Lock()
	if sess.disposed {
		sess.mu.Unlock()
		return
	}
	sess.disposed = true
	if sess.stateTimer != nil {
		sess.stateTimer.Stop()
	}
	conn := sess.conn
	sess.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	m.log.Info("session torn down", zap.String("roomID", sess.roomID))
}

// dropIfCurrent clears the registry slot only if sess still owns it, keyed by
// identity so a stale session cannot evict its successor.
func (m *Manager) dropIfCurrent(sess *Session) {
	m.mu.Lock()
	if m.current == sess {
		m.current = nil
	}
	m.mu.Unlock()
}
