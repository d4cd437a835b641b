package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mjoseph28/game28-client/internal/protocol"
	"github.com/mjoseph28/game28-client/internal/store"
)

const playStateFrame = `{"type":"STATE_UPDATE","state":{"gameId":"g1","phase":"PLAY","turnIndex":2,"seatTypes":["bot","human","bot","human"]}}`

type fakeConn struct {
	in     chan []byte
	closed chan struct{}
	once   sync.Once

	mu     sync.Mutex
	writes [][]byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (f *fakeConn) Read(ctx context.Context) ([]byte, error) {
	select {
	case data := <-f.in:
		return data, nil
	case <-f.closed:
		return nil, errors.New("use of closed connection")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeConn) Write(_ context.Context, data []byte) error {
	select {
	case <-f.closed:
		return errors.New("use of closed connection")
	default:
	}
	f.mu.Lock()
	f.writes = append(f.writes, append([]byte(nil), data...))
	f.mu.Unlock()
	return nil
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) writeTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var types []string
	for _, w := range f.writes {
		var env struct {
			Type string `json:"type"`
		}
		_ = json.Unmarshal(w, &env)
		types = append(types, env.Type)
	}
	return types
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newTestManager(timeout time.Duration) (*Manager, *store.Store, *fakeConn) {
	st := store.New(nil, nil, 0)
	conn := newFakeConn()
	m := NewManager(st, "ws://test", nil)
	m.StateTimeout = timeout
	m.Dial = func(context.Context, string) (Conn, error) { return conn, nil }
	return m, st, conn
}

func TestOpenPrimesWithGetState(t *testing.T) {
	m, _, conn := newTestManager(time.Second)
	defer m.Close()

	if err := m.Open(context.Background(), "room1"); err != nil {
		t.Fatalf("open: %v", err)
	}

	waitFor(t, "GET_STATE write", func() bool { return len(conn.writeTypes()) > 0 })
	if got := conn.writeTypes()[0]; got != protocol.TypeGetState {
		t.Fatalf("first command: got %s, want %s", got, protocol.TypeGetState)
	}
}

func TestStateTimeoutIsFatal(t *testing.T) {
	m, st, _ := newTestManager(20 * time.Millisecond)
	defer m.Close()

	if err := m.Open(context.Background(), "room1"); err != nil {
		t.Fatalf("open: %v", err)
	}

	waitFor(t, "timeout error", func() bool {
		return st.Fatal() == "timed out waiting for game state"
	})
	// No retry, no automatic teardown.
	if st.Status() != store.StatusOpen {
		t.Fatalf("timeout must not change status, got %v", st.Status())
	}
}

func TestStateArrivalDisarmsTimeout(t *testing.T) {
	m, st, conn := newTestManager(40 * time.Millisecond)
	defer m.Close()

	if err := m.Open(context.Background(), "room1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	conn.in <- []byte(playStateFrame)

	waitFor(t, "state", func() bool { return st.State() != nil })
	time.Sleep(80 * time.Millisecond)
	if st.Fatal() != "" {
		t.Fatalf("timeout fired after state arrived: %q", st.Fatal())
	}
}

func TestPeerCloseBeforeStateIsSoftWarning(t *testing.T) {
	m, st, conn := newTestManager(time.Minute)
	defer m.Close()

	if err := m.Open(context.Background(), "room1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = conn.Close()

	waitFor(t, "close warning", func() bool { return st.Warning() != "" })
	if !strings.Contains(st.Warning(), "before any state") {
		t.Fatalf("wording must flag the missing state, got %q", st.Warning())
	}
	waitFor(t, "closed status", func() bool { return st.Status() == store.StatusClosed })
	if st.Fatal() != "" {
		t.Fatalf("peer close is not fatal, got %q", st.Fatal())
	}
}

func TestPeerCloseAfterStateIsSoftWarning(t *testing.T) {
	m, st, conn := newTestManager(time.Minute)
	defer m.Close()

	if err := m.Open(context.Background(), "room1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	conn.in <- []byte(playStateFrame)
	waitFor(t, "state", func() bool { return st.State() != nil })

	_ = conn.Close()

	waitFor(t, "close warning", func() bool { return st.Warning() != "" })
	if strings.Contains(st.Warning(), "before any state") {
		t.Fatalf("state was received, wording is wrong: %q", st.Warning())
	}
}

func TestCloseIsIdempotentAndSilent(t *testing.T) {
	m, st, conn := newTestManager(time.Minute)

	if err := m.Open(context.Background(), "room1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	conn.in <- []byte(playStateFrame)
	waitFor(t, "state", func() bool { return st.State() != nil })

	m.Close()
	m.Close()

	// The read loop observes the dead socket after disposal; it must stay
	// quiet instead of reporting a close on a session we tore down.
	time.Sleep(50 * time.Millisecond)
	if st.Warning() != "" {
		t.Fatalf("deliberate close must not warn, got %q", st.Warning())
	}
	if st.Status() != store.StatusClosed {
		t.Fatalf("status after close: got %v", st.Status())
	}
}

func TestLateFrameAfterCloseIsIgnored(t *testing.T) {
	m, st, conn := newTestManager(time.Minute)

	if err := m.Open(context.Background(), "room1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	conn.in <- []byte(playStateFrame)
	waitFor(t, "state", func() bool { return st.State() != nil })
	held := st.State()

	m.Close()
	// A frame already queued for the disposed socket must become a no-op.
	select {
	case conn.in <- []byte(`{"type":"STATE_UPDATE","state":{"gameId":"other","phase":"GAME_OVER"}}`):
	default:
	}

	time.Sleep(50 * time.Millisecond)
	if st.State() != held {
		t.Fatalf("late frame mutated state after teardown")
	}
}

func TestSendWhileNotReadyWarnsAndDrops(t *testing.T) {
	m, st, _ := newTestManager(time.Minute)

	m.Send(protocol.GetState{})

	if st.Warning() == "" {
		t.Fatalf("send without a session must warn")
	}
	if st.Fatal() != "" {
		t.Fatalf("dropped send is never fatal")
	}
}

func TestSendGoesOutWhileOpen(t *testing.T) {
	m, st, conn := newTestManager(time.Minute)
	defer m.Close()

	if err := m.Open(context.Background(), "room1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	conn.in <- []byte(playStateFrame)
	waitFor(t, "state", func() bool { return st.State() != nil })

	m.Send(protocol.SubmitBid{SeatIndex: 1, BidValue: 16})

	waitFor(t, "bid write", func() bool {
		for _, typ := range conn.writeTypes() {
			if typ == protocol.TypeSubmitBid {
				return true
			}
		}
		return false
	})
}

func TestRoomSwitchReplacesSession(t *testing.T) {
	st := store.New(nil, nil, 0)
	first := newFakeConn()
	second := newFakeConn()

	dials := 0
	m := NewManager(st, "ws://test", nil)
	m.StateTimeout = time.Minute
	m.Dial = func(context.Context, string) (Conn, error) {
		dials++
		if dials == 1 {
			return first, nil
		}
		return second, nil
	}
	defer m.Close()

	if err := m.Open(context.Background(), "roomA"); err != nil {
		t.Fatalf("open A: %v", err)
	}
	if err := m.Open(context.Background(), "roomB"); err != nil {
		t.Fatalf("open B: %v", err)
	}

	select {
	case <-first.closed:
	case <-time.After(time.Second):
		t.Fatalf("old session's socket was never closed")
	}

	second.in <- []byte(playStateFrame)
	waitFor(t, "state from new room", func() bool { return st.State() != nil })
	if st.Warning() != "" {
		t.Fatalf("old session's teardown must not warn, got %q", st.Warning())
	}
}

func TestDialFailureSurfacesAsClosedBeforeState(t *testing.T) {
	st := store.New(nil, nil, 0)
	m := NewManager(st, "ws://test", nil)
	m.Dial = func(context.Context, string) (Conn, error) {
		return nil, errors.New("connection refused")
	}

	if err := m.Open(context.Background(), "room1"); err == nil {
		t.Fatalf("expected dial error")
	}
	if !strings.Contains(st.Warning(), "before any state") {
		t.Fatalf("warning wording: %q", st.Warning())
	}
	if st.Status() != store.StatusClosed {
		t.Fatalf("status: got %v", st.Status())
	}
}
