// Package store holds the client's mirror of the server-pushed game view:
// the latest snapshot, the latest legal-actions declaration, and the
// error/warning/status channels the presentation layer renders from.
package store

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mjoseph28/game28-client/internal/game"
	"github.com/mjoseph28/game28-client/internal/protocol"
)

type Status string

const (
	StatusConnecting Status = "connecting"
	StatusOpen       Status = "open"
	StatusClosed     Status = "closed"
)

// DefaultAbortRedirectDelay gives the abort message one paint before the
// client navigates back to room selection.
const DefaultAbortRedirectDelay = 200 * time.Millisecond

// Store is mutated only by the session's message callbacks; each frame's
// effect is applied fully under one lock before the next frame is handled.
type Store struct {
	mu      sync.Mutex
	state   *game.State
	actions game.LegalAction
	fatal   string
	warning string
	status  Status

	navigate      func()
	redirectDelay time.Duration
	log           *zap.Logger

	watch chan struct{}
}

// New builds a store. navigate is invoked (once per abort, after
// redirectDelay) when the server aborts the game; nil is allowed.
func New(log *zap.Logger, navigate func(), redirectDelay time.Duration) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if redirectDelay <= 0 {
		redirectDelay = DefaultAbortRedirectDelay
	}
	return &Store{
		status:        StatusConnecting,
		navigate:      navigate,
		redirectDelay: redirectDelay,
		log:           log,
		watch:         make(chan struct{}, 1),
	}
}

// Apply performs the single reaction for one inbound frame.
func (s *Store) Apply(msg protocol.Inbound) {
	s.mu.Lock()
	switch m := msg.(type) {
	case protocol.StateUpdate:
		// Wholesale replace; the server is the single source of truth.
		s.state = m.State
		s.warning = ""
		s.log.Debug("state replaced", zap.String("phase", string(m.State.Phase)))

	case protocol.LegalActionsUpdate:
		s.actions = m.Actions
		s.log.Debug("legal actions replaced", zap.String("tag", game.ActionTag(m.Actions)))

	case protocol.ServerError:
		s.fatal = m.Message
		s.log.Warn("server error", zap.String("message", m.Message))

	case protocol.GameAborted:
		s.fatal = "game aborted: " + m.Reason
		s.log.Warn("game aborted", zap.String("reason", m.Reason))
		if s.navigate != nil {
			time.AfterFunc(s.redirectDelay, s.navigate)
		}
	}
	s.mu.Unlock()
	s.changed()
}

// ApplyFrame parses and applies one raw frame. Malformed or unrecognized
// frames become warnings and leave the held view untouched.
func (s *Store) ApplyFrame(data []byte) {
	msg, err := protocol.ParseInbound(data)
	if err != nil {
		s.SetWarning("ignoring bad frame: " + err.Error())
		return
	}
	s.Apply(msg)
}

func (s *Store) SetWarning(msg string) {
	s.mu.Lock()
	s.warning = msg
	s.mu.Unlock()
	s.log.Warn(msg)
	s.changed()
}

func (s *Store) SetFatal(msg string) {
	s.mu.Lock()
	s.fatal = msg
	s.mu.Unlock()
	s.log.Error(msg)
	s.changed()
}

func (s *Store) SetStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
	s.changed()
}

// Reset discards the held view for a fresh connection.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = nil
	s.actions = nil
	s.fatal = ""
	s.warning = ""
	s.status = StatusConnecting
	s.mu.Unlock()
	s.changed()
}

func (s *Store) State() *game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Actions() game.LegalAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions
}

func (s *Store) Fatal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fatal
}

func (s *Store) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Watch signals after every mutation, coalescing bursts. Presentation reads
// from it to know when to re-render.
func (s *Store) Watch() <-chan struct{} { return s.watch }

func (s *Store) changed() {
	select {
	case s.watch <- struct{}{}:
	default:
	}
}
