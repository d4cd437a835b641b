// Package protocol defines the closed set of frames exchanged with the game
// server: four inbound push shapes and six outbound commands, one JSON object
// per text frame, discriminated by a string "type" tag.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mjoseph28/game28-client/internal/game"
)

var (
	ErrBadFrame    = errors.New("malformed frame")
	ErrUnknownType = errors.New("unknown frame type")
)

// Inbound frame tags.
const (
	TypeStateUpdate  = "STATE_UPDATE"
	TypeLegalActions = "LEGAL_ACTIONS"
	TypeError        = "ERROR"
	TypeGameAborted  = "GAME_ABORTED"
)

// Outbound command tags.
const (
	TypeGetState          = "GET_STATE"
	TypeSubmitBid         = "SUBMIT_BID"
	TypeSelectTrumpCard   = "SELECT_TRUMP_CARD"
	TypeSubmitRestDeal    = "SUBMIT_REST_DEAL"
	TypeChooseRevealTrump = "CHOOSE_REVEAL_TRUMP"
	TypePlayCard          = "PLAY_CARD"
)

// Inbound is a server push. Consumers switch exhaustively on the variant.
type Inbound interface{ isInbound() }

type StateUpdate struct {
	State *game.State
}

type LegalActionsUpdate struct {
	Actions game.LegalAction
}

type ServerError struct {
	Message string
}

type GameAborted struct {
	Reason string
}

func (StateUpdate) isInbound()        {}
func (LegalActionsUpdate) isInbound() {}
func (ServerError) isInbound()        {}
func (GameAborted) isInbound()        {}

type inboundEnvelope struct {
	Type    string          `json:"type"`
	State   json.RawMessage `json:"state,omitempty"`
	Actions json.RawMessage `json:"actions,omitempty"`
	Message string          `json:"message,omitempty"`
	Reason  string          `json:"reason,omitempty"`
}

// ParseInbound decodes one inbound frame. A frame that is not valid JSON
// reports ErrBadFrame; a valid object with an unrecognized tag reports
// ErrUnknownType. Neither ever panics past this boundary.
func ParseInbound(data []byte) (Inbound, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}

	switch env.Type {
	case TypeStateUpdate:
		var st game.State
		if err := json.Unmarshal(env.State, &st); err != nil {
			return nil, fmt.Errorf("%w: state payload: %v", ErrBadFrame, err)
		}
		return StateUpdate{State: &st}, nil

	case TypeLegalActions:
		actions, err := game.DecodeLegalAction(env.Actions)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
		}
		return LegalActionsUpdate{Actions: actions}, nil

	case TypeError:
		return ServerError{Message: env.Message}, nil

	case TypeGameAborted:
		return GameAborted{Reason: env.Reason}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

// EncodeInbound renders a server push frame. Used by the dev stub server and
// by tests; the client itself never sends these.
func EncodeInbound(msg Inbound) ([]byte, error) {
	switch m := msg.(type) {
	case StateUpdate:
		state, err := json.Marshal(m.State)
		if err != nil {
			return nil, err
		}
		return json.Marshal(inboundEnvelope{Type: TypeStateUpdate, State: state})
	case LegalActionsUpdate:
		actions, err := game.EncodeLegalAction(m.Actions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(inboundEnvelope{Type: TypeLegalActions, Actions: actions})
	case ServerError:
		return json.Marshal(inboundEnvelope{Type: TypeError, Message: m.Message})
	case GameAborted:
		return json.Marshal(inboundEnvelope{Type: TypeGameAborted, Reason: m.Reason})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, msg)
	}
}
