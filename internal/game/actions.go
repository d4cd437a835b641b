package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownAction = errors.New("unknown legal action type")

// Legal action type tags, exactly as the server sends them.
const (
	ActionBidR1          = "BID_R1"
	ActionBidR2          = "BID_R2"
	ActionSelectTrumpR1  = "SELECT_TRUMP_R1"
	ActionSelectTrumpR2  = "SELECT_TRUMP_R2"
	ActionManualDealRest = "MANUAL_DEAL_REST"
	ActionRevealChoice   = "REVEAL_CHOICE"
	ActionPlayCard       = "PLAY_CARD"
	ActionGameOver       = "GAME_OVER"
	ActionNoAction       = "NO_ACTION"
)

// LegalAction is the server's declaration of the single interaction currently
// permitted. The tag alone decides which interaction surface is live.
type LegalAction interface{ isLegalAction() }

type BidR1 struct {
	SeatIndex       int  `json:"seatIndex"`
	MinBidExclusive int  `json:"minBidExclusive"`
	MaxBidInclusive int  `json:"maxBidInclusive"`
	CanPass         bool `json:"canPass"`
	CanRedeal       bool `json:"canRedeal"`
}

type BidR2 struct {
	SeatIndex       int  `json:"seatIndex"`
	MinBidExclusive int  `json:"minBidExclusive"`
	MaxBidInclusive int  `json:"maxBidInclusive"`
	CanPass         bool `json:"canPass"`
}

type SelectTrumpR1 struct {
	SeatIndex int      `json:"seatIndex"`
	CardIDs   []string `json:"cardIds"`
}

type SelectTrumpR2 struct {
	SeatIndex int      `json:"seatIndex"`
	CardIDs   []string `json:"cardIds"`
}

type ManualDealRest struct {
	RemainingCardIDs []string `json:"remainingCardIds"`
	NeededPerSeat    int      `json:"neededPerSeat"`
}

type RevealChoice struct {
	SeatIndex int    `json:"seatIndex"`
	Options   []bool `json:"options"`
}

type PlayTurn struct {
	SeatIndex int      `json:"seatIndex"`
	CardIDs   []string `json:"cardIds"`
}

type GameOver struct{}

type NoAction struct {
	SeatIndex int `json:"seatIndex"`
}

func (BidR1) isLegalAction()          {}
func (BidR2) isLegalAction()          {}
func (SelectTrumpR1) isLegalAction()  {}
func (SelectTrumpR2) isLegalAction()  {}
func (ManualDealRest) isLegalAction() {}
func (RevealChoice) isLegalAction()   {}
func (PlayTurn) isLegalAction()       {}
func (GameOver) isLegalAction()       {}
func (NoAction) isLegalAction()       {}

// ActionTag returns the wire tag for a legal action.
func ActionTag(a LegalAction) string {
	switch a.(type) {
	case BidR1:
		return ActionBidR1
	case BidR2:
		return ActionBidR2
	case SelectTrumpR1:
		return ActionSelectTrumpR1
	case SelectTrumpR2:
		return ActionSelectTrumpR2
	case ManualDealRest:
		return ActionManualDealRest
	case RevealChoice:
		return ActionRevealChoice
	case PlayTurn:
		return ActionPlayCard
	case GameOver:
		return ActionGameOver
	case NoAction:
		return ActionNoAction
	default:
		return ""
	}
}

// DecodeLegalAction parses the "actions" payload of a LEGAL_ACTIONS frame.
func DecodeLegalAction(raw []byte) (LegalAction, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("legal actions payload: %w", err)
	}

	switch tag.Type {
	case ActionBidR1:
		var a BidR1
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("legal actions %s: %w", tag.Type, err)
		}
		return a, nil
	case ActionBidR2:
		var a BidR2
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("legal actions %s: %w", tag.Type, err)
		}
		return a, nil
	case ActionSelectTrumpR1:
		var a SelectTrumpR1
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("legal actions %s: %w", tag.Type, err)
		}
		return a, nil
	case ActionSelectTrumpR2:
		var a SelectTrumpR2
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("legal actions %s: %w", tag.Type, err)
		}
		return a, nil
	case ActionManualDealRest:
		var a ManualDealRest
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("legal actions %s: %w", tag.Type, err)
		}
		return a, nil
	case ActionRevealChoice:
		var a RevealChoice
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("legal actions %s: %w", tag.Type, err)
		}
		return a, nil
	case ActionPlayCard:
		var a PlayTurn
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("legal actions %s: %w", tag.Type, err)
		}
		return a, nil
	case ActionGameOver:
		return GameOver{}, nil
	case ActionNoAction:
		var a NoAction
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("legal actions %s: %w", tag.Type, err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, tag.Type)
	}
}

// EncodeLegalAction renders an action with its type tag injected, for the
// server side of the protocol (dev stub, tests).
func EncodeLegalAction(a LegalAction) ([]byte, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	tag := ActionTag(a)
	if tag == "" {
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
	fields["type"] = tag
	return json.Marshal(fields)
}
