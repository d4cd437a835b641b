package protocol

import (
	"encoding/json"
	"fmt"
)

// Command is a client intent. Presentation code never builds these directly;
// the dispatcher does.
type Command interface{ isCommand() }

type GetState struct{}

type SubmitBid struct {
	SeatIndex int `json:"seatIndex"`
	BidValue  int `json:"bidValue"`
}

type SelectTrumpCard struct {
	SeatIndex int    `json:"seatIndex"`
	CardID    string `json:"cardId"`
}

type SubmitRestDeal struct {
	RestHands [4][]string `json:"restHands"`
}

type ChooseRevealTrump struct {
	SeatIndex int  `json:"seatIndex"`
	Reveal    bool `json:"reveal"`
}

type PlayCard struct {
	SeatIndex int    `json:"seatIndex"`
	CardID    string `json:"cardId"`
}

func (GetState) isCommand()          {}
func (SubmitBid) isCommand()         {}
func (SelectTrumpCard) isCommand()   {}
func (SubmitRestDeal) isCommand()    {}
func (ChooseRevealTrump) isCommand() {}
func (PlayCard) isCommand()          {}

// EncodeCommand serializes a command with its type tag.
func EncodeCommand(cmd Command) ([]byte, error) {
	switch c := cmd.(type) {
	case GetState:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{TypeGetState})
	case SubmitBid:
		return json.Marshal(struct {
			Type string `json:"type"`
			SubmitBid
		}{TypeSubmitBid, c})
	case SelectTrumpCard:
		return json.Marshal(struct {
			Type string `json:"type"`
			SelectTrumpCard
		}{TypeSelectTrumpCard, c})
	case SubmitRestDeal:
		return json.Marshal(struct {
			Type string `json:"type"`
			SubmitRestDeal
		}{TypeSubmitRestDeal, c})
	case ChooseRevealTrump:
		return json.Marshal(struct {
			Type string `json:"type"`
			ChooseRevealTrump
		}{TypeChooseRevealTrump, c})
	case PlayCard:
		return json.Marshal(struct {
			Type string `json:"type"`
			PlayCard
		}{TypePlayCard, c})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, cmd)
	}
}

// ParseCommand decodes a client command frame, for the server side of the
// protocol (dev stub, tests).
func ParseCommand(data []byte) (Command, error) {
	var env struct {
		Type      string      `json:"type"`
		SeatIndex int         `json:"seatIndex"`
		BidValue  int         `json:"bidValue"`
		CardID    string      `json:"cardId"`
		Reveal    bool        `json:"reveal"`
		RestHands [4][]string `json:"restHands"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}

	switch env.Type {
	case TypeGetState:
		return GetState{}, nil
	case TypeSubmitBid:
		return SubmitBid{SeatIndex: env.SeatIndex, BidValue: env.BidValue}, nil
	case TypeSelectTrumpCard:
		return SelectTrumpCard{SeatIndex: env.SeatIndex, CardID: env.CardID}, nil
	case TypeSubmitRestDeal:
		return SubmitRestDeal{RestHands: env.RestHands}, nil
	case TypeChooseRevealTrump:
		return ChooseRevealTrump{SeatIndex: env.SeatIndex, Reveal: env.Reveal}, nil
	case TypePlayCard:
		return PlayCard{SeatIndex: env.SeatIndex, CardID: env.CardID}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}
