// Package dispatch turns user gestures into protocol commands. The current
// legal-actions tag picks exactly one interaction mode; everything else is
// inert. A gesture for a bot-controlled seat never produces a command, no
// matter what the UI claims.
package dispatch

import (
	"errors"

	"github.com/mjoseph28/game28-client/internal/deal"
	"github.com/mjoseph28/game28-client/internal/game"
	"github.com/mjoseph28/game28-client/internal/protocol"
)

// Bid sentinels. PassBid needs canPass; RedealBid is round 1 only, behind
// canRedeal, and its server contract is still a placeholder.
const (
	PassBid   = 0
	RedealBid = -1
)

var (
	ErrWrongMode        = errors.New("interaction is not currently legal")
	ErrWrongSeat        = errors.New("not this seat's turn")
	ErrBotSeat          = errors.New("seat is bot-controlled")
	ErrPassNotAllowed   = errors.New("pass is not allowed")
	ErrRedealNotAllowed = errors.New("redeal is not allowed")
	ErrNotOffered       = errors.New("choice is not in the offered set")
)

// Mode names the single interaction surface eligible to render.
type Mode string

const (
	ModeNone        Mode = "none"
	ModeBidR1       Mode = "bid_r1"
	ModeBidR2       Mode = "bid_r2"
	ModeSelectTrump Mode = "select_trump"
	ModeManualDeal  Mode = "manual_deal"
	ModeReveal      Mode = "reveal_choice"
	ModePlayCard    Mode = "play_card"
	ModeGameOver    Mode = "game_over"
)

// Sender is the outbound half of the session manager.
type Sender interface {
	Send(cmd protocol.Command)
}

// View is the read side the dispatcher consults; the store satisfies it.
type View interface {
	State() *game.State
	Actions() game.LegalAction
}

type Dispatcher struct {
	view View
	out  Sender
}

func New(view View, out Sender) *Dispatcher {
	return &Dispatcher{view: view, out: out}
}

// Mode derives the active interaction surface from the current legal-actions
// tag. Absent or unknown declarations render nothing.
func (d *Dispatcher) Mode() Mode {
	switch d.view.Actions().(type) {
	case game.BidR1:
		return ModeBidR1
	case game.BidR2:
		return ModeBidR2
	case game.SelectTrumpR1, game.SelectTrumpR2:
		return ModeSelectTrump
	case game.ManualDealRest:
		return ModeManualDeal
	case game.RevealChoice:
		return ModeReveal
	case game.PlayTurn:
		return ModePlayCard
	case game.GameOver:
		return ModeGameOver
	case game.NoAction, nil:
		return ModeNone
	default:
		return ModeNone
	}
}

// ActingSeat returns the seat the current declaration addresses, or -1.
func (d *Dispatcher) ActingSeat() int {
	switch a := d.view.Actions().(type) {
	case game.BidR1:
		return a.SeatIndex
	case game.BidR2:
		return a.SeatIndex
	case game.SelectTrumpR1:
		return a.SeatIndex
	case game.SelectTrumpR2:
		return a.SeatIndex
	case game.RevealChoice:
		return a.SeatIndex
	case game.PlayTurn:
		return a.SeatIndex
	case game.NoAction:
		return a.SeatIndex
	default:
		return -1
	}
}

// ActingSeatIsHuman reports whether the current acting seat may be driven
// from this client. Bot-controlled seats render disabled controls.
func (d *Dispatcher) ActingSeatIsHuman() bool {
	return d.view.State().SeatIsHuman(d.ActingSeat())
}

// Candidates returns the server-supplied choice set for trump selection or
// card play, verbatim. The dispatcher neither synthesizes nor filters it.
func (d *Dispatcher) Candidates() []string {
	switch a := d.view.Actions().(type) {
	case game.SelectTrumpR1:
		return a.CardIDs
	case game.SelectTrumpR2:
		return a.CardIDs
	case game.PlayTurn:
		return a.CardIDs
	default:
		return nil
	}
}

// RestDealPool exposes the remainder pool and per-seat target while the
// manual deal surface is active.
func (d *Dispatcher) RestDealPool() (pool []string, perSeat int, ok bool) {
	a, isDeal := d.view.Actions().(game.ManualDealRest)
	if !isDeal {
		return nil, 0, false
	}
	return a.RemainingCardIDs, a.NeededPerSeat, true
}

// SubmitBid emits a SUBMIT_BID. Only the pass/redeal sentinels are validated
// locally; any other integer is the server's to accept or reject.
func (d *Dispatcher) SubmitBid(seat, bidValue int) error {
	switch a := d.view.Actions().(type) {
	case game.BidR1:
		if err := d.gate(seat, a.SeatIndex); err != nil {
			return err
		}
		if bidValue == PassBid && !a.CanPass {
			return ErrPassNotAllowed
		}
		if bidValue == RedealBid && !a.CanRedeal {
			return ErrRedealNotAllowed
		}
	case game.BidR2:
		if err := d.gate(seat, a.SeatIndex); err != nil {
			return err
		}
		if bidValue == PassBid && !a.CanPass {
			return ErrPassNotAllowed
		}
		if bidValue == RedealBid {
			return ErrRedealNotAllowed
		}
	default:
		return ErrWrongMode
	}
	d.out.Send(protocol.SubmitBid{SeatIndex: seat, BidValue: bidValue})
	return nil
}

// SelectTrump emits a SELECT_TRUMP_CARD for either selection round.
func (d *Dispatcher) SelectTrump(seat int, cardID string) error {
	var offered []string
	switch a := d.view.Actions().(type) {
	case game.SelectTrumpR1:
		if err := d.gate(seat, a.SeatIndex); err != nil {
			return err
		}
		offered = a.CardIDs
	case game.SelectTrumpR2:
		if err := d.gate(seat, a.SeatIndex); err != nil {
			return err
		}
		offered = a.CardIDs
	default:
		return ErrWrongMode
	}
	if !contains(offered, cardID) {
		return ErrNotOffered
	}
	d.out.Send(protocol.SelectTrumpCard{SeatIndex: seat, CardID: cardID})
	return nil
}

// SubmitRestDeal emits a SUBMIT_REST_DEAL once the partition passes the
// completeness, uniqueness and coverage checks.
func (d *Dispatcher) SubmitRestDeal(hands [4][]string) error {
	a, ok := d.view.Actions().(game.ManualDealRest)
	if !ok {
		return ErrWrongMode
	}
	if err := deal.Validate(a.RemainingCardIDs, a.NeededPerSeat, hands); err != nil {
		return err
	}
	d.out.Send(protocol.SubmitRestDeal{RestHands: hands})
	return nil
}

// ChooseReveal emits a CHOOSE_REVEAL_TRUMP; only the offered booleans count.
func (d *Dispatcher) ChooseReveal(seat int, reveal bool) error {
	a, ok := d.view.Actions().(game.RevealChoice)
	if !ok {
		return ErrWrongMode
	}
	if err := d.gate(seat, a.SeatIndex); err != nil {
		return err
	}
	offered := false
	for _, opt := range a.Options {
		if opt == reveal {
			offered = true
			break
		}
	}
	if !offered {
		return ErrNotOffered
	}
	d.out.Send(protocol.ChooseRevealTrump{SeatIndex: seat, Reveal: reveal})
	return nil
}

// PlayCard emits a PLAY_CARD from the server's legal set.
func (d *Dispatcher) PlayCard(seat int, cardID string) error {
	a, ok := d.view.Actions().(game.PlayTurn)
	if !ok {
		return ErrWrongMode
	}
	if err := d.gate(seat, a.SeatIndex); err != nil {
		return err
	}
	if !contains(a.CardIDs, cardID) {
		return ErrNotOffered
	}
	d.out.Send(protocol.PlayCard{SeatIndex: seat, CardID: cardID})
	return nil
}

func (d *Dispatcher) gate(seat, actingSeat int) error {
	if seat != actingSeat {
		return ErrWrongSeat
	}
	if !d.view.State().SeatIsHuman(seat) {
		return ErrBotSeat
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
