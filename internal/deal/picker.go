package deal

import (
	"errors"
	"fmt"
)

var (
	ErrNotInPool = errors.New("card is not in the pool")
	ErrCardTaken = errors.New("card is already assigned")
	ErrSeatFull  = errors.New("seat already holds its full hand")
	ErrNotInHand = errors.New("card is not in that seat's hand")
	ErrBadSeat   = errors.New("seat index out of range")
)

// Picker is the interaction state for assigning a card universe to four
// seats. Which seat is the active target is purely local UI state and plays
// no part in validation.
type Picker struct {
	universe []string
	perSeat  int
	hands    [NumSeats][]string
	owner    map[string]int // cardID -> seat
	active   int
}

func NewPicker(universe []string, perSeat int) *Picker {
	u := make([]string, len(universe))
	copy(u, universe)
	return &Picker{
		universe: u,
		perSeat:  perSeat,
		owner:    make(map[string]int, len(universe)),
	}
}

func (p *Picker) ActiveSeat() int { return p.active }

func (p *Picker) SetActiveSeat(seat int) error {
	if seat < 0 || seat >= NumSeats {
		return fmt.Errorf("%w: %d", ErrBadSeat, seat)
	}
	p.active = seat
	return nil
}

// Assign gives a pool card to the active seat. A card assigned anywhere is
// unselectable; a full seat accepts no more.
func (p *Picker) Assign(cardID string) error {
	if !p.inUniverse(cardID) {
		return fmt.Errorf("%w: %s", ErrNotInPool, cardID)
	}
	if _, taken := p.owner[cardID]; taken {
		return fmt.Errorf("%w: %s", ErrCardTaken, cardID)
	}
	if len(p.hands[p.active]) >= p.perSeat {
		return fmt.Errorf("%w: seat %d", ErrSeatFull, p.active)
	}
	p.hands[p.active] = append(p.hands[p.active], cardID)
	p.owner[cardID] = p.active
	return nil
}

// Remove returns a card from a seat to the unassigned pool. No other side
// effects.
func (p *Picker) Remove(seat int, cardID string) error {
	if seat < 0 || seat >= NumSeats {
		return fmt.Errorf("%w: %d", ErrBadSeat, seat)
	}
	owner, taken := p.owner[cardID]
	if !taken || owner != seat {
		return fmt.Errorf("%w: %s", ErrNotInHand, cardID)
	}
	hand := p.hands[seat]
	for i, id := range hand {
		if id == cardID {
			p.hands[seat] = append(hand[:i], hand[i+1:]...)
			break
		}
	}
	delete(p.owner, cardID)
	return nil
}

// Assigned reports whether the card is currently held by any seat.
func (p *Picker) Assigned(cardID string) bool {
	_, taken := p.owner[cardID]
	return taken
}

// Unassigned returns the pool cards not yet given to a seat, in universe
// order.
func (p *Picker) Unassigned() []string {
	var free []string
	for _, id := range p.universe {
		if _, taken := p.owner[id]; !taken {
			free = append(free, id)
		}
	}
	return free
}

// Hands returns a copy of the current assignment.
func (p *Picker) Hands() [NumSeats][]string {
	var out [NumSeats][]string
	for i, hand := range p.hands {
		out[i] = append([]string(nil), hand...)
	}
	return out
}

// CanSubmit reports whether the current assignment passes Validate. Submit
// controls stay disabled until it does.
func (p *Picker) CanSubmit() bool {
	return Validate(p.universe, p.perSeat, p.hands) == nil
}

func (p *Picker) inUniverse(cardID string) bool {
	for _, id := range p.universe {
		if id == cardID {
			return true
		}
	}
	return false
}
