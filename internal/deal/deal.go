// Package deal validates manual card partitions: four ordered hands that must
// exactly cover a fixed universe of card identifiers. The same check backs the
// initial first-4 deal form (universe = full deck) and the mid-game remainder
// deal (universe = draw pile).
package deal

import (
	"errors"
	"fmt"

	"github.com/mjoseph28/game28-client/internal/game"
)

const NumSeats = 4

var (
	ErrHandSize  = errors.New("hand has wrong size")
	ErrDuplicate = errors.New("card assigned more than once")
	ErrCoverage  = errors.New("assignment does not cover the universe exactly")
)

// Validate checks a candidate assignment against the three partition rules:
// every hand holds exactly perSeat cards, no identifier repeats anywhere, and
// the flattened set equals the universe exactly. Compared as sets, not
// positionally.
func Validate(universe []string, perSeat int, hands [NumSeats][]string) error {
	for seat, hand := range hands {
		if len(hand) != perSeat {
			return fmt.Errorf("%w: seat %d has %d cards, needs %d", ErrHandSize, seat, len(hand), perSeat)
		}
	}

	assigned := make(map[string]bool, NumSeats*perSeat)
	for _, hand := range hands {
		for _, id := range hand {
			if assigned[id] {
				return fmt.Errorf("%w: %s", ErrDuplicate, id)
			}
			assigned[id] = true
		}
	}

	pool := make(map[string]bool, len(universe))
	for _, id := range universe {
		pool[id] = true
	}

	if len(assigned) != len(pool) {
		return fmt.Errorf("%w: assigned %d of %d cards", ErrCoverage, len(assigned), len(pool))
	}
	for id := range assigned {
		if !pool[id] {
			return fmt.Errorf("%w: %s is not in the pool", ErrCoverage, id)
		}
	}
	for id := range pool {
		if !assigned[id] {
			return fmt.Errorf("%w: %s left unassigned", ErrCoverage, id)
		}
	}
	return nil
}

// FullDeckUniverse is the universe for the initial deal form: all 32 cards.
func FullDeckUniverse() []string {
	return game.DeckIDs()
}
