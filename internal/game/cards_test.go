package game

import (
	"errors"
	"testing"
)

func TestDeckHas32UniqueCards(t *testing.T) {
	deck := Deck()
	if len(deck) != 32 {
		t.Fatalf("deck size: got %d, want 32", len(deck))
	}
	seen := map[string]bool{}
	for _, c := range deck {
		if seen[c.CardID] {
			t.Fatalf("duplicate card id %s", c.CardID)
		}
		seen[c.CardID] = true
	}
}

func TestCardFromID(t *testing.T) {
	cases := []struct {
		name    string
		id      string
		wantErr bool
		points  int
		order   int
	}{
		{name: "jack is worth 3", id: "Hearts_Jack", points: 3, order: 7},
		{name: "nine is worth 2", id: "Spades_Nine", points: 2, order: 6},
		{name: "ten is worth 1", id: "Clubs_Ten", points: 1, order: 4},
		{name: "ace is worth 1", id: "Diamonds_Ace", points: 1, order: 5},
		{name: "queen is worth 0", id: "Diamonds_Queen", points: 0, order: 2},
		{name: "missing separator", id: "HeartsJack", wantErr: true},
		{name: "unknown suit", id: "Stars_Jack", wantErr: true},
		{name: "unknown rank", id: "Hearts_Two", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := CardFromID(tc.id)
			if tc.wantErr {
				if !errors.Is(err, ErrBadCardID) {
					t.Fatalf("expected ErrBadCardID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if c.CardID != tc.id {
				t.Fatalf("round trip id: got %s, want %s", c.CardID, tc.id)
			}
			if c.Points != tc.points {
				t.Fatalf("points: got %d, want %d", c.Points, tc.points)
			}
			if c.Order != tc.order {
				t.Fatalf("order: got %d, want %d", c.Order, tc.order)
			}
		})
	}
}
