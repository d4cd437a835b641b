package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadCardID = errors.New("invalid card id")

type Suit string

const (
	SuitHearts   Suit = "Hearts"
	SuitClubs    Suit = "Clubs"
	SuitDiamonds Suit = "Diamonds"
	SuitSpades   Suit = "Spades"
)

var Suits = []Suit{SuitHearts, SuitClubs, SuitDiamonds, SuitSpades}

type Rank string

const (
	RankSeven Rank = "Seven"
	RankEight Rank = "Eight"
	RankQueen Rank = "Queen"
	RankKing  Rank = "King"
	RankTen   Rank = "Ten"
	RankAce   Rank = "Ace"
	RankNine  Rank = "Nine"
	RankJack  Rank = "Jack"
)

// Ranks is ordered weakest to strongest; a card's Order is its index here.
var Ranks = []Rank{RankSeven, RankEight, RankQueen, RankKing, RankTen, RankAce, RankNine, RankJack}

// Card is one of the 32 cards in a 28 deck. CardID is "<Suit>_<Rank>" and is
// stable for the lifetime of a game.
type Card struct {
	CardID string `json:"cardId"`
	Suit   Suit   `json:"suit"`
	Rank   Rank   `json:"rank"`
	Points int    `json:"points"`
	Order  int    `json:"order"`
	Label  string `json:"label"`
}

func rankPoints(r Rank) int {
	switch r {
	case RankTen, RankAce:
		return 1
	case RankNine:
		return 2
	case RankJack:
		return 3
	default:
		return 0
	}
}

func rankOrder(r Rank) int {
	for i, rr := range Ranks {
		if rr == r {
			return i
		}
	}
	return -1
}

func NewCard(suit Suit, rank Rank) Card {
	return Card{
		CardID: string(suit) + "_" + string(rank),
		Suit:   suit,
		Rank:   rank,
		Points: rankPoints(rank),
		Order:  rankOrder(rank),
		Label:  fmt.Sprintf("%s of %s", rank, suit),
	}
}

// CardFromID parses a "<Suit>_<Rank>" identifier.
func CardFromID(cardID string) (Card, error) {
	suit, rank, ok := strings.Cut(cardID, "_")
	if !ok {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCardID, cardID)
	}

	validSuit := false
	for _, s := range Suits {
		if Suit(suit) == s {
			validSuit = true
			break
		}
	}
	if !validSuit {
		return Card{}, fmt.Errorf("%w: unknown suit in %q", ErrBadCardID, cardID)
	}
	if rankOrder(Rank(rank)) < 0 {
		return Card{}, fmt.Errorf("%w: unknown rank in %q", ErrBadCardID, cardID)
	}
	return NewCard(Suit(suit), Rank(rank)), nil
}

// Deck returns all 32 cards in suit-major order.
func Deck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, NewCard(s, r))
		}
	}
	return deck
}

// DeckIDs returns the identifiers of the full deck, same order as Deck.
func DeckIDs() []string {
	deck := Deck()
	ids := make([]string, len(deck))
	for i, c := range deck {
		ids[i] = c.CardID
	}
	return ids
}
