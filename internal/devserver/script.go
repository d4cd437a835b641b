package devserver

import (
	"github.com/mjoseph28/game28-client/internal/game"
)

// DemoScript drives a client through every interaction surface once:
// bid R1 -> trump select R1 -> manual rest deal -> bid R2 -> play -> over.
// States are plausible snapshots, not rules-engine output.
func DemoScript(gameID string, startingBidder int, first4Hands [4][]string) []Step {
	order := make([]int, 4)
	for i := range order {
		order[i] = (startingBidder + i) % 4
	}

	hands := make([][]game.Card, 4)
	dealt := make(map[string]bool)
	for seat, ids := range first4Hands {
		for _, id := range ids {
			c, err := game.CardFromID(id)
			if err != nil {
				continue
			}
			hands[seat] = append(hands[seat], c)
			dealt[id] = true
		}
	}

	var drawPile []string
	for _, id := range game.DeckIDs() {
		if !dealt[id] {
			drawPile = append(drawPile, id)
		}
	}

	base := func(phase game.Phase, turn int) *game.State {
		players := make([]game.PlayerView, 4)
		for i := range players {
			team := 2
			if i%2 == 0 {
				team = 1
			}
			players[i] = game.PlayerView{
				SeatIndex: i,
				Cards:     hands[i],
				CardCount: len(hands[i]),
				Team:      team,
			}
		}
		return &game.State{
			GameID:              gameID,
			Phase:               phase,
			StartingBidderIndex: startingBidder,
			TurnIndex:           turn,
			BiddingOrder:        order,
			SeatTypes:           []game.SeatType{game.SeatBot, game.SeatHuman, game.SeatBot, game.SeatHuman},
			Players:             players,
			DrawPileCount:       len(drawPile),
			BidsR1:              []int{0, 0, 0, 0},
			BidsR2:              []int{0, 0, 0, 0},
			Play:                game.PlayView{CatchNumber: 1, TrumpIndice: []int{0, 0, 0, 0}},
			EventLog:            []string{"Demo room ready."},
		}
	}

	bidder := startingBidder
	bidderHand := first4Hands[bidder]

	steps := []Step{
		{
			State: base(game.PhaseBiddingR1, startingBidder),
			Actions: game.BidR1{
				SeatIndex:       startingBidder,
				MinBidExclusive: 13,
				MaxBidInclusive: 28,
				CanPass:         false,
				CanRedeal:       true,
			},
		},
		{
			State:   base(game.PhaseTrumpSelectR1, bidder),
			Actions: game.SelectTrumpR1{SeatIndex: bidder, CardIDs: bidderHand},
		},
		{
			State:   base(game.PhaseManualDeal, -1),
			Actions: game.ManualDealRest{RemainingCardIDs: drawPile, NeededPerSeat: 4},
		},
		{
			State: base(game.PhaseBiddingR2, startingBidder),
			Actions: game.BidR2{
				SeatIndex:       startingBidder,
				MinBidExclusive: 19,
				MaxBidInclusive: 28,
				CanPass:         true,
			},
		},
		{
			State:   base(game.PhasePlay, bidder),
			Actions: game.PlayTurn{SeatIndex: bidder, CardIDs: bidderHand},
		},
		{
			State:   base(game.PhaseGameOver, -1),
			Actions: game.GameOver{},
		},
	}
	return steps
}
