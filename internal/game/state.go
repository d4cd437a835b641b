package game

type Phase string

const (
	PhaseBiddingR1     Phase = "BIDDING_R1"
	PhaseTrumpSelectR1 Phase = "TRUMP_SELECT_R1"
	PhaseManualDeal    Phase = "MANUAL_DEAL_REST"
	PhaseBiddingR2     Phase = "BIDDING_R2"
	PhaseTrumpSelectR2 Phase = "TRUMP_SELECT_R2"
	PhasePlay          Phase = "PLAY"
	PhaseGameOver      Phase = "GAME_OVER"
)

type SeatType string

const (
	SeatHuman SeatType = "human"
	SeatBot   SeatType = "bot"
)

// PlayerView is one seat as the server lets this client see it. Cards is
// empty unless the seat is the viewer's own or reveal state allows.
type PlayerView struct {
	SeatIndex int    `json:"seatIndex"`
	Cards     []Card `json:"cards"`
	CardCount int    `json:"cardCount"`
	Team      int    `json:"team"`
	IsBidder  bool   `json:"isBidder"`
}

// PlayView is the trick-play sub-record of a snapshot. TrumpSuit is only set
// once the trump has been revealed.
type PlayView struct {
	LeaderIndex int    `json:"leaderIndex"`
	CatchNumber int    `json:"catchNumber"`
	CurrentSuit string `json:"currentSuit"`
	TrumpReveal bool   `json:"trumpReveal"`
	TrumpSuit   *Suit  `json:"trumpSuit"`
	TrickCards  []Card `json:"trickCards"`
	TrumpIndice []int  `json:"trumpIndice"`
	Team1Points int    `json:"team1Points"`
	Team2Points int    `json:"team2Points"`
	WinnerTeam  *int   `json:"winnerTeam"`
}

// State is the full authoritative snapshot pushed by the server. It is always
// replaced wholesale, never patched field by field.
type State struct {
	GameID              string       `json:"gameId"`
	Phase               Phase        `json:"phase"`
	StartingBidderIndex int          `json:"startingBidderIndex"`
	TurnIndex           int          `json:"turnIndex"`
	BiddingOrder        []int        `json:"biddingOrder"`
	SeatTypes           []SeatType   `json:"seatTypes"`
	Players             []PlayerView `json:"players"`
	DrawPileCount       int          `json:"drawPileCount"`
	BidsR1              []int        `json:"bidsR1"`
	BidsR2              []int        `json:"bidsR2"`
	Round1BidderSeat    *int         `json:"round1BidderSeat"`
	Round1BidValue      *int         `json:"round1BidValue"`
	FinalBidderSeat     *int         `json:"finalBidderSeat"`
	FinalBidValue       *int         `json:"finalBidValue"`
	HasConcealedTrump   bool         `json:"hasConcealedTrump"`
	Play                PlayView     `json:"play"`
	EventLog            []string     `json:"eventLog"`
}

// SeatIsHuman reports whether the given seat is human-controlled. Out of
// range seats are never human.
func (s *State) SeatIsHuman(seat int) bool {
	if s == nil || seat < 0 || seat >= len(s.SeatTypes) {
		return false
	}
	return s.SeatTypes[seat] == SeatHuman
}
