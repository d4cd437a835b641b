package protocol

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mjoseph28/game28-client/internal/game"
)

func TestParseInbound(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Inbound
	}{
		{
			name: "legal actions",
			raw:  `{"type":"LEGAL_ACTIONS","actions":{"type":"PLAY_CARD","seatIndex":2,"cardIds":["Hearts_Ace","Clubs_King"]}}`,
			want: LegalActionsUpdate{Actions: game.PlayTurn{SeatIndex: 2, CardIDs: []string{"Hearts_Ace", "Clubs_King"}}},
		},
		{
			name: "server error",
			raw:  `{"type":"ERROR","message":"Not your trump selection turn."}`,
			want: ServerError{Message: "Not your trump selection turn."},
		},
		{
			name: "game aborted",
			raw:  `{"type":"GAME_ABORTED","reason":"ALL_FOUR_JACKS"}`,
			want: GameAborted{Reason: "ALL_FOUR_JACKS"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseInbound([]byte(tc.raw))
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestParseInboundStateUpdate(t *testing.T) {
	raw := `{"type":"STATE_UPDATE","state":{"gameId":"g1","phase":"PLAY","turnIndex":2,"seatTypes":["bot","human","bot","human"]}}`

	msg, err := ParseInbound([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	upd, ok := msg.(StateUpdate)
	if !ok {
		t.Fatalf("expected StateUpdate, got %T", msg)
	}
	if upd.State.GameID != "g1" || upd.State.Phase != game.PhasePlay || upd.State.TurnIndex != 2 {
		t.Fatalf("state decoded wrong: %#v", upd.State)
	}
	if !upd.State.SeatIsHuman(1) || upd.State.SeatIsHuman(2) {
		t.Fatalf("seat types decoded wrong: %#v", upd.State.SeatTypes)
	}
}

func TestParseInboundRejectsBadFrames(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "not json", raw: `{{{nope`, wantErr: ErrBadFrame},
		{name: "json array", raw: `[1,2,3]`, wantErr: ErrBadFrame},
		{name: "unknown tag", raw: `{"type":"NOT_A_REAL_TYPE"}`, wantErr: ErrUnknownType},
		{name: "missing tag", raw: `{"foo":1}`, wantErr: ErrUnknownType},
		{name: "state update without state", raw: `{"type":"STATE_UPDATE"}`, wantErr: ErrBadFrame},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseInbound([]byte(tc.raw))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestEncodeCommand(t *testing.T) {
	cases := []struct {
		name string
		cmd  Command
		want string
	}{
		{name: "get state", cmd: GetState{}, want: `{"type":"GET_STATE"}`},
		{
			name: "submit bid",
			cmd:  SubmitBid{SeatIndex: 1, BidValue: 16},
			want: `{"type":"SUBMIT_BID","seatIndex":1,"bidValue":16}`,
		},
		{
			name: "pass encodes as zero",
			cmd:  SubmitBid{SeatIndex: 3, BidValue: 0},
			want: `{"type":"SUBMIT_BID","seatIndex":3,"bidValue":0}`,
		},
		{
			name: "redeal encodes as minus one",
			cmd:  SubmitBid{SeatIndex: 3, BidValue: -1},
			want: `{"type":"SUBMIT_BID","seatIndex":3,"bidValue":-1}`,
		},
		{
			name: "select trump",
			cmd:  SelectTrumpCard{SeatIndex: 1, CardID: "Hearts_Jack"},
			want: `{"type":"SELECT_TRUMP_CARD","seatIndex":1,"cardId":"Hearts_Jack"}`,
		},
		{
			name: "choose reveal",
			cmd:  ChooseRevealTrump{SeatIndex: 1, Reveal: true},
			want: `{"type":"CHOOSE_REVEAL_TRUMP","seatIndex":1,"reveal":true}`,
		},
		{
			name: "play card",
			cmd:  PlayCard{SeatIndex: 2, CardID: "Clubs_King"},
			want: `{"type":"PLAY_CARD","seatIndex":2,"cardId":"Clubs_King"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := EncodeCommand(tc.cmd)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if string(data) != tc.want {
				t.Fatalf("got %s, want %s", data, tc.want)
			}
		})
	}
}

func TestCommandRoundTrip(t *testing.T) {
	want := SubmitRestDeal{RestHands: [4][]string{
		{"Hearts_Seven", "Hearts_Eight", "Hearts_Queen", "Hearts_King"},
		{"Clubs_Seven", "Clubs_Eight", "Clubs_Queen", "Clubs_King"},
		{"Diamonds_Seven", "Diamonds_Eight", "Diamonds_Queen", "Diamonds_King"},
		{"Spades_Seven", "Spades_Eight", "Spades_Queen", "Spades_King"},
	}}

	data, err := EncodeCommand(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := ParseCommand(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestEncodeInboundRoundTrip(t *testing.T) {
	want := LegalActionsUpdate{Actions: game.RevealChoice{SeatIndex: 1, Options: []bool{true, false}}}

	data, err := EncodeInbound(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := ParseInbound(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}
