// Command 28 is a terminal shell around the sync client: it joins (or
// creates) a room, renders each pushed snapshot, and forwards typed gestures
// through the dispatcher. All game rules live on the server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mjoseph28/game28-client/internal/config"
	"github.com/mjoseph28/game28-client/internal/deal"
	"github.com/mjoseph28/game28-client/internal/dispatch"
	"github.com/mjoseph28/game28-client/internal/protocol"
	"github.com/mjoseph28/game28-client/internal/roomapi"
	"github.com/mjoseph28/game28-client/internal/session"
	"github.com/mjoseph28/game28-client/internal/store"
)

func main() {
	create := flag.Bool("create", false, "create a new room before joining")
	room := flag.String("room", "", "room id to join")
	flag.Parse()

	cfg := config.Load()
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	roomID := *room
	if *create {
		id, err := createRoom(ctx, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "create room:", err)
			os.Exit(1)
		}
		fmt.Println("created room", id)
		roomID = id
	}
	if roomID == "" {
		fmt.Fprintln(os.Stderr, "usage: 28 -room <id> | 28 -create")
		os.Exit(2)
	}

	done := make(chan struct{})
	st := store.New(logger, func() {
		// Server aborted the game; back to room selection means exit here.
		close(done)
	}, cfg.AbortRedirectDelay)

	mgr := session.NewManager(st, cfg.WSBaseURL, logger)
	mgr.StateTimeout = cfg.StateTimeout
	defer mgr.Close()

	disp := dispatch.New(st, mgr)

	if err := mgr.Open(ctx, roomID); err != nil {
		fmt.Fprintln(os.Stderr, "connect:", err)
		os.Exit(1)
	}

	go func() {
		for range st.Watch() {
			render(st, disp)
		}
	}()

	go inputLoop(mgr, disp)

	<-done
}

// createRoom posts a simple round-robin split of the first 16 deck cards.
func createRoom(ctx context.Context, cfg config.Config) (string, error) {
	picker := deal.NewPicker(deal.FullDeckUniverse(), 4)
	for i, id := range deal.FullDeckUniverse()[:16] {
		if err := picker.SetActiveSeat(i % 4); err != nil {
			return "", err
		}
		if err := picker.Assign(id); err != nil {
			return "", err
		}
	}
	api := roomapi.NewClient(cfg.HTTPBaseURL)
	return api.CreateGame(ctx, 0, picker.Hands())
}

func render(st *store.Store, disp *dispatch.Dispatcher) {
	if msg := st.Fatal(); msg != "" {
		fmt.Println("\n!! " + msg)
		return
	}

	state := st.State()
	if state == nil {
		fmt.Println("status:", st.Status())
		return
	}

	fmt.Printf("\n[%s] phase=%s turn=%d  team1=%d team2=%d\n",
		st.Status(), state.Phase, state.TurnIndex,
		state.Play.Team1Points, state.Play.Team2Points)
	if w := st.Warning(); w != "" {
		fmt.Println("warning:", w)
	}
	for _, line := range tail(state.EventLog, 3) {
		fmt.Println("  *", line)
	}

	mode := disp.Mode()
	if mode == dispatch.ModeNone {
		return
	}
	seat := disp.ActingSeat()
	if seat >= 0 && !disp.ActingSeatIsHuman() {
		fmt.Printf("waiting on bot seat %d (%s)\n", seat, mode)
		return
	}
	switch mode {
	case dispatch.ModeBidR1, dispatch.ModeBidR2:
		fmt.Printf("seat %d to bid: bid <n> | pass | redeal\n", seat)
	case dispatch.ModeSelectTrump:
		fmt.Printf("seat %d picks trump: trump <cardId> from %s\n", seat, strings.Join(disp.Candidates(), " "))
	case dispatch.ModeManualDeal:
		fmt.Println("assign the remaining cards: deal")
	case dispatch.ModeReveal:
		fmt.Printf("seat %d: reveal y|n\n", seat)
	case dispatch.ModePlayCard:
		fmt.Printf("seat %d plays: play <cardId> from %s\n", seat, strings.Join(disp.Candidates(), " "))
	case dispatch.ModeGameOver:
		fmt.Println("game over")
	}
}

func inputLoop(mgr *session.Manager, disp *dispatch.Dispatcher) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if err := handle(mgr, disp, fields); err != nil {
			fmt.Println("rejected:", err)
		}
	}
}

func handle(mgr *session.Manager, disp *dispatch.Dispatcher, fields []string) error {
	seat := disp.ActingSeat()

	switch fields[0] {
	case "bid":
		if len(fields) < 2 {
			return fmt.Errorf("usage: bid <n>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bid must be a number")
		}
		return disp.SubmitBid(seat, n)
	case "pass":
		return disp.SubmitBid(seat, dispatch.PassBid)
	case "redeal":
		return disp.SubmitBid(seat, dispatch.RedealBid)
	case "trump":
		if len(fields) < 2 {
			return fmt.Errorf("usage: trump <cardId>")
		}
		return disp.SelectTrump(seat, fields[1])
	case "deal":
		return autoDeal(disp)
	case "reveal":
		if len(fields) < 2 {
			return fmt.Errorf("usage: reveal y|n")
		}
		return disp.ChooseReveal(seat, fields[1] == "y")
	case "play":
		if len(fields) < 2 {
			return fmt.Errorf("usage: play <cardId>")
		}
		return disp.PlayCard(seat, fields[1])
	case "state":
		mgr.Send(protocol.GetState{})
		return nil
	case "quit":
		mgr.Close()
		os.Exit(0)
		return nil
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

// autoDeal distributes the remainder pool round-robin through the picker and
// submits once the partition checks pass.
func autoDeal(disp *dispatch.Dispatcher) error {
	pool, perSeat, ok := disp.RestDealPool()
	if !ok {
		return dispatch.ErrWrongMode
	}
	picker := deal.NewPicker(pool, perSeat)
	for i, id := range pool {
		if err := picker.SetActiveSeat(i % 4); err != nil {
			return err
		}
		if err := picker.Assign(id); err != nil {
			return err
		}
	}
	return disp.SubmitRestDeal(picker.Hands())
}

func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
