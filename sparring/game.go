package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	stoneBlack byte = 'B'
	stoneWhite byte = 'W'
)

type gameResult struct {
	Session  string
	Black    string
	White    string
	Winner   string
	Reason   string
	Moves    int
	Duration time.Duration
}

func (r gameResult) winnerLabel() string {
	if r.Winner == "" {
		return "draw"
	}
	return r.Winner
}

// referee mirrors the game locally so the tool can judge replies without
// trusting either bot.
type referee struct {
	size      int
	winLength int
	maxMoves  int
	cells     []byte
	moves     int
}

func newReferee(size, winLength, maxMoves int) *referee {
	cells := make([]byte, size*size)
	for i := range cells {
		cells[i] = '.'
	}
	return &referee{size: size, winLength: winLength, maxMoves: maxMoves, cells: cells}
}

func (r *referee) empty(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.size && y < r.size && r.cells[x*r.size+y] == '.'
}

func (r *referee) full() bool {
	return r.moves >= len(r.cells)
}

func (r *referee) place(x, y int, stone byte) {
	r.cells[x*r.size+y] = stone
	r.moves++
}

func (r *referee) winsAt(x, y int, stone byte) bool {
	for _, d := range [][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}} {
		count := 1
		for _, sign := range []int{1, -1} {
			cx, cy := x+sign*d[0], y+sign*d[1]
			for cx >= 0 && cy >= 0 && cx < r.size && cy < r.size && r.cells[cx*r.size+cy] == stone {
				count++
				cx += sign * d[0]
				cy += sign * d[1]
			}
		}
		if count >= r.winLength {
			return true
		}
	}
	return false
}

// judge applies one reply from mover. It reports the stone placed and
// whether the game is over; result is filled in when it is.
func (r *referee) judge(result *gameResult, mover, other *botClient, stone byte, resp botResponse) (coord, bool) {
	switch {
	case resp.Error != "":
		if r.full() {
			result.Reason = "board full"
			return coord{}, true
		}
		result.Winner = other.name
		result.Reason = fmt.Sprintf("%s replied %q", mover.name, resp.Error)
		return coord{}, true
	case resp.Move == nil:
		result.Winner = other.name
		result.Reason = fmt.Sprintf("%s sent no move", mover.name)
		return coord{}, true
	case !r.empty(resp.Move.X, resp.Move.Y):
		result.Winner = other.name
		result.Reason = fmt.Sprintf("%s played illegal (%d,%d)", mover.name, resp.Move.X, resp.Move.Y)
		return coord{}, true
	}

	move := *resp.Move
	r.place(move.X, move.Y, stone)
	result.Moves = r.moves
	if r.winsAt(move.X, move.Y, stone) {
		result.Winner = mover.name
		result.Reason = "five in a row"
		return move, true
	}
	if r.full() || r.moves >= r.maxMoves {
		result.Reason = "move limit"
		return move, true
	}
	return move, false
}

// playGame runs one game in a fresh session on both bots. New sessions
// start with the engine on Black, so the White side is reset once.
func playGame(ctx context.Context, black, white *botClient, session string, cfg settings) (gameResult, error) {
	started := time.Now()
	result := gameResult{Session: session, Black: black.name, White: white.name}
	if err := takeWhite(ctx, white, session); err != nil {
		return result, err
	}

	ref := newReferee(cfg.boardSize, cfg.winLength, cfg.maxMoves)
	resp, err := black.call(ctx, botRequest{Command: "start", Session: session})
	if err != nil {
		return result, err
	}
	last, done := ref.judge(&result, black, white, stoneBlack, resp)

	mover, other := white, black
	stone := stoneWhite
	for !done {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		resp, err := mover.call(ctx, botRequest{Command: "move", Session: session, OpponentMove: &last})
		if err != nil {
			return result, err
		}
		last, done = ref.judge(&result, mover, other, stone, resp)
		log.Debug().Str("session", session).Str("bot", mover.name).Int("x", last.X).Int("y", last.Y).Msg("stone")

		mover, other = other, mover
		if stone == stoneBlack {
			stone = stoneWhite
		} else {
			stone = stoneBlack
		}
	}
	result.Duration = time.Since(started)
	return result, nil
}

func takeWhite(ctx context.Context, bot *botClient, session string) error {
	resp, err := bot.call(ctx, botRequest{Command: "reset", Session: session})
	if err != nil {
		return err
	}
	if resp.Reply != "ok" {
		return fmt.Errorf("bot %s refused reset: %s", bot.name, resp.Error)
	}
	if bot.httpURL == "" {
		return nil
	}
	status, err := bot.status(ctx, session)
	if err != nil {
		return err
	}
	if status.Engine == "white" {
		return nil
	}
	if _, err := bot.call(ctx, botRequest{Command: "reset", Session: session}); err != nil {
		return err
	}
	if status, err = bot.status(ctx, session); err != nil {
		return err
	}
	if status.Engine != "white" {
		return fmt.Errorf("bot %s still plays %s in session %s", bot.name, status.Engine, session)
	}
	return nil
}

type tally struct {
	wins, losses, draws int
	asBlack             int
}

func printScoreTable(w io.Writer, names []string, results []gameResult) {
	tallies := make(map[string]*tally, len(names))
	for _, name := range names {
		tallies[name] = &tally{}
	}
	for _, r := range results {
		black, white := tallies[r.Black], tallies[r.White]
		if black == nil || white == nil {
			continue
		}
		black.asBlack++
		switch r.Winner {
		case "":
			black.draws++
			white.draws++
		case r.Black:
			black.wins++
			white.losses++
		default:
			white.wins++
			black.losses++
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "bot\twins\tlosses\tdraws\tas black\tscore")
	for _, name := range names {
		t := tallies[name]
		score := float64(t.wins) + 0.5*float64(t.draws)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.1f\n", name, t.wins, t.losses, t.draws, t.asBlack, score)
	}
	tw.Flush()
}
