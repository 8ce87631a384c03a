// Command sparring plays a series of games between two running bots over
// their TCP protocol and prints the score table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

type settings struct {
	games        int
	parallel     int
	boardSize    int
	winLength    int
	maxMoves     int
	moveTimeout  time.Duration
	readyTimeout time.Duration
}

func main() {
	addrA := flag.String("a", "127.0.0.1:8081", "TCP address of the first bot")
	addrB := flag.String("b", "127.0.0.1:8082", "TCP address of the second bot")
	httpA := flag.String("a-http", "", "HTTP API base URL of the first bot")
	httpB := flag.String("b-http", "", "HTTP API base URL of the second bot")
	games := flag.Int("games", 10, "number of games")
	parallel := flag.Int("parallel", 1, "games played concurrently")
	boardSize := flag.Int("board-size", 31, "board size both bots were started with")
	maxMoves := flag.Int("max-moves", 0, "stop a game as a draw after this many stones (0 = board size squared)")
	moveTimeout := flag.Duration("move-timeout", 10*time.Second, "time allowed for one bot reply")
	logLevel := flag.String("log-level", "info", "zerolog level")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()

	cfg := settings{
		games:        max(*games, 1),
		parallel:     max(*parallel, 1),
		boardSize:    *boardSize,
		winLength:    5,
		maxMoves:     *maxMoves,
		moveTimeout:  *moveTimeout,
		readyTimeout: 30 * time.Second,
	}
	if cfg.maxMoves <= 0 {
		cfg.maxMoves = cfg.boardSize * cfg.boardSize
	}

	botA := newBotClient("A", *addrA, *httpA, cfg.moveTimeout)
	botB := newBotClient("B", *addrB, *httpB, cfg.moveTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runSeries(ctx, botA, botB, cfg)
	printScoreTable(os.Stdout, []string{botA.name, botB.name}, results)
	if err != nil {
		log.Error().Err(err).Msg("series-aborted")
		os.Exit(1)
	}
}

// runSeries schedules cfg.games games with colours alternating, in random
// order, and plays them with at most cfg.parallel in flight.
func runSeries(ctx context.Context, botA, botB *botClient, cfg settings) ([]gameResult, error) {
	// Both sides of a game share one session id, so one bot cannot play itself.
	if botA.addr == botB.addr {
		return nil, fmt.Errorf("bots %s and %s share address %s", botA.name, botB.name, botA.addr)
	}
	for _, bot := range []*botClient{botA, botB} {
		if err := bot.waitReady(ctx, cfg.readyTimeout); err != nil {
			return nil, fmt.Errorf("bot %s not ready: %w", bot.name, err)
		}
	}

	type pairing struct{ black, white *botClient }
	schedule := make([]pairing, cfg.games)
	for i := range schedule {
		if i%2 == 0 {
			schedule[i] = pairing{black: botA, white: botB}
		} else {
			schedule[i] = pairing{black: botB, white: botA}
		}
	}
	frand.Shuffle(len(schedule), func(i, j int) {
		schedule[i], schedule[j] = schedule[j], schedule[i]
	})

	var (
		mu      sync.Mutex
		results []gameResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.parallel)
	for i, p := range schedule {
		session := fmt.Sprintf("spar-%08x", frand.Uint64n(1<<32))
		g.Go(func() error {
			result, err := playGame(gctx, p.black, p.white, session, cfg)
			if err != nil {
				return fmt.Errorf("game %d (%s): %w", i+1, session, err)
			}
			log.Info().
				Int("game", i+1).
				Str("black", result.Black).
				Str("white", result.White).
				Str("winner", result.winnerLabel()).
				Str("reason", result.Reason).
				Int("moves", result.Moves).
				Dur("took", result.Duration).
				Msg("game-finished")
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return results, err
}
