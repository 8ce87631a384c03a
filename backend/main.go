package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const usage = "Usage: rendju-bot -p<port> [-http=addr] [-journal=path] [-config=file] [-log-level=level]"

func main() {
	config, err := parseArgs(os.Args[1:], DefaultConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogging(os.Stderr, config.LogLevel)
	configStore.Update(config)

	if err := run(config); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func run(config Config) error {
	journal, err := OpenJournal(config.JournalPath)
	if err != nil {
		return err
	}
	defer journal.Close()

	hub := NewHub()
	store := NewSessionStore(GetConfig, journal, hub.Publish)
	store.Get(defaultSession)
	dispatcher := NewDispatcher(store)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", config.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", config.Port, err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	g, ctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		hub.Run(ctx.Done())
		return nil
	})
	g.Go(func() error {
		return ServeTCP(ctx, listener, dispatcher)
	})

	if config.HTTPAddr != "" {
		server := &http.Server{
			Addr:              config.HTTPAddr,
			Handler:           NewAPIRouter(store, hub),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info().Str("addr", config.HTTPAddr).Msg("http-listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn().Err(err).Msg("http-shutdown-failed")
				return server.Close()
			}
			return nil
		})
	}

	log.Info().
		Int("port", config.Port).
		Int("board_size", config.BoardSize).
		Dur("move_timeout", config.MoveTimeout()).
		Str("team", config.TeamName).
		Msg("bot-started")
	err = g.Wait()
	log.Info().Msg("bot-stopped")
	return err
}

// parseArgs reads the mandatory -p<port> argument followed by optional flags.
// Precedence, lowest first: defaults, config file, environment, flags.
func parseArgs(args []string, base Config) (Config, error) {
	if len(args) < 1 {
		return base, errors.New(usage)
	}
	portArg := args[0]
	if len(portArg) <= 2 || !strings.HasPrefix(portArg, "-p") {
		return base, errors.New("Invalid port argument")
	}
	port, ok := leadingInt(portArg[2:])
	if !ok {
		return base, errors.New("Invalid port argument")
	}
	if port < minPort || port > maxPort {
		return base, fmt.Errorf("Port must be between %d and %d", minPort, maxPort)
	}

	fs := flag.NewFlagSet("rendju-bot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	httpAddr := fs.String("http", "", "address for the HTTP status API")
	journalPath := fs.String("journal", "", "SQLite file for the move journal")
	configPath := fs.String("config", "", "JSON config file")
	logLevel := fs.String("log-level", "", "zerolog level")
	if err := fs.Parse(args[1:]); err != nil {
		return base, fmt.Errorf("%w\n%s", err, usage)
	}

	config := base
	if *configPath != "" {
		var err error
		config, err = LoadConfigFile(*configPath, config)
		if err != nil {
			return base, err
		}
	}
	config = ApplyEnv(config)
	if *httpAddr != "" {
		config.HTTPAddr = *httpAddr
	}
	if *journalPath != "" {
		config.JournalPath = *journalPath
	}
	if *logLevel != "" {
		config.LogLevel = *logLevel
	}
	config.Port = port
	if err := config.Validate(); err != nil {
		return base, err
	}
	return config, nil
}

// leadingInt parses the optionally signed run of digits at the start of s,
// after leading spaces, and ignores whatever follows ("80abc" is 80). Values
// too large for an int saturate so they still fail the port range check.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	value, err := strconv.Atoi(s[:end])
	if err != nil {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return value, true
}

func setupLogging(w io.Writer, level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
