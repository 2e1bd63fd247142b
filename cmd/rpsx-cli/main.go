package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	"github.com/peterkuimelis/rpsx/internal/bots"
	"github.com/peterkuimelis/rpsx/internal/config"
	"github.com/peterkuimelis/rpsx/internal/engine"
	"github.com/peterkuimelis/rpsx/internal/game"
	"github.com/peterkuimelis/rpsx/internal/log"
	"github.com/peterkuimelis/rpsx/internal/logger"
	rpsxnet "github.com/peterkuimelis/rpsx/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logger.Init(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:], os.Stdin, os.Stdout)
	case "match":
		err = runMatch(ctx, os.Args[2:], os.Stdout)
	case "arena":
		err = runArena(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  rpsx host  [--addr ADDR] [--rounds N] [--config FILE]")
	fmt.Println("  rpsx join  [--addr ADDR] [--rounds N] [--bot NAME] [--seed S] [--config FILE]")
	fmt.Println("  rpsx match --opponent NAME [--rounds N] [--seed S] [--verbose] [--config FILE]")
	fmt.Println("  rpsx arena [--roster FILE] [--workers N] [--rounds N] [--config FILE] [--json]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Serve matches against the engine over TCP")
	fmt.Println("  join    Connect to a host and play, by hand or with a bot")
	fmt.Println("  match   Play the engine against one reference bot")
	fmt.Println("  arena   Play the engine against every matchup in a roster file")
	fmt.Println()
	fmt.Printf("Bots: %v\n", bots.Names())
}

// loadConfig reads the config file and applies its log level.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	cfgFile := fs.String("config", "", "path to config YAML file")
	addr := fs.String("addr", "", "TCP address to listen on (default from config)")
	rounds := fs.Int("rounds", 0, "default match length (default from config)")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgFile)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *rounds > 0 {
		cfg.Rounds = *rounds
	}

	srv := &rpsxnet.Server{
		Addr:   cfg.Addr,
		Rounds: cfg.Rounds,
		Logger: logger.Component("host"),
	}
	return srv.Run(ctx)
}

// dialAddr turns a listen address such as ":9000" into one a client can
// dial.
func dialAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func runJoin(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	cfgFile := fs.String("config", "", "path to config YAML file")
	addr := fs.String("addr", "", "server address to connect to (default from config)")
	rounds := fs.Int("rounds", 0, "match length to request (0 = server default)")
	botName := fs.String("bot", "", "let a reference bot play instead of reading moves from stdin")
	seed := fs.Uint64("seed", 0, "seed for the random bot")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgFile)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	var bot game.Player
	if *botName != "" {
		if bot, err = bots.New(*botName, *seed); err != nil {
			return err
		}
	}

	_, err = rpsxnet.Connect(ctx, dialAddr(cfg.Addr), *rounds, in, out, bot)
	return err
}

func runMatch(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	cfgFile := fs.String("config", "", "path to config YAML file")
	opponent := fs.String("opponent", "", "reference bot to play against")
	rounds := fs.Int("rounds", 0, "number of rounds (default from config)")
	seed := fs.Uint64("seed", 0, "seed for the random bot")
	verbose := fs.Bool("verbose", false, "print every round")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgFile)
	if err != nil {
		return err
	}
	if *rounds > 0 {
		cfg.Rounds = *rounds
	}

	if *opponent == "" {
		return errors.New("--opponent is required")
	}
	opp, err := bots.New(*opponent, *seed)
	if err != nil {
		return err
	}

	var events log.EventLogger = log.NopLogger{}
	if *verbose {
		events = log.NewTextLogger(out)
	}

	eng := engine.New(engine.WithLogger(logger.Component("engine")))
	m := game.NewMatch(game.MatchConfig{Rounds: cfg.Rounds, Logger: events}, eng, opp)
	tally, err := m.Run(ctx)
	if err != nil {
		return err
	}

	st := eng.Snapshot()
	fmt.Fprintf(out, "engine vs %s: %s\n", opp.Name(), tally)
	fmt.Fprintf(out, "leader: %s (accuracy %.3f)\n", st.Leader, st.LeaderAccuracy)
	return nil
}

func runArena(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("arena", flag.ExitOnError)
	cfgFile := fs.String("config", "", "path to config YAML file")
	roster := fs.String("roster", "", "path to roster YAML file (default from config)")
	workers := fs.Int("workers", 0, "parallel matches (default from config)")
	rounds := fs.Int("rounds", 0, "rounds for matchups that do not set them (default from config)")
	asJSON := fs.Bool("json", false, "print results as JSON")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgFile)
	if err != nil {
		return err
	}
	if *roster != "" {
		cfg.Roster = *roster
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *rounds > 0 {
		cfg.Rounds = *rounds
	}

	specs, err := cfg.LoadRoster()
	if err != nil {
		return err
	}

	arenaLog := logger.Component("arena")
	arenaLog.Info().Int("matches", len(specs)).Int("workers", cfg.Workers).Msg("Arena started")

	results, err := game.RunArena(ctx, game.ArenaConfig{
		Matches: specs,
		Workers: cfg.Workers,
		Rounds:  cfg.Rounds,
	}, func(spec game.MatchSpec) (game.Player, game.Player, error) {
		opp, err := bots.New(spec.Opponent, spec.Seed)
		if err != nil {
			return nil, nil, err
		}
		return engine.New(), opp, nil
	})
	if err != nil {
		return err
	}

	total := game.Total(results)
	arenaLog.Info().Str("total", total.String()).Msg("Arena finished")

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Results []game.ArenaResult `json:"results"`
			Total   game.Tally         `json:"total"`
		}{results, total})
	}

	for i, r := range results {
		fmt.Printf("%3d  %-8s seed=%-6d %s\n", i+1, r.Spec.Opponent, r.Spec.Seed, r.Tally)
	}
	fmt.Printf("total: %s\n", total)
	return nil
}
