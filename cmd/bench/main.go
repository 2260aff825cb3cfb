package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"bitsnake/internal/config"
	"bitsnake/internal/env"
	"bitsnake/internal/logging"
	"bitsnake/internal/render"
	"bitsnake/internal/runner"
)

// overrides holds command line values; zero means "keep the config value"
type overrides struct {
	size     int
	episodes int
	workers  int
	seed     uint64
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to YAML config file (defaults if empty)")
	var o overrides
	flag.IntVar(&o.size, "size", 0, "board size, overrides config")
	flag.IntVar(&o.episodes, "episodes", 0, "number of episodes, overrides config")
	flag.IntVar(&o.workers, "workers", 0, "parallel workers, overrides config")
	flag.Uint64Var(&o.seed, "seed", 0, "base seed, overrides config")
	showBest := flag.Bool("replay", false, "print the best episode frame by frame after the run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(cfg, o); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	reporter := logging.NewReporter(log)

	log.Info("starting run",
		"size", cfg.Engine.Size,
		"episodes", cfg.Bench.Episodes,
		"workers", cfg.Bench.Workers,
		"seed", cfg.Seed,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := runner.NewRunner(cfg).
		WithObserver(reporter.LogEpisode).
		Run(ctx, cfg.Bench.Episodes)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}

	reporter.LogRun(logging.RunSummary{
		Size:     cfg.Engine.Size,
		Workers:  res.Workers,
		Elapsed:  res.Elapsed,
		Stats:    res.Stats,
		Canceled: res.Canceled,
	})
	reporter.LogReplay(res.Best)

	if *showBest && res.Best != nil {
		if err := showReplay(os.Stdout, res.Best); err != nil {
			log.Error("replay failed", "err", err)
			os.Exit(1)
		}
	}
}

// applyFlags copies the non-zero overrides into cfg and validates the result
func applyFlags(cfg *config.Config, o overrides) error {
	if o.size != 0 {
		cfg.Engine.Size = o.size
	}
	if o.episodes != 0 {
		cfg.Bench.Episodes = o.episodes
	}
	if o.workers != 0 {
		cfg.Bench.Workers = o.workers
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	return cfg.Validate()
}

// showReplay plays rep back from its seed and draws every frame
func showReplay(w io.Writer, rep *env.Replay) error {
	game, err := rep.Playback()
	if err != nil {
		return err
	}
	fmt.Fprint(w, render.Board(game))
	fmt.Fprintln(w, render.Status(game))
	for _, a := range rep.Actions {
		if game.Done() {
			break
		}
		if err := game.Step(a); err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s: %s", a, render.Board(game))
		fmt.Fprintln(w, render.Status(game))
	}
	if game.Stats(rep.Seed) != rep.Final {
		return fmt.Errorf("replay of seed %d diverged: got %+v, want %+v", rep.Seed, game.Stats(rep.Seed), rep.Final)
	}
	return nil
}
