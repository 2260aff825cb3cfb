package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"bitsnake/internal/env"
)

// ParseLevel maps debug|info|warn|error to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return level, nil
}

// New builds a text or JSON logger writing to w
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Reporter logs run summaries
type Reporter struct {
	log *slog.Logger
}

// NewReporter creates a reporter. A nil logger uses slog.Default().
func NewReporter(log *slog.Logger) *Reporter {
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{log: log}
}

// RunSummary is one batch of finished episodes
type RunSummary struct {
	Size     int
	Workers  int
	Elapsed  time.Duration
	Stats    env.AggregatedStats
	Canceled bool
}

// StepsPerSecond is the engine throughput over the whole run
func (s RunSummary) StepsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Stats.TotalTicks) / s.Elapsed.Seconds()
}

// LogRun logs a run summary with per-outcome counts in an "outcomes" group
func (r *Reporter) LogRun(s RunSummary) {
	outcomes := make([]any, 0, env.NumOutcomes)
	for o := env.OutcomeSelf; int(o) < env.NumOutcomes; o++ {
		outcomes = append(outcomes, slog.Int(o.String(), s.Stats.OutcomeCounts[o]))
	}

	r.log.Info("run finished",
		slog.Int("size", s.Size),
		slog.Int("workers", s.Workers),
		slog.Int("episodes", s.Stats.NumEpisodes),
		slog.Int("steps", s.Stats.TotalTicks),
		slog.Duration("elapsed", s.Elapsed),
		slog.Float64("steps_per_sec", s.StepsPerSecond()),
		slog.Float64("score_mean", s.Stats.ScoreMean),
		slog.Float64("score_std", s.Stats.ScoreStd),
		slog.Int("score_max", s.Stats.ScoreMax),
		slog.Float64("ticks_mean", s.Stats.TicksMean),
		slog.Bool("canceled", s.Canceled),
		slog.Group("outcomes", outcomes...),
	)
}

// LogEpisode logs a single finished episode at debug level
func (r *Reporter) LogEpisode(ep env.EpisodeStats) {
	r.log.Debug("episode finished",
		slog.Uint64("seed", ep.Seed),
		slog.Int("score", ep.Score),
		slog.Int("ticks", ep.Ticks),
		slog.Int("length", ep.Length),
		slog.String("outcome", ep.Outcome.String()),
	)
}

// LogReplay logs the best episode of a run. A nil replay logs nothing.
func (r *Reporter) LogReplay(rep *env.Replay) {
	if rep == nil {
		return
	}
	r.log.Info("best episode",
		slog.Uint64("seed", rep.Seed),
		slog.Int("score", rep.Final.Score),
		slog.Int("ticks", rep.Final.Ticks),
		slog.Int("length", rep.Final.Length),
		slog.String("outcome", rep.Final.Outcome.String()),
		slog.Int("actions", len(rep.Actions)),
	)
}
