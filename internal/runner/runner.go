// Package runner plays many independent episodes in parallel. Every worker
// owns its own engine and policy; nothing mutable is shared between them.
package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"bitsnake/internal/config"
	"bitsnake/internal/env"
)

// Policy picks the next action for an engine
type Policy interface {
	Act(e *env.Engine) env.Action
}

// PolicyFactory builds one policy per worker
type PolicyFactory func(seed uint64) Policy

// RandomPolicy picks uniformly among all actions
type RandomPolicy struct {
	rng env.Source
}

// NewRandomPolicy creates a random policy with its own seeded source
func NewRandomPolicy(seed uint64) Policy {
	return &RandomPolicy{rng: env.NewSource(seed)}
}

func (p *RandomPolicy) Act(*env.Engine) env.Action {
	return env.Action(p.rng.Intn(env.NumActions))
}

// Result is the outcome of a Run. Best is the top-scoring episode's trace,
// nil when no episode finished.
type Result struct {
	Stats    env.AggregatedStats
	Best     *env.Replay
	Elapsed  time.Duration
	Workers  int
	Canceled bool
}

// Runner handles parallel episode execution
type Runner struct {
	size      int
	workers   int
	seed      uint64
	newPolicy PolicyFactory
	observe   func(env.EpisodeStats)
}

// NewRunner creates a runner from the engine and bench config
func NewRunner(cfg *config.Config) *Runner {
	workers := cfg.Bench.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Runner{
		size:      cfg.Engine.Size,
		workers:   workers,
		seed:      cfg.Seed,
		newPolicy: NewRandomPolicy,
	}
}

// WithPolicy replaces the default random policy
func (r *Runner) WithPolicy(f PolicyFactory) *Runner {
	r.newPolicy = f
	return r
}

// WithObserver registers fn to be called after every episode. It is called
// from worker goroutines and must be safe for concurrent use.
func (r *Runner) WithObserver(fn func(env.EpisodeStats)) *Runner {
	r.observe = fn
	return r
}

// Run plays the given number of episodes. If ctx is canceled, workers stop
// after their current episode and the partial result is returned along
// with ctx.Err().
func (r *Runner) Run(ctx context.Context, episodes int) (Result, error) {
	workers := r.workers
	if workers > episodes {
		workers = episodes
	}
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	perWorker := make([]workerResult, workers)
	jobs := make(chan int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < episodes; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			out, err := r.work(gctx, w, jobs)
			perWorker[w] = out
			return err
		})
	}

	err := g.Wait()
	res := Result{Elapsed: time.Since(start), Workers: workers}
	for _, out := range perWorker {
		res.Stats = res.Stats.Merge(out.stats)
		if out.best != nil && out.best.Better(res.Best) {
			res.Best = out.best
		}
	}
	if err != nil {
		return res, err
	}
	if ctx.Err() != nil {
		res.Canceled = true
		return res, ctx.Err()
	}
	return res, nil
}

type workerResult struct {
	stats env.AggregatedStats
	best  *env.Replay
}

// work runs episodes on one engine until jobs is drained or ctx ends. Each
// episode reseeds the engine with EpisodeSeed so it can be replayed alone.
func (r *Runner) work(ctx context.Context, worker int, jobs <-chan int) (out workerResult, err error) {
	e, err := env.NewSeeded(r.size, r.seed)
	if err != nil {
		return out, fmt.Errorf("worker %d: %w", worker, err)
	}
	policy := r.newPolicy(policySeed(r.seed, worker))
	trace := env.NewReplay(r.size, 0)

	episodes := make([]env.EpisodeStats, 0, 64)
	defer func() { out.stats = env.Aggregate(episodes) }()

	for i := range jobs {
		if ctx.Err() != nil {
			break
		}
		seed := EpisodeSeed(r.seed, i)
		if err := e.ResetSeeded(seed); err != nil {
			return out, fmt.Errorf("worker %d episode %d: %w", worker, i, err)
		}
		trace.Restart(seed)
		for !e.Done() {
			a := policy.Act(e)
			trace.Record(a)
			if err := e.Step(a); err != nil {
				return out, fmt.Errorf("worker %d episode %d tick %d: %w", worker, i, e.Tick(), err)
			}
		}
		stats := e.Stats(seed)
		trace.SetFinal(stats)
		if trace.Better(out.best) {
			out.best = trace.Clone()
		}
		if r.observe != nil {
			r.observe(stats)
		}
		episodes = append(episodes, stats)
	}
	return out, nil
}

// EpisodeSeed is the food seed of episode i in a run with the given base
// seed. NewSeeded(size, EpisodeSeed(base, i)) starts that episode over.
func EpisodeSeed(base uint64, i int) uint64 {
	return DeriveSeed(base, i)
}

// policySeed keeps policy streams apart from the episode seeds.
func policySeed(base uint64, worker int) uint64 {
	return DeriveSeed(^base, worker)
}

// DeriveSeed mixes a base seed with an index (splitmix64 finalizer) so
// neighbouring workers get unrelated streams.
func DeriveSeed(base uint64, i int) uint64 {
	x := base + uint64(i)*0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
