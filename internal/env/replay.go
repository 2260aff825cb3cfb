package env

// Replay stores a deterministic action trace for playback. It only
// reproduces the episode when the engine was built with NewSeeded(Size, Seed)
// and nothing else drew from its source.
type Replay struct {
	Size    int
	Seed    uint64
	Actions []Action
	Final   EpisodeStats
}

// NewReplay creates a new replay recorder
func NewReplay(size int, seed uint64) *Replay {
	return &Replay{
		Size:    size,
		Seed:    seed,
		Actions: make([]Action, 0, 256),
	}
}

// Record adds an action to the replay
func (r *Replay) Record(action Action) {
	r.Actions = append(r.Actions, action)
}

// Restart clears the trace for a new episode played from seed
func (r *Replay) Restart(seed uint64) {
	r.Seed = seed
	r.Actions = r.Actions[:0]
	r.Final = EpisodeStats{}
}

// Clone returns a copy that does not share the action slice
func (r *Replay) Clone() *Replay {
	c := *r
	c.Actions = append([]Action(nil), r.Actions...)
	return &c
}

// Better reports whether r beats other: higher score, then fewer ticks,
// then the lower seed. A nil other always loses.
func (r *Replay) Better(other *Replay) bool {
	if other == nil {
		return true
	}
	a, b := r.Final, other.Final
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Ticks != b.Ticks {
		return a.Ticks < b.Ticks
	}
	return r.Seed < other.Seed
}

// SetFinal sets the final episode statistics
func (r *Replay) SetFinal(stats EpisodeStats) {
	r.Final = stats
}

// Playback recreates the engine at the start of the episode
func (r *Replay) Playback() (*Engine, error) {
	return NewSeeded(r.Size, r.Seed)
}

// PlaybackStep applies the first n recorded actions to e, stopping early if
// the episode ends.
func (r *Replay) PlaybackStep(e *Engine, n int) error {
	if n > len(r.Actions) {
		n = len(r.Actions)
	}
	for i := 0; i < n && !e.Done(); i++ {
		if err := e.Step(r.Actions[i]); err != nil {
			return err
		}
	}
	return nil
}
