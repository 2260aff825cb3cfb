package env

import (
	"math/rand"
	"testing"
)

func TestReplayReproducesEpisode(t *testing.T) {
	const size, seed = 6, 2024

	e, err := NewSeeded(size, seed)
	if err != nil {
		t.Fatal(err)
	}
	replay := NewReplay(size, seed)
	rng := rand.New(rand.NewSource(5))

	for !e.Done() {
		a := Action(rng.Intn(NumActions))
		replay.Record(a)
		if err := e.Step(a); err != nil {
			t.Fatal(err)
		}
	}
	replay.SetFinal(e.Stats(seed))

	p, err := replay.Playback()
	if err != nil {
		t.Fatal(err)
	}
	if err := replay.PlaybackStep(p, len(replay.Actions)+10); err != nil {
		t.Fatal(err)
	}
	if p.Snapshot() != e.Snapshot() {
		t.Fatalf("playback diverged\ngot:\n%s\nwant:\n%s", dumpEngine(p), dumpEngine(e))
	}
	if p.Stats(seed) != replay.Final {
		t.Errorf("final stats %+v, want %+v", p.Stats(seed), replay.Final)
	}
}

func TestReplayPartialPlayback(t *testing.T) {
	r := NewReplay(4, 1)
	for _, a := range []Action{ActionLeft, ActionLeft, ActionUp} {
		r.Record(a)
	}
	e, err := r.Playback()
	if err != nil {
		t.Fatal(err)
	}
	if err := r.PlaybackStep(e, 2); err != nil {
		t.Fatal(err)
	}
	if e.Tick() != 2 || e.HeadIndex() != 10 {
		t.Errorf("tick=%d head=%d, want 2 and 10\n%s", e.Tick(), e.HeadIndex(), dumpEngine(e))
	}
}

func TestReplayBadSize(t *testing.T) {
	r := NewReplay(20, 1)
	if _, err := r.Playback(); err == nil {
		t.Error("expected error for oversized board")
	}
}

func TestReplayRestartAndClone(t *testing.T) {
	r := NewReplay(4, 1)
	r.Record(ActionUp)
	r.SetFinal(EpisodeStats{Score: 3, Ticks: 9, Seed: 1})

	c := r.Clone()
	r.Restart(8)
	r.Record(ActionDown)

	if r.Seed != 8 || len(r.Actions) != 1 || r.Actions[0] != ActionDown || r.Final != (EpisodeStats{}) {
		t.Errorf("restarted replay = %+v", r)
	}
	if c.Seed != 1 || len(c.Actions) != 1 || c.Actions[0] != ActionUp || c.Final.Score != 3 {
		t.Errorf("clone shares state with the original: %+v", c)
	}
}

func TestReplayBetter(t *testing.T) {
	mk := func(seed uint64, score, ticks int) *Replay {
		return &Replay{Seed: seed, Final: EpisodeStats{Score: score, Ticks: ticks}}
	}
	tests := []struct {
		name string
		a, b *Replay
		want bool
	}{
		{"nil other", mk(1, 0, 1), nil, true},
		{"higher score", mk(5, 3, 90), mk(1, 2, 10), true},
		{"lower score", mk(1, 1, 5), mk(5, 2, 90), false},
		{"fewer ticks", mk(5, 2, 10), mk(1, 2, 20), true},
		{"lower seed", mk(1, 2, 10), mk(5, 2, 10), true},
		{"same", mk(5, 2, 10), mk(5, 2, 10), false},
	}
	for _, tt := range tests {
		if got := tt.a.Better(tt.b); got != tt.want {
			t.Errorf("%s: Better = %v, want %v", tt.name, got, tt.want)
		}
	}
}
