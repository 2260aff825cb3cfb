package main

import (
	"bytes"
	"strings"
	"testing"

	"bitsnake/internal/config"
	"bitsnake/internal/env"
)

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name    string
		o       overrides
		check   func(*config.Config) bool
		wantErr bool
	}{
		{
			name:  "zero keeps config",
			o:     overrides{},
			check: func(c *config.Config) bool { return c.Engine.Size == 11 && c.Bench.Episodes == 10000 && c.Seed == 1337 },
		},
		{
			name: "every flag set",
			o:    overrides{size: 5, episodes: 20, workers: 3, seed: 9},
			check: func(c *config.Config) bool {
				return c.Engine.Size == 5 && c.Bench.Episodes == 20 && c.Bench.Workers == 3 && c.Seed == 9
			},
		},
		{
			name:  "size only",
			o:     overrides{size: 2},
			check: func(c *config.Config) bool { return c.Engine.Size == 2 && c.Bench.Episodes == 10000 },
		},
		{name: "size too large", o: overrides{size: 12}, wantErr: true},
		{name: "size too small", o: overrides{size: 1}, wantErr: true},
		{name: "negative workers", o: overrides{workers: -2}, wantErr: true},
		{name: "negative episodes", o: overrides{episodes: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := applyFlags(cfg, tt.o)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "config validation") {
					t.Errorf("err = %v, want a validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !tt.check(cfg) {
				t.Errorf("config after flags = %+v", cfg)
			}
		})
	}
}

func recordEpisode(t *testing.T, size int, seed uint64, actions ...env.Action) *env.Replay {
	t.Helper()
	game, err := env.NewSeeded(size, seed)
	if err != nil {
		t.Fatal(err)
	}
	rep := env.NewReplay(size, seed)
	for _, a := range actions {
		rep.Record(a)
		if err := game.Step(a); err != nil {
			t.Fatal(err)
		}
	}
	rep.SetFinal(game.Stats(seed))
	return rep
}

func TestShowReplay(t *testing.T) {
	// 4 -> 7 -> off the top on a 3x3 board
	rep := recordEpisode(t, 3, 5, env.ActionUp, env.ActionUp)

	var out bytes.Buffer
	if err := showReplay(&out, rep); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if strings.Count(s, "up: ") != 2 || !strings.Contains(s, "DEAD: wall_top") {
		t.Errorf("unexpected replay output:\n%s", s)
	}
	if strings.Count(s, "tick: ") != 3 {
		t.Errorf("expected the start frame plus two steps:\n%s", s)
	}
}

func TestShowReplayDiverged(t *testing.T) {
	rep := recordEpisode(t, 3, 5, env.ActionUp, env.ActionUp)
	rep.Final.Ticks = 40

	var out bytes.Buffer
	if err := showReplay(&out, rep); err == nil || !strings.Contains(err.Error(), "diverged") {
		t.Errorf("err = %v, want divergence error", err)
	}
}
