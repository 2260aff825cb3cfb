package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"bitsnake/internal/env"
	"bitsnake/internal/render"
)

// keys maps WASD to actions alongside the numeric codes
var keys = map[string]env.Action{
	"a": env.ActionLeft,
	"d": env.ActionRight,
	"w": env.ActionUp,
	"s": env.ActionDown,
}

// views print a debugging view of the state instead of moving
var views = map[string]func(game *env.Engine, enc *env.Encoder) string{
	"h": func(game *env.Engine, _ *env.Encoder) string { return render.Plane(game.Head(), game.Size()) },
	"b": func(game *env.Engine, _ *env.Encoder) string { return render.Plane(game.Body(), game.Size()) },
	"f": func(game *env.Engine, _ *env.Encoder) string { return render.Plane(game.Food(), game.Size()) },
	"o": func(game *env.Engine, enc *env.Encoder) string { return render.Observation(enc.Encode(game), game.Size()) },
}

func main() {
	size := flag.Int("size", env.MaxSize, "board size")
	seed := flag.Uint64("seed", 0, "food seed (0 picks one from the clock)")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	game, err := env.NewSeeded(*size, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if err := play(game, os.Stdin, os.Stdout, interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// play reads one action per line until EOF or "q"
func play(game *env.Engine, in io.Reader, out io.Writer, prompt bool) error {
	enc := env.NewEncoder(game.Size())
	fmt.Fprint(out, render.Board(game))
	fmt.Fprintln(out, render.Status(game))

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "move (0-3 or wasd, h/b/f/o to inspect, q quits)> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}
		if line == "q" {
			return nil
		}
		if view, ok := views[line]; ok {
			fmt.Fprint(out, view(game, enc))
			continue
		}

		action, err := parseAction(line)
		if err != nil {
			fmt.Fprintf(out, "Enter a valid move: %v\n", err)
			continue
		}
		if err := game.Step(action); err != nil {
			if errors.Is(err, env.ErrInvalidAction) {
				fmt.Fprintf(out, "Enter a valid move: %v\n", err)
				continue
			}
			return err
		}

		fmt.Fprint(out, render.Board(game))
		fmt.Fprintln(out, render.Status(game))

		if game.Done() {
			fmt.Fprintln(out, "DEAD")
			game.Reset()
			fmt.Fprint(out, render.Board(game))
			fmt.Fprintln(out, render.Status(game))
		}
	}
}

func parseAction(s string) (env.Action, error) {
	if a, ok := keys[s]; ok {
		return a, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a move", s)
	}
	return env.Action(n), nil
}
