package env

import (
	"errors"
	"fmt"

	"bitsnake/internal/bitboard"
)

// MaxHealth is the health after reset and after every meal.
const MaxHealth = 100

// Action moves the head by one cell. Codes follow the board layout in Masks.
type Action int

const (
	ActionLeft  Action = iota // index +1
	ActionRight               // index -1
	ActionUp                  // index +size
	ActionDown                // index -size
)

// NumActions is the size of the action space.
const NumActions = 4

// Valid reports whether a is one of the four actions.
func (a Action) Valid() bool {
	return a >= ActionLeft && a <= ActionDown
}

// String returns the lower-case action name.
func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

var (
	ErrInvalidSize   = errors.New("env: invalid board size")
	ErrInvalidAction = errors.New("env: invalid action")
	ErrEpisodeDone   = errors.New("env: episode is done")
	ErrNilSource     = errors.New("env: nil random source")
	ErrNotSeedable   = errors.New("env: random source cannot be reseeded")
)

// seeder is implemented by sources that can restart their stream, such as
// the one returned by NewSource.
type seeder interface {
	Seed(seed uint64)
}

// Engine is a single snake on a size x size board. It is not safe for
// concurrent use; run one Engine per goroutine.
type Engine struct {
	size  int
	start int
	masks Masks
	rng   Source

	head bitboard.Board
	body bitboard.Board
	food bitboard.Board
	hist history

	score   int
	health  int
	tick    int
	done    bool
	outcome Outcome
}

// New creates an engine and places the first food.
func New(size int, rng Source) (*Engine, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidSize, size, MinSize, MaxSize)
	}
	if rng == nil {
		return nil, ErrNilSource
	}

	e := &Engine{
		size:  size,
		start: size * size / 2,
		masks: NewMasks(size),
		rng:   rng,
	}
	e.Reset()
	return e, nil
}

// NewSeeded creates an engine backed by NewSource(seed).
func NewSeeded(size int, seed uint64) (*Engine, error) {
	return New(size, NewSource(seed))
}

// Reset starts a new episode. Masks are kept.
func (e *Engine) Reset() {
	e.head = bitboard.Bit(e.start)
	e.body = bitboard.Empty
	e.hist.reset(e.start)
	e.score = 0
	e.health = MaxHealth
	e.tick = 0
	e.done = false
	e.outcome = OutcomeNone
	e.placeFood()
}

// ResetSeeded reseeds the source and starts a new episode, so the food
// sequence matches a fresh NewSeeded(size, seed) engine. It fails without
// touching the state if the source has no Seed method.
func (e *Engine) ResetSeeded(seed uint64) error {
	s, ok := e.rng.(seeder)
	if !ok {
		return ErrNotSeedable
	}
	s.Seed(seed)
	e.Reset()
	return nil
}

// Step advances the episode by one tick.
//
// Invalid actions and steps after the episode ended are rejected without
// touching the state.
func (e *Engine) Step(a Action) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	if e.done {
		return ErrEpisodeDone
	}

	oldHead := e.head
	newHead := e.move(oldHead, a)

	// the new head joins the history; the old head becomes body
	e.hist.push(newHead.TrailingZeros())
	e.body = e.body.Or(oldHead)
	e.head = newHead
	e.tick++

	full := false
	if newHead.Intersects(e.food) {
		full = !e.placeFood()
		e.health = MaxHealth
		e.score++
	} else {
		e.health--
		e.retractTail()
	}

	e.outcome = e.terminal(oldHead, newHead, a, full)
	e.done = e.outcome != OutcomeNone
	return nil
}

// retractTail vacates the oldest segment. The history always holds at least
// the head, so an empty history means the bookkeeping is broken.
func (e *Engine) retractTail() {
	tail, ok := e.hist.pop()
	if !ok {
		panic("env: body history underflow")
	}
	e.body = e.body.Clear(tail)
}

func (e *Engine) move(head bitboard.Board, a Action) bitboard.Board {
	n := uint(e.size)
	switch a {
	case ActionLeft:
		return head.Shl(1)
	case ActionRight:
		return head.Shr(1)
	case ActionUp:
		return head.Shl(n)
	default:
		return head.Shr(n)
	}
}

// terminal picks the first matching end condition. Wall exits are decided
// from the pre-move head because a one-bit shift off a row edge lands on a
// valid cell of the neighbouring row.
func (e *Engine) terminal(oldHead, newHead bitboard.Board, a Action, full bool) Outcome {
	switch {
	case newHead.Intersects(e.body):
		return OutcomeSelf
	case a == ActionLeft && oldHead.Intersects(e.masks.FirstColumn):
		return OutcomeWallLeft
	case a == ActionRight && oldHead.Intersects(e.masks.LastColumn):
		return OutcomeWallRight
	case a == ActionUp && oldHead.Intersects(e.masks.FirstRow):
		return OutcomeWallTop
	case newHead.IsZero():
		return OutcomeWallBottom
	case e.health <= 0:
		return OutcomeStarved
	case full:
		return OutcomeBoardFull
	}
	return OutcomeNone
}

// Read-only accessors for the current state.
func (e *Engine) Size() int                { return e.size }
func (e *Engine) Cells() int               { return e.size * e.size }
func (e *Engine) Done() bool               { return e.done }
func (e *Engine) Score() int               { return e.score }
func (e *Engine) Health() int              { return e.health }
func (e *Engine) Tick() int                { return e.tick }
func (e *Engine) Outcome() Outcome         { return e.outcome }
func (e *Engine) Head() bitboard.Board     { return e.head }
func (e *Engine) Body() bitboard.Board     { return e.body }
func (e *Engine) Food() bitboard.Board     { return e.food }
func (e *Engine) HighBits() bitboard.Board { return e.masks.HighBits }
func (e *Engine) Masks() Masks             { return e.masks }

// Length is the number of cells the snake occupies, head included.
func (e *Engine) Length() int {
	return e.body.OnesCount() + 1
}

// HeadIndex is the cell index of the head, or bitboard.Width once the head
// has left through the bottom edge.
func (e *Engine) HeadIndex() int {
	return e.head.TrailingZeros()
}

// Segments returns the occupied cells from tail to head.
func (e *Engine) Segments() []int {
	out := make([]int, e.hist.len())
	for i := range out {
		out[i] = e.hist.at(i)
	}
	return out
}

// Snapshot is a comparable copy of the observable state.
type Snapshot struct {
	Size    int
	Head    bitboard.Board
	Body    bitboard.Board
	Food    bitboard.Board
	Score   int
	Health  int
	Tick    int
	Done    bool
	Outcome Outcome
}

// Snapshot copies the observable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Size:    e.size,
		Head:    e.head,
		Body:    e.body,
		Food:    e.food,
		Score:   e.score,
		Health:  e.health,
		Tick:    e.tick,
		Done:    e.done,
		Outcome: e.outcome,
	}
}

// Stats returns the episode statistics
func (e *Engine) Stats(seed uint64) EpisodeStats {
	return EpisodeStats{
		Score:   e.score,
		Ticks:   e.tick,
		Length:  e.Length(),
		Outcome: e.outcome,
		Seed:    seed,
	}
}
