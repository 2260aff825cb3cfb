package env

import "math"

// Outcome indicates how an episode ended
type Outcome int

const (
	OutcomeNone       Outcome = iota
	OutcomeSelf               // ran into own body
	OutcomeWallLeft           // left the board through the first column
	OutcomeWallRight          // left the board through the last column
	OutcomeWallTop            // left the board through the first row
	OutcomeWallBottom         // shifted below bit 0
	OutcomeStarved            // health reached zero
	OutcomeBoardFull          // no free cell left for food
)

// NumOutcomes is the number of distinct outcomes, OutcomeNone included.
const NumOutcomes = int(OutcomeBoardFull) + 1

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeSelf:
		return "self"
	case OutcomeWallLeft:
		return "wall_left"
	case OutcomeWallRight:
		return "wall_right"
	case OutcomeWallTop:
		return "wall_top"
	case OutcomeWallBottom:
		return "wall_bottom"
	case OutcomeStarved:
		return "starved"
	case OutcomeBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// IsWall reports whether the snake left the board.
func (o Outcome) IsWall() bool {
	return o >= OutcomeWallLeft && o <= OutcomeWallBottom
}

// EpisodeStats captures the result of a single episode
type EpisodeStats struct {
	Score   int     // food eaten
	Ticks   int     // steps taken
	Length  int     // final snake length, head included
	Outcome Outcome // how the episode ended
	Seed    uint64  // seed used for this episode
}

// AggregatedStats holds statistics across multiple episodes
type AggregatedStats struct {
	ScoreMean     float64
	ScoreStd      float64
	ScoreMax      int
	TicksMean     float64
	LengthMean    float64
	OutcomeCounts [NumOutcomes]int
	NumEpisodes   int
	TotalTicks    int
}

// Aggregate computes statistics from multiple episode stats
func Aggregate(episodes []EpisodeStats) AggregatedStats {
	var agg AggregatedStats
	n := len(episodes)
	if n == 0 {
		return agg
	}
	agg.NumEpisodes = n

	var scoreSum, lengthSum float64
	for _, ep := range episodes {
		scoreSum += float64(ep.Score)
		lengthSum += float64(ep.Length)
		agg.TotalTicks += ep.Ticks
		if ep.Score > agg.ScoreMax {
			agg.ScoreMax = ep.Score
		}
		if ep.Outcome >= 0 && int(ep.Outcome) < NumOutcomes {
			agg.OutcomeCounts[ep.Outcome]++
		}
	}

	nf := float64(n)
	agg.ScoreMean = scoreSum / nf
	agg.TicksMean = float64(agg.TotalTicks) / nf
	agg.LengthMean = lengthSum / nf

	var variance float64
	for _, ep := range episodes {
		diff := float64(ep.Score) - agg.ScoreMean
		variance += diff * diff
	}
	agg.ScoreStd = math.Sqrt(variance / nf)

	return agg
}

// Merge folds b into a. Std-dev is recombined from both groups' moments.
func (a AggregatedStats) Merge(b AggregatedStats) AggregatedStats {
	if a.NumEpisodes == 0 {
		return b
	}
	if b.NumEpisodes == 0 {
		return a
	}
	na, nb := float64(a.NumEpisodes), float64(b.NumEpisodes)
	n := na + nb

	out := AggregatedStats{
		NumEpisodes: a.NumEpisodes + b.NumEpisodes,
		TotalTicks:  a.TotalTicks + b.TotalTicks,
		ScoreMax:    a.ScoreMax,
	}
	if b.ScoreMax > out.ScoreMax {
		out.ScoreMax = b.ScoreMax
	}
	for i := range out.OutcomeCounts {
		out.OutcomeCounts[i] = a.OutcomeCounts[i] + b.OutcomeCounts[i]
	}
	out.ScoreMean = (a.ScoreMean*na + b.ScoreMean*nb) / n
	out.TicksMean = float64(out.TotalTicks) / n
	out.LengthMean = (a.LengthMean*na + b.LengthMean*nb) / n

	// E[x^2] of each group is var + mean^2
	sq := (a.ScoreStd*a.ScoreStd+a.ScoreMean*a.ScoreMean)*na +
		(b.ScoreStd*b.ScoreStd+b.ScoreMean*b.ScoreMean)*nb
	variance := sq/n - out.ScoreMean*out.ScoreMean
	if variance < 0 {
		variance = 0
	}
	out.ScoreStd = math.Sqrt(variance)
	return out
}

// WallExits sums the four wall outcomes.
func (a AggregatedStats) WallExits() int {
	total := 0
	for o := OutcomeWallLeft; o <= OutcomeWallBottom; o++ {
		total += a.OutcomeCounts[o]
	}
	return total
}
