package rl

import (
	"fmt"
	"math"
)

// DefaultExplorationConstant is the c in the UCB1 score. The standard
// formulation uses 2.
const DefaultExplorationConstant = 2.0

// ArmStats reports the accumulated statistics for one bandit arm.
type ArmStats[A comparable] struct {
	Arm           A
	Pulls         int
	AverageReward float64
}

// UCB1 is a multi-armed bandit using the UCB1 selection rule
//
//	score(arm) = averageReward + sqrt(c·ln(N) / n)
//
// where N is the total number of pulls across all arms and n the arm's own
// pull count. Arms that have never been pulled are selected before the
// formula applies, so no arm is starved. Counters persist for the lifetime of
// the selector.
type UCB1[A comparable] struct {
	c     float64
	arms  []A // canonical order, also the tie-break order
	pulls map[A]int
	avg   map[A]float64
	total int
}

// NewUCB1 constructs a bandit over the given arms. The slice order is the
// canonical order used to break ties deterministically.
func NewUCB1[A comparable](arms []A, explorationConstant float64) (*UCB1[A], error) {
	if len(arms) == 0 {
		return nil, fmt.Errorf("ucb1: at least one arm required")
	}
	if explorationConstant <= 0 {
		return nil, fmt.Errorf("ucb1: exploration constant must be positive, got %g", explorationConstant)
	}
	pulls := make(map[A]int, len(arms))
	avg := make(map[A]float64, len(arms))
	for _, a := range arms {
		if _, ok := pulls[a]; ok {
			return nil, fmt.Errorf("ucb1: duplicate arm %v", a)
		}
		pulls[a] = 0
		avg[a] = 0
	}
	canonical := make([]A, len(arms))
	copy(canonical, arms)
	return &UCB1[A]{
		c:     explorationConstant,
		arms:  canonical,
		pulls: pulls,
		avg:   avg,
	}, nil
}

// Select returns the arm to pull next. Every arm is pulled once, in canonical
// order, before any arm is scored; after that the highest-scoring arm wins,
// ties broken by canonical order. Select does not change any statistics; the
// caller must follow each Select with exactly one Update.
func (u *UCB1[A]) Select() A {
	for _, a := range u.arms {
		if u.pulls[a] == 0 {
			return a
		}
	}

	best := u.arms[0]
	bestScore := u.score(best)
	for _, a := range u.arms[1:] {
		if s := u.score(a); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best
}

func (u *UCB1[A]) score(arm A) float64 {
	n := u.pulls[arm]
	return u.avg[arm] + math.Sqrt(u.c*math.Log(float64(u.total))/float64(n))
}

// Update records the observed reward for a pulled arm. The running average is
// maintained incrementally: avg ← avg + (reward − avg) / n.
func (u *UCB1[A]) Update(arm A, reward float64) error {
	if _, ok := u.pulls[arm]; !ok {
		return fmt.Errorf("ucb1: unknown arm %v", arm)
	}
	u.pulls[arm]++
	u.total++
	n := float64(u.pulls[arm])
	u.avg[arm] += (reward - u.avg[arm]) / n
	return nil
}

// TotalPulls returns the number of updates across all arms.
func (u *UCB1[A]) TotalPulls() int {
	return u.total
}

// Stats returns per-arm statistics in canonical order.
func (u *UCB1[A]) Stats() []ArmStats[A] {
	stats := make([]ArmStats[A], len(u.arms))
	for i, a := range u.arms {
		stats[i] = ArmStats[A]{
			Arm:           a,
			Pulls:         u.pulls[a],
			AverageReward: u.avg[a],
		}
	}
	return stats
}
