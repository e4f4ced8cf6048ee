package rl

import "math/rand/v2"

// Policy chooses the next action during training. Implementations decide how
// to balance exploring untried actions against exploiting learned values.
type Policy[S, A comparable] interface {
	// Choose picks one of actions for state. value reports the learner's
	// current estimate for a state-action pair. The result must be a member
	// of actions.
	Choose(state S, actions []A, value func(state S, action A) float64) A
}

// Greedy always exploits: it picks the highest-valued action, breaking ties
// by the first maximal action in the given order. Useful in tests and for
// evaluating a trained policy without exploration noise.
type Greedy[S, A comparable] struct{}

// Choose implements Policy.
func (Greedy[S, A]) Choose(state S, actions []A, value func(S, A) float64) A {
	return argmax(state, actions, value)
}

// EpsilonGreedy explores with probability Epsilon by picking a uniformly
// random action, and otherwise exploits like Greedy. The random source is
// seeded explicitly so training runs are reproducible.
type EpsilonGreedy[S, A comparable] struct {
	epsilon float64
	rng     *rand.Rand
}

// NewEpsilonGreedy constructs an epsilon-greedy policy with the given
// exploration rate and seed.
func NewEpsilonGreedy[S, A comparable](epsilon float64, seed uint64) *EpsilonGreedy[S, A] {
	return &EpsilonGreedy[S, A]{
		epsilon: epsilon,
		rng:     rand.New(rand.NewPCG(seed, seed)),
	}
}

// Choose implements Policy.
func (p *EpsilonGreedy[S, A]) Choose(state S, actions []A, value func(S, A) float64) A {
	if p.rng.Float64() < p.epsilon {
		return actions[p.rng.IntN(len(actions))]
	}
	return argmax(state, actions, value)
}

func argmax[S, A comparable](state S, actions []A, value func(S, A) float64) A {
	best := actions[0]
	bestValue := value(state, best)
	for _, a := range actions[1:] {
		if v := value(state, a); v > bestValue {
			best, bestValue = a, v
		}
	}
	return best
}
