// Package rl provides small tabular reinforcement learning primitives:
// a Q-learner over discrete state-action pairs and a UCB1 bandit.
// The package performs no I/O and owns no goroutines; callers drive it
// one decision at a time.
package rl

import (
	"errors"
	"fmt"
)

// Config holds the Q-learning hyperparameters.
type Config struct {
	// LearningRate is the step size α applied to each update. Must be in (0, 1].
	LearningRate float64
	// DiscountFactor is the weight γ on future value. Must be in [0, 1).
	DiscountFactor float64
	// InitialValue is the estimate reported for state-action pairs that have
	// never been updated. Lookups never fail; they return this default.
	InitialValue float64
}

// Validate checks the hyperparameters and reports the offending field.
func (c Config) Validate() error {
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0, 1], got %g", c.LearningRate)
	}
	if c.DiscountFactor < 0 || c.DiscountFactor >= 1 {
		return fmt.Errorf("discount factor must be in [0, 1), got %g", c.DiscountFactor)
	}
	return nil
}

// stateAction is the Q-table key.
type stateAction[S, A comparable] struct {
	state  S
	action A
}

// QLearner is a tabular off-policy TD learner.
//
// The table only grows: entries are created on first update and persist for
// the lifetime of the learner. Sharing one learner across episodes is what
// makes the policy improve; resetting it discards everything learned.
type QLearner[S, A comparable] struct {
	cfg   Config
	table map[stateAction[S, A]]float64
}

// NewQLearner constructs a learner with the given hyperparameters.
func NewQLearner[S, A comparable](cfg Config) (*QLearner[S, A], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("q-learner config: %w", err)
	}
	return &QLearner[S, A]{
		cfg:   cfg,
		table: make(map[stateAction[S, A]]float64),
	}, nil
}

// Value returns the current estimate for a state-action pair, or the
// configured initial value if the pair has never been updated.
func (q *QLearner[S, A]) Value(state S, action A) float64 {
	if v, ok := q.table[stateAction[S, A]{state: state, action: action}]; ok {
		return v
	}
	return q.cfg.InitialValue
}

// SelectAction picks one of actions for state using the supplied exploration
// policy. The returned action is always a member of actions.
func (q *QLearner[S, A]) SelectAction(state S, actions []A, policy Policy[S, A]) (A, error) {
	var zero A
	if len(actions) == 0 {
		return zero, errors.New("select action: empty action set")
	}
	if policy == nil {
		return zero, errors.New("select action: nil policy")
	}
	return policy.Choose(state, actions, q.Value), nil
}

// BestAction returns the highest-valued action for state. Ties are broken by
// the first maximal action in the order given, so behavior is reproducible.
func (q *QLearner[S, A]) BestAction(state S, actions []A) A {
	best := actions[0]
	bestValue := q.Value(state, best)
	for _, a := range actions[1:] {
		if v := q.Value(state, a); v > bestValue {
			best, bestValue = a, v
		}
	}
	return best
}

// Update applies the Bellman backup
//
//	Q(s,a) ← Q(s,a) + α·[r + γ·max_{a'} Q(s',a') − Q(s,a)]
//
// where the max is taken over nextActions in the next state.
func (q *QLearner[S, A]) Update(state S, action A, reward float64, nextState S, nextActions []A) {
	q.backup(state, action, reward, q.maxValue(nextState, nextActions))
}

// UpdateTerminal applies the backup for a transition that ends the episode.
// Terminal transitions have no successor, so the next-state value is zero.
func (q *QLearner[S, A]) UpdateTerminal(state S, action A, reward float64) {
	q.backup(state, action, reward, 0)
}

func (q *QLearner[S, A]) backup(state S, action A, reward, nextValue float64) {
	key := stateAction[S, A]{state: state, action: action}
	old := q.Value(state, action)
	q.table[key] = old + q.cfg.LearningRate*(reward+q.cfg.DiscountFactor*nextValue-old)
}

// maxValue returns max over actions of Q(state, action), using the initial
// value for unseen pairs. An empty action set yields zero.
func (q *QLearner[S, A]) maxValue(state S, actions []A) float64 {
	if len(actions) == 0 {
		return 0
	}
	best := q.Value(state, actions[0])
	for _, a := range actions[1:] {
		if v := q.Value(state, a); v > best {
			best = v
		}
	}
	return best
}

// Size returns the number of state-action pairs the learner has visited.
func (q *QLearner[S, A]) Size() int {
	return len(q.table)
}
