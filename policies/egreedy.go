package policies

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/zeu5/mab-sim/core"
)

// EpsilonGreedyPolicy explores a uniformly random arm with probability
// epsilon, evaluated at the current round, and otherwise pulls the arm with
// the highest estimate (lowest index on ties).
type EpsilonGreedyPolicy struct {
	estimates
	epsilon ExplorationRate
	rand    *rand.Rand
}

var _ core.Policy = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(epsilon ExplorationRate, initMean float64, src rand.Source) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{
		estimates: newEstimates(initMean),
		epsilon:   epsilon,
		rand:      newRand(src),
	}
}

func (e *EpsilonGreedyPolicy) Choose() (int, error) {
	if !e.ready {
		return 0, core.ErrUninitializedPolicy
	}
	if e.rand.Float64() < e.epsilon.At(e.round) {
		return e.rand.Intn(len(e.counts)), nil
	}
	return floats.MaxIdx(e.values), nil
}

type EpsilonGreedyPolicyConstructor struct {
	epsilon  ExplorationRate
	initMean float64
}

var _ core.PolicyConstructor = &EpsilonGreedyPolicyConstructor{}

func NewEpsilonGreedyPolicyConstructor(epsilon ExplorationRate, initMean float64) *EpsilonGreedyPolicyConstructor {
	return &EpsilonGreedyPolicyConstructor{
		epsilon:  epsilon,
		initMean: initMean,
	}
}

func (e *EpsilonGreedyPolicyConstructor) NewPolicy(src rand.Source) core.Policy {
	return NewEpsilonGreedyPolicy(e.epsilon, e.initMean, src)
}
