package policies

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/zeu5/mab-sim/core"
)

var ErrInvalidExplorationBonus = errors.New("exploration bonus must be positive")

// UCBPolicy implements UCB1. Every arm is pulled once, in index order, before
// arms are ranked by estimate + c*sqrt(2 ln t / n).
type UCBPolicy struct {
	estimates
	c      float64
	scores []float64
}

var _ core.Policy = &UCBPolicy{}

func NewUCBPolicy(c, initMean float64) (*UCBPolicy, error) {
	if !(c > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidExplorationBonus, c)
	}
	return &UCBPolicy{
		estimates: newEstimates(initMean),
		c:         c,
	}, nil
}

func (u *UCBPolicy) Choose() (int, error) {
	if !u.ready {
		return 0, core.ErrUninitializedPolicy
	}
	for arm, n := range u.counts {
		if n == 0 {
			return arm, nil
		}
	}

	if len(u.scores) != len(u.counts) {
		u.scores = make([]float64, len(u.counts))
	}
	logT := math.Log(float64(u.round))
	for arm, n := range u.counts {
		u.scores[arm] = u.values[arm] + u.c*math.Sqrt(2*logT/float64(n))
	}
	return floats.MaxIdx(u.scores), nil
}

type UCBPolicyConstructor struct {
	c        float64
	initMean float64
}

var _ core.PolicyConstructor = &UCBPolicyConstructor{}

func NewUCBPolicyConstructor(c, initMean float64) (*UCBPolicyConstructor, error) {
	if !(c > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidExplorationBonus, c)
	}
	return &UCBPolicyConstructor{
		c:        c,
		initMean: initMean,
	}, nil
}

func (u *UCBPolicyConstructor) NewPolicy(_ rand.Source) core.Policy {
	return &UCBPolicy{
		estimates: newEstimates(u.initMean),
		c:         u.c,
	}
}
