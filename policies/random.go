package policies

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/zeu5/mab-sim/core"
)

// RandomPolicy pulls arms uniformly at random. It still tracks estimates so
// it can be compared with the learning policies.
type RandomPolicy struct {
	estimates
	rand *rand.Rand
}

var _ core.Policy = &RandomPolicy{}

func NewRandomPolicy(src rand.Source) *RandomPolicy {
	return &RandomPolicy{
		estimates: newEstimates(0),
		rand:      newRand(src),
	}
}

func (r *RandomPolicy) Choose() (int, error) {
	if !r.ready {
		return 0, core.ErrUninitializedPolicy
	}
	return r.rand.Intn(len(r.counts)), nil
}

type RandomPolicyConstructor struct{}

var _ core.PolicyConstructor = &RandomPolicyConstructor{}

func (r *RandomPolicyConstructor) NewPolicy(src rand.Source) core.Policy {
	return NewRandomPolicy(src)
}

func newRand(src rand.Source) *rand.Rand {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return rand.New(src)
}
