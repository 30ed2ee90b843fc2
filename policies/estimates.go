package policies

import (
	"fmt"

	"github.com/zeu5/mab-sim/core"
	"github.com/zeu5/mab-sim/util"
)

// estimates holds the per-arm pull counts and running reward means shared by
// all policies. The round counter advances only in TellReward.
type estimates struct {
	initValue float64

	counts []int
	values []float64
	round  int
	ready  bool
}

func newEstimates(initValue float64) estimates {
	return estimates{initValue: initValue}
}

func (e *estimates) Setup(numArms int) error {
	if numArms < 1 {
		return fmt.Errorf("%w: got %d", core.ErrInvalidArmCount, numArms)
	}
	e.counts = make([]int, numArms)
	e.values = make([]float64, numArms)
	for i := range e.values {
		e.values[i] = e.initValue
	}
	e.round = 0
	e.ready = true
	return nil
}

// TellReward folds reward into the incremental mean of arm
func (e *estimates) TellReward(arm int, reward float64) error {
	if !e.ready {
		return core.ErrUninitializedPolicy
	}
	if arm < 0 || arm >= len(e.counts) {
		return fmt.Errorf("%w: %d not in [0, %d)", core.ErrInvalidArmIndex, arm, len(e.counts))
	}
	e.counts[arm]++
	e.values[arm] += (reward - e.values[arm]) / float64(e.counts[arm])
	e.round++
	return nil
}

func (e *estimates) MeanEstimates() []float64 {
	return util.CopyFloatSlice(e.values)
}

func (e *estimates) Counts() []int {
	return util.CopyIntSlice(e.counts)
}

// Round is the number of rewards received since Setup
func (e *estimates) Round() int {
	return e.round
}
