package core

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrInvalidDistribution = errors.New("invalid arm distribution")
	ErrInvalidArmIndex     = errors.New("arm index out of range")
	ErrInvalidArmCount     = errors.New("number of arms must be at least 1")
)

// probabilityTolerance bounds |sum(probs) - 1| for a valid distribution
const probabilityTolerance = 1e-9

// ArmDistribution is a finite reward distribution: Values[i] is paid with
// probability Probs[i].
type ArmDistribution struct {
	Values []float64 `json:"values" mapstructure:"values"`
	Probs  []float64 `json:"probs" mapstructure:"probs"`
}

func (a ArmDistribution) Validate() error {
	if len(a.Values) == 0 {
		return fmt.Errorf("%w: no reward values", ErrInvalidDistribution)
	}
	if len(a.Values) != len(a.Probs) {
		return fmt.Errorf("%w: %d values but %d probabilities", ErrInvalidDistribution, len(a.Values), len(a.Probs))
	}
	for i, v := range a.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: reward value %d is %v", ErrInvalidDistribution, i, v)
		}
	}
	for i, p := range a.Probs {
		if p < 0 || math.IsNaN(p) {
			return fmt.Errorf("%w: probability %d is %v", ErrInvalidDistribution, i, p)
		}
	}
	if sum := floats.Sum(a.Probs); !scalar.EqualWithinAbs(sum, 1, probabilityTolerance) {
		return fmt.Errorf("%w: probabilities sum to %v", ErrInvalidDistribution, sum)
	}
	return nil
}

// Mean is the expected reward of the arm
func (a ArmDistribution) Mean() float64 {
	return floats.Dot(a.Values, a.Probs)
}

func (a ArmDistribution) Copy() ArmDistribution {
	values := make([]float64, len(a.Values))
	copy(values, a.Values)
	probs := make([]float64, len(a.Probs))
	copy(probs, a.Probs)
	return ArmDistribution{Values: values, Probs: probs}
}

// BanditProblem is an immutable set of arms together with the quantities
// derived from their true distributions. Rewards are drawn from the source
// handed to NewBanditProblem, so a problem must not be shared between
// goroutines.
type BanditProblem struct {
	arms     []ArmDistribution
	samplers []distuv.Categorical

	means       []float64
	optimalArm  int
	optimalMean float64
}

func NewBanditProblem(arms []ArmDistribution, src rand.Source) (*BanditProblem, error) {
	if len(arms) == 0 {
		return nil, ErrInvalidArmCount
	}
	p := &BanditProblem{
		arms:     make([]ArmDistribution, len(arms)),
		samplers: make([]distuv.Categorical, len(arms)),
		means:    make([]float64, len(arms)),
	}
	for i, arm := range arms {
		if err := arm.Validate(); err != nil {
			return nil, fmt.Errorf("arm %d: %w", i, err)
		}
		p.arms[i] = arm.Copy()
		p.samplers[i] = distuv.NewCategorical(p.arms[i].Probs, src)
		p.means[i] = p.arms[i].Mean()
	}
	p.optimalArm = floats.MaxIdx(p.means)
	p.optimalMean = p.means[p.optimalArm]
	return p, nil
}

func (p *BanditProblem) NumArms() int {
	return len(p.arms)
}

// Pull draws one reward from the given arm
func (p *BanditProblem) Pull(arm int) (float64, error) {
	if arm < 0 || arm >= len(p.arms) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidArmIndex, arm, len(p.arms))
	}
	i := int(p.samplers[arm].Rand())
	return p.arms[arm].Values[i], nil
}

// Mean returns the true mean of an arm. The index is not checked.
func (p *BanditProblem) Mean(arm int) float64 {
	return p.means[arm]
}

func (p *BanditProblem) Means() []float64 {
	out := make([]float64, len(p.means))
	copy(out, p.means)
	return out
}

func (p *BanditProblem) OptimalArm() int {
	return p.optimalArm
}

func (p *BanditProblem) OptimalMean() float64 {
	return p.optimalMean
}
