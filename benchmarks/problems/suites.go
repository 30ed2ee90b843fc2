package problems

import (
	"fmt"
	"math"

	"github.com/zeu5/mab-sim/benchmarks/common"
	"github.com/zeu5/mab-sim/core"
)

// Suite is a problem together with the initial estimates it is run with
type Suite struct {
	Name      string
	Arms      []core.ArmDistribution
	InitMeans []float64
}

// TwoArm is a sure reward of 1 against a rare reward of 10(x+1) paid with
// probability 10^-x. It runs optimistically initialized as well.
func TwoArm(x int) Suite {
	high := 10 * float64(x+1)
	p := math.Pow(10, -float64(x))
	return Suite{
		Name: fmt.Sprintf("two-arm x=%d", x),
		Arms: []core.ArmDistribution{
			{Values: []float64{1}, Probs: []float64{1.0}},
			{Values: []float64{high, 0}, Probs: []float64{p, 1 - p}},
		},
		InitMeans: []float64{0, high},
	}
}

func TwoArmSuites() []Suite {
	out := make([]Suite, 0, 4)
	for x := 0; x < 4; x++ {
		out = append(out, TwoArm(x))
	}
	return out
}

func KArmSizes() []int {
	return []int{3, 5, 10, 20}
}

func KArm(k int) (Suite, error) {
	var arms []core.ArmDistribution
	switch k {
	case 3:
		arms = []core.ArmDistribution{
			{Values: []float64{1, 2}, Probs: []float64{0.5, 0.5}},
			{Values: []float64{3, 0}, Probs: []float64{0.2, 0.8}},
			{Values: []float64{5, 0}, Probs: []float64{0.1, 0.9}},
		}
	case 5:
		arms = []core.ArmDistribution{
			{Values: []float64{1, 0}, Probs: []float64{0.7, 0.3}},
			{Values: []float64{3, 0}, Probs: []float64{0.4, 0.6}},
			{Values: []float64{5, 0}, Probs: []float64{0.2, 0.8}},
			{Values: []float64{8, 0}, Probs: []float64{0.1, 0.9}},
			{Values: []float64{10, 0}, Probs: []float64{0.05, 0.95}},
		}
	case 10:
		arms = evenArms(10, 0.1)
	case 20:
		arms = evenArms(20, 0.05)
	default:
		return Suite{}, fmt.Errorf("no %d-arm suite, available: %v", k, KArmSizes())
	}
	return Suite{
		Name:      fmt.Sprintf("%d-arm", k),
		Arms:      arms,
		InitMeans: []float64{0},
	}, nil
}

// evenArms pays i+1 with probability p on arm i
func evenArms(k int, p float64) []core.ArmDistribution {
	arms := make([]core.ArmDistribution, k)
	for i := range arms {
		arms[i] = core.ArmDistribution{
			Values: []float64{float64(i + 1), 0},
			Probs:  []float64{p, 1 - p},
		}
	}
	return arms
}

func KArmSuites() []Suite {
	out := make([]Suite, 0, len(KArmSizes()))
	for _, k := range KArmSizes() {
		s, _ := KArm(k)
		out = append(out, s)
	}
	return out
}

func All() []Suite {
	return append(TwoArmSuites(), KArmSuites()...)
}

// FromFile converts the problems of an experiment file. Problems without
// init means run with 0.
func FromFile(f *common.ExperimentFile) []Suite {
	out := make([]Suite, 0, len(f.Problems))
	for _, p := range f.Problems {
		initMeans := p.InitMeans
		if len(initMeans) == 0 {
			initMeans = []float64{0}
		}
		out = append(out, Suite{Name: p.Name, Arms: p.Arms, InitMeans: initMeans})
	}
	return out
}
