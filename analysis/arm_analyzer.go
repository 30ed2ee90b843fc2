package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/zeu5/mab-sim/core"
	"github.com/zeu5/mab-sim/util"
)

// ArmDataset is the share of pulls that went to each arm, averaged over
// replications.
type ArmDataset struct {
	Replications int       `json:"replications"`
	PullShare    []float64 `json:"pull_share"`
}

type ArmAnalyzer struct {
	numArms int
	shares  []float64
	runs    int
}

var _ core.Analyzer = &ArmAnalyzer{}

func NewArmAnalyzer(numArms int) *ArmAnalyzer {
	return &ArmAnalyzer{
		numArms: numArms,
		shares:  make([]float64, numArms),
	}
}

func (a *ArmAnalyzer) Reset() {
	a.shares = make([]float64, a.numArms)
	a.runs = 0
}

func (a *ArmAnalyzer) Analyze(_ *core.RunContext, records []core.Record) error {
	if len(records) == 0 {
		return core.ErrInvalidHorizon
	}
	pulls := make([]float64, a.numArms)
	for _, r := range records {
		if r.Arm < 0 || r.Arm >= a.numArms {
			return fmt.Errorf("%w: round %d pulled %d", core.ErrInvalidArmIndex, r.Round, r.Arm)
		}
		pulls[r.Arm]++
	}
	floats.Scale(1/float64(len(records)), pulls)
	floats.Add(a.shares, pulls)
	a.runs++
	return nil
}

func (a *ArmAnalyzer) DataSet() core.DataSet {
	out := &ArmDataset{
		Replications: a.runs,
		PullShare:    util.CopyFloatSlice(a.shares),
	}
	if a.runs > 0 {
		floats.Scale(1/float64(a.runs), out.PullShare)
	}
	return out
}

type ArmAnalyzerConstructor struct {
	numArms int
}

var _ core.AnalyzerConstructor = &ArmAnalyzerConstructor{}

func NewArmAnalyzerConstructor(numArms int) *ArmAnalyzerConstructor {
	return &ArmAnalyzerConstructor{
		numArms: numArms,
	}
}

func (a *ArmAnalyzerConstructor) NewAnalyzer(_ string) core.Analyzer {
	return NewArmAnalyzer(a.numArms)
}
