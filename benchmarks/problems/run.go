package problems

import (
	"fmt"
	"io"
	"path"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/zeu5/mab-sim/analysis"
	"github.com/zeu5/mab-sim/benchmarks/common"
	"github.com/zeu5/mab-sim/core"
	"github.com/zeu5/mab-sim/policies"
)

// PolicySet builds the experiments of a comparison for a given initial estimate
type PolicySet func(initMean float64) ([]*core.Experiment, error)

// DefaultPolicies is ε-greedy with a fixed rate, ε-greedy with rate 1/t and
// UCB1, optionally with a uniform random baseline.
func DefaultPolicies(flags *common.Flags) PolicySet {
	return func(initMean float64) ([]*core.Experiment, error) {
		ucb, err := policies.NewUCBPolicyConstructor(flags.UCBConstant, initMean)
		if err != nil {
			return nil, err
		}
		out := []*core.Experiment{
			{
				Name:   fmt.Sprintf("ε-Greedy (ε=%g)", flags.Epsilon),
				Policy: policies.NewEpsilonGreedyPolicyConstructor(policies.ConstantRate(flags.Epsilon), initMean),
			},
			{
				Name:   "ε-Greedy (ε=1/t)",
				Policy: policies.NewEpsilonGreedyPolicyConstructor(policies.InverseTimeRate(), initMean),
			},
			{
				Name:   "UCB1",
				Policy: ucb,
			},
		}
		if flags.WithRandom {
			out = append(out, &core.Experiment{Name: "Random", Policy: &policies.RandomPolicyConstructor{}})
		}
		return out, nil
	}
}

// FilePolicies builds the experiments listed in an experiment file
func FilePolicies(f *common.ExperimentFile) PolicySet {
	return func(initMean float64) ([]*core.Experiment, error) {
		out := make([]*core.Experiment, 0, len(f.Policies))
		for _, p := range f.Policies {
			c, err := p.Constructor(initMean)
			if err != nil {
				return nil, fmt.Errorf("policy %s: %w", p.Name, err)
			}
			out = append(out, &core.Experiment{Name: p.Name, Policy: c})
		}
		return out, nil
	}
}

func ComparisonName(s Suite, initMean float64) string {
	return fmt.Sprintf("%s init=%g", s.Name, initMean)
}

// PrepareComparison wires the metric and arm analyses of one suite run
func PrepareComparison(
	flags *common.Flags,
	suite Suite,
	initMean float64,
	policySet PolicySet,
	logger zerolog.Logger,
	summary io.Writer,
	colors bool,
) (*core.Comparison, error) {
	name := ComparisonName(suite, initMean)
	saveDir := path.Join(flags.SavePath, slug.Make(name))

	cmp := core.NewComparison(name, suite.Arms)
	cmp.Logger = logger

	metricsCmp := core.Comparator(analysis.NewJSONComparator(saveDir, "metrics"))
	if flags.Charts {
		metricsCmp = analysis.Chain(metricsCmp, analysis.NewChartComparator(saveDir, name))
	}
	if summary != nil {
		metricsCmp = analysis.Chain(metricsCmp, analysis.NewSummaryComparator(name, summary, colors))
	}
	cmp.AddAnalysis("Metrics", analysis.NewMetricsAnalyzerConstructor(), metricsCmp)
	cmp.AddAnalysis("Arms", analysis.NewArmAnalyzerConstructor(len(suite.Arms)), analysis.NewJSONComparator(saveDir, "arms"))

	experiments, err := policySet(initMean)
	if err != nil {
		return nil, err
	}
	for _, e := range experiments {
		cmp.AddExperiment(e)
	}
	return cmp, nil
}
