package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/zeu5/mab-sim/core"
	"github.com/zeu5/mab-sim/util"
)

var ErrHorizonMismatch = errors.New("replications have different horizons")

type FinalStat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// RunSeeds identifies the random sources of one replication so it can be
// replayed
type RunSeeds struct {
	Replication int    `json:"replication"`
	ProblemSeed uint64 `json:"problem_seed"`
	PolicySeed  uint64 `json:"policy_seed"`
}

// MetricsDataset holds the per-timestep mean of every metric across
// replications, and the spread of the value at the last timestep.
type MetricsDataset struct {
	Replications int                       `json:"replications"`
	Curves       map[core.Metric][]float64 `json:"curves"`
	Final        map[core.Metric]FinalStat `json:"final"`
	Runs         []RunSeeds                `json:"runs"`
}

func (m *MetricsDataset) Curve(metric core.Metric) []float64 {
	return m.Curves[metric]
}

type MetricsAnalyzer struct {
	horizon int
	sums    map[core.Metric][]float64
	finals  map[core.Metric][]float64
	seeds   []RunSeeds
	runs    int
}

var _ core.Analyzer = &MetricsAnalyzer{}

func NewMetricsAnalyzer() *MetricsAnalyzer {
	m := &MetricsAnalyzer{}
	m.Reset()
	return m
}

func (m *MetricsAnalyzer) Reset() {
	m.horizon = 0
	m.runs = 0
	m.sums = make(map[core.Metric][]float64)
	m.finals = make(map[core.Metric][]float64)
	m.seeds = make([]RunSeeds, 0)
	for _, metric := range core.Metrics() {
		m.finals[metric] = make([]float64, 0)
	}
}

func (m *MetricsAnalyzer) Analyze(ctx *core.RunContext, records []core.Record) error {
	if len(records) == 0 {
		return core.ErrInvalidHorizon
	}
	if m.runs == 0 {
		m.horizon = len(records)
		for _, metric := range core.Metrics() {
			m.sums[metric] = make([]float64, m.horizon)
		}
	} else if len(records) != m.horizon {
		return fmt.Errorf("%w: %d and %d", ErrHorizonMismatch, m.horizon, len(records))
	}

	for _, metric := range core.Metrics() {
		sum := m.sums[metric]
		for i, r := range records {
			sum[i] += r.Value(metric)
		}
		m.finals[metric] = append(m.finals[metric], records[len(records)-1].Value(metric))
	}
	if ctx != nil {
		m.seeds = append(m.seeds, RunSeeds{
			Replication: ctx.Replication,
			ProblemSeed: ctx.ProblemSeed,
			PolicySeed:  ctx.PolicySeed,
		})
	}
	m.runs++
	return nil
}

func (m *MetricsAnalyzer) DataSet() core.DataSet {
	out := &MetricsDataset{
		Replications: m.runs,
		Curves:       make(map[core.Metric][]float64),
		Final:        make(map[core.Metric]FinalStat),
		Runs:         make([]RunSeeds, len(m.seeds)),
	}
	copy(out.Runs, m.seeds)
	if m.runs == 0 {
		return out
	}
	for _, metric := range core.Metrics() {
		curve := util.CopyFloatSlice(m.sums[metric])
		floats.Scale(1/float64(m.runs), curve)
		out.Curves[metric] = curve

		finals := m.finals[metric]
		if len(finals) < 2 {
			out.Final[metric] = FinalStat{Mean: finals[0]}
			continue
		}
		mean, std := stat.MeanStdDev(finals, nil)
		out.Final[metric] = FinalStat{Mean: mean, StdDev: std}
	}
	return out
}

type MetricsAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &MetricsAnalyzerConstructor{}

func NewMetricsAnalyzerConstructor() *MetricsAnalyzerConstructor {
	return &MetricsAnalyzerConstructor{}
}

func (m *MetricsAnalyzerConstructor) NewAnalyzer(_ string) core.Analyzer {
	return NewMetricsAnalyzer()
}
