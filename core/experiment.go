package core

import (
	"github.com/rs/zerolog"

	"github.com/zeu5/mab-sim/util"
)

// Experiment pairs a name with the policy it evaluates
type Experiment struct {
	Name   string
	Policy PolicyConstructor
}

type DataSet interface{}

// Analyzer consumes the records of every replication of one experiment and
// summarizes them as a DataSet.
type Analyzer interface {
	Analyze(*RunContext, []Record) error
	DataSet() DataSet
	Reset()
}

type AnalyzerConstructor interface {
	// NewAnalyzer creates an analyzer for the named experiment
	NewAnalyzer(string) Analyzer
}

// Comparator receives experiment names in declaration order and the dataset
// of each experiment at the same index.
type Comparator interface {
	Compare([]string, []DataSet) error
}

type RunConfig struct {
	Replications int
	Horizon      int
	Seed         uint64
}

// Comparison runs several policies against the same problem
type Comparison struct {
	Name        string
	Problem     []ArmDistribution
	Experiments []*Experiment
	Analyzers   map[string]AnalyzerConstructor
	Comparators map[string]Comparator

	Logger  zerolog.Logger
	Printer *util.TerminalPrinter
}

func NewComparison(name string, problem []ArmDistribution) *Comparison {
	return &Comparison{
		Name:        name,
		Problem:     problem,
		Experiments: make([]*Experiment, 0),
		Analyzers:   make(map[string]AnalyzerConstructor),
		Comparators: make(map[string]Comparator),
		Logger:      zerolog.Nop(),
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *Comparison) AddAnalysis(name string, a AnalyzerConstructor, cmp Comparator) {
	c.Analyzers[name] = a
	c.Comparators[name] = cmp
}
