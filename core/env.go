package core

import "context"

// RunContext describes one replication of an experiment
type RunContext struct {
	Context     context.Context
	Comparison  string
	Experiment  string
	Replication int
	Horizon     int

	ProblemSeed uint64
	PolicySeed  uint64
}
