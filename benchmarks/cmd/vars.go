package cmd

import (
	"github.com/spf13/pflag"

	"github.com/zeu5/mab-sim/benchmarks/common"
)

var (
	flags       *common.Flags = common.DefaultFlags()
	savePath    string
	parallelism int
	logLevel    string
	charts      bool
	withRandom  bool

	replications int
	horizon      int
	seed         uint64
	epsilon      float64
	ucbConstant  float64
)

func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	fs.IntVar(&parallelism, "parallelism", flags.Parallelism, "Number of experiments run in parallel")
	fs.StringVar(&logLevel, "log-level", flags.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&charts, "charts", flags.Charts, "Render html charts of the averaged metrics")
	fs.BoolVar(&withRandom, "with-random", flags.WithRandom, "Add a uniformly random policy to the comparison")

	fs.IntVar(&replications, "replications", flags.Replications, "Independent runs per policy")
	fs.IntVar(&horizon, "horizon", flags.Horizon, "Rounds per run")
	fs.Uint64Var(&seed, "seed", flags.Seed, "Master seed (0 picks one from the clock)")
	fs.Float64Var(&epsilon, "epsilon", flags.Epsilon, "Exploration rate of the constant ε-greedy policy")
	fs.Float64Var(&ucbConstant, "ucb-c", flags.UCBConstant, "Exploration bonus constant of UCB1")
}

func UpdateFlags() {
	flags.SavePath = savePath
	flags.Parallelism = parallelism
	flags.LogLevel = logLevel
	flags.Charts = charts
	flags.WithRandom = withRandom

	flags.Replications = replications
	flags.Horizon = horizon
	flags.Seed = seed
	flags.Epsilon = epsilon
	flags.UCBConstant = ucbConstant
}
