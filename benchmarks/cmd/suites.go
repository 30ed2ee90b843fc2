package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeu5/mab-sim/benchmarks/common"
	"github.com/zeu5/mab-sim/benchmarks/problems"
)

func TwoArmCommand() *cobra.Command {
	var x int
	cmd := &cobra.Command{
		Use:   "twoarm",
		Short: "Run the two-arm rare reward problem (all of x=0..3 when --x is -1)",
		RunE: func(cmd *cobra.Command, args []string) error {
			suites := problems.TwoArmSuites()
			if x >= 0 {
				if x >= len(suites) {
					return fmt.Errorf("x must be in [0, %d), got %d", len(suites), x)
				}
				suites = suites[x : x+1]
			}
			return runSuites(suites, problems.DefaultPolicies(flags))
		},
	}
	cmd.Flags().IntVar(&x, "x", -1, "Rare reward exponent")
	return cmd
}

func KArmCommand() *cobra.Command {
	var arms int
	cmd := &cobra.Command{
		Use:   "karm",
		Short: "Run the k-arm problems (all sizes when --arms is 0)",
		RunE: func(cmd *cobra.Command, args []string) error {
			suites := problems.KArmSuites()
			if arms != 0 {
				s, err := problems.KArm(arms)
				if err != nil {
					return err
				}
				suites = []problems.Suite{s}
			}
			return runSuites(suites, problems.DefaultPolicies(flags))
		},
	}
	cmd.Flags().IntVar(&arms, "arms", 0, "Number of arms (3, 5, 10 or 20)")
	return cmd
}

func AllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every built-in problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(problems.All(), problems.DefaultPolicies(flags))
		},
	}
}

func FileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "file PATH",
		Args:  cobra.ExactArgs(1),
		Short: "Run the problems and policies of an experiment file (yaml, json or toml)",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := common.LoadExperimentFile(args[0])
			if err != nil {
				return err
			}
			f.Apply(flags)
			if err := flags.Validate(); err != nil {
				return err
			}
			return runSuites(problems.FromFile(f), problems.FilePolicies(f))
		},
	}
}
