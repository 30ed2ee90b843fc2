package cmd

import "github.com/spf13/cobra"

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mab",
		Short: "Simulate multi-armed bandit policies",
		Long: `Runs ε-greedy and UCB1 policies against discrete reward bandit problems,
averages the metrics of independent replications and saves them with charts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			UpdateFlags()
			return flags.Validate()
		},
	}
	AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		TwoArmCommand(),
		KArmCommand(),
		AllCommand(),
		FileCommand(),
	)

	return cmd
}
