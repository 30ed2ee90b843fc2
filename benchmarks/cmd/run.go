package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/zeu5/mab-sim/benchmarks/problems"
	"github.com/zeu5/mab-sim/core"
	"github.com/zeu5/mab-sim/util"
)

// runSuites runs every suite with each of its initial estimates. It stops at
// the first failing comparison.
func runSuites(suites []problems.Suite, policySet problems.PolicySet) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt) // channel for interrupts from os
	defer signal.Stop(sigCh)

	doneCh := make(chan struct{}) // channel for done signal from application
	defer close(doneCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-sigCh:
		case <-doneCh:
		}
		cancel()
	}()

	logger, err := util.NewLogger(flags.LogLevel, os.Stderr)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	flags.Resolve()
	if err := flags.Record(); err != nil {
		return fmt.Errorf("recording flags: %w", err)
	}
	logger.Info().
		Str("session", flags.SessionID).
		Uint64("seed", flags.Seed).
		Str("save_path", flags.SavePath).
		Msg("starting session")

	var printer *util.TerminalPrinter
	if util.IsTerminal(os.Stdout) {
		printer = util.NewTerminalPrinter(200*time.Millisecond, os.Stdout)
		printer.Start(ctx)
	}
	summaries := new(bytes.Buffer)

	runErr := func() error {
		for _, suite := range suites {
			for _, initMean := range suite.InitMeans {
				cmp, err := problems.PrepareComparison(flags, suite, initMean, policySet, logger, summaries, util.IsTerminal(os.Stdout))
				if err != nil {
					return err
				}
				cmp.Printer = printer
				_, err = cmp.Run(ctx, &core.RunConfig{
					Replications: flags.Replications,
					Horizon:      flags.Horizon,
					Seed:         flags.Seed,
				}, flags.Parallelism)
				if err != nil {
					return err
				}
				summaries.WriteString("\n")
			}
		}
		return nil
	}()

	if printer != nil {
		printer.Stop()
	}
	os.Stdout.Write(summaries.Bytes())
	if runErr != nil {
		logger.Error().Err(runErr).Msg("session failed")
		return runErr
	}
	logger.Info().Str("session", flags.SessionID).Msg("session finished")
	return nil
}
