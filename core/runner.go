package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/zeu5/mab-sim/util"
)

var (
	ErrNoExperiments        = errors.New("comparison has no experiments")
	ErrInvalidReplications  = errors.New("replications must be at least 1")
	ErrDuplicateExperiments = errors.New("duplicate experiment name")
)

type runSeeds struct {
	problem uint64
	policy  uint64
}

type experimentRunContext struct {
	ctx        context.Context
	comparison string
	problem    []ArmDistribution
	seeds      []runSeeds
	analyzers  map[string]Analyzer
	output     *util.ParallelOutput

	*RunConfig
}

type ExperimentResult struct {
	Replications   int
	TotalTimeSteps int
	Duration       time.Duration

	Error    error
	Datasets map[string]DataSet
}

func (r *ExperimentResult) IsError() bool {
	return r.Error != nil
}

func (e *Experiment) run(ctx *experimentRunContext) *ExperimentResult {
	result := &ExperimentResult{
		Datasets: make(map[string]DataSet),
	}
	start := time.Now()
	for _, a := range ctx.analyzers {
		a.Reset()
	}

ReplicationLoop:
	for rep := 0; rep < ctx.Replications; rep++ {
		select {
		case <-ctx.ctx.Done():
			result.Error = ctx.ctx.Err()
			break ReplicationLoop
		default:
		}

		if ctx.output != nil {
			ctx.output.TrySet(fmt.Sprintf(
				"Comparison: %s, Experiment: %s, Replication %d/%d, Timesteps: %d",
				ctx.comparison, e.Name, rep+1, ctx.Replications, result.TotalTimeSteps,
			))
		}

		seeds := ctx.seeds[rep]
		problem, err := NewBanditProblem(ctx.problem, rand.NewSource(seeds.problem))
		if err != nil {
			result.Error = err
			break
		}
		records, err := Simulate(e.Policy.NewPolicy(rand.NewSource(seeds.policy)), problem, ctx.Horizon)
		if err != nil {
			result.Error = fmt.Errorf("replication %d: %w", rep, err)
			break
		}

		rCtx := &RunContext{
			Context:     ctx.ctx,
			Comparison:  ctx.comparison,
			Experiment:  e.Name,
			Replication: rep,
			Horizon:     ctx.Horizon,
			ProblemSeed: seeds.problem,
			PolicySeed:  seeds.policy,
		}
		for name, a := range ctx.analyzers {
			if err := a.Analyze(rCtx, records); err != nil {
				result.Error = fmt.Errorf("replication %d: analysis %s: %w", rep, name, err)
				break ReplicationLoop
			}
		}
		result.Replications++
		result.TotalTimeSteps += len(records)
	}
	result.Duration = time.Since(start)

	if ctx.output != nil {
		status := "done"
		if result.Error != nil {
			status = "error: " + result.Error.Error()
		}
		ctx.output.Set(fmt.Sprintf(
			"Comparison: %s, Experiment: %s, Replications %d/%d, Timesteps: %d, %s",
			ctx.comparison, e.Name, result.Replications, ctx.Replications, result.TotalTimeSteps, status,
		))
	}
	if result.Error != nil {
		return result
	}
	for name, a := range ctx.analyzers {
		result.Datasets[name] = a.DataSet()
	}
	return result
}

// parallelWorker runs experiments received on the work channel
type parallelWorker struct {
	id int
}

// parallelWork carries everything needed to run all replications of one experiment
type parallelWork struct {
	experiment *Experiment
	comp       *Comparison
	seeds      []runSeeds
	output     *util.ParallelOutput
	rConfig    *RunConfig
}

type parallelResult struct {
	experimentName string
	result         *ExperimentResult
}

func (w *parallelWorker) run(ctx context.Context, workCh <-chan *parallelWork, resultsCh chan<- *parallelResult) {
	for work := range workCh {
		resultsCh <- w.runWork(ctx, work)
	}
}

func (w *parallelWorker) runWork(ctx context.Context, work *parallelWork) *parallelResult {
	eCtx := &experimentRunContext{
		ctx:        ctx,
		comparison: work.comp.Name,
		problem:    work.comp.Problem,
		seeds:      work.seeds,
		analyzers:  make(map[string]Analyzer),
		output:     work.output,
		RunConfig:  work.rConfig,
	}
	for name, aC := range work.comp.Analyzers {
		eCtx.analyzers[name] = aC.NewAnalyzer(work.experiment.Name)
	}

	work.comp.Logger.Debug().
		Int("worker", w.id).
		Str("experiment", work.experiment.Name).
		Msg("starting experiment")

	return &parallelResult{
		experimentName: work.experiment.Name,
		result:         work.experiment.run(eCtx),
	}
}

func (c *Comparison) validate(rConfig *RunConfig) error {
	if len(c.Experiments) == 0 {
		return ErrNoExperiments
	}
	if rConfig.Replications < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidReplications, rConfig.Replications)
	}
	if rConfig.Horizon < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidHorizon, rConfig.Horizon)
	}
	if _, err := NewBanditProblem(c.Problem, rand.NewSource(rConfig.Seed)); err != nil {
		return err
	}
	names := make(map[string]bool)
	for _, e := range c.Experiments {
		if names[e.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateExperiments, e.Name)
		}
		names[e.Name] = true
	}
	return nil
}

// Run executes every replication of every experiment on up to parallelism
// workers and hands the datasets to the comparators. Seeds for all runs are
// drawn from rConfig.Seed before any work starts, so the results do not depend
// on parallelism. If any experiment fails the comparators are not invoked.
func (c *Comparison) Run(ctx context.Context, rConfig *RunConfig, parallelism int) (map[string]*ExperimentResult, error) {
	if err := c.validate(rConfig); err != nil {
		return nil, fmt.Errorf("comparison %s: %w", c.Name, err)
	}
	if parallelism < 1 {
		parallelism = 1
	}

	master := rand.New(rand.NewSource(rConfig.Seed))
	works := make([]*parallelWork, len(c.Experiments))
	for i, e := range c.Experiments {
		seeds := make([]runSeeds, rConfig.Replications)
		for rep := range seeds {
			seeds[rep] = runSeeds{problem: master.Uint64(), policy: master.Uint64()}
		}
		works[i] = &parallelWork{
			experiment: e,
			comp:       c,
			seeds:      seeds,
			rConfig:    rConfig,
		}
		if c.Printer != nil {
			works[i].output = c.Printer.NewOutput()
		}
	}

	c.Logger.Info().
		Str("comparison", c.Name).
		Int("experiments", len(c.Experiments)).
		Int("replications", rConfig.Replications).
		Int("horizon", rConfig.Horizon).
		Uint64("seed", rConfig.Seed).
		Msg("running comparison")

	workCh := make(chan *parallelWork)
	resultsCh := make(chan *parallelResult, len(works))
	wg := new(sync.WaitGroup)
	for i := 0; i < parallelism; i++ {
		wg.Add(1)
		go func(w *parallelWorker) {
			defer wg.Done()
			w.run(ctx, workCh, resultsCh)
		}(&parallelWorker{id: i})
	}

DispatchLoop:
	for _, work := range works {
		select {
		case <-ctx.Done():
			break DispatchLoop
		case workCh <- work:
		}
	}
	close(workCh)
	wg.Wait()
	close(resultsCh)

	results := make(map[string]*ExperimentResult)
	for r := range resultsCh {
		results[r.experimentName] = r.result
	}
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("comparison %s: %w", c.Name, err)
	}

	errs := make([]error, 0)
	names := make([]string, 0, len(c.Experiments))
	for _, e := range c.Experiments {
		names = append(names, e.Name)
		result := results[e.Name]
		if result.IsError() {
			c.Logger.Error().Err(result.Error).Str("comparison", c.Name).Str("experiment", e.Name).Msg("experiment failed")
			errs = append(errs, fmt.Errorf("experiment %s: %w", e.Name, result.Error))
			continue
		}
		c.Logger.Info().
			Str("comparison", c.Name).
			Str("experiment", e.Name).
			Int("replications", result.Replications).
			Dur("elapsed", result.Duration).
			Msg("experiment finished")
	}
	if len(errs) > 0 {
		return results, fmt.Errorf("comparison %s: %w", c.Name, errors.Join(errs...))
	}

	analysisNames := make([]string, 0, len(c.Comparators))
	for name := range c.Comparators {
		analysisNames = append(analysisNames, name)
	}
	sort.Strings(analysisNames)
	for _, analysis := range analysisNames {
		datasets := make([]DataSet, len(names))
		for i, name := range names {
			datasets[i] = results[name].Datasets[analysis]
		}
		if err := c.Comparators[analysis].Compare(names, datasets); err != nil {
			return results, fmt.Errorf("comparison %s: comparing %s: %w", c.Name, analysis, err)
		}
		c.Logger.Debug().Str("comparison", c.Name).Str("analysis", analysis).Msg("compared datasets")
	}
	return results, nil
}
