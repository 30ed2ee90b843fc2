package core

import (
	"errors"
	"fmt"
)

var ErrInvalidHorizon = errors.New("horizon must be at least 1")

// Simulate sets the policy up for the problem and plays horizon rounds.
// Regret is measured against the true arm means. Any error aborts the run
// and no records are returned.
func Simulate(policy Policy, problem *BanditProblem, horizon int) ([]Record, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, horizon)
	}
	if err := policy.Setup(problem.NumArms()); err != nil {
		return nil, fmt.Errorf("setting up policy: %w", err)
	}

	records := make([]Record, 0, horizon)
	totalReward := 0.0
	optimalPulls := 0
	regret := 0.0
	for t := 1; t <= horizon; t++ {
		arm, err := policy.Choose()
		if err != nil {
			return nil, fmt.Errorf("round %d: choosing arm: %w", t, err)
		}
		reward, err := problem.Pull(arm)
		if err != nil {
			return nil, fmt.Errorf("round %d: pulling arm: %w", t, err)
		}
		if err := policy.TellReward(arm, reward); err != nil {
			return nil, fmt.Errorf("round %d: telling reward: %w", t, err)
		}

		totalReward += reward
		if arm == problem.OptimalArm() {
			optimalPulls++
		}
		regret += problem.OptimalMean() - problem.Mean(arm)

		records = append(records, Record{
			Round:       t,
			Arm:         arm,
			Reward:      reward,
			AvgReward:   totalReward / float64(t),
			OptimalRate: float64(optimalPulls) / float64(t),
			CumRegret:   regret,
		})
	}
	return records, nil
}
