package common

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/viper"

	"github.com/zeu5/mab-sim/core"
	"github.com/zeu5/mab-sim/policies"
)

var ErrUnknownPolicy = errors.New("unknown policy kind")

type ProblemSpec struct {
	Name      string                 `mapstructure:"name" json:"name"`
	InitMeans []float64              `mapstructure:"init_means" json:"init_means"`
	Arms      []core.ArmDistribution `mapstructure:"arms" json:"arms"`
}

// PolicySpec describes a policy in an experiment file. Kind is one of
// "egreedy", "ucb" or "random". An egreedy policy uses Epsilon, or the 1/t
// schedule when Schedule is "inverse".
type PolicySpec struct {
	Name     string   `mapstructure:"name" json:"name"`
	Kind     string   `mapstructure:"kind" json:"kind"`
	Epsilon  *float64 `mapstructure:"epsilon" json:"epsilon,omitempty"`
	Schedule string   `mapstructure:"schedule" json:"schedule,omitempty"`
	C        float64  `mapstructure:"c" json:"c,omitempty"`
}

// ExperimentFile is the decoded form of a yaml, json or toml experiment
// definition. Zero run parameters leave the flag values in place.
type ExperimentFile struct {
	Horizon      int           `mapstructure:"horizon"`
	Replications int           `mapstructure:"replications"`
	Seed         uint64        `mapstructure:"seed"`
	Problems     []ProblemSpec `mapstructure:"problems"`
	Policies     []PolicySpec  `mapstructure:"policies"`
}

func LoadExperimentFile(path string) (*ExperimentFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading experiment file: %w", err)
	}
	out := &ExperimentFile{}
	if err := v.Unmarshal(out); err != nil {
		return nil, fmt.Errorf("decoding experiment file: %w", err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("experiment file %s: %w", path, err)
	}
	return out, nil
}

func (f *ExperimentFile) Validate() error {
	if len(f.Problems) == 0 {
		return errors.New("no problems defined")
	}
	if len(f.Policies) == 0 {
		return errors.New("no policies defined")
	}
	names := make(map[string]bool)
	for i, p := range f.Problems {
		if p.Name == "" {
			return fmt.Errorf("problem %d has no name", i)
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate problem %s", p.Name)
		}
		names[p.Name] = true
		if len(p.Arms) == 0 {
			return fmt.Errorf("problem %s: %w", p.Name, core.ErrInvalidArmCount)
		}
		for j, arm := range p.Arms {
			if err := arm.Validate(); err != nil {
				return fmt.Errorf("problem %s, arm %d: %w", p.Name, j, err)
			}
		}
	}
	for i, p := range f.Policies {
		if p.Name == "" {
			return fmt.Errorf("policy %d has no name", i)
		}
		if _, err := p.Constructor(0); err != nil {
			return fmt.Errorf("policy %s: %w", p.Name, err)
		}
	}
	return nil
}

// Apply overrides the run flags with the values set in the file
func (f *ExperimentFile) Apply(flags *Flags) {
	if f.Horizon > 0 {
		flags.Horizon = f.Horizon
	}
	if f.Replications > 0 {
		flags.Replications = f.Replications
	}
	if f.Seed != 0 {
		flags.Seed = f.Seed
	}
}

func (p PolicySpec) Constructor(initMean float64) (core.PolicyConstructor, error) {
	switch p.Kind {
	case "egreedy":
		if p.Schedule == "inverse" {
			return policies.NewEpsilonGreedyPolicyConstructor(policies.InverseTimeRate(), initMean), nil
		}
		if p.Schedule != "" {
			return nil, fmt.Errorf("unknown epsilon schedule %q", p.Schedule)
		}
		if p.Epsilon == nil {
			return nil, errors.New("egreedy policy needs epsilon or schedule")
		}
		if math.IsNaN(*p.Epsilon) || *p.Epsilon < 0 || *p.Epsilon > 1 {
			return nil, fmt.Errorf("epsilon must be in [0, 1], got %v", *p.Epsilon)
		}
		return policies.NewEpsilonGreedyPolicyConstructor(policies.ConstantRate(*p.Epsilon), initMean), nil
	case "ucb":
		return policies.NewUCBPolicyConstructor(p.C, initMean)
	case "random":
		return &policies.RandomPolicyConstructor{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, p.Kind)
}
