package common

import (
	"errors"
	"fmt"
	"math"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/zeu5/mab-sim/util"
)

type Flags struct {
	SessionID string
	SavePath  string
	RunFlags
	PolicyFlags
	Parallelism int
	LogLevel    string
	Charts      bool
	WithRandom  bool
}

type RunFlags struct {
	Replications int
	Horizon      int
	// Seed 0 picks a seed from the clock
	Seed uint64
}

type PolicyFlags struct {
	Epsilon     float64
	UCBConstant float64
}

func DefaultFlags() *Flags {
	return &Flags{
		SavePath: "results",
		RunFlags: RunFlags{
			Replications: 50,
			Horizon:      1000,
			Seed:         0,
		},
		PolicyFlags: PolicyFlags{
			Epsilon:     0.1,
			UCBConstant: 2,
		},
		Parallelism: 4,
		LogLevel:    "info",
		Charts:      true,
		WithRandom:  false,
	}
}

func (f *Flags) Validate() error {
	if f.Replications < 1 {
		return fmt.Errorf("replications must be at least 1, got %d", f.Replications)
	}
	if f.Horizon < 1 {
		return fmt.Errorf("horizon must be at least 1, got %d", f.Horizon)
	}
	if math.IsNaN(f.Epsilon) || f.Epsilon < 0 || f.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", f.Epsilon)
	}
	if !(f.UCBConstant > 0) {
		return fmt.Errorf("ucb constant must be positive, got %v", f.UCBConstant)
	}
	if f.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", f.Parallelism)
	}
	if f.SavePath == "" {
		return errors.New("save path is required")
	}
	return nil
}

// Resolve assigns a session id and, if unset, a seed
func (f *Flags) Resolve() {
	if f.SessionID == "" {
		f.SessionID = uuid.NewString()
	}
	if f.Seed == 0 {
		f.Seed = uint64(time.Now().UnixNano())
	}
}

// Record saves the flags next to the results
func (f *Flags) Record() error {
	return util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}
