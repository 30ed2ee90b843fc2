package core

import (
	"errors"

	"golang.org/x/exp/rand"
)

var ErrUninitializedPolicy = errors.New("policy used before setup")

// Policy decides which arm to pull next from the rewards it has been told
// about. Setup must be called before Choose or TellReward and discards any
// previous state.
type Policy interface {
	Setup(numArms int) error
	Choose() (int, error)
	TellReward(arm int, reward float64) error
	MeanEstimates() []float64
}

// PolicyConstructor builds a fresh Policy for every run. Randomized policies
// draw only from src.
type PolicyConstructor interface {
	NewPolicy(src rand.Source) Policy
}
