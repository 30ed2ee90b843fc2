package policies

// ExplorationRate gives the probability of exploring at a round. It is either
// a ConstantRate or a ScheduledRate.
type ExplorationRate interface {
	At(round int) float64
	explorationRate()
}

type ConstantRate float64

func (r ConstantRate) At(int) float64 {
	return float64(r)
}

func (ConstantRate) explorationRate() {}

// ScheduledRate computes the rate from the number of rounds completed
type ScheduledRate func(round int) float64

func (r ScheduledRate) At(round int) float64 {
	return r(round)
}

func (ScheduledRate) explorationRate() {}

// InverseTimeRate is 1/t, and 1 before the first reward
func InverseTimeRate() ScheduledRate {
	return func(round int) float64 {
		if round < 1 {
			return 1
		}
		return 1 / float64(round)
	}
}
