package core

// Record is the state of a simulation after one round
type Record struct {
	Round       int     `json:"round"`
	Arm         int     `json:"arm"`
	Reward      float64 `json:"reward"`
	AvgReward   float64 `json:"avg_reward"`
	OptimalRate float64 `json:"optimal_rate"`
	CumRegret   float64 `json:"cum_regret"`
}

type Metric string

const (
	AvgReward   Metric = "avg_reward"
	OptimalRate Metric = "optimal_rate"
	CumRegret   Metric = "cum_regret"
)

// Metrics lists the cumulative metrics carried by a Record
func Metrics() []Metric {
	return []Metric{AvgReward, OptimalRate, CumRegret}
}

func (m Metric) Title() string {
	switch m {
	case AvgReward:
		return "Average reward"
	case OptimalRate:
		return "Optimal rate"
	case CumRegret:
		return "Cumulative regret"
	}
	return string(m)
}

func (r Record) Value(m Metric) float64 {
	switch m {
	case AvgReward:
		return r.AvgReward
	case OptimalRate:
		return r.OptimalRate
	case CumRegret:
		return r.CumRegret
	}
	return 0
}
