package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/zeu5/mab-sim/core"
)

func allPolicies(t *testing.T, initMean float64) map[string]core.Policy {
	t.Helper()
	ucb, err := NewUCBPolicy(2, initMean)
	require.NoError(t, err)
	return map[string]core.Policy{
		"egreedy": NewEpsilonGreedyPolicy(ConstantRate(0.1), initMean, rand.NewSource(1)),
		"ucb":     ucb,
	}
}

func TestPolicy_Setup(t *testing.T) {
	for name, p := range allPolicies(t, 2.5) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, p.Setup(4))
			assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, p.MeanEstimates())
			assert.Equal(t, []int{0, 0, 0, 0}, p.(interface{ Counts() []int }).Counts())

			assert.ErrorIs(t, p.Setup(0), core.ErrInvalidArmCount)
		})
	}
}

func TestPolicy_Uninitialized(t *testing.T) {
	for name, p := range allPolicies(t, 0) {
		t.Run(name, func(t *testing.T) {
			_, err := p.Choose()
			assert.ErrorIs(t, err, core.ErrUninitializedPolicy)
			assert.ErrorIs(t, p.TellReward(0, 1), core.ErrUninitializedPolicy)
		})
	}
	_, err := NewRandomPolicy(rand.NewSource(1)).Choose()
	assert.ErrorIs(t, err, core.ErrUninitializedPolicy)
}

func TestPolicy_TellRewardOutOfRange(t *testing.T) {
	for name, p := range allPolicies(t, 0) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, p.Setup(2))
			assert.ErrorIs(t, p.TellReward(2, 1), core.ErrInvalidArmIndex)
			assert.ErrorIs(t, p.TellReward(-1, 1), core.ErrInvalidArmIndex)
			assert.Equal(t, []float64{0, 0}, p.MeanEstimates())
		})
	}
}

func TestEstimates_IncrementalMean(t *testing.T) {
	e := newEstimates(7)
	require.NoError(t, e.Setup(3))

	src := rand.New(rand.NewSource(3))
	delivered := make([][]float64, 3)
	const calls = 300
	for i := 0; i < calls; i++ {
		arm := src.Intn(2) // arm 2 is never touched
		reward := src.Float64() * 10
		delivered[arm] = append(delivered[arm], reward)
		require.NoError(t, e.TellReward(arm, reward))
	}

	counts := e.Counts()
	assert.Equal(t, calls, counts[0]+counts[1]+counts[2])
	assert.Equal(t, calls, e.Round())

	estimates := e.MeanEstimates()
	for arm := 0; arm < 2; arm++ {
		sum := 0.0
		for _, r := range delivered[arm] {
			sum += r
		}
		assert.Equal(t, len(delivered[arm]), counts[arm])
		assert.InDelta(t, sum/float64(len(delivered[arm])), estimates[arm], 1e-9)
	}
	assert.Equal(t, 7.0, estimates[2])
}

func TestEstimates_SetupResets(t *testing.T) {
	e := newEstimates(1)
	require.NoError(t, e.Setup(2))
	require.NoError(t, e.TellReward(1, 5))
	require.NoError(t, e.TellReward(1, 3))

	require.NoError(t, e.Setup(3))
	assert.Equal(t, []float64{1, 1, 1}, e.MeanEstimates())
	assert.Equal(t, []int{0, 0, 0}, e.Counts())
	assert.Equal(t, 0, e.Round())
}

func TestEstimates_SnapshotIsCopy(t *testing.T) {
	e := newEstimates(0)
	require.NoError(t, e.Setup(2))
	snapshot := e.MeanEstimates()
	snapshot[0] = 100
	assert.Equal(t, []float64{0, 0}, e.MeanEstimates())
}

func TestEpsilonGreedy_ZeroEpsilonExploits(t *testing.T) {
	p := NewEpsilonGreedyPolicy(ConstantRate(0), 0, rand.NewSource(5))
	require.NoError(t, p.Setup(3))

	// all estimates tie at the prior
	arm, err := p.Choose()
	require.NoError(t, err)
	assert.Equal(t, 0, arm)

	require.NoError(t, p.TellReward(2, 4))
	require.NoError(t, p.TellReward(1, 4))
	for i := 0; i < 20; i++ {
		arm, err := p.Choose()
		require.NoError(t, err)
		assert.Equal(t, 1, arm)
	}

	require.NoError(t, p.TellReward(2, 10))
	arm, err = p.Choose()
	require.NoError(t, err)
	assert.Equal(t, 2, arm)
}

func TestEpsilonGreedy_ChooseDoesNotMutate(t *testing.T) {
	p := NewEpsilonGreedyPolicy(ConstantRate(0.5), 0, rand.NewSource(5))
	require.NoError(t, p.Setup(3))
	require.NoError(t, p.TellReward(1, 2))
	for i := 0; i < 50; i++ {
		_, err := p.Choose()
		require.NoError(t, err)
	}
	assert.Equal(t, []int{0, 1, 0}, p.Counts())
	assert.Equal(t, []float64{0, 2, 0}, p.MeanEstimates())
	assert.Equal(t, 1, p.Round())
}

func TestEpsilonGreedy_FullExplorationIsUniform(t *testing.T) {
	p := NewEpsilonGreedyPolicy(ConstantRate(1), 0, rand.NewSource(8))
	require.NoError(t, p.Setup(4))
	require.NoError(t, p.TellReward(3, 100))

	const n = 8000
	counts := make([]int, 4)
	for i := 0; i < n; i++ {
		arm, err := p.Choose()
		require.NoError(t, err)
		counts[arm]++
	}
	for _, c := range counts {
		assert.InDelta(t, 0.25, float64(c)/n, 0.03)
	}
}

func TestEpsilonGreedy_ScheduleSeesCurrentRound(t *testing.T) {
	rounds := make([]int, 0)
	rate := ScheduledRate(func(round int) float64 {
		rounds = append(rounds, round)
		return 0
	})
	p := NewEpsilonGreedyPolicy(rate, 0, rand.NewSource(1))
	require.NoError(t, p.Setup(2))

	for i := 0; i < 3; i++ {
		arm, err := p.Choose()
		require.NoError(t, err)
		require.NoError(t, p.TellReward(arm, 1))
	}
	assert.Equal(t, []int{0, 1, 2}, rounds)
}

func TestInverseTimeRate(t *testing.T) {
	r := InverseTimeRate()
	assert.Equal(t, 1.0, r.At(0))
	assert.Equal(t, 1.0, r.At(1))
	assert.Equal(t, 0.5, r.At(2))
	assert.Equal(t, 0.1, r.At(10))
	assert.Equal(t, 0.25, ConstantRate(0.25).At(100))
}

func TestUCB_ForcedExploration(t *testing.T) {
	for _, c := range []float64{0.01, 1, 2, 100} {
		p, err := NewUCBPolicy(c, 50)
		require.NoError(t, err)
		require.NoError(t, p.Setup(5))
		for want := 0; want < 5; want++ {
			arm, err := p.Choose()
			require.NoError(t, err)
			assert.Equal(t, want, arm, "c=%v", c)
			require.NoError(t, p.TellReward(arm, float64(10-want)))
		}
	}
}

func TestUCB_Bonus(t *testing.T) {
	p, err := NewUCBPolicy(1, 0)
	require.NoError(t, err)
	require.NoError(t, p.Setup(2))
	require.NoError(t, p.TellReward(0, 1))
	require.NoError(t, p.TellReward(1, 0))

	// equal bonuses, arm 0 has the better estimate
	arm, err := p.Choose()
	require.NoError(t, err)
	assert.Equal(t, 0, arm)

	// 1 + sqrt(2 ln 22 / 21) < 0 + sqrt(2 ln 22)
	for i := 0; i < 20; i++ {
		require.NoError(t, p.TellReward(0, 1))
	}
	arm, err = p.Choose()
	require.NoError(t, err)
	assert.Equal(t, 1, arm)
	assert.Equal(t, []int{21, 1}, p.Counts())
}

func TestUCB_TieBreaksLow(t *testing.T) {
	p, err := NewUCBPolicy(2, 0)
	require.NoError(t, err)
	require.NoError(t, p.Setup(3))
	for arm := 2; arm >= 0; arm-- {
		require.NoError(t, p.TellReward(arm, 3))
	}
	arm, err := p.Choose()
	require.NoError(t, err)
	assert.Equal(t, 0, arm)
}

func TestUCB_InvalidConstant(t *testing.T) {
	_, err := NewUCBPolicy(0, 0)
	assert.ErrorIs(t, err, ErrInvalidExplorationBonus)
	_, err = NewUCBPolicyConstructor(-1, 0)
	assert.ErrorIs(t, err, ErrInvalidExplorationBonus)
}

func TestConstructors_FreshPolicies(t *testing.T) {
	ucb, err := NewUCBPolicyConstructor(2, 3)
	require.NoError(t, err)
	constructors := []core.PolicyConstructor{
		NewEpsilonGreedyPolicyConstructor(ConstantRate(0.1), 3),
		ucb,
		&RandomPolicyConstructor{},
	}
	for _, c := range constructors {
		a := c.NewPolicy(rand.NewSource(1))
		b := c.NewPolicy(rand.NewSource(1))
		require.NotSame(t, a, b)
		require.NoError(t, a.Setup(2))
		require.NoError(t, a.TellReward(0, 10))
		require.NoError(t, b.Setup(2))
		assert.NotEqual(t, a.MeanEstimates(), b.MeanEstimates())
	}
}

func TestRandomPolicy_Covers(t *testing.T) {
	p := NewRandomPolicy(rand.NewSource(2))
	require.NoError(t, p.Setup(3))
	seen := make(map[int]bool)
	for i := 0; i < 100; i++ {
		arm, err := p.Choose()
		require.NoError(t, err)
		require.True(t, arm >= 0 && arm < 3)
		seen[arm] = true
	}
	assert.Len(t, seen, 3)
}
