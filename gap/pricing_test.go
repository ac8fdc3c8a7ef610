package gap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPricingOracle_positiveReducedCost checks that a machine with slack
// capacity and generous profits yields a schedule whenever the dual prices
// leave room for positive reduced cost (spec.md §4.4).
func TestPricingOracle_positiveReducedCost(t *testing.T) {
	inst := smallInstanceA(t)
	oracle := NewPricingOracle(inst, nil)

	pi := make([]float64, inst.NumTasks())
	schedules, err := oracle.Price(context.Background(), 0, pi, 0)
	require.NoError(t, err)
	require.NotEmpty(t, schedules, "zero duals leave every task's full profit as reduced cost")

	for _, s := range schedules {
		assert.Equal(t, 0, s.Machine)
		assert.True(t, s.feasible(inst))
	}
}

// TestPricingOracle_dualsAbsorbAllProfit: when every dual exactly equals its
// task's profit on this machine and mu absorbs any remainder, the knapsack's
// best reduced cost is <= 0 and pricing must return nothing.
func TestPricingOracle_dualsAbsorbAllProfit(t *testing.T) {
	inst := smallInstanceA(t)
	oracle := NewPricingOracle(inst, nil)

	pi := make([]float64, inst.NumTasks())
	for t := 0; t < inst.NumTasks(); t++ {
		pi[t] = inst.Profit(0, t)
	}
	schedules, err := oracle.Price(context.Background(), 0, pi, 0)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

// TestPricingOracle_respectsForbiddenAssignment: with a rule forbidding
// task 0 on machine 0, task 0 must never appear in a harvested schedule for
// machine 0.
func TestPricingOracle_respectsForbiddenAssignment(t *testing.T) {
	inst := smallInstanceA(t)
	rules := RuleSet{{Task: 0, Machine: 0, Assigned: false}}
	oracle := NewPricingOracle(inst, rules)

	pi := make([]float64, inst.NumTasks())
	schedules, err := oracle.Price(context.Background(), 0, pi, 0)
	require.NoError(t, err)

	for _, s := range schedules {
		assert.False(t, s.has(0), "task 0 is forbidden on machine 0 by the rule set")
	}
}

// TestPricingOracle_infeasibleCapacity: a machine with zero capacity and
// every task carrying positive weight can only ever price the empty
// schedule, which is never harvested.
func TestPricingOracle_infeasibleCapacity(t *testing.T) {
	inst, err := NewInstance(
		[][]float64{{1, 1, 1}},
		[][]float64{{5, 5, 5}},
		[]float64{0},
	)
	require.NoError(t, err)
	oracle := NewPricingOracle(inst, nil)

	pi := make([]float64, inst.NumTasks())
	schedules, err := oracle.Price(context.Background(), 0, pi, 0)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}
