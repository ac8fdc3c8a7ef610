package gap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchNode_Solve_feasibleRootCertifiesBound(t *testing.T) {
	inst := smallInstanceA(t)
	node := NewBranchNode(0, 0, inst, nil, InitialHeuristic(inst))

	require.NoError(t, node.Solve(context.Background()))
	require.True(t, node.IsFeasible())
	assert.True(t, node.BoundCertified, "column generation exhausted pricing with no stall")
	assert.GreaterOrEqual(t, node.LPValue(), 47.0-1e-6, "LP relaxation bound must dominate the IP optimum")
}

func TestBranchNode_Solve_infeasibleWhenRulesConflict(t *testing.T) {
	inst := smallInstanceA(t)
	rules := RuleSet{
		{Task: 0, Machine: 0, Assigned: true},
		{Task: 0, Machine: 1, Assigned: true},
	}
	node := NewBranchNode(0, 0, inst, rules, nil)

	require.NoError(t, node.Solve(context.Background()))
	assert.False(t, node.IsFeasible(), "task 0 cannot be forced onto both machines at once")
}

func TestBranchNode_InheritedColumnsFilteredByRules(t *testing.T) {
	inst := smallInstanceA(t)
	inherited := []Schedule{{Machine: 0, Tasks: []int{0, 1}}}
	rules := RuleSet{{Task: 0, Machine: 0, Assigned: false}}

	node := NewBranchNode(0, 0, inst, rules, inherited)
	for _, s := range node.InheritedColumns() {
		assert.False(t, s.Machine == 0 && s.has(0), "the inherited column violates the node's own rule and must be dropped")
	}
}

func TestBranchNode_Solve_boundedByContextCancellation(t *testing.T) {
	inst := smallInstanceA(t)
	node := NewBranchNode(0, 0, inst, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := node.Solve(ctx)
	assert.Error(t, err)
}
