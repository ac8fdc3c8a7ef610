package gap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDriver_SmallInstanceA is the literal scenario from spec.md §8:
// optimum profit 47.
func TestDriver_SmallInstanceA(t *testing.T) {
	inst := smallInstanceA(t)
	driver := NewDriver(inst, Options{})

	result, err := driver.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.InDelta(t, 47.0, result.BestValue, 1e-6)

	seen := make(map[int]int)
	for _, s := range result.Schedules {
		for _, task := range s.Tasks {
			seen[task] = s.Machine
		}
	}
	assert.Len(t, seen, inst.NumTasks(), "every task must be assigned exactly once")
}

// TestDriver_TrivialCapacityZero: all capacities 0 means only empty
// schedules are feasible, and with "=1" task constraints the instance is
// infeasible — there is no incumbent.
func TestDriver_TrivialCapacityZero(t *testing.T) {
	inst, err := NewInstance(
		[][]float64{{1, 1, 1}},
		[][]float64{{1, 1, 1}},
		[]float64{0},
	)
	require.NoError(t, err)

	driver := NewDriver(inst, Options{})
	result, err := driver.Solve(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Found)
}

// TestDriver_SingleMachineMatchesKnapsack: with one machine the problem
// reduces to a 0/1 knapsack; branch-and-price must find the same optimum a
// direct enumeration would.
func TestDriver_SingleMachineMatchesKnapsack(t *testing.T) {
	weight := [][]float64{{4, 1, 2, 1, 4, 3, 8}}
	profit := [][]float64{{6, 9, 4, 2, 10, 3, 6}}
	capacity := []float64{11}

	inst, err := NewInstance(weight, profit, capacity)
	require.NoError(t, err)

	driver := NewDriver(inst, Options{})
	result, err := driver.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, result.Found)

	want := bruteForceKnapsack(weight[0], profit[0], capacity[0])
	assert.InDelta(t, want, result.BestValue, 1e-6)
}

func bruteForceKnapsack(weight, profit []float64, capacity float64) float64 {
	n := len(weight)
	best := 0.0
	for mask := 0; mask < (1 << n); mask++ {
		var w, p float64
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				w += weight[i]
				p += profit[i]
			}
		}
		if w <= capacity && p > best {
			best = p
		}
	}
	return best
}

// TestDriver_ForcingRule: with task 0 forced onto machine 1, any returned
// incumbent must include task 0 on machine 1.
func TestDriver_ForcingRule(t *testing.T) {
	inst := smallInstanceA(t)
	rules := RuleSet{{Task: 0, Machine: 1, Assigned: true}}

	driver := NewDriver(inst, Options{})
	result := solveFromNode(t, driver, inst, rules)
	require.True(t, result.Found)

	found := false
	for _, s := range result.Schedules {
		if s.Machine == 1 {
			for _, task := range s.Tasks {
				if task == 0 {
					found = true
				}
			}
		}
	}
	assert.True(t, found, "task 0 must be assigned to machine 1")
}

// TestDriver_ForbidAllOnMachine0: forbidding every task on machine 0 leaves
// machine 1 to solve alone, matching a single-machine optimum on it.
func TestDriver_ForbidAllOnMachine0(t *testing.T) {
	inst := smallInstanceA(t)
	var rules RuleSet
	for t := 0; t < inst.NumTasks(); t++ {
		rules = append(rules, BranchingRule{Task: t, Machine: 0, Assigned: false})
	}

	driver := NewDriver(inst, Options{})
	result := solveFromNode(t, driver, inst, rules)
	require.True(t, result.Found)

	singleWeight := make([]float64, inst.NumTasks())
	singleProfit := make([]float64, inst.NumTasks())
	for tt := 0; tt < inst.NumTasks(); tt++ {
		singleWeight[tt] = inst.Weight(1, tt)
		singleProfit[tt] = inst.Profit(1, tt)
	}
	want := bruteForceKnapsack(singleWeight, singleProfit, inst.Capacity(1))
	assert.InDelta(t, want, result.BestValue, 1e-6)

	for _, s := range result.Schedules {
		assert.NotEqual(t, 0, s.Machine)
	}
}

// solveFromNode runs the driver's tree search starting from an explicit
// root rule set: it builds the root node directly (the exported Solve always
// starts from an empty rule set) and runs runFrom, a copy of Driver.Solve's
// loop without its logging and observer calls.
func solveFromNode(t *testing.T, d *Driver, inst *Instance, rules RuleSet) Result {
	t.Helper()
	root := NewBranchNode(d.newNodeID(), 0, inst, rules, InitialHeuristic(inst))
	return runFrom(t, d, root)
}

func runFrom(t *testing.T, d *Driver, root *BranchNode) Result {
	t.Helper()
	ctx := context.Background()
	stack := []*BranchNode{root}
	var result Result

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		require.NoError(t, node.Solve(ctx))
		if !node.IsFeasible() {
			continue
		}
		if node.BoundCertified && result.Found && node.LPValue() <= result.BestValue+pruneEpsilon {
			continue
		}
		if node.IsInteger() {
			schedules := node.IntegerSchedules()
			assigned := 0
			for _, s := range schedules {
				assigned += len(s.Tasks)
			}
			if assigned < d.inst.NumTasks() {
				continue
			}
			if !result.Found || node.LPValue() > result.BestValue+pruneEpsilon {
				result.Found = true
				result.BestValue = node.LPValue()
				result.Schedules = schedules
			}
			continue
		}
		m, tk, ok := node.FractionalAssignment()
		if !ok {
			continue
		}
		inherited := node.InheritedColumns()
		stack = append(stack,
			NewBranchNode(d.newNodeID(), node.ID, d.inst, node.Rules.WithRule(BranchingRule{Task: tk, Machine: m, Assigned: true}), cloneSchedules(inherited)),
			NewBranchNode(d.newNodeID(), node.ID, d.inst, node.Rules.WithRule(BranchingRule{Task: tk, Machine: m, Assigned: false}), cloneSchedules(inherited)),
		)
	}
	return result
}
