// Package standalone builds the monolithic Dantzig-Wolfe reformulation of a
// GAP instance directly: enumerate every capacity-feasible machine schedule
// and solve the resulting LP over all of them at once. It exists only to
// cross-check the column-generation bound produced by gap.Driver on small
// instances (spec.md §8 testable property 4) — it is not part of the
// production solve path and scales combinatorially, so it is only usable on
// toy-sized instances.
package standalone

import (
	"context"
	"fmt"

	"github.com/gap-solve/branchprice/gap"
	"github.com/gap-solve/branchprice/internal/lpengine"
)

// AllFeasibleSchedules enumerates every subset of tasks that fits machine
// m's capacity, ported from the original source's recursive
// FeasibleMachineSchedulesFinder (there expressed as nested subset
// recursion over sorted task ids; here as an explicit DFS over the same
// ordering to keep the enumeration finite and duplicate-free).
func AllFeasibleSchedules(inst *gap.Instance, m int) []gap.Schedule {
	var out []gap.Schedule
	var assignment []int

	var weight float64
	var recur func(next int)
	recur = func(next int) {
		out = append(out, gap.Schedule{Machine: m, Tasks: append([]int(nil), assignment...)})
		if next >= inst.NumTasks() {
			return
		}
		for t := next; t < inst.NumTasks(); t++ {
			w := inst.Weight(m, t)
			if weight+w > inst.Capacity(m)+1e-9 {
				continue
			}
			weight += w
			assignment = append(assignment, t)
			recur(t + 1)
			assignment = assignment[:len(assignment)-1]
			weight -= w
		}
	}
	recur(0)
	return out
}

// LPOptimum builds the full DW LP over every non-empty capacity-feasible
// schedule of every machine, consistent with rules, and returns its optimal
// value. The empty schedule is not a column. Intended
// for small instances only: the schedule count is exponential in tasks per
// machine.
func LPOptimum(ctx context.Context, inst *gap.Instance, rules gap.RuleSet) (float64, error) {
	model := lpengine.NewModel("standalone-dw")
	model.Maximize()

	taskConstr := make([]*lpengine.Constr, inst.NumTasks())
	for t := range taskConstr {
		taskConstr[t] = model.AddConstr(nil, lpengine.Equal, 1, "task")
	}
	machineConstr := make([]*lpengine.Constr, inst.NumMachines())
	for m := range machineConstr {
		machineConstr[m] = model.AddConstr(nil, lpengine.Equal, 1, "machine")
	}

	anyColumn := false
	for m := 0; m < inst.NumMachines(); m++ {
		for _, s := range AllFeasibleSchedules(inst, m) {
			if len(s.Tasks) == 0 {
				continue
			}
			committed := make(map[int]bool, len(s.Tasks))
			for _, t := range s.Tasks {
				committed[t] = true
			}
			if !rules.AllowsSchedule(m, committed) {
				continue
			}
			v := model.AddVar(0, 1, inst.ScheduleProfit(m, s.Tasks), lpengine.Continuous)
			for _, t := range s.Tasks {
				model.AddTerm(taskConstr[t], v, 1)
			}
			model.AddTerm(machineConstr[m], v, 1)
			anyColumn = true
		}
	}
	if !anyColumn {
		return 0, fmt.Errorf("standalone: no feasible schedule under the given rules")
	}

	status, err := model.Optimize(ctx)
	if err != nil {
		return 0, err
	}
	if status != lpengine.Optimal && status != lpengine.Suboptimal {
		return 0, fmt.Errorf("standalone: lp solve status %v", status)
	}
	return model.ObjValue()
}
