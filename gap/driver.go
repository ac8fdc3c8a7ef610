package gap

import (
	"context"
	"fmt"
	"log/slog"
)

const pruneEpsilon = 1e-7

// Observer is an optional hook into the driver's tree search, used by
// internal/metrics to count nodes explored and incumbent updates without
// the gap package depending on Prometheus directly.
type Observer interface {
	NodeSolved(nodeID, parentID int64, lpValue float64, certified bool)
	IncumbentUpdated(value float64)
}

// Options configures a Driver. The library itself has no configuration
// framework beyond this plain struct; cmd/gap-solve is what wires flags
// into it.
type Options struct {
	Logger   *slog.Logger
	Observer Observer
}

// Result is the outcome of a full branch-and-price solve.
type Result struct {
	Found     bool
	BestValue float64
	Schedules []Schedule
}

// Driver is the branch-and-price tree search of spec.md §4.7: LIFO node
// order, pruning against the incumbent, branching on the most fractional
// (machine, task) pair.
type Driver struct {
	inst   *Instance
	opts   Options
	nextID int64
}

func NewDriver(inst *Instance, opts Options) *Driver {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Driver{inst: inst, opts: opts}
}

func (d *Driver) newNodeID() int64 {
	id := d.nextID
	d.nextID++
	return id
}

// Solve runs the tree search to completion and reports the incumbent, or
// Found=false if the instance admits no integer-feasible solution under the
// given rules (spec.md §7 "no incumbent at end").
func (d *Driver) Solve(ctx context.Context) (Result, error) {
	root := NewBranchNode(d.newNodeID(), 0, d.inst, nil, InitialHeuristic(d.inst))
	stack := []*BranchNode{root}

	var result Result

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := node.Solve(ctx); err != nil {
			return result, fmt.Errorf("%w: node %d: %v", ErrBackendFailure, node.ID, err)
		}
		if d.opts.Observer != nil {
			d.opts.Observer.NodeSolved(node.ID, node.Parent, node.LPValue(), node.BoundCertified)
		}

		if !node.IsFeasible() {
			d.opts.Logger.Debug("node pruned", "node_id", node.ID, "reason", "rmp infeasible")
			continue
		}

		if node.BoundCertified && result.Found && node.LPValue() <= result.BestValue+pruneEpsilon {
			d.opts.Logger.Debug("node pruned", "node_id", node.ID, "reason", "bound", "lp_value", node.LPValue())
			continue
		}

		if node.IsInteger() {
			schedules := node.IntegerSchedules()
			assigned := 0
			for _, s := range schedules {
				assigned += len(s.Tasks)
			}
			if assigned < d.inst.NumTasks() {
				// An artificial slack column still covers a task, so this is
				// not an assignment of every task.
				d.opts.Logger.Debug("node pruned", "node_id", node.ID, "reason", "artificial column in integer solution")
				continue
			}
			if !result.Found || node.LPValue() > result.BestValue+pruneEpsilon {
				result.Found = true
				result.BestValue = node.LPValue()
				result.Schedules = schedules
				d.opts.Logger.Info("new incumbent", "node_id", node.ID, "value", result.BestValue)
				if d.opts.Observer != nil {
					d.opts.Observer.IncumbentUpdated(result.BestValue)
				}
			}
			continue
		}

		m, t, ok := node.FractionalAssignment()
		if !ok {
			continue
		}

		inherited := node.InheritedColumns()
		force := NewBranchNode(d.newNodeID(), node.ID, d.inst,
			node.Rules.WithRule(BranchingRule{Task: t, Machine: m, Assigned: true}), cloneSchedules(inherited))
		forbid := NewBranchNode(d.newNodeID(), node.ID, d.inst,
			node.Rules.WithRule(BranchingRule{Task: t, Machine: m, Assigned: false}), cloneSchedules(inherited))
		stack = append(stack, force, forbid)
	}

	return result, nil
}

// cloneSchedules deep-copies a column pool so siblings never share mutable
// task slices (spec.md §9 "deep copy on branching").
func cloneSchedules(src []Schedule) []Schedule {
	out := make([]Schedule, len(src))
	for i, s := range src {
		tasks := make([]int, len(s.Tasks))
		copy(tasks, s.Tasks)
		out[i] = Schedule{Machine: s.Machine, Tasks: tasks}
	}
	return out
}
