package gap

import (
	"context"
	"fmt"

	"github.com/gap-solve/branchprice/internal/lpengine"
)

const pricingEpsilon = 1e-6

// PricingOracle builds and solves the per-machine 0/1 knapsack of spec.md
// §4.4, honoring the node's rule fixings.
type PricingOracle struct {
	inst  *Instance
	rules RuleSet
}

func NewPricingOracle(inst *Instance, rules RuleSet) *PricingOracle {
	return &PricingOracle{inst: inst, rules: rules}
}

// Price solves machine m's knapsack against dual prices pi (per task) and
// mu (this machine's convexity dual), returning every harvested schedule
// with positive reduced cost. A nil, nil result means pricing found nothing
// to add for this machine — not an error (spec.md §7 "pricing infeasible:
// local; treat as no new column").
func (p *PricingOracle) Price(ctx context.Context, m int, pi []float64, mu float64) ([]Schedule, error) {
	model := lpengine.NewModel(fmt.Sprintf("pricing-m%d", m))
	model.Maximize()

	vars := make([]*lpengine.Var, p.inst.NumTasks())
	for t := 0; t < p.inst.NumTasks(); t++ {
		lb, ub := 0.0, 1.0
		if val, fixed := p.rules.fixedValue(m, t); fixed {
			lb, ub = val, val
		}
		obj := p.inst.Profit(m, t) - pi[t]
		vars[t] = model.AddVar(lb, ub, obj, lpengine.Binary)
	}

	terms := make([]lpengine.Term, p.inst.NumTasks())
	for t := 0; t < p.inst.NumTasks(); t++ {
		terms[t] = lpengine.Term{Coef: p.inst.Weight(m, t), Var: vars[t]}
	}
	model.AddConstr(terms, lpengine.LessOrEqual, p.inst.Capacity(m), "capacity")

	status, err := model.Optimize(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: pricing machine %d: %v", ErrBackendFailure, m, err)
	}
	if status == lpengine.Infeasible {
		return nil, nil
	}
	if status != lpengine.Optimal && status != lpengine.Suboptimal {
		return nil, fmt.Errorf("%w: pricing machine %d: status %v", ErrBackendFailure, m, status)
	}

	obj, err := model.ObjValue()
	if err != nil {
		return nil, nil
	}
	if obj-mu <= pricingEpsilon {
		return nil, nil
	}

	pool := model.SolutionPool()
	if len(pool) == 0 {
		s, ok := schedulesFromValues(m, p.inst, collectValues(model, vars))
		if !ok {
			return nil, nil
		}
		return []Schedule{*s}, nil
	}

	var out []Schedule
	seen := make(map[string]bool)
	for _, a := range pool {
		s, ok := schedulesFromValues(m, p.inst, a.Values)
		if !ok {
			continue
		}
		key := s.key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, *s)
	}
	return out, nil
}

func collectValues(model lpengine.Model, vars []*lpengine.Var) []float64 {
	out := make([]float64, len(vars))
	for i, v := range vars {
		val, err := model.VarValue(v)
		if err != nil {
			return nil
		}
		out[i] = val
	}
	return out
}

// schedulesFromValues turns a 0/1 solution vector into the Schedule it
// represents, skipping it (ok=false) if it is empty (no column to add).
func schedulesFromValues(m int, inst *Instance, values []float64) (*Schedule, bool) {
	if values == nil {
		return nil, false
	}
	var tasks []int
	for t, v := range values {
		if v > 0.5 {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == 0 {
		return nil, false
	}
	s := Schedule{Machine: m, Tasks: tasks}
	if !s.feasible(inst) {
		return nil, false
	}
	return &s, true
}
