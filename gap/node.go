package gap

import (
	"context"
	"math"
)

const cgEpsilon = 1e-7

// stallLimit is STALL_LIMIT from spec.md §4.6: the number of consecutive
// column-generation iterations whose objective barely moves before a node
// gives up on proving its LP bound.
const stallLimit = 50

// BranchNode bundles a node's rule set, inherited column pool and RMP, and
// runs column generation to optimality of the restricted LP (spec.md §3/§4.6).
type BranchNode struct {
	ID, Parent int64

	inst  *Instance
	Rules RuleSet

	rmp     *RMP
	pricing *PricingOracle

	solved         bool
	infeasible     bool
	lpValue        float64
	BoundCertified bool
}

// NewBranchNode filters inherited's columns against rules, builds the RMP's
// constraints, and seeds it with the surviving columns plus one artificial
// slack per task, per spec.md §4.6 construction steps 1-3.
func NewBranchNode(id, parent int64, inst *Instance, rules RuleSet, inherited []Schedule) *BranchNode {
	n := &BranchNode{
		ID:      id,
		Parent:  parent,
		inst:    inst,
		Rules:   rules,
		rmp:     NewRMP(inst, rules),
		pricing: NewPricingOracle(inst, rules),
	}

	for _, s := range inherited {
		if rules.AllowsSchedule(s.Machine, committedSet(s.Tasks)) {
			n.rmp.AddColumn(s)
		}
	}
	for t := 0; t < inst.NumTasks(); t++ {
		n.rmp.AddArtificial(t)
	}
	return n
}

// Solve runs the column-generation loop of spec.md §4.6 to termination:
// stall, unavailable duals, or no machine yielding a new column.
func (n *BranchNode) Solve(ctx context.Context) error {
	prevObj := math.NaN()
	stallCount := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := n.rmp.Solve(ctx); err != nil {
			return err
		}
		if !n.rmp.IsFeasible() {
			n.infeasible = true
			n.solved = true
			return nil
		}

		obj := n.rmp.ObjectiveValue()
		if !math.IsNaN(prevObj) && math.Abs(obj-prevObj) <= cgEpsilon {
			stallCount++
		} else {
			stallCount = 0
		}
		prevObj = obj

		if stallCount > stallLimit {
			// Open Question 2: a stalled bound is not a proven LP optimum;
			// the driver must not prune by it, only branch.
			n.BoundCertified = false
			break
		}

		pi, mu, ok := n.rmp.Duals()
		if !ok {
			n.BoundCertified = false
			break
		}

		addedAny := false
		for m := 0; m < n.inst.NumMachines(); m++ {
			schedules, err := n.pricing.Price(ctx, m, pi, mu[m])
			if err != nil {
				return err
			}
			for _, s := range schedules {
				if _, added := n.rmp.AddColumn(s); added {
					addedAny = true
				}
			}
		}
		if !addedAny {
			n.BoundCertified = true
			break
		}
	}

	n.lpValue = n.rmp.ObjectiveValue()
	n.solved = true
	return nil
}

func (n *BranchNode) IsFeasible() bool { return n.solved && !n.infeasible }
func (n *BranchNode) LPValue() float64 { return n.lpValue }

func (n *BranchNode) IsInteger() bool { return n.IsFeasible() && n.rmp.IsInteger() }

func (n *BranchNode) FractionalAssignment() (machine, task int, ok bool) {
	return n.rmp.FractionalAssignment()
}

func (n *BranchNode) IntegerSchedules() []Schedule { return n.rmp.IntegerSchedules() }

// InheritedColumns returns the node's current column pool, for deep-copying
// into children.
func (n *BranchNode) InheritedColumns() []Schedule { return n.rmp.Columns() }
