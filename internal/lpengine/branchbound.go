package lpengine

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const bnbEpsilon = 1e-6

// BranchHeuristic selects which fractional integer variable a bbNode
// branches on next. Ported from the teacher's branching.go unchanged.
type BranchHeuristic int

const (
	BranchMaxFun BranchHeuristic = iota
	BranchMostInfeasible
)

// bnbConstraint is one branch-and-bound-added inequality: gsharp . x <= hsharp.
type bnbConstraint struct {
	branchedVariable int
	hsharp           float64
	gsharp           []float64
}

// bbNode is one node of the 0/1 enumeration tree explored while pricing a
// knapsack subproblem. Its c/A/b are already in equality-standard-form
// (built once by buildStandardForm); only the extra bnbConstraints grow
// from node to node, exactly as in the teacher's subProblem.
type bbNode struct {
	id, parent int64

	c []float64
	A *mat.Dense
	b []float64

	integralityConstraints []bool
	heuristic               BranchHeuristic
	bnbConstraints          []bnbConstraint
}

type bbSolution struct {
	node *bbNode
	x    []float64
	z    float64
	err  error
}

// combineInequalities folds this node's accumulated branch constraints into
// a single G, h pair, or returns nil, nil if there are none yet.
func (n *bbNode) combineInequalities() (*mat.Dense, []float64) {
	if len(n.bnbConstraints) == 0 {
		return nil, nil
	}
	h := make([]float64, len(n.bnbConstraints))
	var gdata []float64
	for i, con := range n.bnbConstraints {
		gdata = append(gdata, con.gsharp...)
		h[i] = con.hsharp
	}
	return mat.NewDense(len(n.bnbConstraints), len(n.c), gdata), h
}

func (n *bbNode) solve() bbSolution {
	G, h := n.combineInequalities()

	var z float64
	var x []float64
	var err error

	if G != nil {
		c, A, b := convertToEqualities(n.c, n.A, n.b, G, h)
		z, x, err = lp.Simplex(c, A, b, 0, nil)
		if err == nil && len(x) != len(n.c) {
			x = x[:len(n.c)]
		}
	} else {
		z, x, err = lp.Simplex(n.c, n.A, n.b, 0, nil)
	}

	return bbSolution{node: n, x: x, z: z, err: err}
}

func (n *bbNode) copyNode() *bbNode {
	cp := &bbNode{
		id:                     n.id,
		parent:                 n.id,
		c:                      n.c,
		A:                      n.A,
		b:                      n.b,
		integralityConstraints: n.integralityConstraints,
		heuristic:              n.heuristic,
		bnbConstraints:         make([]bnbConstraint, len(n.bnbConstraints)),
	}
	copy(cp.bnbConstraints, n.bnbConstraints)
	return cp
}

// branch splits on the variable selected by the node's heuristic, creating
// a "<= floor" child and a ">= floor+1" child (the latter expressed as a
// "<=" row by negation, as in the teacher's subproblem.go).
func (s bbSolution) branch() (p1, p2 *bbNode) {
	var branchOn int
	switch s.node.heuristic {
	case BranchMostInfeasible:
		branchOn = mostInfeasibleBranchPoint(s.x, s.node.integralityConstraints)
	default:
		branchOn = maxFunBranchPoint(s.node.c, s.x, s.node.integralityConstraints)
	}

	floor := math.Floor(s.x[branchOn])

	p1 = s.node.getChild(branchOn, 1, floor)
	p2 = s.node.getChild(branchOn, -1, -(floor + 1))
	return p1, p2
}

func (n *bbNode) getChild(branchOn int, factor float64, smallerOrEqualThan float64) *bbNode {
	child := n.copyNode()
	con := bnbConstraint{
		branchedVariable: branchOn,
		hsharp:           smallerOrEqualThan,
		gsharp:           make([]float64, len(n.c)),
	}
	con.gsharp[branchOn] = factor
	child.bnbConstraints = append(child.bnbConstraints, con)
	return child
}

// maxFunBranchPoint picks, among the integrality-constrained variables whose
// value in x is still fractional, the one with the largest absolute
// objective coefficient.
func maxFunBranchPoint(c, x []float64, integralityConstraints []bool) int {
	var candidateValue float64
	currentCandidate := 0
	for i, v := range c {
		if !integralityConstraints[i] {
			continue
		}
		if _, f := math.Modf(x[i]); f <= bnbEpsilon || f >= 1-bnbEpsilon {
			continue
		}
		if math.Abs(v) >= candidateValue {
			currentCandidate = i
			candidateValue = math.Abs(v)
		}
	}
	return currentCandidate
}

// mostInfeasibleBranchPoint picks the integrality-constrained variable
// whose fractional part is closest to one half.
func mostInfeasibleBranchPoint(x []float64, integralityConstraints []bool) int {
	candidateRemainder := 1.0
	currentCandidate := 0
	for i, v := range x {
		if i >= len(integralityConstraints) || !integralityConstraints[i] {
			continue
		}
		_, f := math.Modf(v)
		remainder := math.Abs(0.5 - f)
		if remainder <= candidateRemainder {
			currentCandidate = i
			candidateRemainder = remainder
		}
	}
	return currentCandidate
}

// feasibleForIP reports whether every integrality-constrained entry of x is
// within bnbEpsilon of an integer.
func feasibleForIP(integralityConstraints []bool, x []float64) bool {
	for i, constrained := range integralityConstraints {
		if !constrained {
			continue
		}
		_, f := math.Modf(x[i])
		if f > bnbEpsilon && f < 1-bnbEpsilon {
			return false
		}
	}
	return true
}

var (
	errSubproblemInfeasible = errors.New("lpengine: subproblem has no feasible solution")
	errSubproblemDegenerate = errors.New("lpengine: subproblem matrix is singular")
)

// search runs sequential branch-and-bound depth-first (LIFO) over the 0/1
// program described by sf/integrality, reporting the incumbent and a
// solution pool built from the improving incumbents found along the way
// (see poolFrom). This
// is the enumeration loop the teacher's own tree.go assumed but never
// defined in the retrieved snapshot (it referenced newEnumerationTree /
// startSearch without providing them).
func search(ctx context.Context, sf *standardForm, integrality []bool, heuristic BranchHeuristic, mid BnbMiddleware) (*bbSolution, []Assignment, error) {
	root := &bbNode{
		id:                     0,
		parent:                 0,
		c:                      sf.c,
		A:                      sf.A,
		b:                      sf.b,
		integralityConstraints: integrality,
		heuristic:              heuristic,
	}
	mid.NewSubProblem(SubproblemInfo{ID: root.id, Parent: root.parent})

	stack := []*bbNode{root}
	nextID := int64(1)

	var incumbent *bbSolution
	var history []bbSolution

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			if incumbent == nil {
				return nil, nil, err
			}
			return incumbent, poolFrom(history, incumbent, sf.nReal), err
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		soln := node.solve()

		info := DecisionInfo{NodeID: node.id, Objective: soln.z, Values: soln.x}

		if soln.err != nil {
			decision := SubproblemNotFeasible
			if errors.Is(soln.err, lp.ErrSingular) {
				decision = SubproblemDegenerate
			}
			mid.ProcessDecision(info, decision)
			continue
		}

		if incumbent != nil && soln.z >= incumbent.z-bnbEpsilon {
			mid.ProcessDecision(info, WorseThanIncumbent)
			continue
		}

		if feasibleForIP(node.integralityConstraints, soln.x) {
			incumbent = &soln
			history = append(history, soln)
			mid.ProcessDecision(info, BetterThanIncumbentFeasible)
			continue
		}

		mid.ProcessDecision(info, BetterThanIncumbentBranching)

		p1, p2 := soln.branch()
		p1.id, p2.id = nextID, nextID+1
		nextID += 2
		mid.NewSubProblem(SubproblemInfo{ID: p1.id, Parent: node.id})
		mid.NewSubProblem(SubproblemInfo{ID: p2.id, Parent: node.id})
		stack = append(stack, p1, p2)
	}

	if incumbent == nil {
		return nil, nil, errSubproblemInfeasible
	}
	return incumbent, poolFrom(history, incumbent, sf.nReal), nil
}

// poolFrom turns the trail of improving incumbents into a solution pool,
// keeping only those within tolerance of the final optimum (spec §4.4).
// Each new incumbent improves on the previous one by more than bnbEpsilon,
// and leaves that do not are pruned before being recorded, so the pool
// holds exactly one assignment: the final optimum.
func poolFrom(history []bbSolution, best *bbSolution, nReal int) []Assignment {
	var pool []Assignment
	for _, s := range history {
		if s.z <= best.z+bnbEpsilon {
			vals := append([]float64(nil), s.x[:nReal]...)
			pool = append(pool, Assignment{Values: vals, Objective: s.z})
		}
	}
	return pool
}
