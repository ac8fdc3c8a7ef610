// Package lpengine provides a narrow abstraction over an LP/MIP backend, in
// the spirit of spec §6: callers build a Model out of Vars and Constrs, call
// Optimize, and read back objective value, variable values and (for LP-only
// models) constraint duals. The only concrete implementation wraps gonum's
// simplex solver and a branch-and-bound search for the integer case; no
// caller outside this package depends on gonum directly.
package lpengine

import (
	"context"
	"errors"
)

// Sense is the relational operator of a constraint.
type Sense int

const (
	LessOrEqual Sense = iota
	Equal
	GreaterOrEqual
)

// VarKind distinguishes continuous decision variables from binary ones.
// The engine has no notion of general integers: every model this repo
// builds is either a pure LP (RMP) or a 0/1 program (pricing knapsack).
type VarKind int

const (
	Continuous VarKind = iota
	Binary
)

// Status mirrors the backend's solve outcome.
type Status int

const (
	StatusUnsolved Status = iota
	Optimal
	Suboptimal
	Infeasible
	Unbounded
	Other
)

// Var is an opaque handle to a decision variable.
type Var struct {
	index int
	name  string
}

// Constr is an opaque handle to a constraint row.
type Constr struct {
	index int
	name  string
}

// Term is one (coefficient, variable) pair contributing to a constraint's
// left-hand side or to a partially built column.
type Term struct {
	Coef float64
	Var  *Var
}

// Assignment is one complete 0/1 solution harvested from a MILP solve; used
// by the pricing oracle to pull more than one candidate column per call.
type Assignment struct {
	Values    []float64
	Objective float64
}

var (
	ErrNoSolution  = errors.New("lpengine: no solution available")
	ErrNoDual      = errors.New("lpengine: dual values unavailable for this model")
	ErrNotOptimize = errors.New("lpengine: model has not been optimized")
)

// Model is the narrow LP/MIP backend contract from spec §6.
type Model interface {
	AddVar(lb, ub, objCoef float64, kind VarKind) *Var
	AddConstr(terms []Term, sense Sense, rhs float64, name string) *Constr

	// AddTerm appends one (coefficient, variable) term to an already-built
	// constraint — spec §6's add_terms, used by the RMP to register a new
	// column against its task/convexity constraints after they were built.
	AddTerm(c *Constr, v *Var, coef float64)

	Maximize()
	Minimize()

	Optimize(ctx context.Context) (Status, error)
	Status() Status

	ObjValue() (float64, error)
	VarValue(v *Var) (float64, error)

	// Dual returns the shadow price of constr's last solve. Only valid for
	// LP-only models (no Binary variables); returns ErrNoDual otherwise or
	// when the recovered basis is singular (degenerate LP).
	Dual(c *Constr) (float64, error)

	// SolutionPool returns the integer-feasible assignments kept from a
	// MILP solve whose objective is within tolerance of the optimum. Empty
	// for LP-only models. The gonum-backed search records only improving
	// incumbents, so for a MILP model the pool holds the optimum alone;
	// other assignments tied with it are not collected (harvesting more
	// would be an accelerator, not a correctness requirement — spec §9
	// Open Question 3).
	SolutionPool() []Assignment
}

// NewModel creates a fresh, empty model.
func NewModel(name string) Model {
	return newGonumModel(name)
}
