package lpengine

import (
	"context"
	"errors"

	"gonum.org/v1/gonum/optimize/convex/lp"
)

// gonumModel is the sole Model implementation: a pure-LP solve via
// gonum's simplex for continuous models (the RMP), or a 0/1 branch-and-bound
// search (package-local search, see branchbound.go) for models that declared
// at least one Binary variable (the pricing knapsacks). Mirrors how the
// teacher's api.go held onto a Problem and lowered it to a concrete solver
// only at Optimize time.
type gonumModel struct {
	name string

	vars     []*varDef
	constrs  []*constrDef
	maximize bool
	hasBinary bool

	status Status
	sf     *standardForm
	x      []float64
	objRaw float64

	duals   []float64
	dualErr error

	pool []Assignment
}

func newGonumModel(name string) Model {
	return &gonumModel{name: name}
}

func (m *gonumModel) AddVar(lb, ub, objCoef float64, kind VarKind) *Var {
	idx := len(m.vars)
	m.vars = append(m.vars, &varDef{lb: lb, ub: ub, obj: objCoef, kind: kind})
	if kind == Binary {
		m.hasBinary = true
	}
	return &Var{index: idx}
}

func (m *gonumModel) AddConstr(terms []Term, sense Sense, rhs float64, name string) *Constr {
	idx := len(m.constrs)
	m.constrs = append(m.constrs, &constrDef{terms: terms, sense: sense, rhs: rhs, name: name})
	return &Constr{index: idx, name: name}
}

func (m *gonumModel) AddTerm(c *Constr, v *Var, coef float64) {
	con := m.constrs[c.index]
	con.terms = append(con.terms, Term{Coef: coef, Var: v})
}

func (m *gonumModel) Maximize() { m.maximize = true }
func (m *gonumModel) Minimize() { m.maximize = false }

func (m *gonumModel) Status() Status { return m.status }

func (m *gonumModel) Optimize(ctx context.Context) (Status, error) {
	sf, err := buildStandardForm(m.vars, m.constrs, m.maximize)
	if err != nil {
		m.status = Other
		return m.status, err
	}
	m.sf = sf

	if m.hasBinary {
		return m.optimizeMILP(ctx)
	}
	return m.optimizeLP()
}

func (m *gonumModel) optimizeLP() (Status, error) {
	z, x, err := lp.Simplex(m.sf.c, m.sf.A, m.sf.b, 0, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			m.status = Infeasible
			return m.status, nil
		}
		if errors.Is(err, lp.ErrUnbounded) {
			m.status = Unbounded
			return m.status, nil
		}
		m.status = Other
		return m.status, err
	}

	m.x = x
	m.objRaw = z
	m.status = Optimal

	duals, derr := recoverDuals(m.sf, x, m.maximize)
	m.duals, m.dualErr = duals, derr
	return m.status, nil
}

func (m *gonumModel) optimizeMILP(ctx context.Context) (Status, error) {
	integrality := make([]bool, len(m.sf.c))
	for i, v := range m.vars {
		if v.kind == Binary {
			integrality[i] = true
		}
	}

	best, pool, err := search(ctx, m.sf, integrality, BranchMaxFun, dummyMiddleware{})
	if err != nil {
		if errors.Is(err, errSubproblemInfeasible) {
			m.status = Infeasible
			return m.status, nil
		}
		m.status = Other
		return m.status, err
	}

	m.x = best.x
	m.objRaw = best.z
	m.status = Optimal
	m.dualErr = ErrNoDual

	m.pool = make([]Assignment, len(pool))
	for i, a := range pool {
		m.pool[i] = Assignment{Values: a.Values, Objective: m.correctSign(a.Objective)}
	}
	return m.status, nil
}

// correctSign converts an internal minimize-sense objective back to the
// model's declared sense: buildStandardForm negates c when maximizing, so
// every raw z it produces needs negating back.
func (m *gonumModel) correctSign(z float64) float64 {
	if m.maximize {
		return -z
	}
	return z
}

func (m *gonumModel) ObjValue() (float64, error) {
	if m.status != Optimal {
		return 0, ErrNoSolution
	}
	return m.correctSign(m.objRaw), nil
}

func (m *gonumModel) VarValue(v *Var) (float64, error) {
	if m.status != Optimal {
		return 0, ErrNoSolution
	}
	if v.index < 0 || v.index >= len(m.x) {
		return 0, ErrNoSolution
	}
	return m.x[v.index], nil
}

func (m *gonumModel) Dual(c *Constr) (float64, error) {
	if m.status != Optimal {
		return 0, ErrNotOptimize
	}
	if m.hasBinary {
		return 0, ErrNoDual
	}
	if m.dualErr != nil {
		return 0, ErrNoDual
	}
	row := m.sf.rowForConstr[c.index]
	if row < 0 || row >= len(m.duals) {
		return 0, ErrNoDual
	}
	return m.duals[row], nil
}

func (m *gonumModel) SolutionPool() []Assignment {
	return m.pool
}
