package lpengine

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// varDef and constrDef are the model's own bookkeeping of what was added
// through AddVar/AddConstr, kept separate from the numerical form that gets
// built right before solving (mirrors the teacher's Problem/Variable split
// from its concrete milpProblem).
type varDef struct {
	lb, ub  float64
	obj     float64
	kind    VarKind
	name    string
}

type constrDef struct {
	terms []Term
	sense Sense
	rhs   float64
	name  string
}

// standardForm is a minimize-c^T-x, A x = b, x >= 0 system, i.e. the same
// shape as the teacher's milpProblem after convertToEqualities, generalized
// to honor each variable's own lower/upper bound rather than only a global
// nonnegativity constraint.
type standardForm struct {
	c []float64
	A *mat.Dense
	b []float64

	// number of "real" (non-slack) variables; columns beyond this index in
	// A are slack variables introduced for inequality rows (constraint rows
	// and finite variable bounds); fixed bounds become equality rows with no
	// slack.
	nReal int

	// rowForConstr[i] is the final row of A that holds constrs[i], for dual
	// lookups after solving. Rows introduced for variable bounds have no
	// entry here.
	rowForConstr []int
}

// buildStandardForm assembles the equality-only system for a model's
// current variables and constraints. Variable bounds are folded in exactly
// like the teacher's api.go did for its Problem: a fixed variable (lb==ub)
// becomes a direct equality row; a one-sided bound becomes an inequality
// row, converted to an equality with a slack column.
func buildStandardForm(vars []*varDef, constrs []*constrDef, maximize bool) (*standardForm, error) {
	n := len(vars)
	if n == 0 {
		return nil, errors.New("lpengine: model has no variables")
	}

	c := make([]float64, n)
	for i, v := range vars {
		k := v.obj
		if maximize {
			k = -k
		}
		c[i] = k
	}

	var Adata, bData []float64
	var Gdata, hData []float64
	nEqRows, nIneqRows := 0, 0

	addEqRow := func(row []float64, rhs float64) {
		Adata = append(Adata, row...)
		bData = append(bData, rhs)
		nEqRows++
	}
	addIneqRow := func(row []float64, rhs float64) {
		Gdata = append(Gdata, row...)
		hData = append(hData, rhs)
		nIneqRows++
	}

	// kind/idx per constr, resolved to a final row index once the total
	// equality-row count is known (inequality rows are appended after all
	// equality rows once convertToEqualities runs).
	type rowRef struct {
		isEq bool
		idx  int
	}
	constrRow := make([]rowRef, len(constrs))

	for ci, con := range constrs {
		row := make([]float64, n)
		for _, t := range con.terms {
			row[t.Var.index] += t.Coef
		}
		switch con.sense {
		case Equal:
			addEqRow(row, con.rhs)
			constrRow[ci] = rowRef{isEq: true, idx: nEqRows - 1}
		case LessOrEqual:
			addIneqRow(row, con.rhs)
			constrRow[ci] = rowRef{isEq: false, idx: nIneqRows - 1}
		case GreaterOrEqual:
			neg := make([]float64, n)
			for i, v := range row {
				neg[i] = -v
			}
			addIneqRow(neg, -con.rhs)
			constrRow[ci] = rowRef{isEq: false, idx: nIneqRows - 1}
		}
	}

	for i, v := range vars {
		if v.lb == v.ub {
			row := make([]float64, n)
			row[i] = 1
			addEqRow(row, v.lb)
			continue
		}
		if !isPosInf(v.ub) {
			row := make([]float64, n)
			row[i] = 1
			addIneqRow(row, v.ub)
		}
		if v.lb != 0 {
			row := make([]float64, n)
			row[i] = -1
			addIneqRow(row, -v.lb)
		}
	}

	resolveRows := func(finalEqRows int) []int {
		out := make([]int, len(constrs))
		for i, r := range constrRow {
			if r.isEq {
				out[i] = r.idx
			} else {
				out[i] = finalEqRows + r.idx
			}
		}
		return out
	}

	var A *mat.Dense
	if nEqRows > 0 {
		A = mat.NewDense(nEqRows, n, Adata)
	}

	if nIneqRows == 0 {
		if A == nil {
			return nil, errors.New("lpengine: model has no constraints at all")
		}
		return &standardForm{c: c, A: A, b: bData, nReal: n, rowForConstr: resolveRows(nEqRows)}, nil
	}

	G := mat.NewDense(nIneqRows, n, Gdata)
	cNew, aNew, bNew := convertToEqualities(c, A, bData, G, hData)
	return &standardForm{c: cNew, A: aNew, b: bNew, nReal: n, rowForConstr: resolveRows(nEqRows)}, nil
}

func isPosInf(f float64) bool {
	return f > maxFiniteBound
}

// maxFiniteBound is the threshold past which an upper bound is treated as
// "no upper bound" — the RMP relies on this: its lambda variables carry
// math.Inf(1) as their upper bound (spec §4.5 forbids an explicit ub=1).
const maxFiniteBound = 1e300

// convertToEqualities folds an inequality system G x <= h into the
// equality system (A, b) using one slack variable per row. Ported from the
// teacher's subproblem.go of the same name; A may be nil (no prior equality
// rows) but G must not be.
func convertToEqualities(c []float64, A *mat.Dense, b []float64, G *mat.Dense, h []float64) (cNew []float64, aNew *mat.Dense, bNew []float64) {
	nVar := len(c)
	nCons := len(b)
	nIneq := len(h)

	nNewVar := nVar + nIneq
	nNewCons := nCons + nIneq

	cNew = make([]float64, nNewVar)
	copy(cNew, c)

	bNew = make([]float64, nNewCons)
	copy(bNew, b)
	copy(bNew[nCons:], h)

	aNew = mat.NewDense(nNewCons, nNewVar, nil)
	if A != nil {
		aNew.Slice(0, nCons, 0, nVar).(*mat.Dense).Copy(A)
	}
	aNew.Slice(nCons, nNewCons, 0, nVar).(*mat.Dense).Copy(G)

	bottomRight := aNew.Slice(nCons, nNewCons, nVar, nVar+nIneq).(*mat.Dense)
	for i := 0; i < nIneq; i++ {
		bottomRight.Set(i, i, 1)
	}

	return
}
