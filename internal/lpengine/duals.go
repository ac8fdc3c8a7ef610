package lpengine

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var errSingularBasis = errors.New("lpengine: optimal basis is singular, duals unavailable")

// recoverDuals computes shadow prices for a solved equality-standard-form
// LP by identifying the optimal basis from the primal solution and solving
// B^T pi = c_B. gonum's lp.Simplex returns only the primal solution and
// objective value, no basis or dual information, so this is the one place
// this repo adds numerical code beyond what the teacher's simplex wrapper
// already did.
//
// sf.c is always in the internal minimize sense (buildStandardForm negates
// a maximized objective), so the pi solved against it is the dual of that
// internal minimization. When the caller's model is a maximization, the
// external shadow price is the negation of that internal dual — the same
// sign flip correctSign applies to the objective value.
func recoverDuals(sf *standardForm, x []float64, maximize bool) ([]float64, error) {
	nRows, _ := sf.A.Dims()
	if nRows == 0 {
		return nil, errSingularBasis
	}

	type col struct {
		idx int
		val float64
	}
	cols := make([]col, len(x))
	for i, v := range x {
		cols[i] = col{idx: i, val: v}
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].val > cols[j].val })

	if len(cols) < nRows {
		return nil, errSingularBasis
	}

	basis := make([]int, nRows)
	for i := 0; i < nRows; i++ {
		basis[i] = cols[i].idx
	}
	sort.Ints(basis)

	B := mat.NewDense(nRows, nRows, nil)
	cB := mat.NewVecDense(nRows, nil)
	for j, vi := range basis {
		for r := 0; r < nRows; r++ {
			B.Set(r, j, sf.A.At(r, vi))
		}
		cB.SetVec(j, sf.c[vi])
	}

	var Bt mat.Dense
	Bt.CloneFrom(B.T())

	var pi mat.VecDense
	if err := pi.SolveVec(&Bt, cB); err != nil {
		return nil, errSingularBasis
	}

	out := make([]float64, nRows)
	for i := 0; i < nRows; i++ {
		out[i] = pi.AtVec(i)
		if maximize {
			out[i] = -out[i]
		}
	}
	return out, nil
}
