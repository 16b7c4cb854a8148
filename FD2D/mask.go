package FD2D

import (
	"github.com/notargets/goconvect/utils"
)

// EliminationMask is the diagonal 0/1 selector of the stream function rows that carry an equation,
// 1 in the interior and 0 on every edge. It is fixed for the run.
type EliminationMask struct {
	utils.CSR
	Diag []float64
	Grid Grid
}

func NewEliminationMask(g Grid) (em EliminationMask) {
	var (
		diag = make([]float64, g.N())
	)
	for k := range diag {
		if i, j := g.IJ(k); !g.OnBoundary(i, j) {
			diag[k] = 1
		}
	}
	em = EliminationMask{
		CSR:  utils.NewDiagonal(diag),
		Diag: diag,
		Grid: g,
	}
	em.SetName("Elimination Mask")
	return
}

// Apply returns a copy of v with the boundary entries zeroed
func (em EliminationMask) Apply(v []float64) (r []float64) {
	em.Grid.checkVector(v, "masked vector")
	r = make([]float64, len(v))
	for k, d := range em.Diag {
		r[k] = d * v[k]
	}
	return
}

// Interior counts the rows selected by the mask
func (em EliminationMask) Interior() int {
	return (em.Grid.Ny - 2) * (em.Grid.Nx - 2)
}
