package FD2D

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/goconvect/utils"
)

// Velocity recovers u = dpsi/dy and v = -dpsi/dx from the stream function
func (ops *Operators) Velocity(psi []float64) (u, v []float64) {
	u = ops.DyPsi.Apply(psi)
	v = ops.DxPsi.Apply(psi)
	floats.Scale(-1, v)
	return
}

/*
AssembleAdvectionDiffusion builds the temperature operator for the current stream function

	C    = sqrtRa*(diag(u)*Dx + diag(v)*Dy) - Lap
	rhsC = sqrtRa*(u*rhsDx + v*rhsDy) - rhsLap

so that C*T - rhsC is the discrete advection minus diffusion of T. The velocity is not corrected
separately at the boundary, rows owned by a Dirichlet side pick up u and v times an identity row.
*/
func (ops *Operators) AssembleAdvectionDiffusion(psi []float64, sqrtRa float64) (C Operator) {
	ops.Grid.checkVector(psi, "stream function")
	u, v := ops.Velocity(psi)
	return AssembleAdvectionDiffusion(ops.DxT, ops.DyT, ops.LapT, u, v, sqrtRa)
}

func AssembleAdvectionDiffusion(Dx, Dy, Lap Operator, u, v []float64, sqrtRa float64) (C Operator) {
	var (
		g  = Lap.Grid
		su = make([]float64, len(u))
		sv = make([]float64, len(v))
	)
	g.checkVector(u, "u velocity")
	g.checkVector(v, "v velocity")
	floats.ScaleTo(su, sqrtRa, u)
	floats.ScaleTo(sv, sqrtRa, v)
	C = Operator{
		CSR: utils.LinearCombination(0,
			utils.Term{Op: Dx.CSR, Scale: 1, Row: su},
			utils.Term{Op: Dy.CSR, Scale: 1, Row: sv},
			utils.Term{Op: Lap.CSR, Scale: -1},
		),
		Rhs:   make([]float64, g.N()),
		Deriv: Laplace,
		BCs:   Lap.BCs,
		Grid:  g,
	}
	for k := range C.Rhs {
		C.Rhs[k] = su[k]*Dx.Rhs[k] + sv[k]*Dy.Rhs[k] - Lap.Rhs[k]
	}
	C.SetName(fmt.Sprintf("Advection-Diffusion, sqrtRa = %g", sqrtRa))
	return
}
