package Convection2D

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goconvect/utils"
)

// Diagnostics is a read only snapshot of a state, nothing in it aliases the state
type Diagnostics struct {
	Step                                     int
	Time                                     float64
	T, Psi                                   *mat.Dense // Grid form, row 0 is the bottom
	U, V                                     *mat.Dense // Velocity in grid form
	MaxSpeed2                                float64    // max(u^2 + v^2)
	FluxRow                                  int        // Grid row of the heat flux integrals
	ConductiveFlux, AdvectiveFlux, TotalFlux float64
	TMin, TMax                               float64
	CFLVelocity                              float64 // dx/dt, the speed a stable explicit step could tolerate
}

// FluxRow is ten rows below the top, kept inside the interior on small grids
func (c *Convection2D) FluxRow() (row int) {
	row = c.Grid.Ny - 10
	row = max(row, 1)
	row = min(row, c.Grid.Ny-2)
	return
}

/*
Diagnose computes the velocity and the heat flux through FluxRow:

	conductive = sum over the row of -(Dy T - rhsDy)
	advective  = sqrtRa * v . T along the row
*/
func (c *Convection2D) Diagnose(step int, s State) (d Diagnostics) {
	var (
		ny, nx = c.Grid.Ny, c.Grid.Nx
		ops    = c.Ops
		u, v   = ops.Velocity(s.Psi)
		dyT    = ops.DyT.Apply(s.T)
	)
	d = Diagnostics{
		Step:        step,
		Time:        float64(step) * c.Config.Dt,
		T:           utils.ToGrid(s.T, ny, nx),
		Psi:         utils.ToGrid(s.Psi, ny, nx),
		U:           utils.ToGrid(u, ny, nx),
		V:           utils.ToGrid(v, ny, nx),
		FluxRow:     c.FluxRow(),
		TMin:        floats.Min(s.T),
		TMax:        floats.Max(s.T),
		CFLVelocity: c.Grid.Dx / c.Config.Dt,
	}
	for k := range u {
		d.MaxSpeed2 = math.Max(d.MaxSpeed2, u[k]*u[k]+v[k]*v[k])
	}
	var (
		cond = utils.GridRow(dyT, ny, d.FluxRow)
		vRow = utils.GridRow(v, ny, d.FluxRow)
		tRow = utils.GridRow(s.T, ny, d.FluxRow)
	)
	d.ConductiveFlux = -floats.Sum(cond)
	d.AdvectiveFlux = c.Config.SqrtRa * floats.Dot(vRow, tRow)
	d.TotalFlux = d.ConductiveFlux + d.AdvectiveFlux
	return
}

// CFLNumber is the largest speed relative to the explicit limit
func (d Diagnostics) CFLNumber() float64 {
	return math.Sqrt(d.MaxSpeed2) / d.CFLVelocity
}
