package FD2D

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/goconvect/types"
	"github.com/notargets/goconvect/utils"
)

type DerivativeType uint8

const (
	DerivX DerivativeType = iota
	DerivY
	Laplace
)

func (d DerivativeType) String() string {
	return [...]string{"d/dx", "d/dy", "Laplacian"}[d]
}

// sides lists the edges whose boundary conditions shape the operator, horizontal sides first
// so that the top and bottom rows own the corners
func (d DerivativeType) sides() []types.BCSide {
	switch d {
	case DerivX:
		return []types.BCSide{types.Left, types.Right}
	case DerivY:
		return []types.BCSide{types.Bottom, types.Top}
	}
	return types.AllSides[:]
}

/*
Operator is a sparse finite difference matrix together with the vector of boundary terms that were
moved out of it. The discrete derivative of a vector form field f is

	D(f) = Op*f - Rhs

Rhs is zero for homogeneous boundary conditions. Neither part is modified after construction.
*/
type Operator struct {
	utils.CSR
	Rhs   []float64
	Deriv DerivativeType
	BCs   BoundarySet
	Grid  Grid
}

// Apply evaluates the discrete derivative including the boundary terms
func (op Operator) Apply(f []float64) (df []float64) {
	op.Grid.checkVector(f, "field")
	df = op.MulVec(f)
	floats.Sub(df, op.Rhs)
	return
}

/*
NewOperator builds d/dx, d/dy or the 5 point Laplacian on the grid. Rows by boundary kind:

	Dirichlet:    identity row, Rhs = value. Interior rows keep their coupling to the boundary unknown.
	InteriorOnly: identity row, Rhs = 0, and interior rows drop their coupling to the boundary unknown.
	Neuman:       first derivative row is empty with D = flux, second derivative uses a ghost node
	              f(-1) = f(1) - 2h*flux, which leaves -2*flux/h in the Rhs (sign flipped on the far side).
	None:         one sided differences, second order for first derivatives.

Interior rows are centered: (f(+1)-f(-1))/2h and (f(-1)-2f+f(+1))/h^2 per direction.
*/
func NewOperator(g Grid, deriv DerivativeType, bcs BoundarySet) (op Operator) {
	var (
		n     = g.N()
		dok   = utils.NewDOK(n, n)
		rhs   = make([]float64, n)
		sides = deriv.sides()
	)
	fixedBC := func(i, j int) (bc BC, ok bool) {
		for _, s := range sides {
			if g.OnSide(s, i, j) && bcs[s].fixes() {
				return bcs[s], true
			}
		}
		return
	}
	for j := 0; j < g.Nx; j++ {
		for i := 0; i < g.Ny; i++ {
			k := g.Index(i, j)
			if bc, ok := fixedBC(i, j); ok {
				dok.Accumulate(k, k, 1)
				if bc.Kind == types.BC_Dirichlet {
					rhs[k] = bc.Value
				}
				continue
			}
			couple := func(ii, jj int, w float64) {
				if bc, ok := fixedBC(ii, jj); ok && bc.Kind == types.BC_InteriorOnly {
					return
				}
				dok.Accumulate(k, g.Index(ii, jj), w)
			}
			alongX := func(p int, w float64) { couple(i, p, w) }
			alongY := func(p int, w float64) { couple(p, j, w) }
			xLine := line{p: j, m: g.Nx, h: g.Dx, lo: bcs[types.Left], hi: bcs[types.Right]}
			yLine := line{p: i, m: g.Ny, h: g.Dy, lo: bcs[types.Bottom], hi: bcs[types.Top]}
			switch deriv {
			case DerivX:
				rhs[k] = xLine.first(alongX)
			case DerivY:
				rhs[k] = yLine.first(alongY)
			case Laplace:
				rhs[k] = xLine.second(alongX) + yLine.second(alongY)
			}
		}
	}
	dok.SetReadOnly(fmt.Sprintf("%s [%s]", deriv, bcs))
	op = Operator{
		CSR:   dok.ToCSR(),
		Rhs:   rhs,
		Deriv: deriv,
		BCs:   bcs,
		Grid:  g,
	}
	return
}

// NewInteriorLaplacian is the stream function Laplacian, zero on all edges with the edges decoupled
func NewInteriorLaplacian(g Grid) Operator {
	return NewOperator(g, Laplace, StreamBCs())
}

// line is the 1D stencil context of one row: position p of m points with spacing h
type line struct {
	p, m   int
	h      float64
	lo, hi BC
}

func (l line) first(add func(p int, w float64)) (rhs float64) {
	var (
		w = 1. / (2 * l.h)
	)
	switch l.p {
	case 0:
		if l.lo.Kind == types.BC_Neuman {
			return -l.lo.Value
		}
		add(0, -3*w)
		add(1, 4*w)
		add(2, -w)
	case l.m - 1:
		if l.hi.Kind == types.BC_Neuman {
			return -l.hi.Value
		}
		add(l.m-1, 3*w)
		add(l.m-2, -4*w)
		add(l.m-3, w)
	default:
		add(l.p+1, w)
		add(l.p-1, -w)
	}
	return
}

func (l line) second(add func(p int, w float64)) (rhs float64) {
	var (
		w = 1. / (l.h * l.h)
	)
	switch l.p {
	case 0:
		if l.lo.Kind == types.BC_Neuman {
			add(0, -2*w)
			add(1, 2*w)
			return 2 * l.lo.Value / l.h
		}
		add(0, w)
		add(1, -2*w)
		add(2, w)
	case l.m - 1:
		if l.hi.Kind == types.BC_Neuman {
			add(l.m-1, -2*w)
			add(l.m-2, 2*w)
			return -2 * l.hi.Value / l.h
		}
		add(l.m-1, w)
		add(l.m-2, -2*w)
		add(l.m-3, w)
	default:
		add(l.p-1, w)
		add(l.p, -2*w)
		add(l.p+1, w)
	}
	return
}

/*
Operators holds every fixed operator of a run, built once from the grid and the temperature
boundary conditions:

	DxT, DyT, LapT: temperature, Dirichlet bottom/top, Neuman or Dirichlet sides
	DxPsi, DyPsi:   stream function derivatives for the velocity, one sided at the edges
	LapPsi:         interior only stream function Laplacian
	Mask:           selects the non Dirichlet rows of the stream function system
*/
type Operators struct {
	Grid           Grid
	DxT, DyT, LapT Operator
	DxPsi, DyPsi   Operator
	LapPsi         Operator
	Mask           EliminationMask
	TemperatureBCs BoundarySet
}

func NewOperators(g Grid, tBCs BoundarySet) (ops *Operators) {
	ops = &Operators{
		Grid:           g,
		DxT:            NewOperator(g, DerivX, tBCs),
		DyT:            NewOperator(g, DerivY, tBCs),
		LapT:           NewOperator(g, Laplace, tBCs),
		DxPsi:          NewOperator(g, DerivX, FreeBCs()),
		DyPsi:          NewOperator(g, DerivY, FreeBCs()),
		LapPsi:         NewInteriorLaplacian(g),
		Mask:           NewEliminationMask(g),
		TemperatureBCs: tBCs,
	}
	return
}
