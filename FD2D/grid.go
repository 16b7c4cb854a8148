package FD2D

import (
	"fmt"

	"github.com/notargets/goconvect/types"
)

/*
Grid is the fixed rectangular discretization for a whole run.

	Ny rows, row i is the vertical position, i = 0 is the bottom
	Nx columns, column j is the horizontal position, j = 0 is the left side

Unknowns are numbered column major, k = i + Ny*j.
*/
type Grid struct {
	Ny, Nx int
	Dy, Dx float64
}

/*
NewGrid spans a unit high domain. The horizontal spacing is derived from Ny rather than Nx:

	dy = 1/(Ny-1), dx = 2/(Ny-1)

which only spans two units of width when Nx = 2*Ny - 1. Use NewGridSpacing to set both explicitly.
*/
func NewGrid(ny, nx int) (g Grid) {
	return NewGridSpacing(ny, nx, 1./float64(ny-1), 2./float64(ny-1))
}

func NewGridSpacing(ny, nx int, dy, dx float64) (g Grid) {
	if ny < 3 || nx < 3 {
		panic(fmt.Errorf("grid needs at least 3 points in each direction, have ny, nx = %d, %d", ny, nx))
	}
	if !(dy > 0) || !(dx > 0) {
		panic(fmt.Errorf("grid spacing must be positive, have dy, dx = %v, %v", dy, dx))
	}
	return Grid{
		Ny: ny,
		Nx: nx,
		Dy: dy,
		Dx: dx,
	}
}

// N is the length of a vector form field
func (g Grid) N() int { return g.Ny * g.Nx }

func (g Grid) Index(i, j int) int { return i + g.Ny*j }

func (g Grid) IJ(k int) (i, j int) {
	j = k / g.Ny
	i = k - j*g.Ny
	return
}

func (g Grid) OnSide(s types.BCSide, i, j int) bool {
	switch s {
	case types.Bottom:
		return i == 0
	case types.Top:
		return i == g.Ny-1
	case types.Left:
		return j == 0
	case types.Right:
		return j == g.Nx-1
	}
	return false
}

func (g Grid) OnBoundary(i, j int) bool {
	return i == 0 || j == 0 || i == g.Ny-1 || j == g.Nx-1
}

// SideIndices lists the vector form indices of one edge, corners included
func (g Grid) SideIndices(s types.BCSide) (I []int) {
	switch {
	case s.IsHorizontal():
		i := 0
		if s == types.Top {
			i = g.Ny - 1
		}
		I = make([]int, g.Nx)
		for j := range I {
			I[j] = g.Index(i, j)
		}
	default:
		j := 0
		if s == types.Right {
			j = g.Nx - 1
		}
		I = make([]int, g.Ny)
		for i := range I {
			I[i] = g.Index(i, j)
		}
	}
	return
}

// Width and Height of the domain spanned by the grid
func (g Grid) Width() float64  { return g.Dx * float64(g.Nx-1) }
func (g Grid) Height() float64 { return g.Dy * float64(g.Ny-1) }

func (g Grid) checkVector(v []float64, name string) {
	if len(v) != g.N() {
		panic(fmt.Errorf("%s has length %d, grid %dx%d needs %d", name, len(v), g.Ny, g.Nx, g.N()))
	}
}
