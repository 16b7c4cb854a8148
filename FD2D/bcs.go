package FD2D

import (
	"fmt"

	"github.com/notargets/goconvect/types"
)

// BC is the treatment of one side, Value is the fixed value for Dirichlet and the outward
// coordinate derivative (df/dx or df/dy, not the normal) for Neuman
type BC struct {
	Kind  types.BCFLAG
	Value float64
}

func Dirichlet(val float64) BC { return BC{Kind: types.BC_Dirichlet, Value: val} }
func Neuman(flux float64) BC   { return BC{Kind: types.BC_Neuman, Value: flux} }
func Free() BC                 { return BC{Kind: types.BC_None} }
func InteriorOnly() BC         { return BC{Kind: types.BC_InteriorOnly} }

// BoundarySet is indexed by types.BCSide
type BoundarySet [4]BC

func NewBoundarySet(bottom, top, left, right BC) (bs BoundarySet) {
	bs[types.Bottom] = bottom
	bs[types.Top] = top
	bs[types.Left] = left
	bs[types.Right] = right
	return
}

func (bs BoundarySet) Side(s types.BCSide) BC { return bs[s] }

// fixes is true for the kinds that replace the boundary row with an identity row
func (bc BC) fixes() bool {
	return bc.Kind == types.BC_Dirichlet || bc.Kind == types.BC_InteriorOnly
}

func (bs BoundarySet) String() (s string) {
	for _, side := range types.AllSides {
		bc := bs.Side(side)
		s += fmt.Sprintf("%s: %s", side, bc.Kind)
		if bc.Kind == types.BC_Dirichlet || bc.Kind == types.BC_Neuman {
			s += fmt.Sprintf("(%g)", bc.Value)
		}
		if side != types.Right {
			s += ", "
		}
	}
	return
}

// TemperatureBCs are fixed temperatures on the bottom and top and prescribed fluxes on the sides
func TemperatureBCs(TBottom, TTop, FluxLeft, FluxRight float64) BoundarySet {
	return NewBoundarySet(Dirichlet(TBottom), Dirichlet(TTop), Neuman(FluxLeft), Neuman(FluxRight))
}

// StreamBCs make every side an eliminated zero, the stream function vanishes on the whole boundary
func StreamBCs() BoundarySet {
	return NewBoundarySet(InteriorOnly(), InteriorOnly(), InteriorOnly(), InteriorOnly())
}

// FreeBCs use one sided differences on every side, for derivatives of fields whose boundary
// values are already known, like the velocity from the stream function
func FreeBCs() BoundarySet {
	return NewBoundarySet(Free(), Free(), Free(), Free())
}

// Fixed lists, without repeats, the unknowns whose value is set by a Dirichlet or interior only side
func (bs BoundarySet) Fixed(g Grid) (K []int) {
	seen := make([]bool, g.N())
	for _, s := range types.AllSides {
		if !bs.Side(s).fixes() {
			continue
		}
		for _, k := range g.SideIndices(s) {
			if !seen[k] {
				seen[k] = true
				K = append(K, k)
			}
		}
	}
	return
}

// Enforce overwrites the edges owned by a fixing condition, Dirichlet sides take their value and
// interior only sides are zeroed. Neuman and free sides are left alone. Bottom and top are written
// last so they own the corners. Applying it twice is a no-op.
func (bs BoundarySet) Enforce(g Grid, f []float64) {
	g.checkVector(f, "field")
	for n := len(types.AllSides) - 1; n >= 0; n-- {
		s := types.AllSides[n]
		bc := bs.Side(s)
		if !bc.fixes() {
			continue
		}
		val := 0.
		if bc.Kind == types.BC_Dirichlet {
			val = bc.Value
		}
		for _, k := range g.SideIndices(s) {
			f[k] = val
		}
	}
}
