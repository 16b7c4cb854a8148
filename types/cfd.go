package types

import "strings"

type BCFLAG uint8

const (
	BC_None        BCFLAG = iota // One sided differences, no value imposed
	BC_Dirichlet                 // Fixed value
	BC_Neuman                    // Fixed normal derivative
	BC_InteriorOnly              // Boundary unknowns are zero and decoupled from the interior
)

var BCNameMap = map[string]BCFLAG{
	"none":         BC_None,
	"free":         BC_None,
	"dirichlet":    BC_Dirichlet,
	"isothermal":   BC_Dirichlet,
	"neuman":       BC_Neuman,
	"neumann":      BC_Neuman,
	"adiabatic":    BC_Neuman,
	"interior":     BC_InteriorOnly,
	"interioronly": BC_InteriorOnly,
}

func (bc BCFLAG) String() string {
	switch bc {
	case BC_None:
		return "None"
	case BC_Dirichlet:
		return "Dirichlet"
	case BC_Neuman:
		return "Neuman"
	case BC_InteriorOnly:
		return "InteriorOnly"
	}
	return "Unknown"
}

// ParseBCName is case insensitive, unknown names map to BC_None
func ParseBCName(name string) BCFLAG {
	if bc, ok := BCNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return bc
	}
	return BC_None
}

// BCSide identifies one edge of the rectangular domain. Bottom is grid row 0.
type BCSide uint8

const (
	Bottom BCSide = iota
	Top
	Left
	Right
)

var AllSides = [4]BCSide{Bottom, Top, Left, Right}

func (s BCSide) String() string {
	return [...]string{"Bottom", "Top", "Left", "Right"}[s]
}

// IsHorizontal is true for the sides that are rows of the grid
func (s BCSide) IsHorizontal() bool {
	return s == Bottom || s == Top
}
