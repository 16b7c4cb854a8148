package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{
		assert.Equal(t, BC_Dirichlet, ParseBCName(" Dirichlet "))
		assert.Equal(t, BC_Neuman, ParseBCName("adiabatic"))
		assert.Equal(t, BC_Neuman, ParseBCName("NEUMANN"))
		assert.Equal(t, BC_InteriorOnly, ParseBCName("interior"))
		assert.Equal(t, BC_None, ParseBCName("unheard_of"))
	}
	{
		assert.Equal(t, "Dirichlet", BC_Dirichlet.String())
		assert.Equal(t, "Unknown", BCFLAG(99).String())
		assert.Equal(t, "Left", Left.String())
		assert.True(t, Top.IsHorizontal())
		assert.False(t, Right.IsHorizontal())
	}
}
