package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLayout(t *testing.T) {
	// Column major, y (row) varies fastest
	{
		G := mat.NewDense(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		v := ToVector(G)
		assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, v)
		assert.True(t, mat.Equal(G, ToGrid(v, 2, 3)))
		assert.Equal(t, []float64{4, 5, 6}, GridRow(v, 2, 1))
	}
	// Round trip in both directions, exact
	for _, dims := range [][2]int{{1, 1}, {3, 3}, {20, 40}, {7, 2}} {
		ny, nx := dims[0], dims[1]
		v := make([]float64, ny*nx)
		for k := range v {
			v[k] = float64(k)*0.37 - 11
		}
		G := ToGrid(v, ny, nx)
		r, c := G.Dims()
		require.Equal(t, ny, r)
		require.Equal(t, nx, c)
		assert.Equal(t, v, ToVector(G))
		assert.True(t, mat.Equal(G, ToGrid(ToVector(G), ny, nx)))
	}
	// A matrix that is not a *mat.Dense takes the generic path
	{
		G := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
		assert.Equal(t, ToVector(mat.DenseCopyOf(G.T())), ToVector(G.T()))
	}
	// Size mismatch is a contract violation
	assert.Panics(t, func() { ToGrid(make([]float64, 5), 2, 3) })
	assert.Panics(t, func() { GridRow(make([]float64, 6), 2, 2) })
}
