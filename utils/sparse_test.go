package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tridiag(n int, lo, d, up float64) CSR {
	dok := NewDOK(n, n)
	for i := 0; i < n; i++ {
		dok.Accumulate(i, i, d)
		if i > 0 {
			dok.Accumulate(i, i-1, lo)
		}
		if i < n-1 {
			dok.Accumulate(i, i+1, up)
		}
	}
	dok.SetReadOnly("tridiag")
	return dok.ToCSR()
}

func TestSparse(t *testing.T) {
	{
		A := tridiag(4, -1, 2, -3)
		assert.Equal(t, "tridiag", A.Name())
		assert.Equal(t, 10, A.NNZ())
		kl, ku := A.Bandwidth()
		assert.Equal(t, 1, kl)
		assert.Equal(t, 1, ku)
		assert.False(t, A.IsSymmetric(0))
		assert.True(t, tridiag(4, -1, 2, -1).IsSymmetric(0))
		y := A.MulVec([]float64{1, 1, 1, 1})
		assert.Equal(t, []float64{-1, -2, -2, 1}, y)
		assert.Panics(t, func() { A.MulVec([]float64{1, 2}) })
	}
	{ // Writing into a read only assembly panics
		dok := NewDOK(2, 2)
		dok.Set(0, 0, 1)
		dok.SetReadOnly("locked")
		assert.Panics(t, func() { dok.Set(1, 1, 1) })
	}
	{ // R = 2*I + 0.5*diag(row)*A - A
		A := tridiag(3, 1, 1, 1)
		row := []float64{2, 4, 6}
		R := LinearCombination(2,
			Term{Op: A, Scale: 0.5, Row: row},
			Term{Op: A, Scale: -1},
		)
		D := R.ToDense()
		// Row 1: diagonal 2 + 0.5*4*1 - 1 = 3, off diagonals 0.5*4 - 1 = 1
		assert.InDelta(t, 3., D.At(1, 1), 1.e-15)
		assert.InDelta(t, 1., D.At(1, 0), 1.e-15)
		assert.InDelta(t, 1., D.At(1, 2), 1.e-15)
		// Row 0: diagonal 2 + 1 - 1 = 2, off diagonal 1 - 1 = 0
		assert.InDelta(t, 2., D.At(0, 0), 1.e-15)
		assert.InDelta(t, 0., D.At(0, 1), 1.e-15)
		assert.Panics(t, func() { LinearCombination(0, Term{Op: A, Row: []float64{1}}) })
		assert.Panics(t, func() { LinearCombination(1) })
	}
	{
		M := NewDiagonal([]float64{0, 1, 1, 0})
		y := M.MulVec([]float64{5, 6, 7, 8})
		require.Equal(t, []float64{0, 6, 7, 0}, y)
	}
}

func TestWithIdentityRows(t *testing.T) {
	A := tridiag(4, -1, 2, -1)
	R := WithIdentityRows(A, []int{0, 3, 3})
	D := R.ToDense()
	assert.Equal(t, []float64{1, 0, 0, 0}, D.RawRowView(0))
	assert.Equal(t, []float64{0, 0, 0, 1}, D.RawRowView(3))
	assert.Equal(t, []float64{-1, 2, -1, 0}, D.RawRowView(1))
	assert.Equal(t, 2., A.At(0, 0))
	assert.Equal(t, 8, R.NNZ())
	assert.Panics(t, func() { WithIdentityRows(A, []int{4}) })
	assert.Panics(t, func() { WithIdentityRows(NewDOK(2, 3).ToCSR(), nil) })
}
