package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// laplace2D builds the 5 point Laplacian on an ny x nx grid with identity rows on the edges,
// interior rows do not couple into the edge unknowns so the matrix is symmetric
func laplace2D(ny, nx int, h float64) CSR {
	var (
		n   = ny * nx
		dok = NewDOK(n, n)
		w   = 1 / (h * h)
	)
	for j := 0; j < nx; j++ {
		for i := 0; i < ny; i++ {
			k := i + ny*j
			if i == 0 || j == 0 || i == ny-1 || j == nx-1 {
				dok.Accumulate(k, k, 1)
				continue
			}
			dok.Accumulate(k, k, -4*w)
			for _, nb := range []int{k - 1, k + 1, k - ny, k + ny} {
				ni, nj := indexToIJColMajor(nb, ny)
				if ni == 0 || nj == 0 || ni == ny-1 || nj == nx-1 {
					continue
				}
				dok.Accumulate(k, nb, w)
			}
		}
	}
	return dok.ToCSR()
}

// advectDiffuse is non symmetric and diagonally dominant
func advectDiffuse(n int) CSR {
	dok := NewDOK(n, n)
	for i := 0; i < n; i++ {
		dok.Accumulate(i, i, 4)
		if i > 0 {
			dok.Accumulate(i, i-1, -1.5)
		}
		if i < n-1 {
			dok.Accumulate(i, i+1, -0.5)
		}
		if i+5 < n {
			dok.Accumulate(i, i+5, 0.25)
		}
	}
	return dok.ToCSR()
}

func TestSolvers(t *testing.T) {
	var (
		ny, nx = 6, 7
		A      = laplace2D(ny, nx, 0.2)
		B      = advectDiffuse(30)
	)
	cases := []struct {
		A       CSR
		solvers []SolverType
	}{
		{A, []SolverType{BandLUSolver, BandCholeskySolver, DenseLUSolver, BiCGStabSolver}},
		{B, []SolverType{BandLUSolver, DenseLUSolver, BiCGStabSolver}},
	}
	for ic, c := range cases {
		n, _ := c.A.Dims()
		xTrue := make([]float64, n)
		for i := range xTrue {
			xTrue[i] = float64(i%5) - 1.5 + 0.01*float64(i)
		}
		b := c.A.MulVec(xTrue)
		for _, st := range c.solvers {
			F, err := Factorize(c.A, st, SolverOptions{Tolerance: 1.e-12, MaxIterations: 500})
			require.NoError(t, err, "case %d, solver %s", ic, st.Print())
			// Reuse of one factorization for several right hand sides
			for rep := 0; rep < 2; rep++ {
				x, err := F.Solve(b)
				require.NoError(t, err)
				assert.InDeltaSlice(t, xTrue, x, 1.e-8, "case %d, solver %s", ic, st.Print())
			}
			if testing.Verbose() {
				fmt.Printf("case %d solved with %s\n", ic, st.Print())
			}
		}
	}
}

func TestSolverFailures(t *testing.T) {
	{ // A zero row is singular for the direct back ends
		dok := NewDOK(3, 3)
		dok.Accumulate(0, 0, 1)
		dok.Accumulate(2, 2, 1)
		dok.Accumulate(1, 0, 0.5)
		A := dok.ToCSR()
		_, err := NewBandLU(A)
		assert.True(t, errors.Is(err, ErrSingular))
		_, err = Factorize(A, DenseLUSolver, DefaultSolverOptions())
		assert.True(t, errors.Is(err, ErrSingular))
		_, err = NewBandCholesky(A)
		assert.True(t, errors.Is(err, ErrNotPositiveDefinite))
	}
	{ // Non symmetric operator refused by the Cholesky back end
		_, err := NewBandCholesky(advectDiffuse(10))
		assert.True(t, errors.Is(err, ErrNotPositiveDefinite))
	}
	{ // Mixed sign blocks that are coupled cannot be made definite
		dok := NewDOK(2, 2)
		dok.Accumulate(0, 0, 1)
		dok.Accumulate(1, 1, -1)
		dok.Accumulate(0, 1, 0.5)
		dok.Accumulate(1, 0, 0.5)
		_, err := NewBandCholesky(dok.ToCSR())
		assert.True(t, errors.Is(err, ErrNotPositiveDefinite))
	}
	{ // Iteration limit is distinguishable from singularity
		A := laplace2D(8, 8, 0.1)
		n, _ := A.Dims()
		b := ConstArray(n, 1)
		F, err := Factorize(A, BiCGStabSolver, SolverOptions{Tolerance: 1.e-14, MaxIterations: 1})
		require.NoError(t, err)
		_, err = F.Solve(b)
		assert.True(t, errors.Is(err, ErrNotConverged))
		assert.False(t, errors.Is(err, ErrSingular))
	}
	{ // Zero right hand side returns zero without iterating
		F := NewBiCGStab(advectDiffuse(5), SolverOptions{})
		x, err := F.Solve(make([]float64, 5))
		require.NoError(t, err)
		assert.Equal(t, make([]float64, 5), x)
	}
	assert.Equal(t, BiCGStabSolver, NewSolverType(" BiCGStab"))
	assert.Equal(t, BandCholeskySolver, NewSolverType("cholesky"))
	assert.Panics(t, func() { NewSolverType("gauss-seidel") })
}
