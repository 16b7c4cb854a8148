package utils

import (
	"fmt"
	"math"
)

/*
BandLU is an LU factorization with partial pivoting of a general banded matrix.
Storage is row major with each row holding the band from column i-kl to i+kl+ku, the extra kl
super diagonals take the fill from row interchanges.
The interchanges are applied to the trailing columns only, so L is held as the sequence of
elementary transforms and the solve replays them in order.
*/
type BandLU struct {
	n, kl, ku, w int
	ab           []float64
	piv          []int
}

func NewBandLU(A CSR) (lu *BandLU, err error) {
	var (
		nr, nc = A.Dims()
		anorm  float64
	)
	if nr != nc {
		panic(fmt.Errorf("band LU requires a square matrix, have %dx%d", nr, nc))
	}
	kl, ku := A.Bandwidth()
	lu = &BandLU{
		n:   nr,
		kl:  kl,
		ku:  ku,
		w:   2*kl + ku + 1,
		piv: make([]int, nr),
	}
	lu.ab = make([]float64, lu.n*lu.w)
	A.DoNonZero(func(i, j int, v float64) {
		lu.ab[lu.ind(i, j)] += v
		if a := math.Abs(v); a > anorm {
			anorm = a
		}
	})
	if err = lu.factor(anorm * PIVOTTOL); err != nil {
		return nil, err
	}
	return
}

func (lu *BandLU) ind(i, j int) int {
	return i*lu.w + j - i + lu.kl
}

func (lu *BandLU) factor(tol float64) (err error) {
	var (
		n, kl, ku = lu.n, lu.kl, lu.ku
		a         = lu.ab
	)
	for k := 0; k < n; k++ {
		iMax := min(n-1, k+kl)
		jMax := min(n-1, k+kl+ku)
		p, pv := k, math.Abs(a[lu.ind(k, k)])
		for i := k + 1; i <= iMax; i++ {
			if v := math.Abs(a[lu.ind(i, k)]); v > pv {
				p, pv = i, v
			}
		}
		lu.piv[k] = p
		if pv <= tol {
			return fmt.Errorf("%w: pivot %d has magnitude %8.3e", ErrSingular, k, pv)
		}
		if p != k {
			for j := k; j <= jMax; j++ {
				a[lu.ind(k, j)], a[lu.ind(p, j)] = a[lu.ind(p, j)], a[lu.ind(k, j)]
			}
		}
		akk := a[lu.ind(k, k)]
		for i := k + 1; i <= iMax; i++ {
			l := a[lu.ind(i, k)] / akk
			a[lu.ind(i, k)] = l
			if l == 0 {
				continue
			}
			for j := k + 1; j <= jMax; j++ {
				a[lu.ind(i, j)] -= l * a[lu.ind(k, j)]
			}
		}
	}
	return
}

func (lu *BandLU) Solve(b []float64) (x []float64, err error) {
	var (
		n, kl, ku = lu.n, lu.kl, lu.ku
		a         = lu.ab
	)
	if len(b) != n {
		panic(fmt.Errorf("right hand side length %d does not match matrix order %d", len(b), n))
	}
	x = make([]float64, n)
	copy(x, b)
	for k := 0; k < n; k++ {
		if p := lu.piv[k]; p != k {
			x[k], x[p] = x[p], x[k]
		}
		xk := x[k]
		if xk == 0 {
			continue
		}
		for i := k + 1; i <= min(n-1, k+kl); i++ {
			x[i] -= a[lu.ind(i, k)] * xk
		}
	}
	for k := n - 1; k >= 0; k-- {
		s := x[k]
		for j := k + 1; j <= min(n-1, k+kl+ku); j++ {
			s -= a[lu.ind(k, j)] * x[j]
		}
		x[k] = s / a[lu.ind(k, k)]
	}
	return
}
