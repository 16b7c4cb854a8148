package utils

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Factorization is a reusable solver bound to one matrix instance, valid only while that matrix is unchanged
type Factorization interface {
	Solve(b []float64) (x []float64, err error)
}

type SolverType uint8

const (
	BandLUSolver SolverType = iota
	BandCholeskySolver
	DenseLUSolver
	BiCGStabSolver
)

var (
	SolverNames = map[string]SolverType{
		"bandlu":   BandLUSolver,
		"lu":       BandLUSolver,
		"cholesky": BandCholeskySolver,
		"denselu":  DenseLUSolver,
		"dense":    DenseLUSolver,
		"bicgstab": BiCGStabSolver,
	}
	SolverPrintNames = []string{
		"Banded LU, partial pivoting",
		"Banded Cholesky, sign normalized rows",
		"Dense LU",
		"BiCGStab, Jacobi preconditioned",
	}
)

func NewSolverType(label string) (st SolverType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if st, ok = SolverNames[label]; !ok {
		err = fmt.Errorf("unable to use solver named [%s]", label)
		panic(err)
	}
	return
}

func (st SolverType) Print() string {
	if int(st) < len(SolverPrintNames) {
		return SolverPrintNames[st]
	}
	return "Unknown"
}

// SolverOptions only affect the iterative back end
type SolverOptions struct {
	Tolerance     float64
	MaxIterations int
}

func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     1.e-10,
		MaxIterations: 1000,
	}
}

func Factorize(A CSR, st SolverType, opts SolverOptions) (F Factorization, err error) {
	switch st {
	case BandCholeskySolver:
		return NewBandCholesky(A)
	case DenseLUSolver:
		return NewDenseLU(A)
	case BiCGStabSolver:
		return NewBiCGStab(A, opts), nil
	case BandLUSolver:
		fallthrough
	default:
		return NewBandLU(A)
	}
}

/*
BandCholesky factors a symmetric operator whose rows are either positive or negative definite blocks,
for example a Laplacian (negative definite) with identity rows for eliminated boundary unknowns.
Each row is scaled by the sign of its diagonal, the scaled matrix S*A is symmetric positive definite
when the coupled blocks share a sign, and S*A*x = S*b is solved with gonum's band Cholesky.
*/
type BandCholesky struct {
	chol mat.BandCholesky
	sign []float64
}

func NewBandCholesky(A CSR) (bc *BandCholesky, err error) {
	var (
		n, nc  = A.Dims()
		kl, ku = A.Bandwidth()
		k      = max(kl, ku)
		anorm  float64
	)
	if n != nc {
		panic(fmt.Errorf("band Cholesky requires a square matrix, have %dx%d", n, nc))
	}
	bc = &BandCholesky{sign: make([]float64, n)}
	for i := 0; i < n; i++ {
		d := A.At(i, i)
		switch {
		case d > 0:
			bc.sign[i] = 1
		case d < 0:
			bc.sign[i] = -1
		default:
			return nil, fmt.Errorf("%w: zero diagonal at row %d", ErrNotPositiveDefinite, i)
		}
	}
	A.DoNonZero(func(i, j int, v float64) {
		anorm = math.Max(anorm, math.Abs(v))
	})
	tol := anorm * SYMTOL
	var asym error
	A.DoNonZero(func(i, j int, v float64) {
		if asym != nil || j <= i {
			return
		}
		if math.Abs(bc.sign[i]*v-bc.sign[j]*A.At(j, i)) > tol {
			asym = fmt.Errorf("%w: rows %d and %d are not symmetric after sign normalization",
				ErrNotPositiveDefinite, i, j)
		}
	})
	if asym != nil {
		return nil, asym
	}
	S := mat.NewSymBandDense(n, k, nil)
	A.DoNonZero(func(i, j int, v float64) {
		if j >= i {
			S.SetSymBand(i, j, bc.sign[i]*v)
		}
	})
	if ok := bc.chol.Factorize(S); !ok {
		return nil, fmt.Errorf("%w: band Cholesky factorization failed", ErrNotPositiveDefinite)
	}
	return
}

func (bc *BandCholesky) Solve(b []float64) (x []float64, err error) {
	var (
		n  = len(bc.sign)
		sb = make([]float64, n)
	)
	if len(b) != n {
		panic(fmt.Errorf("right hand side length %d does not match matrix order %d", len(b), n))
	}
	for i, val := range b {
		sb[i] = bc.sign[i] * val
	}
	X := mat.NewVecDense(n, nil)
	if err = bc.chol.SolveVecTo(X, mat.NewVecDense(n, sb)); err != nil {
		return nil, conditionError(err)
	}
	return X.RawVector().Data, nil
}

// DenseLU is the reference back end, O(n^3) per factorization
type DenseLU struct {
	lu mat.LU
	n  int
}

func NewDenseLU(A CSR) (dl *DenseLU, err error) {
	var (
		n, _ = A.Dims()
	)
	dl = &DenseLU{n: n}
	dl.lu.Factorize(A.ToDense())
	if cond := dl.lu.Cond(); math.IsInf(cond, 1) || cond > mat.ConditionTolerance {
		return nil, fmt.Errorf("%w: dense LU condition number %8.3e", ErrSingular, cond)
	}
	return
}

func (dl *DenseLU) Solve(b []float64) (x []float64, err error) {
	if len(b) != dl.n {
		panic(fmt.Errorf("right hand side length %d does not match matrix order %d", len(b), dl.n))
	}
	X := mat.NewVecDense(dl.n, nil)
	if err = dl.lu.SolveVecTo(X, false, mat.NewVecDense(dl.n, append([]float64(nil), b...))); err != nil {
		return nil, conditionError(err)
	}
	return X.RawVector().Data, nil
}

func conditionError(err error) error {
	var cond mat.Condition
	if errors.As(err, &cond) {
		return fmt.Errorf("%w: condition number %8.3e", ErrSingular, float64(cond))
	}
	return err
}

/*
BiCGStab is a Jacobi preconditioned stabilized bi-conjugate gradient solve (right preconditioning).
It holds no factorization, each Solve iterates from a zero initial guess until the residual
norm drops below Tolerance*|b| or MaxIterations is reached, which returns ErrNotConverged.
*/
type BiCGStab struct {
	A       CSR
	invDiag []float64
	opts    SolverOptions
}

func NewBiCGStab(A CSR, opts SolverOptions) (bs *BiCGStab) {
	var (
		n, _ = A.Dims()
	)
	if opts.Tolerance <= 0 || opts.MaxIterations <= 0 {
		def := DefaultSolverOptions()
		if opts.Tolerance <= 0 {
			opts.Tolerance = def.Tolerance
		}
		if opts.MaxIterations <= 0 {
			opts.MaxIterations = def.MaxIterations
		}
	}
	bs = &BiCGStab{
		A:       A,
		invDiag: make([]float64, n),
		opts:    opts,
	}
	for i := 0; i < n; i++ {
		bs.invDiag[i] = 1
		if d := A.At(i, i); d != 0 {
			bs.invDiag[i] = 1 / d
		}
	}
	return
}

func (bs *BiCGStab) Solve(b []float64) (x []float64, err error) {
	var (
		n                       = len(bs.invDiag)
		r, rhat                 = make([]float64, n), make([]float64, n)
		p, v                    = make([]float64, n), make([]float64, n)
		ph, sh                  = make([]float64, n), make([]float64, n)
		s, t                    = make([]float64, n), make([]float64, n)
		rho, alpha, omega, beta = 1., 1., 1., 0.
		bnorm                   = floats.Norm(b, 2)
		tol                     = bs.opts.Tolerance
	)
	if len(b) != n {
		panic(fmt.Errorf("right hand side length %d does not match matrix order %d", len(b), n))
	}
	x = make([]float64, n)
	if bnorm == 0 {
		return
	}
	copy(r, b)
	copy(rhat, b)
	for it := 0; it < bs.opts.MaxIterations; it++ {
		rhoNew := floats.Dot(rhat, r)
		if rhoNew == 0 {
			return nil, fmt.Errorf("%w: breakdown at iteration %d", ErrNotConverged, it)
		}
		if it == 0 {
			copy(p, r)
		} else {
			beta = (rhoNew / rho) * (alpha / omega)
			for i := range p {
				p[i] = r[i] + beta*(p[i]-omega*v[i])
			}
		}
		floats.MulTo(ph, bs.invDiag, p)
		bs.A.MulVecTo(v, ph)
		alpha = rhoNew / floats.Dot(rhat, v)
		floats.AddScaledTo(s, r, -alpha, v)
		if floats.Norm(s, 2) <= tol*bnorm {
			floats.AddScaled(x, alpha, ph)
			return
		}
		floats.MulTo(sh, bs.invDiag, s)
		bs.A.MulVecTo(t, sh)
		tt := floats.Dot(t, t)
		if tt == 0 {
			return nil, fmt.Errorf("%w: breakdown at iteration %d", ErrNotConverged, it)
		}
		omega = floats.Dot(t, s) / tt
		floats.AddScaled(x, alpha, ph)
		floats.AddScaled(x, omega, sh)
		floats.AddScaledTo(r, s, -omega, t)
		if floats.Norm(r, 2) <= tol*bnorm {
			return
		}
		rho = rhoNew
	}
	return nil, fmt.Errorf("%w: %d iterations, relative residual %8.3e",
		ErrNotConverged, bs.opts.MaxIterations, floats.Norm(r, 2)/bnorm)
}
