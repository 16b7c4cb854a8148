package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// DOK is the assembly form of an operator, entries are accumulated by key and the result is frozen with ToCSR
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) DOK {
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

// Accumulate adds val into (i,j), zero values are not stored
func (m DOK) Accumulate(i, j int, val float64) DOK {
	m.checkWritable()
	if val == 0 {
		return m
	}
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

// CSR is the frozen form of an operator. It is read only once built, all arithmetic produces new matrices.
type CSR struct {
	M    *sparse.CSR
	name string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) Name() string                  { return m.name }

func (m *CSR) SetName(name string) CSR {
	m.name = name
	return *m
}

// NNZ counts stored entries, including any explicit zeros kept by the assembly
func (m CSR) NNZ() int {
	var (
		nr, _ = m.Dims()
	)
	return m.RawMatrix().Indptr[nr]
}

func (m CSR) DoNonZero(fn func(i, j int, v float64)) {
	var (
		raw   = m.RawMatrix()
		nr, _ = m.Dims()
	)
	for i := 0; i < nr; i++ {
		for ii := raw.Indptr[i]; ii < raw.Indptr[i+1]; ii++ {
			fn(i, raw.Ind[ii], raw.Data[ii])
		}
	}
}

func (m CSR) DoRowNonZero(i int, fn func(j int, v float64)) {
	var (
		raw = m.RawMatrix()
	)
	for ii := raw.Indptr[i]; ii < raw.Indptr[i+1]; ii++ {
		fn(raw.Ind[ii], raw.Data[ii])
	}
}

func (m CSR) MulVec(x []float64) (y []float64) {
	var (
		nr, _ = m.Dims()
	)
	y = make([]float64, nr)
	m.MulVecTo(y, x)
	return
}

// MulVecTo overwrites y with M*x
func (m CSR) MulVecTo(y, x []float64) {
	var (
		raw    = m.RawMatrix()
		nr, nc = m.Dims()
	)
	if len(x) != nc || len(y) != nr {
		err := fmt.Errorf("dimension mismatch in MulVec for \"%s\": matrix is %dx%d, len(x) = %d, len(y) = %d",
			m.name, nr, nc, len(x), len(y))
		panic(err)
	}
	for i := 0; i < nr; i++ {
		var sum float64
		for ii := raw.Indptr[i]; ii < raw.Indptr[i+1]; ii++ {
			sum += raw.Data[ii] * x[raw.Ind[ii]]
		}
		y[i] = sum
	}
}

// Bandwidth returns the number of sub and super diagonals holding stored entries
func (m CSR) Bandwidth() (kl, ku int) {
	m.DoNonZero(func(i, j int, v float64) {
		if d := i - j; d > kl {
			kl = d
		}
		if d := j - i; d > ku {
			ku = d
		}
	})
	return
}

// IsSymmetric compares every stored entry with its transpose partner to within tol
func (m CSR) IsSymmetric(tol float64) (symmetric bool) {
	symmetric = true
	m.DoNonZero(func(i, j int, v float64) {
		if !symmetric || i == j {
			return
		}
		d := v - m.M.At(j, i)
		if d > tol || d < -tol {
			symmetric = false
		}
	})
	return
}

func (m CSR) ToDense() (R *mat.Dense) {
	var (
		nr, nc = m.Dims()
	)
	R = mat.NewDense(nr, nc, nil)
	m.DoNonZero(func(i, j int, v float64) {
		R.Set(i, j, R.At(i, j)+v)
	})
	return
}

// Term is one scaled operator in a row scaled linear combination
type Term struct {
	Op    CSR
	Scale float64   // Scalar multiplier
	Row   []float64 // Optional per row multiplier, the operator is premultiplied by diag(Row)
}

/*
LinearCombination returns the sum of the terms:

	R = Σ Scale_k * diag(Row_k) * Op_k + Identity * I

All operators must share the same dimensions.
*/
func LinearCombination(identity float64, terms ...Term) (R CSR) {
	var (
		nr, nc int
	)
	if len(terms) == 0 {
		panic("no terms in linear combination")
	}
	nr, nc = terms[0].Op.Dims()
	dok := NewDOK(nr, nc)
	if identity != 0 {
		if nr != nc {
			panic(fmt.Errorf("identity term requires a square matrix, have %dx%d", nr, nc))
		}
		for i := 0; i < nr; i++ {
			dok.Accumulate(i, i, identity)
		}
	}
	for _, t := range terms {
		if r, c := t.Op.Dims(); r != nr || c != nc {
			panic(fmt.Errorf("dimension mismatch in linear combination, %dx%d vs %dx%d", r, c, nr, nc))
		}
		if t.Row != nil && len(t.Row) != nr {
			panic(fmt.Errorf("row scale length %d does not match row count %d", len(t.Row), nr))
		}
		scale := t.Scale
		t.Op.DoNonZero(func(i, j int, v float64) {
			s := scale
			if t.Row != nil {
				s *= t.Row[i]
			}
			dok.Accumulate(i, j, s*v)
		})
	}
	return dok.ToCSR()
}

// WithIdentityRows copies A with each listed row replaced by the matching row of the identity
func WithIdentityRows(A CSR, rows []int) (R CSR) {
	var (
		nr, nc = A.Dims()
		fixed  = make([]bool, nr)
	)
	if nr != nc {
		panic(fmt.Errorf("identity rows require a square matrix, have %dx%d", nr, nc))
	}
	for _, i := range rows {
		if i < 0 || i >= nr {
			panic(fmt.Errorf("row %d out of range for %dx%d matrix", i, nr, nc))
		}
		fixed[i] = true
	}
	dok := NewDOK(nr, nc)
	A.DoNonZero(func(i, j int, v float64) {
		if !fixed[i] {
			dok.Accumulate(i, j, v)
		}
	})
	for i, f := range fixed {
		if f {
			dok.Accumulate(i, i, 1)
		}
	}
	return dok.ToCSR()
}

// NewDiagonal stores a diagonal matrix, used for row selectors
func NewDiagonal(diag []float64) (R CSR) {
	var (
		n = len(diag)
	)
	dok := NewDOK(n, n)
	for i, val := range diag {
		dok.Accumulate(i, i, val)
	}
	return dok.ToCSR()
}

func indexToIJColMajor(ind, nr int) (i, j int) {
	//ind = i + nr*(j)
	j = ind / nr
	i = ind - j*nr
	return
}
