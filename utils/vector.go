package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// Linspace returns N equispaced values from min to max inclusive
func Linspace(min, max float64, N int) (v []float64) {
	v = make([]float64, N)
	if N == 1 {
		v[0] = min
		return
	}
	return floats.Span(v, min, max)
}

func VecMaxAbs(v []float64) (m float64) {
	for _, val := range v {
		m = math.Max(m, math.Abs(val))
	}
	return
}

// VecMaxDiff is the max norm of a-b
func VecMaxDiff(a, b []float64) (m float64) {
	if len(a) != len(b) {
		panic("length mismatch in VecMaxDiff")
	}
	for i, val := range a {
		m = math.Max(m, math.Abs(val-b[i]))
	}
	return
}
