package utils

import "errors"

var (
	// ErrSingular is returned by a direct factorization that meets a zero or negligible pivot,
	// or by a solve whose condition estimate exceeds mat.ConditionTolerance
	ErrSingular = errors.New("matrix is singular to working precision")

	// ErrNotConverged is returned by an iterative solve that reached its iteration limit
	ErrNotConverged = errors.New("iterative solve did not converge")

	// ErrNotPositiveDefinite is returned when a Cholesky back end is given an operator
	// that is not symmetric definite after row sign normalization
	ErrNotPositiveDefinite = errors.New("matrix is not symmetric definite")
)
