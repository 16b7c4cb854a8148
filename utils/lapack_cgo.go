//go:build cgo && netlib
// +build cgo,netlib

package utils

/*
#cgo LDFLAGS: -lopenblas -lm -lpthread
#include <cblas.h>
*/
import "C"

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Only the level 1-3 BLAS is swapped, gonum keeps its own LAPACK. The dense LU and the band
// Cholesky back ends pick up OpenBLAS through blas64.
func init() {
	blas64.Use(netblas.Implementation{})
	fmt.Println("Using OpenBLAS through netlib for the dense solver back ends")
}
