package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
Fields live in two forms:

	grid form:   ny x nx, row i is the vertical position, row 0 is the bottom of the domain
	vector form: length ny*nx, column major, k = i + ny*j, so y varies fastest

The conversion is a pure reshape, there is no resampling.
*/

// ToVector flattens a grid field into vector form
func ToVector(G mat.Matrix) (v []float64) {
	var (
		ny, nx = G.Dims()
	)
	v = make([]float64, ny*nx)
	if D, ok := G.(*mat.Dense); ok {
		raw := D.RawMatrix()
		for i := 0; i < ny; i++ {
			row := raw.Data[i*raw.Stride : i*raw.Stride+nx]
			for j, val := range row {
				v[i+ny*j] = val
			}
		}
		return
	}
	for j := 0; j < nx; j++ {
		for i := 0; i < ny; i++ {
			v[i+ny*j] = G.At(i, j)
		}
	}
	return
}

// ToGrid is the inverse of ToVector
func ToGrid(v []float64, ny, nx int) (G *mat.Dense) {
	if ny <= 0 || nx <= 0 || len(v) != ny*nx {
		err := fmt.Errorf("mismatch in layout conversion: ny,nx = %v,%v, len(v) = %v", ny, nx, len(v))
		panic(err)
	}
	G = mat.NewDense(ny, nx, nil)
	raw := G.RawMatrix()
	for k, val := range v {
		i, j := indexToIJColMajor(k, ny)
		raw.Data[i*raw.Stride+j] = val
	}
	return
}

// GridRow extracts grid row i (all columns) from a vector form field
func GridRow(v []float64, ny, i int) (row []float64) {
	var (
		nx = len(v) / ny
	)
	if len(v) != ny*nx || i < 0 || i >= ny {
		panic(fmt.Errorf("row %d out of range for field of length %d with ny = %d", i, len(v), ny))
	}
	row = make([]float64, nx)
	for j := range row {
		row[j] = v[i+ny*j]
	}
	return
}
