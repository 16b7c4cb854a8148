package utils

const (
	// Pivots smaller than PIVOTTOL*max|a_ij| are treated as zero by the band LU
	PIVOTTOL = 1.e-14
	// Relative tolerance of the symmetry test ahead of a band Cholesky
	SYMTOL = 1.e-12
)
