package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goconvect/FD2D"
)

func TestOperatorStudy(t *testing.T) {
	for _, deriv := range []FD2D.DerivativeType{FD2D.DerivX, FD2D.DerivY, FD2D.Laplace} {
		cs := OperatorStudy(deriv, []int{11, 21, 41})
		rmsOrder, maxOrder := cs.Orders()
		require.Equal(t, 2, len(rmsOrder))
		for i := range rmsOrder {
			assert.InDeltaf(t, 2., rmsOrder[i], 0.2, "%s rms", deriv)
			assert.InDeltaf(t, 2., maxOrder[i], 0.2, "%s max", deriv)
		}
		assert.Less(t, cs.max[2], cs.max[0])
	}
}

func TestReadCSV(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "study.csv")
	require.NoError(t, os.WriteFile(fileName, []byte(
		"title,npts,h,rms,max\n"+
			"heat,10,0.1,1e-2,4e-2\n"+
			"heat,20,0.05,2.5e-3,1e-2\n"+
			"flow,10,0.1,1e-1,1e-1\n"), 0644))
	studies, err := readCSV(fileName)
	require.NoError(t, err)
	require.Equal(t, 2, len(studies))
	rmsOrder, maxOrder := studies["heat"].Orders()
	assert.InDelta(t, 2., rmsOrder[0], 1.e-12)
	assert.InDelta(t, 2., maxOrder[0], 1.e-12)
	assert.Equal(t, 0, len(studies["flow"].h)-1)

	require.NoError(t, os.WriteFile(fileName, []byte("title,npts,h,rms,max\nheat,ten,0.1,1,1\n"), 0644))
	_, err = readCSV(fileName)
	assert.Error(t, err)
	_, err = readCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
