package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun2D(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
Ny: 8
Nx: 15
Dt: 0.01
Nt: 1000
Ra: 100
ReportEvery: 2
PsiPolicy: fresh
`)
	fileName := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(fileName, fileInput, 0644))
	m2d := &Model2D{
		ICFile:      fileName,
		Steps:       4,
		ReportEvery: -1,
	}
	ip, err := processInput(m2d)
	require.NoError(t, err)
	assert.Equal(t, 8, ip.Ny)
	assert.Equal(t, 100., ip.Ra)

	var buf bytes.Buffer
	require.NoError(t, Run2D(context.Background(), m2d, ip, &buf))
	out := buf.String()
	assert.Contains(t, out, "Test Case")
	assert.Contains(t, out, "Fresh factorization every step")
	assert.Contains(t, out, "over 5 steps")

	buf.Reset()
	m2d.Quiet = true
	require.NoError(t, Run2D(context.Background(), m2d, ip, &buf))
	assert.Equal(t, 0, buf.Len())
}

func TestProcessInputErrors(t *testing.T) {
	_, err := processInput(&Model2D{ICFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	fileName := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte("Ny: 2\n"), 0644))
	_, err = processInput(&Model2D{ICFile: fileName})
	assert.Error(t, err)
}

func TestRun2DCancel(t *testing.T) {
	ip, err := processInput(&Model2D{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Run2D(ctx, &Model2D{Steps: -1, ReportEvery: -1, Quiet: true}, ip, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
