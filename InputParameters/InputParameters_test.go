package InputParameters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goconvect/model_problems/Convection2D"
	"github.com/notargets/goconvect/types"
	"github.com/notargets/goconvect/utils"
)

func TestInputParameters(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
Ny: 16
Nx: 31
Dt: 0.005
Nt: 200
SqrtRa: 30
TBottom: 1.
TTop: 0.
Perturbation: false
ReportEvery: 20
PsiPolicy: Fresh
TemperatureSolver: denselu
PsiSolver: bicgstab
Tolerance: 1.e-9
`)
	ip := NewInputParametersConvection2D()
	require.NoError(t, ip.Parse(fileInput))
	require.NoError(t, ip.Validate())
	if testing.Verbose() {
		ip.Print()
	}
	cfg, err := ip.ToConfig()
	require.NoError(t, err)
	assert.Equal(t, "Test Case", cfg.Title)
	assert.Equal(t, 16, cfg.Ny)
	assert.Equal(t, 31, cfg.Nx)
	assert.Equal(t, 0.005, cfg.Dt)
	assert.Equal(t, 200, cfg.Nt)
	assert.Equal(t, 30., cfg.SqrtRa)
	assert.False(t, cfg.Perturbation)
	assert.Equal(t, Convection2D.SolveFresh, cfg.PsiPolicy)
	assert.Equal(t, utils.DenseLUSolver, cfg.TemperatureSolver)
	assert.Equal(t, utils.BiCGStabSolver, cfg.PsiSolver)
	assert.Equal(t, 1.e-9, cfg.SolverOptions.Tolerance)
	// untouched keys keep their defaults
	assert.Equal(t, 1000, cfg.SolverOptions.MaxIterations)
	assert.InDelta(t, 2./15, cfg.Grid().Dx, 1.e-15)
}

func TestInputDefaults(t *testing.T) {
	ip := NewInputParametersConvection2D()
	require.NoError(t, ip.Parse([]byte(`Title: defaults`)))
	cfg, err := ip.ToConfig()
	require.NoError(t, err)
	def := Convection2D.DefaultConfig()
	def.Title = "defaults"
	assert.Equal(t, def, cfg)
}

func TestInputRayleigh(t *testing.T) {
	ip := NewInputParametersConvection2D()
	require.NoError(t, ip.Parse([]byte("Ra: 2500\n")))
	cfg, err := ip.ToConfig()
	require.NoError(t, err)
	assert.InDelta(t, 50., cfg.SqrtRa, 1.e-12)

	ip = NewInputParametersConvection2D()
	require.NoError(t, ip.Parse([]byte("Ra: 2500\nSqrtRa: 3\n")))
	cfg, err = ip.ToConfig()
	require.NoError(t, err)
	assert.Equal(t, 3., cfg.SqrtRa)
	assert.InDelta(t, 9., cfg.Ra(), 1.e-12)
	assert.False(t, math.IsNaN(cfg.Ra()))
}

func TestInputSideBCs(t *testing.T) {
	ip := NewInputParametersConvection2D()
	require.NoError(t, ip.Parse([]byte("LeftBC: Isothermal\nTLeft: 0.75\nRightBC: adiabatic\nFluxRight: -0.5\n")))
	require.NoError(t, ip.Validate())
	cfg, err := ip.ToConfig()
	require.NoError(t, err)
	assert.Equal(t, types.BC_Dirichlet, cfg.LeftBC)
	assert.Equal(t, types.BC_Neuman, cfg.RightBC)
	bcs := cfg.TemperatureBCs()
	assert.Equal(t, types.BC_Dirichlet, bcs.Side(types.Left).Kind)
	assert.Equal(t, 0.75, bcs.Side(types.Left).Value)
	assert.Equal(t, -0.5, bcs.Side(types.Right).Value)
}

func TestInputErrors(t *testing.T) {
	for _, in := range []string{
		"PsiPolicy: sometimes\n",
		"PsiSolver: gmres\n",
		"TemperatureSolver: cholesky\n",
		"Ny: 2\n",
		"Dt: -1\n",
		"Ra: -4\n",
		"LeftBC: sticky\n",
		"RightBC: free\n",
		"LeftBC: interior\n",
	} {
		ip := NewInputParametersConvection2D()
		require.NoError(t, ip.Parse([]byte(in)))
		assert.Errorf(t, ip.Validate(), "input %q", in)
	}
	ip := NewInputParametersConvection2D()
	assert.Error(t, ip.Parse([]byte("Ny: [1, 2\n")))
}
