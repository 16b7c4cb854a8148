package Convection2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/goconvect/FD2D"
	"github.com/notargets/goconvect/types"
	"github.com/notargets/goconvect/utils"
)

// FactorPolicy selects how the time invariant stream function system is solved, chosen once per run
type FactorPolicy uint8

const (
	CacheInvariant FactorPolicy = iota // Factor the stream function Laplacian once, reuse it every step
	SolveFresh                         // Factor every step
)

var (
	FactorPolicyNames = map[string]FactorPolicy{
		"cached":     CacheInvariant,
		"cache":      CacheInvariant,
		"invariant":  CacheInvariant,
		"fresh":      SolveFresh,
		"solvefresh": SolveFresh,
	}
	FactorPolicyPrintNames = []string{
		"Cached factorization, computed once",
		"Fresh factorization every step",
	}
)

func NewFactorPolicy(label string) (fp FactorPolicy) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if len(label) == 0 {
		return CacheInvariant
	}
	if fp, ok = FactorPolicyNames[label]; !ok {
		err = fmt.Errorf("unable to use factorization policy named [%s]", label)
		panic(err)
	}
	return
}

func (fp FactorPolicy) Print() string {
	if int(fp) < len(FactorPolicyPrintNames) {
		return FactorPolicyPrintNames[fp]
	}
	return "Unknown"
}

/*
Config is the complete description of a run. It is built once, passed by value and never changed by
the solver. A zero Dy or Dx derives the spacing from Ny, see FD2D.NewGrid.
*/
type Config struct {
	Title                        string
	Ny, Nx                       int
	Dy, Dx                       float64
	Dt                           float64
	Nt                           int
	SqrtRa                       float64      // Square root of the Rayleigh number
	TBottom, TTop                float64      // Fixed temperatures
	FluxLeft, FluxRight          float64      // Prescribed dT/dx on Neuman sides
	LeftBC, RightBC              types.BCFLAG // BC_Neuman or BC_Dirichlet
	TLeft, TRight                float64      // Fixed temperatures on Dirichlet sides
	Perturbation                 bool         // Seed the initial temperature with a cold spot near the bottom
	ReportEvery                  int          // Steps between diagnostics, 0 disables them
	PsiPolicy                    FactorPolicy
	TemperatureSolver, PsiSolver utils.SolverType
	SolverOptions                utils.SolverOptions
}

func DefaultConfig() Config {
	return Config{
		Title:             "Buoyancy driven flow",
		Ny:                20,
		Nx:                40,
		Dt:                0.01,
		Nt:                3000,
		SqrtRa:            7,
		TBottom:           1,
		TTop:              0,
		LeftBC:            types.BC_Neuman,
		RightBC:           types.BC_Neuman,
		Perturbation:      true,
		ReportEvery:       10,
		PsiPolicy:         CacheInvariant,
		TemperatureSolver: utils.BandLUSolver,
		PsiSolver:         utils.BandCholeskySolver,
		SolverOptions:     utils.DefaultSolverOptions(),
	}
}

func (cfg Config) Validate() (err error) {
	switch {
	case cfg.Ny < 3 || cfg.Nx < 3:
		err = fmt.Errorf("grid needs at least 3 points in each direction, have Ny, Nx = %d, %d", cfg.Ny, cfg.Nx)
	case cfg.Dy < 0 || cfg.Dx < 0 || !finite(cfg.Dy, cfg.Dx):
		err = fmt.Errorf("grid spacing must be finite and not negative, have Dy, Dx = %v, %v", cfg.Dy, cfg.Dx)
	case !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0):
		err = fmt.Errorf("time step must be positive and finite, have Dt = %v", cfg.Dt)
	case cfg.Nt < 0:
		err = fmt.Errorf("step count can not be negative, have Nt = %d", cfg.Nt)
	case cfg.SqrtRa < 0 || !finite(cfg.SqrtRa):
		err = fmt.Errorf("square root of the Rayleigh number must be finite and not negative, have %v", cfg.SqrtRa)
	case !finite(cfg.TBottom, cfg.TTop, cfg.TLeft, cfg.TRight, cfg.FluxLeft, cfg.FluxRight):
		err = fmt.Errorf("boundary temperatures and fluxes must be finite, have T = %v, %v, %v, %v, flux = %v, %v",
			cfg.TBottom, cfg.TTop, cfg.TLeft, cfg.TRight, cfg.FluxLeft, cfg.FluxRight)
	case !sideKind(cfg.LeftBC) || !sideKind(cfg.RightBC):
		err = fmt.Errorf("side boundaries must be %s or %s, have left = %s, right = %s",
			types.BC_Neuman, types.BC_Dirichlet, cfg.LeftBC, cfg.RightBC)
	case cfg.ReportEvery < 0:
		err = fmt.Errorf("report interval can not be negative, have %d", cfg.ReportEvery)
	case cfg.TemperatureSolver == utils.BandCholeskySolver:
		err = fmt.Errorf("the advection-diffusion operator is not symmetric, %s can not solve it",
			cfg.TemperatureSolver.Print())
	case cfg.PsiPolicy > SolveFresh:
		err = fmt.Errorf("unknown factorization policy %d", cfg.PsiPolicy)
	}
	return
}

// Grid is the discretization described by the config
func (cfg Config) Grid() FD2D.Grid {
	g := FD2D.NewGrid(cfg.Ny, cfg.Nx)
	if cfg.Dy == 0 && cfg.Dx == 0 {
		return g
	}
	dy, dx := cfg.Dy, cfg.Dx
	if dy == 0 {
		dy = g.Dy
	}
	if dx == 0 {
		dx = g.Dx
	}
	return FD2D.NewGridSpacing(cfg.Ny, cfg.Nx, dy, dx)
}

func (cfg Config) TemperatureBCs() (bs FD2D.BoundarySet) {
	bs = FD2D.TemperatureBCs(cfg.TBottom, cfg.TTop, cfg.FluxLeft, cfg.FluxRight)
	if cfg.LeftBC == types.BC_Dirichlet {
		bs[types.Left] = FD2D.Dirichlet(cfg.TLeft)
	}
	if cfg.RightBC == types.BC_Dirichlet {
		bs[types.Right] = FD2D.Dirichlet(cfg.TRight)
	}
	return
}

func sideKind(bc types.BCFLAG) bool {
	return bc == types.BC_Neuman || bc == types.BC_Dirichlet
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (cfg Config) Ra() float64 { return cfg.SqrtRa * cfg.SqrtRa }
