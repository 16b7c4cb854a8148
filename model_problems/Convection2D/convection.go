package Convection2D

import (
	"fmt"
	"io"
	"os"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/goconvect/FD2D"
	"github.com/notargets/goconvect/utils"
)

/*
Convection2D advances the Boussinesq stream function / temperature equations on a rectangular grid.
Every step assembles C from the current stream function, then solves

	(I + dt/2 C) T' = dt rhsC + (I - dt/2 C) T
	Lap Psi' = -sqrtRa Mask (Dx T' - rhsDx)

in that order. The rows of the fixed temperatures in the first system are plain identity rows
holding T' at its boundary value. The fixed temperatures and the zero stream function edges are
restored after each solve.
The operators are built once in NewConvection and are shared read only by every step.
*/
type Convection2D struct {
	Config     Config
	Grid       FD2D.Grid
	Ops        *FD2D.Operators
	psiSolver  utils.Factorization
	fixedT     []int // Unknowns held at a fixed temperature
	FactorTime time.Duration // Time spent building the stream function solver
	out        io.Writer
}

func NewConvection(cfg Config) (c *Convection2D, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	c = &Convection2D{
		Config: cfg,
		Grid:   cfg.Grid(),
		out:    os.Stdout,
	}
	c.Ops = FD2D.NewOperators(c.Grid, cfg.TemperatureBCs())
	c.fixedT = c.Ops.TemperatureBCs.Fixed(c.Grid)
	start := time.Now()
	if c.psiSolver, err = newPoissonSolver(c.Ops.LapPsi, cfg); err != nil {
		return nil, fmt.Errorf("preparing the stream function solver: %w", err)
	}
	c.FactorTime = time.Since(start)
	return
}

// SetOutput redirects the progress report, nil silences it
func (c *Convection2D) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	c.out = w
}

func newPoissonSolver(A FD2D.Operator, cfg Config) (F utils.Factorization, err error) {
	switch cfg.PsiPolicy {
	case SolveFresh:
		F = &freshSolver{A: A.CSR, st: cfg.PsiSolver, opts: cfg.SolverOptions}
	default:
		F, err = utils.Factorize(A.CSR, cfg.PsiSolver, cfg.SolverOptions)
	}
	return
}

// freshSolver refactors its matrix on every solve
type freshSolver struct {
	A    utils.CSR
	st   utils.SolverType
	opts utils.SolverOptions
}

func (fs *freshSolver) Solve(b []float64) (x []float64, err error) {
	var F utils.Factorization
	if F, err = utils.Factorize(fs.A, fs.st, fs.opts); err != nil {
		return
	}
	return F.Solve(b)
}

// Step computes the state one time step after s, s is not modified. A failed solve returns a
// *StepError with Step left at zero, the driver fills in the step number.
func (c *Convection2D) Step(s State) (next State, err error) {
	var (
		dt     = c.Config.Dt
		sqrtRa = c.Config.SqrtRa
		ops    = c.Ops
		n      = c.Grid.N()
	)
	if len(s.T) != n || len(s.Psi) != n {
		panic(fmt.Errorf("state has lengths T = %d, Psi = %d, grid needs %d", len(s.T), len(s.Psi), n))
	}
	C := ops.AssembleAdvectionDiffusion(s.Psi, sqrtRa)

	// Crank-Nicolson temperature update, the fixed temperature rows are plain identity rows
	A := utils.WithIdentityRows(
		utils.LinearCombination(1, utils.Term{Op: C.CSR, Scale: 0.5 * dt}),
		c.fixedT)
	b := C.MulVec(s.T)
	floats.Scale(-0.5*dt, b)
	floats.Add(b, s.T)
	floats.AddScaled(b, dt, C.Rhs)
	ops.TemperatureBCs.Enforce(c.Grid, b)
	var F utils.Factorization
	if F, err = utils.Factorize(A, c.Config.TemperatureSolver, c.Config.SolverOptions); err != nil {
		return next, &StepError{Stage: StageTemperature, Err: err}
	}
	if next.T, err = F.Solve(b); err != nil {
		return next, &StepError{Stage: StageTemperature, Err: err}
	}
	if utils.IsNan(next.T) {
		return next, &StepError{Stage: StageTemperature, Err: ErrNonFinite}
	}
	c.EnforceTemperatureBCs(next.T)

	// Stream function from the buoyancy of the new temperature
	rhs := ops.Mask.Apply(ops.DxT.Apply(next.T))
	floats.Scale(-sqrtRa, rhs)
	if next.Psi, err = c.psiSolver.Solve(rhs); err != nil {
		return next, &StepError{Stage: StageStreamFunction, Err: err}
	}
	if utils.IsNan(next.Psi) {
		return next, &StepError{Stage: StageStreamFunction, Err: ErrNonFinite}
	}
	c.EnforceStreamBCs(next.Psi)
	return
}

// EnforceTemperatureBCs overwrites the bottom and top rows with the fixed temperatures
func (c *Convection2D) EnforceTemperatureBCs(T []float64) {
	c.Ops.TemperatureBCs.Enforce(c.Grid, T)
}

// EnforceStreamBCs zeroes all four edges
func (c *Convection2D) EnforceStreamBCs(Psi []float64) {
	FD2D.StreamBCs().Enforce(c.Grid, Psi)
}
