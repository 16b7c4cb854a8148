package Convection2D

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/notargets/goconvect/utils"
)

// Observer receives a snapshot every ReportEvery steps, it runs between steps on the driver goroutine
type Observer func(d Diagnostics)

/*
Run marches Nt+1 steps from s. Before each step whose number is a multiple of ReportEvery the
observer is handed a snapshot of the state about to be advanced. The context is checked between
steps only. On error the state reached before the failing step is returned with the number of
completed steps.
*/
func (c *Convection2D) Run(ctx context.Context, s State, observe Observer) (final State, steps int, err error) {
	var (
		every = c.Config.ReportEvery
		next  State
	)
	final = s
	for it := 0; it <= c.Config.Nt; it++ {
		if err = ctx.Err(); err != nil {
			return
		}
		if observe != nil && every > 0 && it%every == 0 {
			observe(c.Diagnose(it, final))
		}
		if next, err = c.Step(final); err != nil {
			var se *StepError
			if errors.As(err, &se) {
				se.Step = it
			}
			return
		}
		final = next
		steps++
	}
	return
}

// Solve runs from the initial state and reports progress to the output writer
func (c *Convection2D) Solve(ctx context.Context) (final State, err error) {
	var (
		steps int
	)
	c.PrintInitialization()
	start := time.Now()
	final, steps, err = c.Run(ctx, InitialState(c.Config), c.PrintUpdate)
	c.PrintFinal(time.Since(start), steps)
	return
}

func (c *Convection2D) PrintInitialization() {
	cfg := c.Config
	fmt.Fprintf(c.out, "%s\n", cfg.Title)
	fmt.Fprintf(c.out, "Rayleigh number: %8.2f, sqrt(Ra) = %8.4f\n", cfg.Ra(), cfg.SqrtRa)
	fmt.Fprintf(c.out, "Grid Ny x Nx = %d x %d, dy = %8.5f, dx = %8.5f\n", c.Grid.Ny, c.Grid.Nx, c.Grid.Dy, c.Grid.Dx)
	fmt.Fprintf(c.out, "dt = %8.5f, Nt = %d\n", cfg.Dt, cfg.Nt)
	fmt.Fprintf(c.out, "Temperature BCs: %s\n", c.Ops.TemperatureBCs)
	fmt.Fprintf(c.out, "Temperature solver: %s\n", cfg.TemperatureSolver.Print())
	fmt.Fprintf(c.out, "Stream function solver: %s, %s\n", cfg.PsiSolver.Print(), cfg.PsiPolicy.Print())
	if cfg.PsiPolicy == CacheInvariant {
		fmt.Fprintf(c.out, "Runtime of stream function factorization: %8.2e seconds\n", c.FactorTime.Seconds())
	}
	fmt.Fprintf(c.out, "Starting time marching for %d steps ...\n", cfg.Nt)
	fmt.Fprintf(c.out, "    iter    time  maxSpeed2")
	fmt.Fprintf(c.out, "   q_conduct   q_advect    q_total       Tmin       Tmax        CFL\n")
}

func (c *Convection2D) PrintUpdate(d Diagnostics) {
	format := "%11.4e"
	fmt.Fprintf(c.out, "%8d%8.3f", d.Step, d.Time)
	for _, val := range []float64{d.MaxSpeed2, d.ConductiveFlux, d.AdvectiveFlux, d.TotalFlux, d.TMin, d.TMax, d.CFLNumber()} {
		fmt.Fprintf(c.out, format, val)
	}
	fmt.Fprintf(c.out, "\n")
}

func (c *Convection2D) PrintFinal(elapsed time.Duration, steps int) {
	fmt.Fprintf(c.out, "\nRuntime of time-marching: %8.4f seconds over %d steps\n", elapsed.Seconds(), steps)
	if steps > 0 {
		rate := float64(elapsed.Microseconds()) / float64(c.Grid.N()*steps)
		fmt.Fprintf(c.out, "Rate of execution = %8.5f us/(unknown*step)\n", rate)
	}
	fmt.Fprintf(c.out, "%s\n", utils.GetMemUsage())
}
