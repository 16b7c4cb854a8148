/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/goconvect/InputParameters"
	"github.com/notargets/goconvect/model_problems/Convection2D"
)

type Model2D struct {
	ICFile      string
	Steps       int // Overrides Nt from the input file when >= 0
	ReportEvery int // Overrides ReportEvery from the input file when >= 0
	Quiet       bool
	Perf        bool
}

const exampleFile = `
########################################
Title: "Buoyancy driven flow"
Ny: 20
Nx: 40
Dt: 0.01
Nt: 3000
SqrtRa: 7         # or Ra: 49
TBottom: 1
TTop: 0
LeftBC: adiabatic # or isothermal, with TLeft
RightBC: adiabatic
ReportEvery: 10
PsiPolicy: cached # or fresh
TemperatureSolver: bandlu
PsiSolver: cholesky
########################################
`

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional convection in a box heated from below",
	Long: `
Marches the temperature and stream function of a buoyancy driven flow in time,
printing the heat flux and peak speed every ReportEvery steps.

goconvect 2D -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		m2d := &Model2D{
			ICFile:      viper.GetString("inputConditionsFile"),
			Steps:       viper.GetInt("steps"),
			ReportEvery: viper.GetInt("reportEvery"),
			Quiet:       viper.GetBool("quiet"),
			Perf:        viper.GetBool("perf"),
		}
		ip, err := processInput(m2d)
		if err != nil {
			log.Fatalf("error: %v", err)
		}
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		stop := startProfile()
		err = Run2D(ctx, m2d, ip, os.Stdout)
		stop()
		if err != nil {
			log.Fatalf("error: %v", err)
		}
	},
}

func processInput(m2d *Model2D) (ip *InputParameters.InputParametersConvection2D, err error) {
	var (
		data []byte
	)
	ip = InputParameters.NewInputParametersConvection2D()
	if len(m2d.ICFile) == 0 {
		fmt.Printf("no input parameters file (-I, --inputConditionsFile), running the defaults\n")
		fmt.Printf("Example File:%s\n", exampleFile)
	} else {
		if data, err = os.ReadFile(m2d.ICFile); err != nil {
			return nil, err
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", m2d.ICFile, err)
		}
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	return
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Ny, Nx, Dt, Nt\n\t- SqrtRa (or Ra)")
	TwoDCmd.Flags().IntP("steps", "s", -1, "number of steps, overrides Nt in the input file")
	TwoDCmd.Flags().IntP("reportEvery", "r", -1, "steps between progress reports, overrides ReportEvery in the input file")
	TwoDCmd.Flags().BoolP("quiet", "q", false, "suppress the progress report")
	TwoDCmd.Flags().Bool("perf", false, "count CPU cycles of the run with hardware counters (linux)")
	for _, name := range []string{"inputConditionsFile", "steps", "reportEvery", "quiet", "perf"} {
		_ = viper.BindPFlag(name, TwoDCmd.Flags().Lookup(name))
	}
}

func Run2D(ctx context.Context, m2d *Model2D, ip *InputParameters.InputParametersConvection2D, out io.Writer) (err error) {
	var (
		cfg Convection2D.Config
		c   *Convection2D.Convection2D
	)
	if cfg, err = ip.ToConfig(); err != nil {
		return
	}
	if m2d.Steps >= 0 {
		cfg.Nt = m2d.Steps
	}
	if m2d.ReportEvery >= 0 {
		cfg.ReportEvery = m2d.ReportEvery
	}
	if c, err = Convection2D.NewConvection(cfg); err != nil {
		return
	}
	c.SetOutput(out)
	if m2d.Quiet {
		c.SetOutput(nil)
	}
	solve := func() (err error) {
		_, err = c.Solve(ctx)
		return
	}
	if m2d.Perf {
		return countCycles(solve, out)
	}
	return solve()
}
