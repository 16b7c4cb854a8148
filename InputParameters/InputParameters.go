package InputParameters

import (
	"fmt"
	"math"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/goconvect/model_problems/Convection2D"
	"github.com/notargets/goconvect/types"
	"github.com/notargets/goconvect/utils"
)

// Parameters obtained from the YAML input file
type InputParametersConvection2D struct {
	Title             string  `yaml:"Title"`
	Ny                int     `yaml:"Ny"`
	Nx                int     `yaml:"Nx"`
	Dy                float64 `yaml:"Dy"` // Zero derives the spacing from Ny
	Dx                float64 `yaml:"Dx"` // Zero derives the spacing from Ny, not Nx
	Dt                float64 `yaml:"Dt"`
	Nt                int     `yaml:"Nt"`
	SqrtRa            float64 `yaml:"SqrtRa"`
	Ra                float64 `yaml:"Ra"` // Used when SqrtRa is not given
	TBottom           float64 `yaml:"TBottom"`
	TTop              float64 `yaml:"TTop"`
	FluxLeft          float64 `yaml:"FluxLeft"`
	FluxRight         float64 `yaml:"FluxRight"`
	LeftBC            string  `yaml:"LeftBC"` // adiabatic (Neuman) or isothermal (Dirichlet)
	RightBC           string  `yaml:"RightBC"`
	TLeft             float64 `yaml:"TLeft"` // Used by an isothermal side
	TRight            float64 `yaml:"TRight"`
	Perturbation      *bool   `yaml:"Perturbation"`
	ReportEvery       int     `yaml:"ReportEvery"`
	PsiPolicy         string  `yaml:"PsiPolicy"`
	TemperatureSolver string  `yaml:"TemperatureSolver"`
	PsiSolver         string  `yaml:"PsiSolver"`
	Tolerance         float64 `yaml:"Tolerance"`
	MaxIterations     int     `yaml:"MaxIterations"`
}

// NewInputParametersConvection2D is filled with the defaults, Parse overwrites the keys present in the file
func NewInputParametersConvection2D() (ip *InputParametersConvection2D) {
	var (
		def          = Convection2D.DefaultConfig()
		perturbation = def.Perturbation
	)
	ip = &InputParametersConvection2D{
		Title:             def.Title,
		Ny:                def.Ny,
		Nx:                def.Nx,
		Dt:                def.Dt,
		Nt:                def.Nt,
		SqrtRa:            def.SqrtRa,
		TBottom:           def.TBottom,
		TTop:              def.TTop,
		LeftBC:            strings.ToLower(def.LeftBC.String()),
		RightBC:           strings.ToLower(def.RightBC.String()),
		Perturbation:      &perturbation,
		ReportEvery:       def.ReportEvery,
		PsiPolicy:         "cached",
		TemperatureSolver: "bandlu",
		PsiSolver:         "cholesky",
		Tolerance:         def.SolverOptions.Tolerance,
		MaxIterations:     def.SolverOptions.MaxIterations,
	}
	return
}

func (ip *InputParametersConvection2D) Parse(data []byte) (err error) {
	var raw map[string]interface{}
	if err = yaml.Unmarshal(data, &raw); err != nil {
		return
	}
	// A file giving only Ra must not be overridden by the default SqrtRa
	if _, hasRa := raw["Ra"]; hasRa {
		if _, hasSqrtRa := raw["SqrtRa"]; !hasSqrtRa {
			ip.SqrtRa = 0
		}
	}
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersConvection2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d x %d]\t\t= Ny x Nx\n", ip.Ny, ip.Nx)
	fmt.Printf("%8.5f, %8.5f\t= Dy, Dx (0 is derived)\n", ip.Dy, ip.Dx)
	fmt.Printf("%8.5f\t\t= Dt\n", ip.Dt)
	fmt.Printf("[%d]\t\t\t= Nt\n", ip.Nt)
	fmt.Printf("%8.5f\t\t= SqrtRa\n", ip.sqrtRa())
	fmt.Printf("%8.5f, %8.5f\t= TBottom, TTop\n", ip.TBottom, ip.TTop)
	fmt.Printf("%8.5f, %8.5f\t= FluxLeft, FluxRight\n", ip.FluxLeft, ip.FluxRight)
	fmt.Printf("[%s], [%s]\t= LeftBC, RightBC\n", ip.LeftBC, ip.RightBC)
	fmt.Printf("%8.5f, %8.5f\t= TLeft, TRight\n", ip.TLeft, ip.TRight)
	fmt.Printf("[%s]\t\t= PsiPolicy\n", ip.PsiPolicy)
	fmt.Printf("[%s], [%s]\t= TemperatureSolver, PsiSolver\n", ip.TemperatureSolver, ip.PsiSolver)
}

func (ip *InputParametersConvection2D) sqrtRa() float64 {
	if ip.SqrtRa == 0 && ip.Ra > 0 {
		return math.Sqrt(ip.Ra)
	}
	return ip.SqrtRa
}

// Validate checks the names in the file, the numeric ranges are checked by the run configuration
func (ip *InputParametersConvection2D) Validate() (err error) {
	if _, ok := Convection2D.FactorPolicyNames[lower(ip.PsiPolicy)]; !ok && len(ip.PsiPolicy) != 0 {
		return fmt.Errorf("unknown PsiPolicy [%s]", ip.PsiPolicy)
	}
	for _, name := range []string{ip.TemperatureSolver, ip.PsiSolver} {
		if _, ok := utils.SolverNames[lower(name)]; !ok && len(name) != 0 {
			return fmt.Errorf("unknown solver [%s]", name)
		}
	}
	for _, name := range []string{ip.LeftBC, ip.RightBC} {
		if _, ok := types.BCNameMap[lower(name)]; !ok && len(name) != 0 {
			return fmt.Errorf("unknown boundary condition [%s]", name)
		}
	}
	if ip.Ra < 0 {
		return fmt.Errorf("Rayleigh number can not be negative, have %v", ip.Ra)
	}
	_, err = ip.ToConfig()
	return
}

func (ip *InputParametersConvection2D) ToConfig() (cfg Convection2D.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	cfg = Convection2D.DefaultConfig()
	cfg.Title = ip.Title
	cfg.Ny, cfg.Nx = ip.Ny, ip.Nx
	cfg.Dy, cfg.Dx = ip.Dy, ip.Dx
	cfg.Dt, cfg.Nt = ip.Dt, ip.Nt
	cfg.SqrtRa = ip.sqrtRa()
	cfg.TBottom, cfg.TTop = ip.TBottom, ip.TTop
	cfg.FluxLeft, cfg.FluxRight = ip.FluxLeft, ip.FluxRight
	cfg.TLeft, cfg.TRight = ip.TLeft, ip.TRight
	if len(ip.LeftBC) != 0 {
		cfg.LeftBC = types.ParseBCName(ip.LeftBC)
	}
	if len(ip.RightBC) != 0 {
		cfg.RightBC = types.ParseBCName(ip.RightBC)
	}
	if ip.Perturbation != nil {
		cfg.Perturbation = *ip.Perturbation
	}
	cfg.ReportEvery = ip.ReportEvery
	cfg.PsiPolicy = Convection2D.NewFactorPolicy(ip.PsiPolicy)
	if len(ip.TemperatureSolver) != 0 {
		cfg.TemperatureSolver = utils.NewSolverType(ip.TemperatureSolver)
	}
	if len(ip.PsiSolver) != 0 {
		cfg.PsiSolver = utils.NewSolverType(ip.PsiSolver)
	}
	cfg.SolverOptions = utils.SolverOptions{
		Tolerance:     ip.Tolerance,
		MaxIterations: ip.MaxIterations,
	}
	err = cfg.Validate()
	return
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
