package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/notargets/goconvect/FD2D"
)

var (
	csvFile string
	study   bool
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study: title, numPTS, h, rms, max")
	studyPtr := flag.Bool("operators", study, "run a grid refinement study of the finite difference operators")
	flag.Parse()
	csvFile = *csvFilePtr
	study = *studyPtr
	if len(csvFile) == 0 && !study {
		flag.Usage()
		os.Exit(1)
	}
	var studies map[string]*ConvergenceStudy
	if study {
		studies = make(map[string]*ConvergenceStudy)
		for _, deriv := range []FD2D.DerivativeType{FD2D.DerivX, FD2D.DerivY, FD2D.Laplace} {
			cs := OperatorStudy(deriv, []int{11, 21, 41, 81})
			studies[cs.title] = cs
		}
	} else {
		var err error
		fmt.Printf("Input file: %v\n", csvFile)
		if studies, err = readCSV(csvFile); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
	}
	titles := make([]string, 0, len(studies))
	for title := range studies {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		cs := studies[title]
		fmt.Printf("Title = %s\n", cs.title)
		rmsOrder, maxOrder := cs.Orders()
		for i := range cs.numPTS {
			fmt.Printf("%6d, %10.3e, %10.3e, %10.3e", cs.numPTS[i], cs.h[i], cs.rms[i], cs.max[i])
			if i > 0 {
				fmt.Printf(", order rms = %5.2f, max = %5.2f", rmsOrder[i-1], maxOrder[i-1])
			}
			fmt.Printf("\n")
		}
	}
}

type ConvergenceStudy struct {
	title    string
	numPTS   []int
	h        []float64
	rms, max []float64
}

func NewConvergenceStudy(title string) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
	}
}

func (cs *ConvergenceStudy) Add(numPTS int, h, rms, max float64) {
	cs.numPTS = append(cs.numPTS, numPTS)
	cs.h = append(cs.h, h)
	cs.rms = append(cs.rms, rms)
	cs.max = append(cs.max, max)
}

// Orders are the observed rates between successive entries, log(e0/e1)/log(h0/h1)
func (cs *ConvergenceStudy) Orders() (rmsOrder, maxOrder []float64) {
	rate := func(e []float64, i int) float64 {
		return math.Log(e[i-1]/e[i]) / math.Log(cs.h[i-1]/cs.h[i])
	}
	for i := 1; i < len(cs.h); i++ {
		rmsOrder = append(rmsOrder, rate(cs.rms, i))
		maxOrder = append(maxOrder, rate(cs.max, i))
	}
	return
}

/*
OperatorStudy measures the interior error of one operator on n x n grids of the unit square for

	f = sin(pi x) sin(pi y)

The boundary rows are left out, they carry the lower order one sided closures.
*/
func OperatorStudy(deriv FD2D.DerivativeType, sizes []int) (cs *ConvergenceStudy) {
	cs = NewConvergenceStudy(deriv.String())
	for _, n := range sizes {
		var (
			h        = 1. / float64(n-1)
			g        = FD2D.NewGridSpacing(n, n, h, h)
			op       = FD2D.NewOperator(g, deriv, FD2D.FreeBCs())
			f, exact = make([]float64, g.N()), make([]float64, g.N())
			sum, mx  float64
			count    int
		)
		for k := range f {
			i, j := g.IJ(k)
			x, y := float64(j)*h, float64(i)*h
			sx, sy := math.Sin(math.Pi*x), math.Sin(math.Pi*y)
			cx, cy := math.Cos(math.Pi*x), math.Cos(math.Pi*y)
			f[k] = sx * sy
			switch deriv {
			case FD2D.DerivX:
				exact[k] = math.Pi * cx * sy
			case FD2D.DerivY:
				exact[k] = math.Pi * sx * cy
			case FD2D.Laplace:
				exact[k] = -2 * math.Pi * math.Pi * sx * sy
			}
		}
		df := op.Apply(f)
		for k := range df {
			if i, j := g.IJ(k); g.OnBoundary(i, j) {
				continue
			}
			e := math.Abs(df[k] - exact[k])
			sum += e * e
			mx = math.Max(mx, e)
			count++
		}
		cs.Add(n, h, math.Sqrt(sum/float64(count)), mx)
	}
	return
}

func readCSV(csvFile string) (studies map[string]*ConvergenceStudy, err error) {
	var (
		records        [][]string
		f              *os.File
		ok             bool
		cs             *ConvergenceStudy
		h, rms, maxErr float64
		npts           int
	)
	studies = make(map[string]*ConvergenceStudy)
	if f, err = os.Open(csvFile); err != nil {
		return
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("line %d: need 5 columns, have %d", i+1, len(rec))
		}
		title := rec[0]
		if npts, err = strconv.Atoi(rec[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		for n, target := range []*float64{&h, &rms, &maxErr} {
			if *target, err = strconv.ParseFloat(rec[2+n], 64); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		if cs, ok = studies[title]; !ok {
			cs = NewConvergenceStudy(title)
			studies[title] = cs
		}
		cs.Add(npts, h, rms, maxErr)
	}
	return
}
