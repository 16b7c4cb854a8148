package Convection2D

import (
	"github.com/notargets/goconvect/utils"
)

// State is the temperature and stream function in vector form
type State struct {
	T, Psi []float64
}

func (s State) Copy() State {
	return State{
		T:   append([]float64(nil), s.T...),
		Psi: append([]float64(nil), s.Psi...),
	}
}

/*
InitialState interpolates the temperature linearly from TBottom on row 0 to TTop on the last row of
every column, then applies the fixed side temperatures. The stream function starts at zero. With Perturbation set, grid row 2 at the two center
columns is set to 0.5 to break the symmetry.
*/
func InitialState(cfg Config) (s State) {
	var (
		ny, nx  = cfg.Ny, cfg.Nx
		profile = utils.Linspace(cfg.TBottom, cfg.TTop, ny)
	)
	s = State{
		T:   make([]float64, ny*nx),
		Psi: make([]float64, ny*nx),
	}
	for j := 0; j < nx; j++ {
		copy(s.T[j*ny:(j+1)*ny], profile)
	}
	cfg.TemperatureBCs().Enforce(cfg.Grid(), s.T)
	if cfg.Perturbation && ny > 2 {
		for j := nx/2 - 1; j <= nx/2; j++ {
			if j >= 0 && j < nx {
				s.T[2+ny*j] = 0.5
			}
		}
	}
	return
}
