package Convection2D

import (
	"errors"
	"fmt"
)

type Stage string

const (
	StageTemperature    Stage = "temperature"
	StageStreamFunction Stage = "streamfunction"
)

var ErrNonFinite = errors.New("non finite value in solution")

// StepError reports the step and the solve that failed, the cause is available through errors.Is/As
type StepError struct {
	Step  int
	Stage Stage
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %s solve: %v", e.Step, e.Stage, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
