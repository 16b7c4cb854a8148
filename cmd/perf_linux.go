//go:build linux

package cmd

import (
	"fmt"
	"io"
	"log"

	perf "github.com/hodgesds/perf-utils"
)

// countCycles runs f under a CPU cycle counter, f still runs when the counter can not be opened
func countCycles(f func() error, out io.Writer) (err error) {
	var (
		ran bool
		pv  *perf.ProfileValue
	)
	pv, err = perf.CPUCycles(func() error {
		ran = true
		return f()
	})
	if !ran {
		log.Printf("hardware counters unavailable (%v), running without them", err)
		return f()
	}
	if err != nil {
		return
	}
	fmt.Fprintf(out, "CPU cycles = %d, enabled %d ns, running %d ns\n", pv.Value, pv.TimeEnabled, pv.TimeRunning)
	return
}
