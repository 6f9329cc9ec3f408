package utils

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var GOMAXPROCS = min(runtime.GOMAXPROCS(0), runtime.NumCPU())

// SplitWork Runs do over workSize indexes across routines workers.
// routines <= 0 selects GOMAXPROCS with that many cores held back.
func SplitWork(routines int, workSize uint64, do func(workIndex uint64, routineIndex int) error) error {
	if routines <= 0 {
		routines = min(GOMAXPROCS, max(GOMAXPROCS-routines, 1))
	}

	if routines == 1 {
		// do not spawn goroutines for a single worker
		for workIndex := uint64(0); workIndex < workSize; workIndex++ {
			if err := do(workIndex, 0); err != nil {
				return err
			}
		}
		return nil
	}

	if workSize < uint64(routines) {
		routines = int(workSize)
	}

	var counter atomic.Uint64
	var eg errgroup.Group

	for routineIndex := 0; routineIndex < routines; routineIndex++ {
		eg.Go(func() error {
			for {
				workIndex := counter.Add(1)
				if workIndex > workSize {
					return nil
				}

				if err := do(workIndex-1, routineIndex); err != nil {
					return err
				}
			}
		})
	}
	return eg.Wait()
}
