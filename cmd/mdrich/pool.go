package main

import (
	"fmt"
	"runtime"

	"github.com/alnah/go-mdrich/internal/config"
)

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolvePoolSize determines the worker count.
// Priority: explicit flag > config > GOMAXPROCS.
func resolvePoolSize(flagWorkers, cfgWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if cfgWorkers > 0 {
		return cfgWorkers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers. Formatting is
	// CPU-bound, so one worker per available CPU.
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > config.MaxWorkers {
		return config.MaxWorkers
	}
	return n
}
