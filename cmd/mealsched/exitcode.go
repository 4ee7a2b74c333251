package main

import (
	"errors"

	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/solve"
)

// Exit codes: validate-data uses 0/2; generate-plan uses 0/2/3/4.
const (
	exitOK         = 0
	exitGeneric    = 1
	exitValidation = 2
	exitInfeasible = 3
	exitTimeout    = 4
)

// exitCodeFor maps a pipeline error to the documented CLI exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var report *catalog.Report
	if errors.As(err, &report) {
		return exitValidation
	}
	if solve.IsInfeasible(err) {
		return exitInfeasible
	}
	if solve.IsTimeout(err) {
		return exitTimeout
	}
	return exitGeneric
}
