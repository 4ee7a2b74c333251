package solve

import (
	"errors"
	"fmt"
	"strings"
)

// InfeasibleError reports that no assignment satisfies all seven hard
// constraints. TightConstraints names the constraints that Violations
// reports for the deepest partial assignment the search reached before
// exhausting the space. Slots still unassigned there count against
// weekly_protein_counts, so that name is always among them. It is not a
// minimal unsat core.
type InfeasibleError struct {
	TightConstraints []string
	err              error
}

func (e *InfeasibleError) Error() string {
	if len(e.TightConstraints) == 0 {
		return e.err.Error()
	}
	return fmt.Sprintf("%s (tight constraints: %s)", e.err.Error(), strings.Join(e.TightConstraints, ", "))
}

func (e *InfeasibleError) Unwrap() error { return e.err }

// NewInfeasibleError wraps the base "no feasible solution" error with the
// tight-constraint summary gathered during search.
func NewInfeasibleError(tight []string) error {
	return &InfeasibleError{err: errors.New("no feasible solution found"), TightConstraints: tight}
}

// TimeoutError reports that the solver exceeded its wall-clock bound
// before determining feasibility either way.
type TimeoutError struct {
	err error
}

func (e *TimeoutError) Error() string { return e.err.Error() }
func (e *TimeoutError) Unwrap() error { return e.err }

// NewTimeoutError wraps the base timeout condition.
func NewTimeoutError() error {
	return &TimeoutError{err: errors.New("solver exceeded wall-clock bound")}
}

// IsInfeasible reports whether err (or anything it wraps) is an
// InfeasibleError.
func IsInfeasible(err error) bool {
	var e *InfeasibleError
	return errors.As(err, &e)
}

// IsTimeout reports whether err (or anything it wraps) is a TimeoutError.
func IsTimeout(err error) bool {
	var e *TimeoutError
	return errors.As(err, &e)
}
