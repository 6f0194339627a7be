package auction

import (
	"context"
	"errors"
	"fmt"

	"github.com/operator-framework/auctsat/pkg/solver"
)

// Report is the end result of solving an auction.
type Report struct {
	Outcome    Outcome
	Validation *Validation
	// Cost is the weight of the unsatisfied soft clauses, the revenue
	// forgone by the returned allocation.
	Cost int
	// Optimal is false when the solver stopped early and Outcome is only the
	// best allocation found in time.
	Optimal bool
}

// Status returns the classification of the outcome.
func (r *Report) Status() Status {
	return r.Validation.Status
}

// Solve encodes a, hands the formula to s and decodes and validates the
// returned model. An invalid outcome is reported as is in the Report; it is
// never corrected. If s proves the formula unsatisfiable, Solve returns an
// UnsatisfiableError.
func Solve(ctx context.Context, a *Auction, s solver.Solver, config Config) (*Report, error) {
	enc, err := NewEncoder(config).Encode(a)
	if err != nil {
		return nil, err
	}

	res, err := s.Solve(ctx, enc.Formula)
	optimal := true
	switch {
	case errors.Is(err, solver.ErrUnsatisfiable):
		return nil, &UnsatisfiableError{UncoveredAgents: enc.UncoveredAgents}
	case errors.Is(err, solver.ErrIncomplete) && res != nil:
		optimal = false
	case err != nil:
		return nil, fmt.Errorf("error solving auction: %w", err)
	}
	if res == nil {
		return nil, errors.New("error solving auction: solver returned no model")
	}

	outcome := Decode(a, res.Assignment)
	return &Report{
		Outcome:    outcome,
		Validation: NewValidator(config).Validate(a, outcome.Winners),
		Cost:       res.Cost,
		Optimal:    optimal,
	}, nil
}
