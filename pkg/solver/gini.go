package solver

import (
	"context"
	"time"

	"github.com/go-air/gini"

	"github.com/operator-framework/auctsat/pkg/wpms"
)

const pollInterval = 5 * time.Millisecond

// Gini solves formulas in process with the gini SAT solver. Soft clauses are
// relaxed and their total weight is bounded with a sorting network; the
// bound is tightened after every model until no cheaper model exists.
// Each relaxation literal enters the network once per unit of weight, so the
// network grows with the total soft weight rather than the clause count and
// large price sums make Gini much slower than Gophersat.
type Gini struct {
	opts *options
}

func NewGini(opts ...Option) (*Gini, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Gini{opts: o}, nil
}

// Solve implements Solver. When ctx ends after a first model was found, the
// best model so far is returned together with ErrIncomplete.
func (s *Gini) Solve(ctx context.Context, f *wpms.Formula) (*Result, error) {
	start(s.opts.tracer, KindGini, f.NumVars(), len(f.SoftClauses()), len(f.HardClauses()))
	if res, ok, err := trivial(f); ok {
		finish(s.opts.tracer, KindGini, res, err)
		return res, err
	}

	ctx, cancel := s.opts.context(ctx)
	defer cancel()

	g := gini.New()
	litMap := newLitMapping(f)
	litMap.AddConstraints(g)

	switch solveContext(ctx, g) {
	case unsatisfiable:
		done(s.opts.tracer, KindGini, unsatisfiable, 0)
		return nil, ErrUnsatisfiable
	case unknown:
		done(s.opts.tracer, KindGini, unknown, 0)
		return nil, ErrIncomplete
	}
	best := s.model(g, litMap, f)

	if best.Cost > 0 {
		cs := litMap.CardinalityConstrainer(g)
		for best.Cost > 0 {
			bound := best.Cost - 1
			g.Assume(cs.Leq(bound))
			outcome := solveContext(ctx, g)
			s.opts.tracer.Trace(SearchPosition{Solver: KindGini, Phase: "bound", Bound: bound, Outcome: outcome})
			if outcome == unknown {
				done(s.opts.tracer, KindGini, unknown, best.Cost)
				return best, ErrIncomplete
			}
			if outcome == unsatisfiable {
				break
			}
			best = s.model(g, litMap, f)
		}
	}
	done(s.opts.tracer, KindGini, satisfiable, best.Cost)
	return best, nil
}

func (s *Gini) model(g *gini.Gini, litMap *litMapping, f *wpms.Formula) *Result {
	res := &Result{Assignment: fromValues(f.NumVars(), func(v int) bool { return litMap.Value(g, v) })}
	res.Cost = f.Cost(res.Assignment)
	return res
}

// solveContext runs g in the background until it answers or ctx ends.
func solveContext(ctx context.Context, g *gini.Gini) int {
	if ctx.Err() != nil {
		return unknown
	}
	gs := g.GoSolve()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if res, ok := gs.Test(); ok {
			return res
		}
		select {
		case <-ctx.Done():
			return gs.Stop()
		case <-ticker.C:
		}
	}
}
