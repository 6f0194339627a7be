package solver

import (
	"context"
	"strconv"

	"github.com/crillab/gophersat/maxsat"
	gsolver "github.com/crillab/gophersat/solver"

	"github.com/operator-framework/auctsat/pkg/wpms"
)

// Gophersat solves formulas in process with the gophersat MaxSAT optimiser.
type Gophersat struct {
	opts *options
}

func NewGophersat(opts ...Option) (*Gophersat, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Gophersat{opts: o}, nil
}

type gophersatModel struct {
	values func(v int) bool
	ok     bool
}

// Solve implements Solver. gophersat cannot be interrupted, so when ctx ends
// first Solve returns ErrIncomplete while the search finishes in the
// background.
func (g *Gophersat) Solve(ctx context.Context, f *wpms.Formula) (*Result, error) {
	start(g.opts.tracer, KindGophersat, f.NumVars(), len(f.SoftClauses()), len(f.HardClauses()))
	if res, ok, err := trivial(f); ok {
		finish(g.opts.tracer, KindGophersat, res, err)
		return res, err
	}

	ctx, cancel := g.opts.context(ctx)
	defer cancel()

	out := make(chan gophersatModel, 1)
	go func() {
		if len(f.SoftClauses()) == 0 {
			out <- solveDecision(f)
			return
		}
		out <- solveOptimisation(f)
	}()

	var m gophersatModel
	select {
	case <-ctx.Done():
		done(g.opts.tracer, KindGophersat, unknown, 0)
		return nil, ErrIncomplete
	case m = <-out:
	}

	if !m.ok {
		finish(g.opts.tracer, KindGophersat, nil, ErrUnsatisfiable)
		return nil, ErrUnsatisfiable
	}
	res := &Result{Assignment: fromValues(f.NumVars(), m.values)}
	res.Cost = f.Cost(res.Assignment)
	finish(g.opts.tracer, KindGophersat, res, nil)
	return res, nil
}

func solveOptimisation(f *wpms.Formula) gophersatModel {
	constrs := make([]maxsat.Constr, 0, len(f.SoftClauses())+len(f.HardClauses()))
	for _, s := range f.SoftClauses() {
		constrs = append(constrs, maxsat.WeightedClause(maxsatLits(s.Lits), s.Weight))
	}
	for _, c := range f.HardClauses() {
		constrs = append(constrs, maxsat.HardClause(maxsatLits(c)...))
	}
	model, _ := maxsat.New(constrs...).Solve()
	if model == nil {
		return gophersatModel{}
	}
	return gophersatModel{
		// variables that appear in no clause are absent and default to false
		values: func(v int) bool { return model[strconv.Itoa(v)] },
		ok:     true,
	}
}

// solveDecision handles formulas made of hard clauses only, which the
// optimiser has no cost function for.
func solveDecision(f *wpms.Formula) gophersatModel {
	cnf := make([][]int, len(f.HardClauses()))
	for i, c := range f.HardClauses() {
		cnf[i] = make([]int, len(c))
		for j, l := range c {
			cnf[i][j] = int(l)
		}
	}
	s := gsolver.New(gsolver.ParseSlice(cnf))
	if s.Solve() != gsolver.Sat {
		return gophersatModel{}
	}
	bindings := s.Model()
	return gophersatModel{
		values: func(v int) bool { return v <= len(bindings) && bindings[v-1] },
		ok:     true,
	}
}

func maxsatLits(c wpms.Clause) []maxsat.Lit {
	lits := make([]maxsat.Lit, len(c))
	for i, l := range c {
		name := strconv.Itoa(l.Var())
		if l.Positive() {
			lits[i] = maxsat.Var(name)
		} else {
			lits[i] = maxsat.Not(name)
		}
	}
	return lits
}
