package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/operator-framework/auctsat/pkg/wpms"
)

var (
	// ErrUnsatisfiable is returned when the hard clauses of a formula admit
	// no model.
	ErrUnsatisfiable = errors.New("formula not satisfiable")
	// ErrIncomplete is returned when a solve was cancelled or timed out
	// before a model was found.
	ErrIncomplete = errors.New("cancelled before a solution could be found")
)

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// Result is a model returned by a Solver together with its cost, the total
// weight of the soft clauses it falsifies.
type Result struct {
	Cost       int
	Assignment wpms.Assignment
}

// Solver is a black-box Weighted Partial MaxSAT solver. Solve returns an
// optimal (or best found) assignment deciding every variable of the
// formula, ErrUnsatisfiable when the hard clauses cannot all hold, or
// ErrIncomplete if ctx ends first.
type Solver interface {
	Solve(ctx context.Context, f *wpms.Formula) (*Result, error)
}

// Kind names a Solver implementation.
type Kind string

const (
	KindGophersat Kind = "gophersat"
	KindGini      Kind = "gini"
	KindExternal  Kind = "external"
)

// Kinds lists the available implementations.
func Kinds() []Kind {
	return []Kind{KindGophersat, KindGini, KindExternal}
}

type options struct {
	tracer  Tracer
	timeout time.Duration
	path    string
	args    []string
}

type Option func(o *options) error

// WithTracer reports solver progress to t.
func WithTracer(t Tracer) Option {
	return func(o *options) error {
		o.tracer = t
		return nil
	}
}

// WithTimeout bounds every Solve call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("negative timeout %s", d)
		}
		o.timeout = d
		return nil
	}
}

// WithExecutable sets the binary, and its extra arguments, run by the
// external solver.
func WithExecutable(path string, args ...string) Option {
	return func(o *options) error {
		o.path = path
		o.args = args
		return nil
	}
}

var defaults = []Option{
	func(o *options) error {
		if o.tracer == nil {
			o.tracer = DefaultTracer{}
		}
		return nil
	},
}

func newOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, option := range append(opts, defaults...) {
		if err := option(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// New returns the Solver of the given kind.
func New(kind Kind, opts ...Option) (Solver, error) {
	switch kind {
	case KindGophersat:
		return NewGophersat(opts...)
	case KindGini:
		return NewGini(opts...)
	case KindExternal:
		return NewExternal(opts...)
	}
	return nil, fmt.Errorf("unknown solver %q, expected one of %v", kind, Kinds())
}

func (o *options) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(ctx, o.timeout)
	}
	return context.WithCancel(ctx)
}

// trivial handles formulas that need no search: those with an empty hard
// clause and those without clauses. ok is false otherwise.
func trivial(f *wpms.Formula) (res *Result, ok bool, err error) {
	if f.HasEmptyHardClause() {
		return nil, true, ErrUnsatisfiable
	}
	if len(f.HardClauses()) == 0 && len(f.SoftClauses()) == 0 {
		return &Result{Assignment: fromValues(f.NumVars(), func(int) bool { return false })}, true, nil
	}
	return nil, false, nil
}

// fromValues builds a complete assignment over 1..n.
func fromValues(n int, value func(v int) bool) wpms.Assignment {
	lits := make([]wpms.Lit, n)
	for v := 1; v <= n; v++ {
		l := wpms.Lit(v)
		if !value(v) {
			l = l.Not()
		}
		lits[v-1] = l
	}
	return wpms.NewAssignment(lits...)
}
