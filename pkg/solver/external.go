package solver

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/operator-framework/auctsat/pkg/wpms"
)

// External runs a MaxSAT solver binary that follows the MaxSAT evaluation
// conventions: it reads a WCNF file given as its last argument and prints
//
//	o <cost>
//	s OPTIMUM FOUND | SATISFIABLE | UNSATISFIABLE | UNKNOWN
//	v <model>
//
// where the model is either a list of signed literals or a string of 0/1
// values, one per variable.
type External struct {
	opts *options
}

func NewExternal(opts ...Option) (*External, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if o.path == "" {
		return nil, errors.New("external solver requires an executable path")
	}
	return &External{opts: o}, nil
}

// Solve implements Solver.
func (e *External) Solve(ctx context.Context, f *wpms.Formula) (*Result, error) {
	start(e.opts.tracer, KindExternal, f.NumVars(), len(f.SoftClauses()), len(f.HardClauses()))
	if res, ok, err := trivial(f); ok {
		finish(e.opts.tracer, KindExternal, res, err)
		return res, err
	}
	ctx, cancel := e.opts.context(ctx)
	defer cancel()

	wcnf, err := os.CreateTemp("", "auctsat-*.wcnf")
	if err != nil {
		return nil, fmt.Errorf("error creating formula file: %w", err)
	}
	defer os.Remove(wcnf.Name())
	if err := f.WriteWCNF(wcnf); err != nil {
		wcnf.Close()
		return nil, err
	}
	if err := wcnf.Close(); err != nil {
		return nil, fmt.Errorf("error writing formula file: %w", err)
	}

	args := append(append([]string(nil), e.opts.args...), wcnf.Name())
	cmd := exec.CommandContext(ctx, e.opts.path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, runErr := cmd.Output()
	if ctx.Err() != nil {
		done(e.opts.tracer, KindExternal, unknown, 0)
		return nil, ErrIncomplete
	}

	out, err := parseSolverOutput(bytes.NewReader(stdout), f.NumVars())
	if err != nil {
		if runErr != nil {
			// solvers commonly exit non-zero on purpose (10, 20, 30), only
			// report the exit status when the output is unusable
			return nil, fmt.Errorf("error running %s: %v: %s", e.opts.path, runErr, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("error reading output of %s: %w", e.opts.path, err)
	}

	switch out.status {
	case "UNSATISFIABLE":
		done(e.opts.tracer, KindExternal, unsatisfiable, 0)
		return nil, ErrUnsatisfiable
	case "OPTIMUM FOUND", "SATISFIABLE":
	default:
		done(e.opts.tracer, KindExternal, unknown, 0)
		return nil, ErrIncomplete
	}
	if out.assignment == nil {
		return nil, fmt.Errorf("error reading output of %s: no model after status %q", e.opts.path, out.status)
	}

	res := &Result{Cost: f.Cost(out.assignment), Assignment: out.assignment}
	if out.hasCost && out.cost != res.Cost {
		return nil, fmt.Errorf("%s reported cost %d but its model costs %d", e.opts.path, out.cost, res.Cost)
	}
	done(e.opts.tracer, KindExternal, satisfiable, res.Cost)
	return res, nil
}

type solverOutput struct {
	status     string
	cost       int
	hasCost    bool
	assignment wpms.Assignment
}

func parseSolverOutput(r io.Reader, numVars int) (*solverOutput, error) {
	out := &solverOutput{}
	var model []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 's':
			out.status = strings.TrimSpace(line[1:])
		case 'o':
			cost, err := strconv.Atoi(strings.TrimSpace(line[1:]))
			if err != nil {
				return nil, fmt.Errorf("invalid cost line (%s)", line)
			}
			// the last o line is the best cost
			out.cost, out.hasCost = cost, true
		case 'v':
			model = append(model, strings.Fields(line[1:])...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if out.status == "" {
		return nil, errors.New("missing status line")
	}
	if len(model) == 0 {
		return out, nil
	}

	var err error
	if len(model) == 1 && numVars > 0 && len(model[0]) >= numVars && isBitString(model[0]) {
		out.assignment, err = bitsModel(model[0], numVars)
	} else {
		out.assignment, err = litsModel(model, numVars)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func isBitString(s string) bool {
	for _, r := range s {
		if r != '0' && r != '1' {
			return false
		}
	}
	return true
}

func bitsModel(bits string, numVars int) (wpms.Assignment, error) {
	if len(bits) < numVars {
		return nil, fmt.Errorf("model has %d values, expected %d", len(bits), numVars)
	}
	return fromValues(numVars, func(v int) bool { return bits[v-1] == '1' }), nil
}

func litsModel(fields []string, numVars int) (wpms.Assignment, error) {
	values := make([]bool, numVars+1)
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%s is not a literal", field)
		}
		if n == 0 {
			continue
		}
		l := wpms.Lit(n)
		if l.Var() > numVars {
			// auxiliary variables introduced by the solver
			continue
		}
		values[l.Var()] = l.Positive()
	}
	return fromValues(numVars, func(v int) bool { return values[v] }), nil
}
