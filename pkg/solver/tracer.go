package solver

import (
	"github.com/sirupsen/logrus"
)

// SearchPosition describes one step of a solve.
type SearchPosition struct {
	Solver Kind
	// Phase is one of "start", "bound", "done".
	Phase string
	// Vars, Soft and Hard describe the size of the problem handed to the
	// backend.
	Vars, Soft, Hard int
	// Bound is the cost bound tested in a "bound" step.
	Bound int
	// Outcome is 1 for sat, -1 for unsat and 0 when unknown.
	Outcome int
	Cost    int
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

// LoggingTracer writes every search position as a structured log entry.
type LoggingTracer struct {
	Logger logrus.FieldLogger
}

func (t LoggingTracer) Trace(p SearchPosition) {
	entry := t.Logger.WithFields(logrus.Fields{
		"solver": p.Solver,
		"phase":  p.Phase,
	})
	switch p.Phase {
	case "start":
		entry.WithFields(logrus.Fields{
			"vars": p.Vars,
			"soft": p.Soft,
			"hard": p.Hard,
		}).Debug("solving formula")
	case "bound":
		entry.WithFields(logrus.Fields{
			"bound":   p.Bound,
			"outcome": outcomeString(p.Outcome),
		}).Debug("tested cost bound")
	default:
		entry.WithFields(logrus.Fields{
			"outcome": outcomeString(p.Outcome),
			"cost":    p.Cost,
		}).Debug("solve finished")
	}
}

func outcomeString(outcome int) string {
	switch outcome {
	case satisfiable:
		return "sat"
	case unsatisfiable:
		return "unsat"
	}
	return "unknown"
}

func start(t Tracer, kind Kind, vars, soft, hard int) {
	t.Trace(SearchPosition{Solver: kind, Phase: "start", Vars: vars, Soft: soft, Hard: hard})
}

func done(t Tracer, kind Kind, outcome, cost int) {
	t.Trace(SearchPosition{Solver: kind, Phase: "done", Outcome: outcome, Cost: cost})
}

// finish traces the end of a solve that either produced res or failed with
// ErrUnsatisfiable.
func finish(t Tracer, kind Kind, res *Result, err error) {
	if err != nil {
		done(t, kind, unsatisfiable, 0)
		return
	}
	done(t, kind, satisfiable, res.Cost)
}
