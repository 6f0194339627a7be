package wpms

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidClause is wrapped by every InvalidClauseError.
var ErrInvalidClause = errors.New("invalid clause")

// InvalidClauseError reports a clause that breaks the builder contract. It
// indicates a bug in the code producing the formula, not bad user input.
type InvalidClauseError struct {
	Clause Clause
	Reason string
}

func (e *InvalidClauseError) Error() string {
	return fmt.Sprintf("invalid clause %s: %s", e.Clause, e.Reason)
}

func (e *InvalidClauseError) Unwrap() error {
	return ErrInvalidClause
}

// Lit is a signed reference to a propositional variable. The absolute value
// is the variable id, the sign its polarity.
type Lit int

// Var returns the variable id of l.
func (l Lit) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Not returns the negation of l.
func (l Lit) Not() Lit {
	return -l
}

// Positive reports whether l is a positive literal.
func (l Lit) Positive() bool {
	return l > 0
}

func (l Lit) String() string {
	return strconv.Itoa(int(l))
}

// Clause is a disjunction of literals.
type Clause []Lit

func (c Clause) String() string {
	s := make([]string, len(c))
	for i, l := range c {
		s[i] = l.String()
	}
	return "[" + strings.Join(s, " ") + "]"
}

// SoftClause is a clause that may be violated at the cost of its weight.
type SoftClause struct {
	Lits   Clause
	Weight int
}

// Formula is a Weighted Partial MaxSAT instance. Formulas are produced by a
// Builder and are not modified afterwards.
type Formula struct {
	numVars int
	soft    []SoftClause
	hard    []Clause
}

// NumVars returns the number of allocated variables. Every literal in the
// formula references a variable in 1..NumVars().
func (f *Formula) NumVars() int {
	return f.numVars
}

func (f *Formula) SoftClauses() []SoftClause {
	return f.soft
}

func (f *Formula) HardClauses() []Clause {
	return f.hard
}

// TotalWeight returns the sum of all soft clause weights.
func (f *Formula) TotalWeight() int {
	total := 0
	for _, s := range f.soft {
		total += s.Weight
	}
	return total
}

// HasEmptyHardClause reports whether the formula contains a hard clause
// without literals, which no assignment can satisfy.
func (f *Formula) HasEmptyHardClause() bool {
	for _, c := range f.hard {
		if len(c) == 0 {
			return true
		}
	}
	return false
}

// Satisfies reports whether every hard clause holds under a.
func (f *Formula) Satisfies(a Assignment) bool {
	for _, c := range f.hard {
		if !a.Satisfies(c) {
			return false
		}
	}
	return true
}

// Cost returns the total weight of the soft clauses falsified by a.
func (f *Formula) Cost(a Assignment) int {
	cost := 0
	for _, s := range f.soft {
		if !a.Satisfies(s.Lits) {
			cost += s.Weight
		}
	}
	return cost
}

// Assignment is the set of literals chosen by a solver, at most one per
// variable.
type Assignment map[Lit]struct{}

// NewAssignment builds an Assignment out of signed literals. Zeroes are
// ignored.
func NewAssignment(lits ...Lit) Assignment {
	a := make(Assignment, len(lits))
	for _, l := range lits {
		if l == 0 {
			continue
		}
		a[l] = struct{}{}
	}
	return a
}

// Contains reports whether l was chosen.
func (a Assignment) Contains(l Lit) bool {
	_, ok := a[l]
	return ok
}

// Value reports whether variable v is assigned true.
func (a Assignment) Value(v int) bool {
	return a.Contains(Lit(v))
}

// Satisfies reports whether at least one literal of c is in a.
func (a Assignment) Satisfies(c Clause) bool {
	for _, l := range c {
		if a.Contains(l) {
			return true
		}
	}
	return false
}

// Lits returns the literals of a ordered by variable.
func (a Assignment) Lits() []Lit {
	lits := make([]Lit, 0, len(a))
	for l := range a {
		lits = append(lits, l)
	}
	sort.Slice(lits, func(i, j int) bool {
		return lits[i].Var() < lits[j].Var()
	})
	return lits
}
