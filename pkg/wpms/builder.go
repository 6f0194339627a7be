package wpms

// Builder accumulates the clauses of a Formula. Variables must be allocated
// before a clause may reference them.
type Builder struct {
	nextVar int
	soft    []SoftClause
	hard    []Clause
}

// NewBuilder returns a Builder whose variables 1..reserved are already
// allocated. Callers that use their own identifiers as variables (for
// instance bid ids) reserve them here, so that NewVariable never hands out a
// colliding id.
func NewBuilder(reserved int) *Builder {
	if reserved < 0 {
		reserved = 0
	}
	return &Builder{nextVar: reserved + 1}
}

// NewVariable allocates and returns the next unused variable as a positive
// literal.
func (b *Builder) NewVariable() Lit {
	l := Lit(b.nextVar)
	b.nextVar++
	return l
}

// NumVars returns the number of variables allocated so far.
func (b *Builder) NumVars() int {
	return b.nextVar - 1
}

// AddSoftClause appends a clause that should hold, and costs weight when it
// does not.
func (b *Builder) AddSoftClause(lits []Lit, weight int) error {
	c, err := b.clause(lits)
	if err != nil {
		return err
	}
	if weight <= 0 {
		return &InvalidClauseError{Clause: c, Reason: "soft clause weight must be positive"}
	}
	b.soft = append(b.soft, SoftClause{Lits: c, Weight: weight})
	return nil
}

// AddHardClause appends a clause that every admissible assignment must
// satisfy. An empty clause is accepted and makes the formula unsatisfiable.
func (b *Builder) AddHardClause(lits []Lit) error {
	c, err := b.clause(lits)
	if err != nil {
		return err
	}
	b.hard = append(b.hard, c)
	return nil
}

func (b *Builder) clause(lits []Lit) (Clause, error) {
	c := make(Clause, len(lits))
	copy(c, lits)
	for _, l := range c {
		if l == 0 {
			return nil, &InvalidClauseError{Clause: c, Reason: "0 is not a valid literal"}
		}
		if l.Var() >= b.nextVar {
			return nil, &InvalidClauseError{Clause: c, Reason: "references unallocated variable " + Lit(l.Var()).String()}
		}
	}
	return c, nil
}

// Formula returns the formula built so far. The builder may keep being used;
// later additions do not affect the returned value.
func (b *Builder) Formula() *Formula {
	f := &Formula{
		numVars: b.NumVars(),
		soft:    make([]SoftClause, len(b.soft)),
		hard:    make([]Clause, len(b.hard)),
	}
	copy(f.soft, b.soft)
	copy(f.hard, b.hard)
	return f
}
