package solver

import (
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/auctsat/pkg/wpms"
)

// litMapping performs translation between formula variables and the
// literals of a gini circuit. Every soft clause is relaxed by a fresh
// literal which, when true, pays the clause weight.
type litMapping struct {
	lits   []z.Lit // indexed by formula variable
	relax  []z.Lit // indexed by soft clause
	used   []bool  // indexed by formula variable
	c      *logic.C
	f      *wpms.Formula
	weight []z.Lit
}

func newLitMapping(f *wpms.Formula) *litMapping {
	d := &litMapping{
		lits:  make([]z.Lit, f.NumVars()+1),
		relax: make([]z.Lit, len(f.SoftClauses())),
		used:  make([]bool, f.NumVars()+1),
		c:     logic.NewC(),
		f:     f,
	}
	for v := 1; v <= f.NumVars(); v++ {
		d.lits[v] = d.c.Lit()
	}
	for _, c := range f.HardClauses() {
		d.use(c)
	}
	for i, s := range f.SoftClauses() {
		d.use(s.Lits)
		d.relax[i] = d.c.Lit()
		// a relaxation literal counts once per unit of weight
		for w := 0; w < s.Weight; w++ {
			d.weight = append(d.weight, d.relax[i])
		}
	}
	return d
}

func (d *litMapping) use(c wpms.Clause) {
	for _, l := range c {
		d.used[l.Var()] = true
	}
}

// LitOf returns the gini literal of a formula literal.
func (d *litMapping) LitOf(l wpms.Lit) z.Lit {
	m := d.lits[l.Var()]
	if !l.Positive() {
		return m.Not()
	}
	return m
}

// AddConstraints teaches g the circuit, every hard clause and every relaxed
// soft clause.
func (d *litMapping) AddConstraints(g inter.Adder) {
	d.c.ToCnf(g)
	for _, c := range d.f.HardClauses() {
		for _, l := range c {
			g.Add(d.LitOf(l))
		}
		g.Add(z.LitNull)
	}
	for i, s := range d.f.SoftClauses() {
		for _, l := range s.Lits {
			g.Add(d.LitOf(l))
		}
		g.Add(d.relax[i])
		g.Add(z.LitNull)
	}
}

// CardinalityConstrainer constructs a sorting network counting the weight
// paid by the relaxation literals. Any new clauses and variables are
// translated to CNF and taught to the given inter.Adder.
func (d *litMapping) CardinalityConstrainer(g inter.Adder) *logic.CardSort {
	clen := d.c.Len()
	cs := d.c.CardSort(d.weight)
	marks := make([]int8, clen, d.c.Len())
	for i := range marks {
		marks[i] = 1
	}
	for w := 0; w <= cs.N(); w++ {
		marks, _ = d.c.CnfSince(g, marks, cs.Leq(w))
	}
	return cs
}

// Value reports the value of formula variable v in the last model of g.
// Variables that occur in no clause were never taught to g and are false.
func (d *litMapping) Value(g inter.Model, v int) bool {
	if !d.used[v] {
		return false
	}
	return g.Value(d.lits[v])
}
