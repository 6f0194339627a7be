package wpms

import (
	"bufio"
	"fmt"
	"io"
)

// Top returns the weight used for hard clauses in WCNF output: strictly
// greater than the sum of all soft weights.
func (f *Formula) Top() int {
	return f.TotalWeight() + 1
}

// WriteWCNF writes f in the DIMACS WCNF format understood by MaxSAT
// evaluation solvers:
//
//	p wcnf <variables> <clauses> <top>
//	<weight> <lit> ... 0
//
// Hard clauses carry the top weight. Soft clauses come first, in insertion
// order, followed by the hard clauses.
func (f *Formula) WriteWCNF(w io.Writer) error {
	bw := bufio.NewWriter(w)
	top := f.Top()
	fmt.Fprintf(bw, "p wcnf %d %d %d\n", f.numVars, len(f.soft)+len(f.hard), top)
	for _, s := range f.soft {
		writeClause(bw, s.Weight, s.Lits)
	}
	for _, c := range f.hard {
		writeClause(bw, top, c)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing wcnf: %w", err)
	}
	return nil
}

func writeClause(w *bufio.Writer, weight int, c Clause) {
	fmt.Fprintf(w, "%d", weight)
	for _, l := range c {
		fmt.Fprintf(w, " %d", int(l))
	}
	w.WriteString(" 0\n")
}
