package solve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/auctsat/pkg/auction"
	"github.com/operator-framework/auctsat/pkg/instance"
	"github.com/operator-framework/auctsat/pkg/solver"
)

type options struct {
	solverKind   string
	solverPath   string
	solverArgs   []string
	noMinWinBids bool
	timeout      time.Duration
	verbose      bool
}

func NewSolveCommand(logger logrus.FieldLogger) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves a combinatorial auction",
		Long: `Solves a combinatorial auction given in the following format:
a <agent> <agent> ...
g <good> <good> ...
<agent> <good> <good> ... <price>

The first line lists the agents, the second one the goods and every following
line is a bid of an agent for a set of goods. Bids are numbered from 1.
For instance:
a a0 a1
g g0 g1 g2
a0 g0 g1 10
a1 g1 g2 8
a0 g2 5
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.WithFields(logrus.Fields{"run": uuid.New().String(), "instance": args[0]})
			return solve(cmd.Context(), cmd.OutOrStdout(), log, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.solverKind, "solver", string(solver.KindGophersat), fmt.Sprintf("MaxSAT solver to use %v", solver.Kinds()))
	cmd.Flags().StringVar(&opts.solverPath, "solver-path", "", "path of the MaxSAT binary used by the external solver")
	cmd.Flags().StringArrayVar(&opts.solverArgs, "solver-arg", nil, "extra argument passed to the external solver, may be repeated")
	cmd.Flags().BoolVar(&opts.noMinWinBids, "no-min-win-bids", false, "do not require every agent to win at least one bid")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "maximum solving time, 0 means no limit")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "trace the solver progress at debug level")
	return cmd
}

func solve(ctx context.Context, out io.Writer, log logrus.FieldLogger, path string, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := instance.ParseFile(path)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"agents": len(a.Agents()),
		"goods":  len(a.Goods()),
		"bids":   a.NumBids(),
	}).Info("auction loaded")

	solverOpts := []solver.Option{solver.WithTimeout(opts.timeout)}
	if opts.verbose {
		solverOpts = append(solverOpts, solver.WithTracer(solver.LoggingTracer{Logger: log}))
	}
	if opts.solverPath != "" {
		solverOpts = append(solverOpts, solver.WithExecutable(opts.solverPath, opts.solverArgs...))
	}
	s, err := solver.New(solver.Kind(opts.solverKind), solverOpts...)
	if err != nil {
		return err
	}

	config := auction.DefaultConfig()
	config.RequireMinOneBidPerAgent = !opts.noMinWinBids

	report, err := auction.Solve(ctx, a, s, config)
	var unsat *auction.UnsatisfiableError
	if errors.As(err, &unsat) {
		log.WithError(err).Info("auction has no solution")
		fmt.Fprintln(out, "Unsatisfiable")
		if len(unsat.UncoveredAgents) > 0 {
			fmt.Fprintf(out, "Agents without bids: %s\n", joinAgents(unsat.UncoveredAgents))
		}
		return nil
	}
	if err != nil {
		return err
	}
	if !report.Optimal {
		log.Warn("solver stopped early, the allocation may not be optimal")
	}

	printReport(out, a, report)
	log.WithFields(logrus.Fields{
		"status":  report.Status().String(),
		"benefit": report.Outcome.Benefit,
		"winners": len(report.Outcome.Winners),
	}).Info("auction solved")
	return nil
}

func printReport(out io.Writer, a *auction.Auction, report *auction.Report) {
	if report.Status() == auction.NoWinner {
		fmt.Fprintln(out, "Unsatisfiable")
		fmt.Fprintln(out, "No winning bids")
		return
	}

	fmt.Fprintf(out, "\nBenefit: %d\n", report.Outcome.Benefit)
	for _, id := range report.Outcome.Winners {
		bid, _ := a.Bid(id)
		goods := make([]string, len(bid.Goods))
		for i, g := range bid.Goods {
			goods[i] = string(g)
		}
		fmt.Fprintf(out, "%s: %s (Price %d)\n", bid.Agent, strings.Join(goods, ","), bid.Price)
	}

	if report.Status() == auction.Valid {
		fmt.Fprintln(out, "Valid Solution")
		return
	}
	fmt.Fprintln(out, "Invalid Solution")
	fmt.Fprintln(out, report.Validation.Err())
}

func joinAgents(agents []auction.Agent) string {
	s := make([]string, len(agents))
	for i, a := range agents {
		s[i] = string(a)
	}
	return strings.Join(s, ", ")
}
