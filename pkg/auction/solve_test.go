package auction_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/auctsat/pkg/auction"
	"github.com/operator-framework/auctsat/pkg/solver"
	"github.com/operator-framework/auctsat/pkg/wpms"
)

type fixedSolver struct {
	res *solver.Result
	err error
}

func (s fixedSolver) Solve(_ context.Context, _ *wpms.Formula) (*solver.Result, error) {
	return s.res, s.err
}

var _ = Describe("Solve", func() {
	for _, kind := range []solver.Kind{solver.KindGophersat, solver.KindGini} {
		kind := kind

		Context(string(kind), func() {
			var s solver.Solver

			BeforeEach(func() {
				var err error
				s, err = solver.New(kind)
				Expect(err).ToNot(HaveOccurred())
			})

			It("should find the best allocation without the coverage policy", func() {
				report, err := auction.Solve(context.Background(), scenarioA(), s, auction.Config{})
				Expect(err).ToNot(HaveOccurred())
				Expect(report.Outcome.Winners).To(Equal([]auction.BidID{1, 3}))
				Expect(report.Outcome.Benefit).To(Equal(15))
				Expect(report.Cost).To(Equal(8))
				Expect(report.Optimal).To(BeTrue())
				Expect(report.Status()).To(Equal(auction.Valid))
			})

			It("should report a covering allocation as valid", func() {
				report, err := auction.Solve(context.Background(), scenarioACovered(), s, auction.DefaultConfig())
				Expect(err).ToNot(HaveOccurred())
				Expect(report.Outcome.Winners).To(Equal([]auction.BidID{1, 3, 4}))
				Expect(report.Outcome.Benefit).To(Equal(17))
				Expect(report.Status()).To(Equal(auction.Valid))
			})

			It("should fail when no allocation covers every agent", func() {
				// a1 can only win bid 2, which excludes both bids of a0
				_, err := auction.Solve(context.Background(), scenarioA(), s, auction.DefaultConfig())
				Expect(errors.Is(err, solver.ErrUnsatisfiable)).To(BeTrue())

				var unsat *auction.UnsatisfiableError
				Expect(errors.As(err, &unsat)).To(BeTrue())
				Expect(unsat.UncoveredAgents).To(BeEmpty())
			})

			It("should name agents without bids", func() {
				a, err := auction.New(
					[]auction.Agent{"a0", "a1"},
					[]auction.Good{"g0"},
					[]auction.BidSpec{{Agent: "a0", Goods: []auction.Good{"g0"}, Price: 3}},
				)
				Expect(err).ToNot(HaveOccurred())

				_, err = auction.Solve(context.Background(), a, s, auction.DefaultConfig())
				var unsat *auction.UnsatisfiableError
				Expect(errors.As(err, &unsat)).To(BeTrue())
				Expect(unsat.UncoveredAgents).To(Equal([]auction.Agent{"a1"}))
				Expect(err.Error()).To(ContainSubstring("agents without bids: a1"))
			})

			It("should classify an auction without bids as NoWinner", func() {
				a, err := auction.New([]auction.Agent{"a0"}, []auction.Good{"g0"}, nil)
				Expect(err).ToNot(HaveOccurred())

				report, err := auction.Solve(context.Background(), a, s, auction.Config{})
				Expect(err).ToNot(HaveOccurred())
				Expect(report.Status()).To(Equal(auction.NoWinner))
				Expect(report.Outcome.Empty()).To(BeTrue())
			})
		})
	}

	It("should pass invalid models through unchanged", func() {
		s := fixedSolver{res: &solver.Result{Cost: 5, Assignment: wpms.NewAssignment(1, 2, -3)}}
		report, err := auction.Solve(context.Background(), scenarioA(), s, auction.DefaultConfig())
		Expect(err).ToNot(HaveOccurred())
		Expect(report.Outcome.Winners).To(Equal([]auction.BidID{1, 2}))
		Expect(report.Status()).To(Equal(auction.Invalid))
		Expect(report.Validation.Conflicts).To(HaveLen(1))
	})

	It("should keep the best model of an interrupted solve", func() {
		s := fixedSolver{
			res: &solver.Result{Cost: 13, Assignment: wpms.NewAssignment(-1, 2, -3)},
			err: solver.ErrIncomplete,
		}
		report, err := auction.Solve(context.Background(), scenarioA(), s, auction.Config{})
		Expect(err).ToNot(HaveOccurred())
		Expect(report.Optimal).To(BeFalse())
		Expect(report.Outcome.Winners).To(Equal([]auction.BidID{2}))
	})

	It("should fail when a solver returns neither a model nor an error", func() {
		_, err := auction.Solve(context.Background(), scenarioA(), fixedSolver{}, auction.Config{})
		Expect(err).To(MatchError(ContainSubstring("no model")))
	})

	It("should fail when an interrupted solve found nothing", func() {
		_, err := auction.Solve(context.Background(), scenarioA(), fixedSolver{err: solver.ErrIncomplete}, auction.Config{})
		Expect(errors.Is(err, solver.ErrIncomplete)).To(BeTrue())
	})

	It("should reject malformed input before solving", func() {
		_, err := auction.New(
			[]auction.Agent{"a0"},
			[]auction.Good{"g0"},
			[]auction.BidSpec{{Agent: "a0", Price: 4}},
		)
		Expect(errors.Is(err, auction.ErrMalformedAuction)).To(BeTrue())

		_, err = auction.Solve(context.Background(), nil, fixedSolver{}, auction.DefaultConfig())
		Expect(errors.Is(err, auction.ErrMalformedAuction)).To(BeTrue())
	})
})
