package auction_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/auctsat/pkg/auction"
	"github.com/operator-framework/auctsat/pkg/wpms"
)

var _ = Describe("Decode", func() {
	It("should select the bids whose variable is true", func() {
		o := auction.Decode(scenarioA(), wpms.NewAssignment(1, -2, 3))
		Expect(o.Winners).To(Equal([]auction.BidID{1, 3}))
		Expect(o.Benefit).To(Equal(15))
		Expect(o.Empty()).To(BeFalse())
	})

	It("should ignore auxiliary variables", func() {
		o := auction.Decode(scenarioA(), wpms.NewAssignment(-1, 2, -3, 4, 7))
		Expect(o.Winners).To(Equal([]auction.BidID{2}))
		Expect(o.Benefit).To(Equal(8))
	})

	It("should return an empty outcome when nothing wins", func() {
		o := auction.Decode(scenarioA(), wpms.NewAssignment(-1, -2, -3))
		Expect(o.Empty()).To(BeTrue())
		Expect(o.Benefit).To(BeZero())
	})

	It("should agree with Benefit", func() {
		a := scenarioA()
		o := auction.Decode(a, wpms.NewAssignment(1, 2, 3))
		Expect(auction.Benefit(a, o.Winners)).To(Equal(o.Benefit))
		Expect(auction.Benefit(a, []auction.BidID{1, 9})).To(Equal(10))
	})
})

var _ = Describe("Validator", func() {
	var (
		a         *auction.Auction
		validator *auction.Validator
	)

	BeforeEach(func() {
		a = scenarioA()
		validator = auction.NewValidator(auction.DefaultConfig())
	})

	It("should accept a conflict free covering set", func() {
		v := validator.Validate(scenarioACovered(), []auction.BidID{4, 3, 1})
		Expect(v.Status).To(Equal(auction.Valid))
		Expect(v.Conflicts).To(BeEmpty())
		Expect(v.UncoveredAgents).To(BeEmpty())
		Expect(v.Err()).ToNot(HaveOccurred())
	})

	It("should reject a conflict free set leaving an agent without a bid", func() {
		v := validator.Validate(a, []auction.BidID{3, 1})
		Expect(v.Status).To(Equal(auction.Invalid))
		Expect(v.Conflicts).To(BeEmpty())
		Expect(v.UncoveredAgents).To(Equal([]auction.Agent{"a1"}))
	})

	It("should classify an empty set as NoWinner", func() {
		v := validator.Validate(a, nil)
		Expect(v.Status).To(Equal(auction.NoWinner))
		Expect(v.Err()).ToNot(HaveOccurred())
	})

	It("should report conflicting winners with their shared goods", func() {
		v := validator.Validate(a, []auction.BidID{1, 2})
		Expect(v.Status).To(Equal(auction.Invalid))
		Expect(v.Conflicts).To(Equal([]auction.Conflict{
			{Bids: [2]auction.BidID{1, 2}, Goods: []auction.Good{"g1"}},
		}))
		Expect(v.UncoveredAgents).To(BeEmpty())
	})

	It("should report every conflict and uncovered agent", func() {
		v := validator.Validate(a, []auction.BidID{1, 2, 3})
		Expect(v.Status).To(Equal(auction.Invalid))
		Expect(v.Conflicts).To(HaveLen(2))

		v = validator.Validate(a, []auction.BidID{1})
		Expect(v.Status).To(Equal(auction.Invalid))
		Expect(v.UncoveredAgents).To(Equal([]auction.Agent{"a1"}))

		err := v.Err()
		Expect(errors.Is(err, auction.ErrValidation)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("agent a1 wins no bid"))
	})

	It("should not require coverage when the policy is disabled", func() {
		v := auction.NewValidator(auction.Config{}).Validate(a, []auction.BidID{1})
		Expect(v.Status).To(Equal(auction.Valid))
	})

	It("should reject unknown bids", func() {
		v := validator.Validate(a, []auction.BidID{1, 3, 9})
		Expect(v.Status).To(Equal(auction.Invalid))
		Expect(v.UnknownBids).To(Equal([]auction.BidID{9}))
	})

	It("should ignore duplicates and order", func() {
		first := validator.Validate(a, []auction.BidID{2, 1, 2})
		second := validator.Validate(a, []auction.BidID{1, 2})
		Expect(first).To(Equal(second))
	})

	It("should return the same verdict when validating a set twice", func() {
		winners := []auction.BidID{3, 1, 2}
		first := validator.Validate(a, winners)
		second := validator.Validate(a, winners)
		Expect(second).To(Equal(first))
		Expect(winners).To(Equal([]auction.BidID{3, 1, 2}))
	})
})
