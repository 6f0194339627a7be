package auction_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/auctsat/pkg/auction"
	"github.com/operator-framework/auctsat/pkg/wpms"
)

var _ = Describe("Encoder", func() {
	It("should weigh every bid with a soft clause", func() {
		enc, err := auction.NewEncoder(auction.DefaultConfig()).Encode(scenarioA())
		Expect(err).ToNot(HaveOccurred())

		Expect(enc.Formula.SoftClauses()).To(Equal([]wpms.SoftClause{
			{Lits: wpms.Clause{1}, Weight: 10},
			{Lits: wpms.Clause{2}, Weight: 8},
			{Lits: wpms.Clause{3}, Weight: 5},
		}))
		Expect(enc.Formula.TotalWeight()).To(Equal(23))
	})

	It("should forbid conflicting bids once per pair", func() {
		enc, err := auction.NewEncoder(auction.Config{}).Encode(scenarioA())
		Expect(err).ToNot(HaveOccurred())

		Expect(enc.Conflicts).To(Equal([][2]auction.BidID{{1, 2}, {2, 3}}))
		Expect(enc.Formula.HardClauses()).To(Equal([]wpms.Clause{
			{-1, -2},
			{-2, -3},
		}))
	})

	It("should require every agent to win when asked to", func() {
		enc, err := auction.NewEncoder(auction.DefaultConfig()).Encode(scenarioA())
		Expect(err).ToNot(HaveOccurred())

		Expect(enc.Formula.HardClauses()).To(Equal([]wpms.Clause{
			{-1, -2},
			{-2, -3},
			{1, 3},
			{2},
		}))
		Expect(enc.UncoveredAgents).To(BeEmpty())
	})

	It("should reserve bid ids as variables", func() {
		enc, err := auction.NewEncoder(auction.DefaultConfig()).Encode(scenarioA())
		Expect(err).ToNot(HaveOccurred())
		Expect(enc.Formula.NumVars()).To(Equal(3))
	})

	It("should be deterministic", func() {
		a := scenarioA()
		encoder := auction.NewEncoder(auction.DefaultConfig())

		var first, second bytes.Buffer
		enc, err := encoder.Encode(a)
		Expect(err).ToNot(HaveOccurred())
		Expect(enc.Formula.WriteWCNF(&first)).To(Succeed())
		enc, err = encoder.Encode(a)
		Expect(err).ToNot(HaveOccurred())
		Expect(enc.Formula.WriteWCNF(&second)).To(Succeed())

		Expect(first.String()).To(Equal(second.String()))
		Expect(first.String()).To(Equal("p wcnf 3 7 24\n10 1 0\n8 2 0\n5 3 0\n24 -1 -2 0\n24 -2 -3 0\n24 1 3 0\n24 2 0\n"))
	})

	It("should emit an empty coverage clause for an agent without bids", func() {
		a, err := auction.New(
			[]auction.Agent{"a0", "a1"},
			[]auction.Good{"g0"},
			[]auction.BidSpec{{Agent: "a0", Goods: []auction.Good{"g0"}, Price: 3}},
		)
		Expect(err).ToNot(HaveOccurred())

		enc, err := auction.NewEncoder(auction.DefaultConfig()).Encode(a)
		Expect(err).ToNot(HaveOccurred())
		Expect(enc.UncoveredAgents).To(Equal([]auction.Agent{"a1"}))
		Expect(enc.Formula.HasEmptyHardClause()).To(BeTrue())
	})

	It("should skip coverage clauses when the policy is disabled", func() {
		a, err := auction.New(
			[]auction.Agent{"a0", "a1"},
			[]auction.Good{"g0"},
			[]auction.BidSpec{{Agent: "a0", Goods: []auction.Good{"g0"}, Price: 3}},
		)
		Expect(err).ToNot(HaveOccurred())

		enc, err := auction.NewEncoder(auction.Config{}).Encode(a)
		Expect(err).ToNot(HaveOccurred())
		Expect(enc.UncoveredAgents).To(BeEmpty())
		Expect(enc.Formula.HardClauses()).To(BeEmpty())
	})

	It("should reject a nil auction", func() {
		_, err := auction.NewEncoder(auction.DefaultConfig()).Encode(nil)
		Expect(errors.Is(err, auction.ErrMalformedAuction)).To(BeTrue())
	})
})
