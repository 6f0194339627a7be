package instance_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/auctsat/pkg/instance"
)

var _ = Describe("Generate", func() {
	It("should respect the parameters", func() {
		p := instance.DefaultParams(5, 10)
		p.MinBidsPerAgent, p.MaxBidsPerAgent, p.MaxBidPrice = 2, 4, 50

		a, err := instance.Generate(p)
		Expect(err).ToNot(HaveOccurred())
		Expect(a.Agents()).To(HaveLen(5))
		Expect(a.Goods()).To(HaveLen(10))

		for _, agent := range a.Agents() {
			Expect(len(a.BidsOf(agent))).To(BeNumerically(">=", 2))
			Expect(len(a.BidsOf(agent))).To(BeNumerically("<=", 4))
		}
		for _, bid := range a.Bids() {
			Expect(bid.Price).To(BeNumerically(">=", 1))
			Expect(bid.Price).To(BeNumerically("<=", 50))
			Expect(len(bid.Goods)).To(BeNumerically(">=", 2))
			Expect(len(bid.Goods)).To(BeNumerically("<=", 5))
		}
	})

	It("should be deterministic for a seed", func() {
		p := instance.DefaultParams(4, 6)
		p.Seed = 42

		var first, second bytes.Buffer
		a, err := instance.Generate(p)
		Expect(err).ToNot(HaveOccurred())
		Expect(instance.Write(&first, a)).To(Succeed())
		a, err = instance.Generate(p)
		Expect(err).ToNot(HaveOccurred())
		Expect(instance.Write(&second, a)).To(Succeed())

		Expect(first.String()).To(Equal(second.String()))
	})

	It("should handle a single good", func() {
		a, err := instance.Generate(instance.DefaultParams(2, 1))
		Expect(err).ToNot(HaveOccurred())
		for _, bid := range a.Bids() {
			Expect(bid.Goods).To(HaveLen(1))
		}
	})

	DescribeTable("should reject invalid parameters",
		func(mutate func(p *instance.Params)) {
			p := instance.DefaultParams(3, 3)
			mutate(&p)
			_, err := instance.Generate(p)
			Expect(err).To(HaveOccurred())
		},
		Entry("no agents", func(p *instance.Params) { p.NAgents = 0 }),
		Entry("no goods", func(p *instance.Params) { p.NGoods = 0 }),
		Entry("inverted bid range", func(p *instance.Params) { p.MinBidsPerAgent, p.MaxBidsPerAgent = 3, 1 }),
		Entry("negative minimum", func(p *instance.Params) { p.MinBidsPerAgent = -1 }),
		Entry("no price", func(p *instance.Params) { p.MaxBidPrice = 0 }),
	)
})
