package instance

import (
	"fmt"
	"math/rand"

	"github.com/operator-framework/auctsat/pkg/auction"
)

// Params controls the random generation of an auction.
type Params struct {
	NAgents         int
	NGoods          int
	MinBidsPerAgent int
	MaxBidsPerAgent int
	MaxBidPrice     int
	Seed            int64
}

// DefaultParams returns the generation defaults for the given size.
func DefaultParams(nAgents, nGoods int) Params {
	return Params{
		NAgents:         nAgents,
		NGoods:          nGoods,
		MinBidsPerAgent: 1,
		MaxBidsPerAgent: 3,
		MaxBidPrice:     100,
		Seed:            1,
	}
}

func (p Params) validate() error {
	switch {
	case p.NAgents <= 0:
		return fmt.Errorf("number of agents must be positive, got %d", p.NAgents)
	case p.NGoods <= 0:
		return fmt.Errorf("number of goods must be positive, got %d", p.NGoods)
	case p.MinBidsPerAgent < 0 || p.MaxBidsPerAgent < p.MinBidsPerAgent:
		return fmt.Errorf("invalid bids per agent range [%d, %d]", p.MinBidsPerAgent, p.MaxBidsPerAgent)
	case p.MaxBidPrice <= 0:
		return fmt.Errorf("maximum bid price must be positive, got %d", p.MaxBidPrice)
	}
	return nil
}

// Generate returns a random auction. Agents are named a0, a1, ... and goods
// g0, g1, .... Every agent places between MinBidsPerAgent and
// MaxBidsPerAgent bids, each on 2 to NGoods/2 distinct goods (bounded to
// 1..NGoods for tiny instances) at a price in 1..MaxBidPrice. The same
// Params always produce the same auction.
func Generate(p Params) (*auction.Auction, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(p.Seed))

	agents := make([]auction.Agent, p.NAgents)
	for i := range agents {
		agents[i] = auction.Agent(fmt.Sprintf("a%d", i))
	}
	goods := make([]auction.Good, p.NGoods)
	for i := range goods {
		goods[i] = auction.Good(fmt.Sprintf("g%d", i))
	}

	minGoods, maxGoods := 2, p.NGoods/2
	if maxGoods < 1 {
		maxGoods = 1
	}
	if minGoods > maxGoods {
		minGoods = maxGoods
	}

	var bids []auction.BidSpec
	for _, agent := range agents {
		n := between(rng, p.MinBidsPerAgent, p.MaxBidsPerAgent)
		for i := 0; i < n; i++ {
			perm := rng.Perm(p.NGoods)[:between(rng, minGoods, maxGoods)]
			bidGoods := make([]auction.Good, len(perm))
			for j, g := range perm {
				bidGoods[j] = goods[g]
			}
			bids = append(bids, auction.BidSpec{
				Agent: agent,
				Goods: bidGoods,
				Price: between(rng, 1, p.MaxBidPrice),
			})
		}
	}
	return auction.New(agents, goods, bids)
}

// between returns a uniform integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
