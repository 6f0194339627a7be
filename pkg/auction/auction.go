package auction

import (
	"fmt"
	"sort"
)

// Agent identifies a participant of an auction.
type Agent string

// Good identifies an item on sale.
type Good string

// BidID identifies a bid within an Auction. Ids are dense, start at 1 and
// follow input order. A BidID is also the propositional variable that
// encodes "this bid wins" in the WPMS formula built for the auction.
type BidID int

// Bid is an offer of Price by Agent for all of Goods together.
type Bid struct {
	ID    BidID
	Agent Agent
	Goods []Good
	Price int
}

// BidSpec describes a bid before the auction assigns it an id.
type BidSpec struct {
	Agent Agent
	Goods []Good
	Price int
}

// Compatible reports whether b and other can both win, that is whether
// their goods are disjoint.
func (b *Bid) Compatible(other *Bid) bool {
	// both slices are sorted
	i, j := 0, 0
	for i < len(b.Goods) && j < len(other.Goods) {
		switch {
		case b.Goods[i] == other.Goods[j]:
			return false
		case b.Goods[i] < other.Goods[j]:
			i++
		default:
			j++
		}
	}
	return true
}

// SharedGoods returns the goods requested by both b and other.
func (b *Bid) SharedGoods(other *Bid) []Good {
	var shared []Good
	i, j := 0, 0
	for i < len(b.Goods) && j < len(other.Goods) {
		switch {
		case b.Goods[i] == other.Goods[j]:
			shared = append(shared, b.Goods[i])
			i++
			j++
		case b.Goods[i] < other.Goods[j]:
			i++
		default:
			j++
		}
	}
	return shared
}

func (b *Bid) String() string {
	return fmt.Sprintf("bid %d (%s, %v, %d)", b.ID, b.Agent, b.Goods, b.Price)
}

// Auction is an immutable combinatorial auction instance.
type Auction struct {
	agents  []Agent
	goods   []Good
	bids    []*Bid
	byAgent map[Agent][]BidID
}

// New validates its input and returns an Auction. Bids receive ids 1..n in
// the order given. Any violated invariant is reported as a
// MalformedAuctionError.
func New(agents []Agent, goods []Good, bids []BidSpec) (*Auction, error) {
	a := &Auction{
		agents:  make([]Agent, 0, len(agents)),
		goods:   make([]Good, 0, len(goods)),
		bids:    make([]*Bid, 0, len(bids)),
		byAgent: make(map[Agent][]BidID, len(agents)),
	}

	for _, agent := range agents {
		if _, ok := a.byAgent[agent]; ok {
			return nil, malformed(0, "duplicate agent %q", agent)
		}
		a.byAgent[agent] = nil
		a.agents = append(a.agents, agent)
	}

	goodSet := make(map[Good]struct{}, len(goods))
	for _, good := range goods {
		if _, ok := goodSet[good]; ok {
			return nil, malformed(0, "duplicate good %q", good)
		}
		goodSet[good] = struct{}{}
		a.goods = append(a.goods, good)
	}

	for i, spec := range bids {
		id := BidID(i + 1)
		if _, ok := a.byAgent[spec.Agent]; !ok {
			return nil, malformed(id, "unknown agent %q", spec.Agent)
		}
		if spec.Price <= 0 {
			return nil, malformed(id, "price must be positive, got %d", spec.Price)
		}
		if len(spec.Goods) == 0 {
			return nil, malformed(id, "no goods requested")
		}
		requested := make(map[Good]struct{}, len(spec.Goods))
		for _, good := range spec.Goods {
			if _, ok := goodSet[good]; !ok {
				return nil, malformed(id, "unknown good %q", good)
			}
			requested[good] = struct{}{}
		}
		bidGoods := make([]Good, 0, len(requested))
		for good := range requested {
			bidGoods = append(bidGoods, good)
		}
		sort.Slice(bidGoods, func(i, j int) bool { return bidGoods[i] < bidGoods[j] })

		a.bids = append(a.bids, &Bid{ID: id, Agent: spec.Agent, Goods: bidGoods, Price: spec.Price})
		a.byAgent[spec.Agent] = append(a.byAgent[spec.Agent], id)
	}
	return a, nil
}

// Agents returns the agents in declaration order.
func (a *Auction) Agents() []Agent {
	return append([]Agent(nil), a.agents...)
}

// Goods returns the goods in declaration order.
func (a *Auction) Goods() []Good {
	return append([]Good(nil), a.goods...)
}

// Bids returns copies of all bids in ascending id order.
func (a *Auction) Bids() []Bid {
	bids := make([]Bid, len(a.bids))
	for i, b := range a.bids {
		bids[i] = *b
		bids[i].Goods = append([]Good(nil), b.Goods...)
	}
	return bids
}

// NumBids returns the number of bids, which is also the largest BidID.
func (a *Auction) NumBids() int {
	return len(a.bids)
}

// Bid returns a copy of the bid with the given id.
func (a *Auction) Bid(id BidID) (Bid, bool) {
	b := a.bid(id)
	if b == nil {
		return Bid{}, false
	}
	c := *b
	c.Goods = append([]Good(nil), b.Goods...)
	return c, true
}

func (a *Auction) bid(id BidID) *Bid {
	if id < 1 || int(id) > len(a.bids) {
		return nil
	}
	return a.bids[id-1]
}

// BidsOf returns the ids of the bids placed by agent, ascending.
func (a *Auction) BidsOf(agent Agent) []BidID {
	return append([]BidID(nil), a.byAgent[agent]...)
}

// Compatible reports whether the bids with ids b1 and b2 have disjoint goods.
// Unknown ids are never compatible.
func (a *Auction) Compatible(b1, b2 BidID) bool {
	x, y := a.bid(b1), a.bid(b2)
	if x == nil || y == nil {
		return false
	}
	return x.Compatible(y)
}
