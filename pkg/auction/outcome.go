package auction

import (
	"sort"

	"github.com/operator-framework/auctsat/pkg/wpms"
)

// Status classifies the result of an auction.
type Status int

const (
	// NoWinner means the assignment selected no bid at all.
	NoWinner Status = iota
	// Valid means the winning bids passed every check.
	Valid
	// Invalid means at least one check failed.
	Invalid
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "Valid"
	case Invalid:
		return "Invalid"
	case NoWinner:
		return "NoWinner"
	}
	return "Unknown"
}

// Outcome is the set of winning bids and the revenue they bring.
type Outcome struct {
	Winners []BidID
	Benefit int
}

// Empty reports whether no bid won.
func (o Outcome) Empty() bool {
	return len(o.Winners) == 0
}

// Decode returns the outcome described by an assignment: a bid wins iff its
// positive literal was chosen. Literals of auxiliary variables are ignored.
func Decode(a *Auction, asg wpms.Assignment) Outcome {
	var o Outcome
	for _, bid := range a.bids {
		if asg.Contains(lit(bid.ID)) {
			o.Winners = append(o.Winners, bid.ID)
			o.Benefit += bid.Price
		}
	}
	return o
}

// Benefit sums the prices of the given bids. Unknown ids count for nothing.
func Benefit(a *Auction, winners []BidID) int {
	total := 0
	for _, id := range winners {
		if b := a.bid(id); b != nil {
			total += b.Price
		}
	}
	return total
}

// Validation is the verdict of a Validator on a set of winning bids.
type Validation struct {
	Status          Status
	Conflicts       []Conflict
	UncoveredAgents []Agent
	UnknownBids     []BidID
}

// Err returns a ValidationError describing the failed checks, or nil unless
// the status is Invalid.
func (v *Validation) Err() error {
	if v.Status != Invalid {
		return nil
	}
	return &ValidationError{
		Conflicts:       v.Conflicts,
		UncoveredAgents: v.UncoveredAgents,
		UnknownBids:     v.UnknownBids,
	}
}

// Validator re-checks winning bids against the auction rules without relying
// on the formula or the solver that produced them.
type Validator struct {
	config Config
}

func NewValidator(config Config) *Validator {
	return &Validator{config: config}
}

// Validate checks that no two winners share a good and, if the policy asks
// for it, that every agent wins at least one bid. Duplicate ids are
// considered once. An empty set is classified NoWinner.
func (v *Validator) Validate(a *Auction, winners []BidID) *Validation {
	ids := make([]BidID, 0, len(winners))
	seen := make(map[BidID]struct{}, len(winners))
	for _, id := range winners {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if len(ids) == 0 {
		return &Validation{Status: NoWinner}
	}

	res := &Validation{Status: Valid}
	known := make([]*Bid, 0, len(ids))
	for _, id := range ids {
		b := a.bid(id)
		if b == nil {
			res.UnknownBids = append(res.UnknownBids, id)
			continue
		}
		known = append(known, b)
	}

	for i, b1 := range known {
		for _, b2 := range known[i+1:] {
			if !b1.Compatible(b2) {
				res.Conflicts = append(res.Conflicts, Conflict{
					Bids:  [2]BidID{b1.ID, b2.ID},
					Goods: b1.SharedGoods(b2),
				})
			}
		}
	}

	if v.config.RequireMinOneBidPerAgent {
		won := make(map[Agent]struct{}, len(a.agents))
		for _, b := range known {
			won[b.Agent] = struct{}{}
		}
		for _, agent := range a.agents {
			if _, ok := won[agent]; !ok {
				res.UncoveredAgents = append(res.UncoveredAgents, agent)
			}
		}
	}

	if len(res.UnknownBids) > 0 || len(res.Conflicts) > 0 || len(res.UncoveredAgents) > 0 {
		res.Status = Invalid
	}
	return res
}
