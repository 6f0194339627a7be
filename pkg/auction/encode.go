package auction

import (
	"fmt"

	"github.com/operator-framework/auctsat/pkg/wpms"
)

// Config holds the policy knobs shared by the Encoder and the Validator.
type Config struct {
	// RequireMinOneBidPerAgent forces every agent to win at least one bid.
	RequireMinOneBidPerAgent bool
}

// DefaultConfig returns the default policy: every agent must win a bid.
func DefaultConfig() Config {
	return Config{RequireMinOneBidPerAgent: true}
}

// Encoding is the WPMS formula built for an auction together with the
// provenance of its hard clauses.
type Encoding struct {
	Formula *wpms.Formula
	// Conflicts holds the incompatible bid pairs, each ordered and emitted
	// once, in the order of their hard clauses.
	Conflicts [][2]BidID
	// UncoveredAgents lists the agents whose coverage clause is empty.
	UncoveredAgents []Agent
}

// Encoder translates auctions into WPMS formulas whose optimal models are
// revenue maximising, conflict free allocations.
type Encoder struct {
	config Config
}

func NewEncoder(config Config) *Encoder {
	return &Encoder{config: config}
}

// Encode builds the formula for a:
//
//   - a soft clause [+id] weighted by the price of every bid,
//   - a hard clause [-id1, -id2] for every pair of bids id1 < id2 sharing a good,
//   - when every agent must win, a hard clause over the bids of each agent.
//
// Bid ids are reused as variables, so variables 1..NumBids() are reserved
// before any clause is added.
func (e *Encoder) Encode(a *Auction) (*Encoding, error) {
	if a == nil {
		return nil, malformed(0, "nil auction")
	}
	b := wpms.NewBuilder(a.NumBids())
	enc := &Encoding{}

	for _, bid := range a.bids {
		if err := b.AddSoftClause([]wpms.Lit{lit(bid.ID)}, bid.Price); err != nil {
			return nil, fmt.Errorf("error encoding %s: %w", bid, err)
		}
	}

	for i, b1 := range a.bids {
		for _, b2 := range a.bids[i+1:] {
			if b1.Compatible(b2) {
				continue
			}
			if err := b.AddHardClause([]wpms.Lit{lit(b1.ID).Not(), lit(b2.ID).Not()}); err != nil {
				return nil, fmt.Errorf("error encoding conflict between bids %d and %d: %w", b1.ID, b2.ID, err)
			}
			enc.Conflicts = append(enc.Conflicts, [2]BidID{b1.ID, b2.ID})
		}
	}

	if e.config.RequireMinOneBidPerAgent {
		for _, agent := range a.agents {
			ids := a.byAgent[agent]
			lits := make([]wpms.Lit, len(ids))
			for i, id := range ids {
				lits[i] = lit(id)
			}
			if err := b.AddHardClause(lits); err != nil {
				return nil, fmt.Errorf("error encoding coverage of agent %s: %w", agent, err)
			}
			if len(lits) == 0 {
				enc.UncoveredAgents = append(enc.UncoveredAgents, agent)
			}
		}
	}

	enc.Formula = b.Formula()
	return enc, nil
}

func lit(id BidID) wpms.Lit {
	return wpms.Lit(id)
}
