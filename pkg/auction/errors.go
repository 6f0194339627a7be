package auction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/operator-framework/auctsat/pkg/solver"
)

var (
	// ErrMalformedAuction is wrapped by every MalformedAuctionError.
	ErrMalformedAuction = errors.New("malformed auction")
	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("invalid solution")
)

// MalformedAuctionError describes input that does not form a valid auction.
// Bid is 0 when the problem is not tied to a particular bid.
type MalformedAuctionError struct {
	Bid    BidID
	Reason string
}

func malformed(id BidID, format string, args ...interface{}) error {
	return &MalformedAuctionError{Bid: id, Reason: fmt.Sprintf(format, args...)}
}

func (e *MalformedAuctionError) Error() string {
	if e.Bid == 0 {
		return fmt.Sprintf("%s: %s", ErrMalformedAuction, e.Reason)
	}
	return fmt.Sprintf("%s: bid %d: %s", ErrMalformedAuction, e.Bid, e.Reason)
}

func (e *MalformedAuctionError) Unwrap() error {
	return ErrMalformedAuction
}

// UnsatisfiableError is returned when the solver proves that no allocation
// satisfies the hard constraints. UncoveredAgents lists the agents that
// placed no bid while every agent was required to win one; when non-empty
// they alone explain the failure.
type UnsatisfiableError struct {
	UncoveredAgents []Agent
}

func (e *UnsatisfiableError) Error() string {
	if len(e.UncoveredAgents) == 0 {
		return "no allocation satisfies the auction constraints"
	}
	s := make([]string, len(e.UncoveredAgents))
	for i, a := range e.UncoveredAgents {
		s[i] = string(a)
	}
	return fmt.Sprintf("no allocation satisfies the auction constraints: agents without bids: %s", strings.Join(s, ", "))
}

func (e *UnsatisfiableError) Unwrap() error {
	return solver.ErrUnsatisfiable
}

// Conflict names two winning bids that request a common good.
type Conflict struct {
	Bids  [2]BidID
	Goods []Good
}

func (c Conflict) String() string {
	return fmt.Sprintf("bids %d and %d share %v", c.Bids[0], c.Bids[1], c.Goods)
}

// ValidationError lists every reason a set of winning bids was rejected.
type ValidationError struct {
	Conflicts       []Conflict
	UncoveredAgents []Agent
	UnknownBids     []BidID
}

func (e *ValidationError) Error() string {
	var reasons []string
	for _, id := range e.UnknownBids {
		reasons = append(reasons, fmt.Sprintf("unknown bid %d", id))
	}
	for _, c := range e.Conflicts {
		reasons = append(reasons, c.String())
	}
	for _, a := range e.UncoveredAgents {
		reasons = append(reasons, fmt.Sprintf("agent %s wins no bid", a))
	}
	return fmt.Sprintf("%s:\n%s", ErrValidation, strings.Join(reasons, "\n"))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
