package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/operator-framework/auctsat/pkg/auction"
)

// Parse reads a combinatorial auction written as
//
//	a <agent> <agent> ...
//	g <good> <good> ...
//	<agent> <good> ... <price>
//
// with one bid per line after the two header lines. Bids are numbered from 1
// in file order. Blank lines are ignored.
func Parse(r io.Reader) (*auction.Auction, error) {
	reader := bufio.NewReader(r)

	var (
		agents     []auction.Agent
		goods      []auction.Good
		bids       []auction.BidSpec
		seenAgents bool
		seenGoods  bool
		lineNo     int
	)

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading auction data: %w", err)
		}
		eof := err != nil
		lineNo++
		fields := strings.Fields(line)

		switch {
		case len(fields) == 0:
		case !seenAgents:
			if fields[0] != "a" {
				return nil, fmt.Errorf("line %d: expected agents header 'a <agent>...', got (%s)", lineNo, strings.TrimSpace(line))
			}
			for _, f := range fields[1:] {
				agents = append(agents, auction.Agent(f))
			}
			seenAgents = true
		case !seenGoods:
			if fields[0] != "g" {
				return nil, fmt.Errorf("line %d: expected goods header 'g <good>...', got (%s)", lineNo, strings.TrimSpace(line))
			}
			for _, f := range fields[1:] {
				goods = append(goods, auction.Good(f))
			}
			seenGoods = true
		default:
			bid, err := parseBid(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			bids = append(bids, bid)
		}

		if eof {
			break
		}
	}

	if !seenAgents || !seenGoods {
		return nil, fmt.Errorf("invalid format: missing agents or goods header")
	}
	return auction.New(agents, goods, bids)
}

// ParseFile parses the auction stored at path.
func ParseFile(path string) (*auction.Auction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening auction file (%s): %w", path, err)
	}
	defer f.Close()

	a, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing auction file (%s): %w", path, err)
	}
	return a, nil
}

func parseBid(fields []string) (auction.BidSpec, error) {
	if len(fields) < 2 {
		return auction.BidSpec{}, fmt.Errorf("invalid bid (%s): expected '<agent> <good>... <price>'", strings.Join(fields, " "))
	}
	price, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return auction.BidSpec{}, fmt.Errorf("invalid price (%s) in bid (%s)", fields[len(fields)-1], strings.Join(fields, " "))
	}
	spec := auction.BidSpec{Agent: auction.Agent(fields[0]), Price: price}
	for _, g := range fields[1 : len(fields)-1] {
		spec.Goods = append(spec.Goods, auction.Good(g))
	}
	return spec, nil
}

// Write prints a in the format read by Parse.
func Write(w io.Writer, a *auction.Auction) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("a")
	for _, agent := range a.Agents() {
		bw.WriteString(" " + string(agent))
	}
	bw.WriteString("\ng")
	for _, good := range a.Goods() {
		bw.WriteString(" " + string(good))
	}
	bw.WriteString("\n")
	for _, bid := range a.Bids() {
		bw.WriteString(string(bid.Agent))
		for _, good := range bid.Goods {
			bw.WriteString(" " + string(good))
		}
		fmt.Fprintf(bw, " %d\n", bid.Price)
	}
	return bw.Flush()
}
