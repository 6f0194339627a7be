package encode

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/operator-framework/auctsat/pkg/auction"
	"github.com/operator-framework/auctsat/pkg/instance"
)

func NewEncodeCommand() *cobra.Command {
	var noMinWinBids bool
	cmd := &cobra.Command{
		Use:   "encode <path>",
		Short: "Prints the WCNF formula of a combinatorial auction",
		Long: `Prints the Weighted Partial MaxSAT formula of a combinatorial auction in
WCNF format. Variable i stands for "bid i wins"; soft clauses weigh the bid
prices, hard clauses forbid conflicting bids and, unless --no-min-win-bids is
set, require every agent to win at least one bid.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := instance.ParseFile(args[0])
			if err != nil {
				return err
			}
			config := auction.DefaultConfig()
			config.RequireMinOneBidPerAgent = !noMinWinBids
			enc, err := auction.NewEncoder(config).Encode(a)
			if err != nil {
				return err
			}
			return enc.Formula.WriteWCNF(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&noMinWinBids, "no-min-win-bids", false, "do not require every agent to win at least one bid")
	return cmd
}
