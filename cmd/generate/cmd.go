package generate

import (
	"github.com/spf13/cobra"

	"github.com/operator-framework/auctsat/pkg/instance"
)

func NewGenerateCommand() *cobra.Command {
	params := instance.DefaultParams(0, 0)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Prints a random combinatorial auction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := instance.Generate(params)
			if err != nil {
				return err
			}
			return instance.Write(cmd.OutOrStdout(), a)
		},
	}
	cmd.Flags().IntVarP(&params.NAgents, "n-agents", "a", 0, "number of agents")
	cmd.Flags().IntVarP(&params.NGoods, "n-goods", "g", 0, "number of goods")
	cmd.Flags().IntVar(&params.MinBidsPerAgent, "min-bids-per-agent", params.MinBidsPerAgent, "minimum number of bids per agent")
	cmd.Flags().IntVar(&params.MaxBidsPerAgent, "max-bids-per-agent", params.MaxBidsPerAgent, "maximum number of bids per agent")
	cmd.Flags().IntVar(&params.MaxBidPrice, "max-bid-price", params.MaxBidPrice, "maximum price on a bid")
	cmd.Flags().Int64VarP(&params.Seed, "seed", "s", params.Seed, "RNG seed")
	_ = cmd.MarkFlagRequired("n-agents")
	_ = cmd.MarkFlagRequired("n-goods")
	return cmd
}
