package root

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/auctsat/cmd/encode"
	"github.com/operator-framework/auctsat/cmd/generate"
	"github.com/operator-framework/auctsat/cmd/solve"
)

func NewRootCmd() *cobra.Command {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	var logLevel string
	rootCmd := &cobra.Command{
		Use:   "auctsat",
		Short: "auctsat solves combinatorial auctions with MaxSAT",
		Long: `Solves the winner determination problem of combinatorial auctions
by encoding it as a Weighted Partial MaxSAT formula.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level (%s): %w", logLevel, err)
			}
			// solver traces are logged at debug level
			if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose && level < logrus.DebugLevel {
				level = logrus.DebugLevel
			}
			logger.SetLevel(level)
			logger.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logrus.InfoLevel.String(), "log level (panic, fatal, error, warn, info, debug, trace)")

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand(logger))
	rootCmd.AddCommand(encode.NewEncodeCommand())
	rootCmd.AddCommand(generate.NewGenerateCommand())

	return rootCmd
}
