package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stride-Labs/st-scaling-factor/app"
)

// ExportCmd writes the committed config and pools to a genesis file
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [genesis-file]",
		Short: "Export the contract state to a genesis file",
		Long: `Export the config and every registered pool as JSON.

Example:
  $ stscalingd export genesis.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := nodeFromCmd(cmd)
			if err != nil {
				return err
			}
			a, _, err := n.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			genState, err := a.ExportGenesis(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.WriteGenesisFile(args[0], genState); err != nil {
				return err
			}

			n.logger.Info("exported genesis", "file", args[0], "pools", len(genState.Pools), "height", a.LastHeight())
			return nil
		},
	}
}

// ImportCmd loads a genesis file into an empty store
func ImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [genesis-file]",
		Short: "Import contract state from a genesis file",
		Long: `Validate a genesis file and write its config and pools to an empty store.

Example:
  $ stscalingd import genesis.json --home ~/.stscaling-new`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := nodeFromCmd(cmd)
			if err != nil {
				return err
			}

			genState, err := app.ReadGenesisFile(args[0])
			if err != nil {
				return err
			}

			a, _, err := n.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.InitGenesis(cmd.Context(), genState); err != nil {
				return fmt.Errorf("failed to import %s: %w", args[0], err)
			}

			n.logger.Info("imported genesis", "file", args[0], "pools", len(genState.Pools), "height", a.LastHeight())
			return nil
		},
	}
}
