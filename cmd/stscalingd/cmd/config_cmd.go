package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ConfigCmd returns the config command group
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the stscalingd configuration",
	}

	cmd.AddCommand(
		configInitCmd(),
		configShowCmd(),
	)

	return cmd
}

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config.toml under the home directory",
		Long: `Write a config.toml holding the default settings. Fails if the file exists.

Example:
  $ stscalingd config init --home ~/.stscaling`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := nodeFromCmd(cmd)
			if err != nil {
				return err
			}

			path, err := WriteDefaultConfig(n.config.Home)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings",
		Long: `Print the settings after merging config.toml, .env files, STSCALING_* environment
variables and flags.

Example:
  $ STSCALING_LCD_BASE_URL=https://lcd.osmosis.zone stscalingd config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := nodeFromCmd(cmd)
			if err != nil {
				return err
			}

			bz, err := json.MarshalIndent(n.viper.AllSettings(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
}
