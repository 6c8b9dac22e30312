package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// GetTxCmd returns the transaction commands for the stscaling module
func GetTxCmd(open ContractOpener) *cobra.Command {
	txCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Scaling factor contract transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	txCmd.AddCommand(
		CmdInstantiate(open),
		CmdUpdateConfig(open),
		CmdAddPool(open),
		CmdRemovePool(open),
		CmdUpdateScalingFactor(open),
		CmdSudoAdjustScalingFactors(open),
		CmdExecuteRaw(open),
	)

	return txCmd
}

// CmdInstantiate returns the command that stores the initial config
func CmdInstantiate(open ContractOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instantiate",
		Short: "Instantiate the contract with an admin and oracle address",
		Long: `Store the initial admin and ICA oracle contract addresses. Can only run once.

Example:
  $ stscalingd tx stscaling instantiate --admin osmo1... --oracle osmo1... --from osmo1...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sender, err := senderFlag(cmd)
			if err != nil {
				return err
			}
			admin, err := cmd.Flags().GetString(FlagAdmin)
			if err != nil {
				return err
			}
			oracle, err := cmd.Flags().GetString(FlagOracle)
			if err != nil {
				return err
			}

			msg := types.InstantiateMsg{AdminAddress: admin, OracleContractAddress: oracle}
			return withContract(cmd, open, func(ctx context.Context, c Contract) error {
				resp, err := c.Instantiate(ctx, sender, msg)
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			})
		},
	}

	addSenderFlag(cmd)
	cmd.Flags().String(FlagAdmin, "", "Admin address")
	cmd.Flags().String(FlagOracle, "", "ICA oracle contract address")
	_ = cmd.MarkFlagRequired(FlagAdmin)
	_ = cmd.MarkFlagRequired(FlagOracle)
	return cmd
}

// CmdUpdateConfig returns the command that replaces the admin and oracle addresses
func CmdUpdateConfig(open ContractOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-config [admin-address] [oracle-contract-address]",
		Short: "Replace the admin and oracle contract addresses",
		Long: `Replace the admin and ICA oracle contract addresses. Admin only.

Example:
  $ stscalingd tx stscaling update-config osmo1newadmin... osmo1neworacle... --from osmo1admin...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd, open, types.NewExecuteUpdateConfig(args[0], args[1]))
		},
	}

	addSenderFlag(cmd)
	return cmd
}

// CmdAddPool returns the command that registers a stableswap pool
func CmdAddPool(open ContractOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-pool [pool-id] [sttoken-denom] [asset-ordering]",
		Short: "Register an stToken stableswap pool",
		Long: `Register a stableswap pool. The pool must exist on Osmosis, hold exactly two
assets, and its stToken must sit at the position named by the asset ordering
(native_token_first or st_token_first). Admin only.

Example:
  $ stscalingd tx stscaling add-pool 833 ibc/C140AFD5... native_token_first --from osmo1admin...`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			ordering, err := types.ParseAssetOrdering(args[2])
			if err != nil {
				return err
			}
			return runExecute(cmd, open, types.NewExecuteAddPool(poolID, args[1], ordering))
		},
	}

	addSenderFlag(cmd)
	return cmd
}

// CmdRemovePool returns the command that deregisters a pool
func CmdRemovePool(open ContractOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-pool [pool-id]",
		Short: "Deregister a pool",
		Long: `Deregister a pool so it can no longer be refreshed. Admin only.

Example:
  $ stscalingd tx stscaling remove-pool 833 --from osmo1admin...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			return runExecute(cmd, open, types.NewExecuteRemovePool(poolID))
		},
	}

	addSenderFlag(cmd)
	return cmd
}

// CmdUpdateScalingFactor returns the command that refreshes a pool from the oracle
func CmdUpdateScalingFactor(open ContractOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-scaling-factor [pool-id]",
		Short: "Refresh a pool's scaling factors from the oracle redemption rate",
		Long: `Query the ICA oracle for the pool's stToken redemption rate and emit the
matching scaling factor adjustment. Anyone may call this.

Example:
  $ stscalingd tx stscaling update-scaling-factor 833 --from osmo1...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			return runExecute(cmd, open, types.NewExecuteUpdateScalingFactor(poolID))
		},
	}

	addSenderFlag(cmd)
	return cmd
}

// CmdSudoAdjustScalingFactors returns the command that sets scaling factors directly
func CmdSudoAdjustScalingFactors(open ContractOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sudo-adjust-scaling-factors [pool-id] [factor-a,factor-b]",
		Short: "Set a pool's scaling factors directly",
		Long: `Emit a scaling factor adjustment with the given factors, skipping the pool
registry and the oracle. Admin only.

Example:
  $ stscalingd tx stscaling sudo-adjust-scaling-factors 833 120000,100000 --from osmo1admin...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			factors, err := parseScalingFactors(args[1])
			if err != nil {
				return err
			}
			return runExecute(cmd, open, types.NewExecuteSudoAdjustScalingFactors(poolID, factors))
		},
	}

	addSenderFlag(cmd)
	return cmd
}

// CmdExecuteRaw returns the command that runs a JSON encoded execute message
func CmdExecuteRaw(open ContractOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute [json]",
		Short: "Run a JSON encoded execute message",
		Long: `Run an execute message given in its JSON wire form.

Example:
  $ stscalingd tx stscaling execute '{"update_scaling_factor":{"pool_id":833}}' --from osmo1...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sender, err := senderFlag(cmd)
			if err != nil {
				return err
			}
			return withContract(cmd, open, func(ctx context.Context, c Contract) error {
				resp, err := c.ExecuteJSON(ctx, sender, []byte(args[0]))
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			})
		},
	}

	addSenderFlag(cmd)
	return cmd
}

func runExecute(cmd *cobra.Command, open ContractOpener, msg types.ExecuteMsg) error {
	sender, err := senderFlag(cmd)
	if err != nil {
		return err
	}
	if err := msg.ValidatePayload(); err != nil {
		return err
	}

	return withContract(cmd, open, func(ctx context.Context, c Contract) error {
		resp, err := c.Execute(ctx, sender, msg)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	})
}

func parsePoolID(arg string) (uint64, error) {
	poolID, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pool ID: %w", err)
	}
	return poolID, nil
}

// parseScalingFactors accepts "a,b" with optional brackets, e.g. "[a, b]"
func parseScalingFactors(arg string) ([]uint64, error) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(arg), "["), "]")
	parts := strings.Split(trimmed, ",")
	factors := make([]uint64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid scaling factor %q: %w", part, err)
		}
		factors = append(factors, f)
	}
	return factors, nil
}
