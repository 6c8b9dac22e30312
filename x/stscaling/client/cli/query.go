package cli

import (
	"context"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// GetQueryCmd returns the cli query commands for the stscaling module
func GetQueryCmd(open ContractOpener) *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the scaling factor contract",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	queryCmd.AddCommand(
		GetCmdQueryConfig(open),
		GetCmdQueryPool(open),
		GetCmdQueryPools(open),
		GetCmdQueryRaw(open),
	)

	return queryCmd
}

// GetCmdQueryConfig returns the command to query the contract config
func GetCmdQueryConfig(open ContractOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Query the admin and oracle contract addresses",
		Long: `Query the contract config.

Example:
  $ stscalingd query stscaling config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, open, types.QueryMsg{Config: &types.QueryConfigRequest{}})
		},
	}
}

// GetCmdQueryPool returns the command to query a registered pool by ID
func GetCmdQueryPool(open ContractOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Query a registered pool by ID",
		Long: `Query a registered pool, including its asset ordering and last update time.

Example:
  $ stscalingd query stscaling pool 833`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := parsePoolID(args[0])
			if err != nil {
				return err
			}
			return runQuery(cmd, open, types.QueryMsg{Pool: &types.QueryPoolRequest{PoolId: poolID}})
		},
	}
}

// GetCmdQueryPools returns the command to query all registered pools
func GetCmdQueryPools(open ContractOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "pools",
		Short: "Query all registered pools",
		Long: `Query every registered pool, ascending by pool ID.

Example:
  $ stscalingd query stscaling pools`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, open, types.QueryMsg{AllPools: &types.QueryAllPoolsRequest{}})
		},
	}
}

// GetCmdQueryRaw returns the command to run a JSON encoded query
func GetCmdQueryRaw(open ContractOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "raw [json]",
		Short: "Run a JSON encoded query",
		Long: `Run a query given in its JSON wire form.

Example:
  $ stscalingd query stscaling raw '{"pool":{"pool_id":833}}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContract(cmd, open, func(ctx context.Context, c Contract) error {
				bz, err := c.QueryJSON(ctx, []byte(args[0]))
				if err != nil {
					return err
				}
				return printRawJSON(cmd, bz)
			})
		},
	}
}

func runQuery(cmd *cobra.Command, open ContractOpener, msg types.QueryMsg) error {
	return withContract(cmd, open, func(ctx context.Context, c Contract) error {
		res, err := c.Query(ctx, msg)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	})
}
