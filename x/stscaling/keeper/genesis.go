package keeper

import (
	"context"
	"fmt"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// InitGenesis initializes the stscaling module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(k.addressCodec); err != nil {
		return fmt.Errorf("invalid genesis state: %w", err)
	}

	if err := k.SetContractVersion(ctx, types.CurrentContractVersion()); err != nil {
		return fmt.Errorf("failed to set contract version: %w", err)
	}

	if err := k.SetConfig(ctx, genState.Config); err != nil {
		return fmt.Errorf("failed to set config: %w", err)
	}

	for _, pool := range genState.Pools {
		if err := k.AddPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %d: %w", pool.PoolId, err)
		}
	}

	return nil
}

// ExportGenesis returns the stscaling module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	config, err := k.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pools: %w", err)
	}

	return types.NewGenesisState(config, pools), nil
}
