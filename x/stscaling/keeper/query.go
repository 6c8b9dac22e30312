package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// QueryConfig returns the contract's config
func (k Keeper) QueryConfig(ctx context.Context) (types.Config, error) {
	return k.GetConfig(ctx)
}

// QueryPool returns a single registered pool
func (k Keeper) QueryPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	return k.GetPool(ctx, poolID)
}

// QueryAllPools returns every registered pool, ascending by id
func (k Keeper) QueryAllPools(ctx context.Context) (types.Pools, error) {
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return types.Pools{}, err
	}
	return types.Pools{Pools: pools}, nil
}

// Query dispatches a query message and returns the typed response
func (k Keeper) Query(ctx context.Context, msg types.QueryMsg) (any, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	switch {
	case msg.Config != nil:
		return k.QueryConfig(ctx)
	case msg.Pool != nil:
		return k.QueryPool(ctx, msg.Pool.PoolId)
	default:
		return k.QueryAllPools(ctx)
	}
}

// QueryJSON decodes a JSON query message and returns the JSON encoded response
func (k Keeper) QueryJSON(ctx context.Context, bz []byte) ([]byte, error) {
	var msg types.QueryMsg
	if err := json.Unmarshal(bz, &msg); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("failed to decode query msg: %s", err)
	}

	resp, err := k.Query(ctx, msg)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query response: %w", err)
	}
	return out, nil
}
