package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/runtime"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// HasPool reports whether poolID is registered
func (k Keeper) HasPool(ctx context.Context, poolID uint64) (bool, error) {
	return k.storeService.OpenKVStore(ctx).Has(types.PoolKey(poolID))
}

// GetPool returns a registered pool or ErrPoolNotFound
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	bz, err := k.storeService.OpenKVStore(ctx).Get(types.PoolKey(poolID))
	if err != nil {
		return types.Pool{}, err
	}
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool_id %d", poolID)
	}

	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, types.ErrStateCorruption.Wrapf("pool %d: %s", poolID, err)
	}
	return pool, nil
}

// AddPool stores a new pool. It fails with ErrPoolAlreadyExists if the id is taken.
func (k Keeper) AddPool(ctx context.Context, pool types.Pool) error {
	exists, err := k.HasPool(ctx, pool.PoolId)
	if err != nil {
		return err
	}
	if exists {
		return types.ErrPoolAlreadyExists.Wrapf("pool_id %d", pool.PoolId)
	}
	return k.SetPool(ctx, pool)
}

// SetPool writes a pool record, overwriting any existing entry
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	if err := pool.Validate(); err != nil {
		return err
	}

	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("failed to marshal pool %d: %w", pool.PoolId, err)
	}
	return k.storeService.OpenKVStore(ctx).Set(types.PoolKey(pool.PoolId), bz)
}

// RemovePool deletes a pool. It fails with ErrPoolNotFound if the id is not registered.
func (k Keeper) RemovePool(ctx context.Context, poolID uint64) error {
	exists, err := k.HasPool(ctx, poolID)
	if err != nil {
		return err
	}
	if !exists {
		return types.ErrPoolNotFound.Wrapf("pool_id %d", poolID)
	}
	return k.storeService.OpenKVStore(ctx).Delete(types.PoolKey(poolID))
}

// GetAllPools returns every registered pool, ascending by pool id
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	store := prefix.NewStore(runtime.KVStoreAdapter(k.storeService.OpenKVStore(ctx)), types.PoolKeyPrefix)
	iterator := storetypes.KVStorePrefixIterator(store, []byte{})
	defer iterator.Close()

	pools := []types.Pool{}
	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return nil, types.ErrStateCorruption.Wrapf("pool key %X: %s", iterator.Key(), err)
		}
		pools = append(pools, pool)
	}

	return pools, nil
}
