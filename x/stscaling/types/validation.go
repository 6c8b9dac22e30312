package types

// ValidatePoolConfiguration checks a declared pool configuration against the pool
// returned by Osmosis. Rules are checked in order and the first failure wins:
// the ids match, the pool has exactly two assets, and the stToken sits at the
// index implied by the ordering.
func ValidatePoolConfiguration(
	stableswapPool *StableswapPool,
	poolID uint64,
	stTokenDenom string,
	ordering AssetOrdering,
) error {
	if stableswapPool == nil || stableswapPool.Id != poolID {
		return ErrPoolNotFoundOsmosis.Wrapf("pool_id %d", poolID)
	}
	if n := len(stableswapPool.PoolLiquidity); n != 2 {
		return ErrInvalidNumberOfPoolAssets.Wrapf("number %d", n)
	}

	stTokenIndex, err := ordering.StTokenIndex()
	if err != nil {
		return err
	}
	if stableswapPool.PoolLiquidity[stTokenIndex].Denom != stTokenDenom {
		return ErrInvalidPoolAssetOrdering.Wrapf(
			"expected %s at index %d, found %s",
			stTokenDenom, stTokenIndex, stableswapPool.PoolLiquidity[stTokenIndex].Denom,
		)
	}

	return nil
}
