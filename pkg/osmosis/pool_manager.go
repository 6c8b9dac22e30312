// Package osmosis implements the pool manager lookups the stscaling keeper
// reconciles pool registrations against.
package osmosis

import (
	"context"
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Stride-Labs/st-scaling-factor/pkg/lcd"
	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// StableswapPoolType is the Any type URL of an Osmosis stableswap pool
const StableswapPoolType = "/osmosis.gamm.poolmodels.stableswap.v1beta1.Pool"

var _ types.PoolManagerQuerier = (*PoolManagerClient)(nil)

// PoolManagerClient queries x/poolmanager over the Osmosis LCD
type PoolManagerClient struct {
	lcd *lcd.Client
}

// NewPoolManagerClient creates a pool manager client on top of an LCD client
func NewPoolManagerClient(client *lcd.Client) *PoolManagerClient {
	return &PoolManagerClient{lcd: client}
}

type poolResponse struct {
	Pool *stableswapPoolJSON `json:"pool"`
}

// stableswapPoolJSON is the amino-JSON rendering of a stableswap pool; uint64s are strings
type stableswapPoolJSON struct {
	Type           string     `json:"@type"`
	ID             string     `json:"id"`
	PoolLiquidity  []sdk.Coin `json:"pool_liquidity"`
	ScalingFactors []string   `json:"scaling_factors"`
}

// PoolPath returns the LCD path of a pool lookup
func PoolPath(poolID uint64) string {
	return fmt.Sprintf("/osmosis/poolmanager/v1beta1/pools/%d", poolID)
}

// Pool returns the stableswap pool with poolID. A pool that does not exist returns
// a nil pool and a nil error. Any other failure, including a pool that is not a
// stableswap pool, is returned as an error.
func (c *PoolManagerClient) Pool(ctx context.Context, poolID uint64) (*types.StableswapPool, error) {
	var resp poolResponse
	if err := c.lcd.GetJSON(ctx, PoolPath(poolID), &resp); err != nil {
		if lcd.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query pool %d: %w", poolID, err)
	}
	if resp.Pool == nil {
		return nil, nil
	}

	if resp.Pool.Type != "" && resp.Pool.Type != StableswapPoolType {
		return nil, fmt.Errorf("pool %d is a %s, not a stableswap pool", poolID, resp.Pool.Type)
	}

	id, err := strconv.ParseUint(resp.Pool.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("pool %d has invalid id %q: %w", poolID, resp.Pool.ID, err)
	}

	return &types.StableswapPool{
		Id:            id,
		PoolLiquidity: resp.Pool.PoolLiquidity,
	}, nil
}
