package types

import (
	"context"
)

// OracleQuerier reads stToken redemption rates from the ICA Oracle contract.
type OracleQuerier interface {
	RedemptionRate(ctx context.Context, oracleContractAddress, denom string) (RedemptionRateResponse, error)
}

// PoolManagerQuerier looks up Osmosis pools. A nil pool with a nil error means the
// lookup succeeded but returned no pool.
type PoolManagerQuerier interface {
	Pool(ctx context.Context, poolID uint64) (*StableswapPool, error)
}
