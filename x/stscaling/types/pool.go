package types

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pool is a stableswap pool whose scaling factors are kept in line with the
// stToken redemption rate.
type Pool struct {
	// PoolId is the id of the Osmosis pool (e.g. 833)
	PoolId uint64 `json:"pool_id"`
	// StTokenDenom is the stToken denom as it lives on Osmosis; it is also the
	// denom the oracle tracks
	StTokenDenom string `json:"sttoken_denom"`
	// AssetOrdering fixes the order of the scaling factors array
	AssetOrdering AssetOrdering `json:"asset_ordering"`
	// LastUpdated is the block time (unix seconds) of the last refresh
	LastUpdated uint64 `json:"last_updated"`
}

// NewPool returns a freshly registered pool that has never been refreshed.
func NewPool(poolID uint64, stTokenDenom string, ordering AssetOrdering) Pool {
	return Pool{
		PoolId:        poolID,
		StTokenDenom:  stTokenDenom,
		AssetOrdering: ordering,
		LastUpdated:   0,
	}
}

// Validate performs stateless validation of a pool record.
func (p Pool) Validate() error {
	if p.PoolId == 0 {
		return ErrInvalidPoolID.Wrap("pool id must be positive")
	}
	if err := ValidateStTokenDenom(p.StTokenDenom); err != nil {
		return err
	}
	return p.AssetOrdering.Validate()
}

// ValidateStTokenDenom checks the denom is a well formed sdk denom.
func ValidateStTokenDenom(denom string) error {
	if strings.TrimSpace(denom) == "" {
		return ErrInvalidDenom.Wrap("sttoken denom cannot be empty")
	}
	if err := sdk.ValidateDenom(denom); err != nil {
		return ErrInvalidDenom.Wrapf("%s: %s", denom, err)
	}
	return nil
}

// Pools is the response of the AllPools query.
type Pools struct {
	Pools []Pool `json:"pools"`
}
