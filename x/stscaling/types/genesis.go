package types

import (
	"fmt"

	"cosmossdk.io/core/address"
)

// GenesisState is the exported state of the module.
type GenesisState struct {
	Config Config `json:"config"`
	Pools  []Pool `json:"pools"`
}

// NewGenesisState creates a GenesisState.
func NewGenesisState(config Config, pools []Pool) *GenesisState {
	return &GenesisState{Config: config, Pools: pools}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate(ac address.Codec) error {
	if err := gs.Config.Validate(ac); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	seen := make(map[uint64]struct{}, len(gs.Pools))
	for i, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("invalid pool at index %d: %w", i, err)
		}
		if _, ok := seen[pool.PoolId]; ok {
			return ErrPoolAlreadyExists.Wrapf("duplicate pool_id %d in genesis", pool.PoolId)
		}
		seen[pool.PoolId] = struct{}{}
	}

	return nil
}
