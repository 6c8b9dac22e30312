package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// HasConfig reports whether the contract has been instantiated
func (k Keeper) HasConfig(ctx context.Context) (bool, error) {
	return k.storeService.OpenKVStore(ctx).Has(types.ConfigKey)
}

// GetConfig loads the config singleton
func (k Keeper) GetConfig(ctx context.Context) (types.Config, error) {
	bz, err := k.storeService.OpenKVStore(ctx).Get(types.ConfigKey)
	if err != nil {
		return types.Config{}, err
	}
	if bz == nil {
		return types.Config{}, types.ErrConfigNotFound
	}

	var config types.Config
	if err := json.Unmarshal(bz, &config); err != nil {
		return types.Config{}, types.ErrStateCorruption.Wrapf("config: %s", err)
	}
	return config, nil
}

// SetConfig validates both addresses and replaces the config wholesale
func (k Keeper) SetConfig(ctx context.Context, config types.Config) error {
	if err := config.Validate(k.addressCodec); err != nil {
		return err
	}

	bz, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return k.storeService.OpenKVStore(ctx).Set(types.ConfigKey, bz)
}
