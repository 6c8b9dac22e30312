package keeper

import (
	"context"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// ValidateAdmin checks that sender is the admin recorded in config.
func ValidateAdmin(config types.Config, sender string) error {
	if sender != config.AdminAddress {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", config.AdminAddress, sender)
	}
	return nil
}

// RequireAdmin loads the config and checks sender against its admin. It is called
// at the top of every admin-only operation and never by the permissionless refresh.
func (k Keeper) RequireAdmin(ctx context.Context, sender string) (types.Config, error) {
	config, err := k.GetConfig(ctx)
	if err != nil {
		return types.Config{}, err
	}
	if err := ValidateAdmin(config, sender); err != nil {
		return types.Config{}, err
	}
	return config, nil
}
