package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// SetContractVersion records the contract name and version in the store
func (k Keeper) SetContractVersion(ctx context.Context, info types.ContractVersionInfo) error {
	bz, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal contract version: %w", err)
	}
	return k.storeService.OpenKVStore(ctx).Set(types.ContractVersionKey, bz)
}

// GetContractVersion returns the recorded contract version, if any
func (k Keeper) GetContractVersion(ctx context.Context) (types.ContractVersionInfo, bool, error) {
	bz, err := k.storeService.OpenKVStore(ctx).Get(types.ContractVersionKey)
	if err != nil || bz == nil {
		return types.ContractVersionInfo{}, false, err
	}

	var info types.ContractVersionInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return types.ContractVersionInfo{}, false, types.ErrStateCorruption.Wrapf("contract version: %s", err)
	}
	return info, true, nil
}
