package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/core/address"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// Keeper maintains the pool registry and config of the stscaling module
type Keeper struct {
	storeService    store.KVStoreService
	addressCodec    address.Codec
	oracleQuerier   types.OracleQuerier
	poolQuerier     types.PoolManagerQuerier
	contractAddress string
	metrics         *ScalingFactorMetrics
}

// NewKeeper creates a new stscaling Keeper instance. contractAddress is the sender of
// every outbound adjust-scaling-factors instruction.
func NewKeeper(
	storeService store.KVStoreService,
	addressCodec address.Codec,
	oracleQuerier types.OracleQuerier,
	poolQuerier types.PoolManagerQuerier,
	contractAddress string,
) Keeper {
	return Keeper{
		storeService:    storeService,
		addressCodec:    addressCodec,
		oracleQuerier:   oracleQuerier,
		poolQuerier:     poolQuerier,
		contractAddress: contractAddress,
		metrics:         NewScalingFactorMetrics(),
	}
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// ContractAddress returns the address outbound instructions are sent from
func (k Keeper) ContractAddress() string {
	return k.contractAddress
}

// AddressCodec returns the codec used to validate config addresses
func (k Keeper) AddressCodec() address.Codec {
	return k.addressCodec
}
