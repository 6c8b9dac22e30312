package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// stscaling module sentinel errors
var (
	// Authorization errors
	ErrUnauthorized = sdkerrors.Register(ModuleName, 2, "unauthorized")

	// Registry errors
	ErrPoolAlreadyExists = sdkerrors.Register(ModuleName, 3, "pool already exists")
	ErrPoolNotFound      = sdkerrors.Register(ModuleName, 4, "pool not found")

	// Pool configuration errors, raised while reconciling against the AMM
	ErrPoolNotFoundOsmosis         = sdkerrors.Register(ModuleName, 5, "pool not found on osmosis")
	ErrInvalidNumberOfPoolAssets   = sdkerrors.Register(ModuleName, 6, "invalid number of pool assets")
	ErrInvalidPoolAssetOrdering    = sdkerrors.Register(ModuleName, 7, "invalid pool asset ordering")
	ErrUnableToQueryRedemptionRate = sdkerrors.Register(ModuleName, 8, "unable to query redemption rate")

	// Config and message errors
	ErrConfigNotFound        = sdkerrors.Register(ModuleName, 9, "config not found")
	ErrAlreadyInstantiated   = sdkerrors.Register(ModuleName, 10, "contract already instantiated")
	ErrInvalidAddress        = sdkerrors.Register(ModuleName, 11, "invalid address")
	ErrInvalidDenom          = sdkerrors.Register(ModuleName, 12, "invalid denom")
	ErrInvalidAssetOrdering  = sdkerrors.Register(ModuleName, 13, "invalid asset ordering")
	ErrInvalidPoolID         = sdkerrors.Register(ModuleName, 14, "invalid pool id")
	ErrInvalidScalingFactors = sdkerrors.Register(ModuleName, 15, "invalid scaling factors")
	ErrInvalidRequest        = sdkerrors.Register(ModuleName, 16, "invalid request")

	// Conversion errors
	ErrInvalidRedemptionRate = sdkerrors.Register(ModuleName, 20, "invalid redemption rate")
	ErrScalingFactorOverflow = sdkerrors.Register(ModuleName, 21, "scaling factor overflows uint64")

	// State errors
	ErrStateCorruption = sdkerrors.Register(ModuleName, 40, "state corruption detected")
)
