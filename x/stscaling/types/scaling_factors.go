package types

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// ScalingFactorMultiplier is the fixed point unit of a scaling factor. It is part of
// the wire contract with Osmosis and must not change without a coordinated migration.
const ScalingFactorMultiplier uint64 = 100_000

// maxRedemptionRate is the smallest rate whose scaled value no longer fits in a uint64:
// 2^64 / ScalingFactorMultiplier, which is exact at 18 decimals.
var maxRedemptionRate = sdkmath.LegacyNewDecFromBigInt(new(big.Int).Lsh(big.NewInt(1), 64)).
	QuoInt64(int64(ScalingFactorMultiplier))

// ConvertRedemptionRateToScalingFactors converts an stToken redemption rate into a
// scaling factors array.
//
// One stToken redeems for redemptionRate native tokens, so the native token's factor is
// the rate scaled by ScalingFactorMultiplier and the stToken factor stays at
// ScalingFactorMultiplier. The scaled value is floored, never rounded.
//
//	rate 1.2,    NativeTokenFirst -> [120000, 100000]
//	rate 1.2345, StTokenFirst     -> [100000, 123450]
//
// Rates whose scaled value exceeds a uint64 return ErrScalingFactorOverflow.
func ConvertRedemptionRateToScalingFactors(redemptionRate sdkmath.LegacyDec, ordering AssetOrdering) ([]uint64, error) {
	if redemptionRate.IsNil() || redemptionRate.IsNegative() {
		return nil, ErrInvalidRedemptionRate.Wrapf("redemption rate must be non-negative, got %s", redemptionRate)
	}
	if redemptionRate.GTE(maxRedemptionRate) {
		return nil, ErrScalingFactorOverflow.Wrapf("redemption rate %s", redemptionRate)
	}

	scaled := redemptionRate.MulInt64(int64(ScalingFactorMultiplier)).TruncateInt().Uint64()

	switch ordering {
	case AssetOrderingStTokenFirst:
		return []uint64{ScalingFactorMultiplier, scaled}, nil
	case AssetOrderingNativeTokenFirst:
		return []uint64{scaled, ScalingFactorMultiplier}, nil
	default:
		return nil, ordering.Validate()
	}
}
