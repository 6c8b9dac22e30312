package types

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TypeURLMsgStableSwapAdjustScalingFactors is the Osmosis type URL of the adjust instruction.
const TypeURLMsgStableSwapAdjustScalingFactors = "/osmosis.gamm.poolmodels.stableswap.v1beta1.MsgStableSwapAdjustScalingFactors"

// StableswapPool is the subset of an Osmosis stableswap pool this module reconciles against.
type StableswapPool struct {
	Id            uint64     `json:"id"`
	PoolLiquidity []sdk.Coin `json:"pool_liquidity"`
}

// NewStableswapPool builds a pool snapshot with one coin of amount per denom, in order.
func NewStableswapPool(poolID uint64, amount sdkmath.Int, denoms ...string) *StableswapPool {
	liquidity := make([]sdk.Coin, 0, len(denoms))
	for _, denom := range denoms {
		liquidity = append(liquidity, sdk.Coin{Denom: denom, Amount: amount})
	}
	return &StableswapPool{Id: poolID, PoolLiquidity: liquidity}
}

// MsgStableSwapAdjustScalingFactors is the outbound instruction asking Osmosis to set
// a stableswap pool's scaling factors. It is emitted, never executed by this module.
type MsgStableSwapAdjustScalingFactors struct {
	Sender         string   `json:"sender"`
	PoolId         uint64   `json:"pool_id"`
	ScalingFactors []uint64 `json:"scaling_factors"`
}

// NewMsgStableSwapAdjustScalingFactors copies factors so the instruction owns its slice.
func NewMsgStableSwapAdjustScalingFactors(sender string, poolID uint64, factors []uint64) MsgStableSwapAdjustScalingFactors {
	return MsgStableSwapAdjustScalingFactors{
		Sender:         sender,
		PoolId:         poolID,
		ScalingFactors: append([]uint64(nil), factors...),
	}
}

// MsgTypeURL returns the Osmosis type URL of the instruction.
func (MsgStableSwapAdjustScalingFactors) MsgTypeURL() string {
	return TypeURLMsgStableSwapAdjustScalingFactors
}
