package keeper

import (
	"strconv"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// executeUpdateConfig replaces the admin and oracle contract addresses. Admin only.
func (k Keeper) executeUpdateConfig(ctx sdk.Context, sender string, msg types.MsgUpdateConfig) (*types.Response, error) {
	if _, err := k.RequireAdmin(ctx, sender); err != nil {
		return nil, err
	}

	if err := k.SetConfig(ctx, types.NewConfig(msg.AdminAddress, msg.OracleContractAddress)); err != nil {
		return nil, err
	}

	k.Logger(ctx).Info("config updated", "admin", msg.AdminAddress, "oracle", msg.OracleContractAddress)

	return types.NewResponse(types.TypeMsgUpdateConfig).
		AddAttribute(types.AttributeKeyAdminAddress, msg.AdminAddress).
		AddAttribute(types.AttributeKeyOracleContractAddress, msg.OracleContractAddress), nil
}

// executeAddPool registers an stToken stableswap pool after checking the declared
// configuration against the live Osmosis pool. Admin only.
func (k Keeper) executeAddPool(ctx sdk.Context, sender string, msg types.MsgAddPool) (*types.Response, error) {
	if _, err := k.RequireAdmin(ctx, sender); err != nil {
		return nil, err
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	exists, err := k.HasPool(ctx, msg.PoolId)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, types.ErrPoolAlreadyExists.Wrapf("pool_id %d", msg.PoolId)
	}

	// A failed lookup is not a configuration error, so it is returned as is
	stableswapPool, err := k.poolQuerier.Pool(ctx, msg.PoolId)
	if err != nil {
		return nil, err
	}

	if err := types.ValidatePoolConfiguration(stableswapPool, msg.PoolId, msg.StTokenDenom, msg.AssetOrdering); err != nil {
		return nil, err
	}

	if err := k.AddPool(ctx, types.NewPool(msg.PoolId, msg.StTokenDenom, msg.AssetOrdering)); err != nil {
		return nil, err
	}

	k.metrics.PoolRegistrations.WithLabelValues(types.TypeMsgAddPool).Inc()
	k.Logger(ctx).Info("pool added",
		"pool_id", msg.PoolId,
		"sttoken_denom", msg.StTokenDenom,
		"asset_ordering", msg.AssetOrdering.String(),
	)

	return types.NewResponse(types.TypeMsgAddPool).
		AddAttribute(types.AttributeKeyPoolID, strconv.FormatUint(msg.PoolId, 10)).
		AddAttribute(types.AttributeKeyPoolStTokenDenom, msg.StTokenDenom).
		AddAttribute(types.AttributeKeyPoolAssetOrdering, msg.AssetOrdering.String()), nil
}

// executeRemovePool deregisters a pool so its scaling factors can no longer be refreshed. Admin only.
func (k Keeper) executeRemovePool(ctx sdk.Context, sender string, msg types.MsgRemovePool) (*types.Response, error) {
	if _, err := k.RequireAdmin(ctx, sender); err != nil {
		return nil, err
	}

	if err := k.RemovePool(ctx, msg.PoolId); err != nil {
		return nil, err
	}

	k.metrics.PoolRegistrations.WithLabelValues(types.TypeMsgRemovePool).Inc()
	k.Logger(ctx).Info("pool removed", "pool_id", msg.PoolId)

	return types.NewResponse(types.TypeMsgRemovePool).
		AddAttribute(types.AttributeKeyPoolID, strconv.FormatUint(msg.PoolId, 10)), nil
}

// executeUpdateScalingFactor reads the stToken redemption rate from the oracle and
// emits an adjust-scaling-factors instruction for the pool. Permissionless.
func (k Keeper) executeUpdateScalingFactor(ctx sdk.Context, msg types.MsgUpdateScalingFactor) (*types.Response, error) {
	pool, err := k.GetPool(ctx, msg.PoolId)
	if err != nil {
		return nil, err
	}

	config, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	rateResp, err := k.oracleQuerier.RedemptionRate(ctx, config.OracleContractAddress, pool.StTokenDenom)
	if err != nil {
		k.metrics.OracleQueryFailures.WithLabelValues(pool.StTokenDenom).Inc()
		return nil, types.ErrUnableToQueryRedemptionRate.Wrapf("token %s: %s", pool.StTokenDenom, err)
	}

	scalingFactors, err := types.ConvertRedemptionRateToScalingFactors(rateResp.RedemptionRate, pool.AssetOrdering)
	if err != nil {
		return nil, err
	}

	adjustMsg := types.NewMsgStableSwapAdjustScalingFactors(k.contractAddress, pool.PoolId, scalingFactors)

	// Block time is monotonic on chain; the guard keeps last_updated from regressing otherwise
	if blockTime := ctx.BlockTime().Unix(); blockTime > 0 && uint64(blockTime) > pool.LastUpdated {
		pool.LastUpdated = uint64(blockTime)
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return nil, err
	}

	k.recordRefresh(pool, rateResp, scalingFactors)
	k.Logger(ctx).Info("scaling factors updated",
		"pool_id", pool.PoolId,
		"redemption_rate", rateResp.RedemptionRate.String(),
		"scaling_factors", types.FormatScalingFactors(scalingFactors),
	)

	return types.NewResponse(types.TypeMsgUpdateScalingFactor).
		AddAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.PoolId, 10)).
		AddAttribute(types.AttributeKeyRedemptionRate, types.FormatRedemptionRate(rateResp.RedemptionRate)).
		AddAttribute(types.AttributeKeyScalingFactors, types.FormatScalingFactors(scalingFactors)).
		AddMessage(adjustMsg), nil
}

// executeSudoAdjustScalingFactors emits an adjust-scaling-factors instruction from
// admin supplied factors without reading the registry or the oracle. Admin only.
func (k Keeper) executeSudoAdjustScalingFactors(ctx sdk.Context, sender string, msg types.MsgSudoAdjustScalingFactors) (*types.Response, error) {
	if _, err := k.RequireAdmin(ctx, sender); err != nil {
		return nil, err
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	adjustMsg := types.NewMsgStableSwapAdjustScalingFactors(k.contractAddress, msg.PoolId, msg.ScalingFactors)

	poolLabel := strconv.FormatUint(msg.PoolId, 10)
	k.metrics.SudoAdjustments.WithLabelValues(poolLabel).Inc()
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "sudo_adjustments"},
		1,
		[]metrics.Label{telemetry.NewLabel("pool_id", poolLabel)},
	)
	k.Logger(ctx).Info("sudo scaling factor adjustment",
		"pool_id", msg.PoolId,
		"scaling_factors", types.FormatScalingFactorsCompact(msg.ScalingFactors),
		"sender", sender,
	)

	return types.NewResponse(types.TypeMsgSudoAdjustScalingFactors).
		AddAttribute(types.AttributeKeyPoolID, poolLabel).
		AddAttribute(types.AttributeKeyScalingFactors, types.FormatScalingFactorsCompact(msg.ScalingFactors)).
		AddMessage(adjustMsg), nil
}

func (k Keeper) recordRefresh(pool types.Pool, rateResp types.RedemptionRateResponse, scalingFactors []uint64) {
	poolLabel := strconv.FormatUint(pool.PoolId, 10)
	k.metrics.ScalingFactorUpdates.WithLabelValues(poolLabel).Inc()
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "scaling_factor_updates"},
		1,
		[]metrics.Label{telemetry.NewLabel("pool_id", poolLabel)},
	)
	k.metrics.LastUpdated.WithLabelValues(poolLabel).Set(float64(pool.LastUpdated))
	if rate, err := rateResp.RedemptionRate.Float64(); err == nil {
		k.metrics.RedemptionRate.WithLabelValues(pool.StTokenDenom).Set(rate)
	}
	for i, factor := range scalingFactors {
		k.metrics.ScalingFactor.WithLabelValues(poolLabel, strconv.Itoa(i)).Set(float64(factor))
	}
}
