package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// Instantiate stores the initial config and contract version. It can only run once.
func (k Keeper) Instantiate(ctx context.Context, sender string, msg types.InstantiateMsg) (*types.Response, error) {
	return k.atomically(ctx, types.ActionInstantiate, func(cacheCtx sdk.Context) (*types.Response, error) {
		instantiated, err := k.HasConfig(cacheCtx)
		if err != nil {
			return nil, err
		}
		if instantiated {
			return nil, types.ErrAlreadyInstantiated
		}

		if err := k.SetContractVersion(cacheCtx, types.CurrentContractVersion()); err != nil {
			return nil, err
		}
		if err := k.SetConfig(cacheCtx, types.NewConfig(msg.AdminAddress, msg.OracleContractAddress)); err != nil {
			return nil, err
		}

		k.Logger(cacheCtx).Info("contract instantiated",
			"sender", sender,
			"admin", msg.AdminAddress,
			"oracle", msg.OracleContractAddress,
		)

		return types.NewResponse(types.ActionInstantiate).
			AddAttribute(types.AttributeKeyAdminAddress, msg.AdminAddress).
			AddAttribute(types.AttributeKeyOracleContractAddress, msg.OracleContractAddress), nil
	})
}

// Execute dispatches an execute message. Every state change the handler makes is
// committed only if it returns without error.
func (k Keeper) Execute(ctx context.Context, sender string, msg types.ExecuteMsg) (*types.Response, error) {
	if err := msg.ValidateBasic(); err != nil {
		k.recordFailure(msg.Type(), err)
		return nil, err
	}

	return k.atomically(ctx, msg.Type(), func(cacheCtx sdk.Context) (*types.Response, error) {
		switch {
		case msg.UpdateConfig != nil:
			return k.executeUpdateConfig(cacheCtx, sender, *msg.UpdateConfig)
		case msg.AddPool != nil:
			return k.executeAddPool(cacheCtx, sender, *msg.AddPool)
		case msg.RemovePool != nil:
			return k.executeRemovePool(cacheCtx, sender, *msg.RemovePool)
		case msg.UpdateScalingFactor != nil:
			return k.executeUpdateScalingFactor(cacheCtx, *msg.UpdateScalingFactor)
		case msg.SudoAdjustScalingFactors != nil:
			return k.executeSudoAdjustScalingFactors(cacheCtx, sender, *msg.SudoAdjustScalingFactors)
		default:
			return nil, types.ErrInvalidRequest.Wrap("unknown execute msg")
		}
	})
}

// ExecuteJSON decodes a JSON execute message and runs it
func (k Keeper) ExecuteJSON(ctx context.Context, sender string, bz []byte) (*types.Response, error) {
	var msg types.ExecuteMsg
	if err := json.Unmarshal(bz, &msg); err != nil {
		return nil, types.ErrInvalidRequest.Wrapf("failed to decode execute msg: %s", err)
	}
	return k.Execute(ctx, sender, msg)
}

// atomically runs fn on a cache context and writes it back, along with the
// response event, only when fn succeeds
func (k Keeper) atomically(
	ctx context.Context,
	action string,
	fn func(cacheCtx sdk.Context) (*types.Response, error),
) (*types.Response, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	resp, err := fn(cacheCtx)
	if err != nil {
		k.recordFailure(action, err)
		k.Logger(ctx).Debug("execute rejected", "action", action, "error", err)
		return nil, err
	}

	cacheCtx.EventManager().EmitEvent(resp.Event())
	write()

	return resp, nil
}

func (k Keeper) recordFailure(action string, err error) {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	k.metrics.ExecuteFailures.WithLabelValues(action, fmt.Sprintf("%s/%d", codespace, code)).Inc()
}
