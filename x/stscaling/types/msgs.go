package types

import (
	"strconv"
	"strings"
)

const (
	TypeMsgUpdateConfig             = "update_config"
	TypeMsgAddPool                  = "add_pool"
	TypeMsgRemovePool               = "remove_pool"
	TypeMsgUpdateScalingFactor      = "update_scaling_factor"
	TypeMsgSudoAdjustScalingFactors = "sudo_adjust_scaling_factors"
)

// InstantiateMsg instantiates the contract with an admin address and oracle contract address
type InstantiateMsg struct {
	AdminAddress          string `json:"admin_address"`
	OracleContractAddress string `json:"oracle_contract_address"`
}

// ExecuteMsg is the externally tagged union of all execute messages.
// Exactly one field must be set, e.g. {"add_pool":{...}}.
type ExecuteMsg struct {
	UpdateConfig             *MsgUpdateConfig             `json:"update_config,omitempty"`
	AddPool                  *MsgAddPool                  `json:"add_pool,omitempty"`
	RemovePool               *MsgRemovePool               `json:"remove_pool,omitempty"`
	UpdateScalingFactor      *MsgUpdateScalingFactor      `json:"update_scaling_factor,omitempty"`
	SudoAdjustScalingFactors *MsgSudoAdjustScalingFactors `json:"sudo_adjust_scaling_factors,omitempty"`
}

// MsgUpdateConfig replaces the admin and oracle contract addresses. Admin only.
type MsgUpdateConfig struct {
	AdminAddress          string `json:"admin_address"`
	OracleContractAddress string `json:"oracle_contract_address"`
}

// MsgAddPool registers an stToken stableswap pool. Admin only.
type MsgAddPool struct {
	PoolId        uint64        `json:"pool_id"`
	StTokenDenom  string        `json:"sttoken_denom"`
	AssetOrdering AssetOrdering `json:"asset_ordering"`
}

// MsgRemovePool deregisters a pool. Admin only.
type MsgRemovePool struct {
	PoolId uint64 `json:"pool_id"`
}

// MsgUpdateScalingFactor refreshes a pool's scaling factors from the oracle. Permissionless.
type MsgUpdateScalingFactor struct {
	PoolId uint64 `json:"pool_id"`
}

// MsgSudoAdjustScalingFactors sets a pool's scaling factors directly, bypassing the
// registry and the oracle. Admin only; a safety valve for the period right after
// deployment and meant to be removed.
type MsgSudoAdjustScalingFactors struct {
	PoolId         uint64   `json:"pool_id"`
	ScalingFactors []uint64 `json:"scaling_factors"`
}

// NewExecuteUpdateConfig wraps a MsgUpdateConfig.
func NewExecuteUpdateConfig(admin, oracle string) ExecuteMsg {
	return ExecuteMsg{UpdateConfig: &MsgUpdateConfig{AdminAddress: admin, OracleContractAddress: oracle}}
}

// NewExecuteAddPool wraps a MsgAddPool.
func NewExecuteAddPool(poolID uint64, stTokenDenom string, ordering AssetOrdering) ExecuteMsg {
	return ExecuteMsg{AddPool: &MsgAddPool{PoolId: poolID, StTokenDenom: stTokenDenom, AssetOrdering: ordering}}
}

// NewExecuteRemovePool wraps a MsgRemovePool.
func NewExecuteRemovePool(poolID uint64) ExecuteMsg {
	return ExecuteMsg{RemovePool: &MsgRemovePool{PoolId: poolID}}
}

// NewExecuteUpdateScalingFactor wraps a MsgUpdateScalingFactor.
func NewExecuteUpdateScalingFactor(poolID uint64) ExecuteMsg {
	return ExecuteMsg{UpdateScalingFactor: &MsgUpdateScalingFactor{PoolId: poolID}}
}

// NewExecuteSudoAdjustScalingFactors wraps a MsgSudoAdjustScalingFactors.
func NewExecuteSudoAdjustScalingFactors(poolID uint64, factors []uint64) ExecuteMsg {
	return ExecuteMsg{SudoAdjustScalingFactors: &MsgSudoAdjustScalingFactors{PoolId: poolID, ScalingFactors: factors}}
}

// Type returns the action name of the variant that is set.
func (msg ExecuteMsg) Type() string {
	switch {
	case msg.UpdateConfig != nil:
		return TypeMsgUpdateConfig
	case msg.AddPool != nil:
		return TypeMsgAddPool
	case msg.RemovePool != nil:
		return TypeMsgRemovePool
	case msg.UpdateScalingFactor != nil:
		return TypeMsgUpdateScalingFactor
	case msg.SudoAdjustScalingFactors != nil:
		return TypeMsgSudoAdjustScalingFactors
	default:
		return ""
	}
}

// ValidateBasic checks exactly one variant is set. Field checks run in the
// handlers, after the sender is authorized.
func (msg ExecuteMsg) ValidateBasic() error {
	set := 0
	for _, isSet := range []bool{
		msg.UpdateConfig != nil,
		msg.AddPool != nil,
		msg.RemovePool != nil,
		msg.UpdateScalingFactor != nil,
		msg.SudoAdjustScalingFactors != nil,
	} {
		if isSet {
			set++
		}
	}
	if set != 1 {
		return ErrInvalidRequest.Wrapf("execute msg must set exactly one variant, got %d", set)
	}
	return nil
}

// ValidatePayload runs ValidateBasic plus the stateless field checks of the set
// variant. Clients use it to reject malformed messages before sending them.
func (msg ExecuteMsg) ValidatePayload() error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}

	switch {
	case msg.AddPool != nil:
		return msg.AddPool.ValidateBasic()
	case msg.RemovePool != nil:
		return validatePoolID(msg.RemovePool.PoolId)
	case msg.UpdateScalingFactor != nil:
		return validatePoolID(msg.UpdateScalingFactor.PoolId)
	case msg.SudoAdjustScalingFactors != nil:
		return msg.SudoAdjustScalingFactors.ValidateBasic()
	}
	return nil
}

// ValidateBasic checks the pool id and ordering. The denom is checked against the
// live pool by ValidatePoolConfiguration.
func (msg MsgAddPool) ValidateBasic() error {
	if err := validatePoolID(msg.PoolId); err != nil {
		return err
	}
	return msg.AssetOrdering.Validate()
}

// ValidateBasic checks the factors array has one entry per pool asset.
func (msg MsgSudoAdjustScalingFactors) ValidateBasic() error {
	if len(msg.ScalingFactors) != 2 {
		return ErrInvalidScalingFactors.Wrapf("expected 2 scaling factors, got %d", len(msg.ScalingFactors))
	}
	return nil
}

func validatePoolID(poolID uint64) error {
	if poolID == 0 {
		return ErrInvalidPoolID.Wrap("pool id must be positive")
	}
	return nil
}

// FormatScalingFactors renders factors as "[a, b]", the attribute format of a refresh.
func FormatScalingFactors(factors []uint64) string {
	return formatFactors(factors, ", ")
}

// FormatScalingFactorsCompact renders factors as "[a,b]", the attribute format of a sudo adjustment.
func FormatScalingFactorsCompact(factors []uint64) string {
	return formatFactors(factors, ",")
}

func formatFactors(factors []uint64, sep string) string {
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = strconv.FormatUint(f, 10)
	}
	return "[" + strings.Join(parts, sep) + "]"
}
