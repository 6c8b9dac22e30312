package types

// Event types for the stscaling module
const (
	// EventTypeContract carries the attributes of every execute response
	EventTypeContract = "wasm-" + ModuleName

	AttributeKeyAction                = "action"
	AttributeKeyAdminAddress          = "admin_address"
	AttributeKeyOracleContractAddress = "oracle_contract_address"
	AttributeKeyPoolID                = "pool_id"
	AttributeKeyPoolStTokenDenom      = "pool_sttoken_denom"
	AttributeKeyPoolAssetOrdering     = "pool_asset_ordering"
	AttributeKeyRedemptionRate        = "redemption_rate"
	AttributeKeyScalingFactors        = "scaling_factors"

	ActionInstantiate = "instantiate"
)
