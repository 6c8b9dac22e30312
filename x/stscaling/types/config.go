package types

import (
	"cosmossdk.io/core/address"
)

// Config holds the contract's admin and the ICA oracle it reads redemption rates from.
type Config struct {
	// AdminAddress is able to add and remove pools and update the config
	AdminAddress string `json:"admin_address"`
	// OracleContractAddress is the ICA Oracle contract holding stToken redemption rates
	OracleContractAddress string `json:"oracle_contract_address"`
}

// NewConfig returns a Config from the two addresses.
func NewConfig(admin, oracle string) Config {
	return Config{
		AdminAddress:          admin,
		OracleContractAddress: oracle,
	}
}

// Validate checks both addresses decode under the given codec.
func (c Config) Validate(ac address.Codec) error {
	if err := ValidateAddress(ac, "admin_address", c.AdminAddress); err != nil {
		return err
	}
	return ValidateAddress(ac, "oracle_contract_address", c.OracleContractAddress)
}

// ValidateAddress decodes addr with ac, returning ErrInvalidAddress on failure.
func ValidateAddress(ac address.Codec, field, addr string) error {
	if addr == "" {
		return ErrInvalidAddress.Wrapf("%s cannot be empty", field)
	}
	if _, err := ac.StringToBytes(addr); err != nil {
		return ErrInvalidAddress.Wrapf("%s %q: %s", field, addr, err)
	}
	return nil
}
