package types

import "encoding/binary"

const (
	// ModuleName defines the module name
	ModuleName = "stscaling"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// ContractName is recorded alongside ContractVersion at instantiation
	ContractName = "stride-st-scaling-factor"

	// ContractVersion is the version of the state layout written by this module
	ContractVersion = "1.0.0"

	// Bech32PrefixAccAddr is the account prefix of admin, oracle and contract addresses
	Bech32PrefixAccAddr = "osmo"
)

var (
	// ConfigKey is the key for the admin/oracle config singleton
	ConfigKey = []byte{0x01}

	// PoolKeyPrefix is the prefix for registered pool records
	PoolKeyPrefix = []byte{0x02}

	// ContractVersionKey is the key for the contract name/version record
	ContractVersionKey = []byte{0x03}
)

// PoolIDBytes encodes a pool id big-endian so prefix iteration is ascending by id.
func PoolIDBytes(poolID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	return bz
}

// PoolKey returns the store key for a pool by ID
func PoolKey(poolID uint64) []byte {
	key := make([]byte, 0, len(PoolKeyPrefix)+8)
	key = append(key, PoolKeyPrefix...)
	return append(key, PoolIDBytes(poolID)...)
}
