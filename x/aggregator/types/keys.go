package types

import (
	"encoding/binary"

	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "aggregator"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

var (
	// ParamsKey is the key for the immutable module parameters (base, decimals, max age)
	ParamsKey = []byte{0x01}

	// AdminKey is the key for the admin address
	AdminKey = []byte{0x02}

	// OracleKeyPrefix is the prefix for oracle configs, keyed by big-endian oracle index
	OracleKeyPrefix = []byte{0x03}

	// NextOracleIndexKey holds the index the next registered oracle receives
	NextOracleIndexKey = []byte{0x04}

	// AssetConfigKeyPrefix is the prefix for asset configs, keyed by canonical asset key
	AssetConfigKeyPrefix = []byte{0x05}

	// BlockedKeyPrefix is the prefix for blocked asset markers
	BlockedKeyPrefix = []byte{0x06}

	// BaseAssetsKey holds the ordered list of pegged assets
	BaseAssetsKey = []byte{0x07}

	// ConfiguredAssetsKey holds the configured assets in the order they were added
	ConfiguredAssetsKey = []byte{0x08}
)

// DefaultAuthority returns the governance module address, used as the genesis admin
// when none is configured.
func DefaultAuthority() string {
	return authtypes.NewModuleAddress(govtypes.ModuleName).String()
}

// GetOracleKey returns the store key for the oracle registered under index.
func GetOracleKey(index uint32) []byte {
	return append(append([]byte{}, OracleKeyPrefix...), Uint32ToBytes(index)...)
}

// GetAssetConfigKey returns the store key for an asset's config.
func GetAssetConfigKey(asset Asset) []byte {
	return append(append([]byte{}, AssetConfigKeyPrefix...), asset.Key()...)
}

// GetBlockedKey returns the store key for an asset's blocked marker.
func GetBlockedKey(asset Asset) []byte {
	return append(append([]byte{}, BlockedKeyPrefix...), asset.Key()...)
}

// Uint32ToBytes encodes v big-endian so that prefix iteration follows index order.
func Uint32ToBytes(v uint32) []byte {
	bz := make([]byte, 4)
	binary.BigEndian.PutUint32(bz, v)
	return bz
}

// BytesToUint32 decodes a big-endian uint32.
func BytesToUint32(bz []byte) uint32 {
	return binary.BigEndian.Uint32(bz)
}
