package types

import (
	"fmt"
)

// Registry capacities, enforced when the registries are mutated.
const (
	MaxOracles    = 10
	MaxAssets     = 20
	MaxBaseAssets = 10

	// MaxDeviationPercent is the largest accepted AssetConfig.MaxDev.
	MaxDeviationPercent = 100
)

// OracleConfig describes a registered upstream oracle. Index is stable for the
// oracle's lifetime and is never handed to another oracle.
type OracleConfig struct {
	Address    string `json:"address"`
	Index      uint32 `json:"index"`
	Resolution uint32 `json:"resolution"`
	Decimals   uint32 `json:"decimals"`
}

// Validate checks the probed oracle properties.
func (o OracleConfig) Validate() error {
	if o.Address == "" {
		return ErrInvalidOracleConfig.Wrap("empty oracle address")
	}
	if o.Resolution == 0 {
		return ErrInvalidOracleConfig.Wrapf("oracle %s reports zero resolution", o.Address)
	}
	if o.Decimals > MaxDecimals {
		return ErrInvalidOracleConfig.Wrapf("oracle %s reports %d decimals", o.Address, o.Decimals)
	}
	return nil
}

// AssetConfig tells the resolver which oracle to ask, under which symbol, and how
// much movement between two rounds it tolerates. MaxDev is a percentage; 0 disables
// the deviation check.
type AssetConfig struct {
	Asset       Asset  `json:"asset"`
	OracleIndex uint32 `json:"oracle_index"`
	MaxDev      uint32 `json:"max_dev"`
}

// DeviationCheckEnabled reports whether the resolver must confirm the candidate
// against an older round.
func (c AssetConfig) DeviationCheckEnabled() bool {
	return c.MaxDev > 0 && c.MaxDev < MaxDeviationPercent
}

// Validate checks the reference asset and the deviation bound.
func (c AssetConfig) Validate() error {
	if err := c.Asset.Validate(); err != nil {
		return err
	}
	if c.MaxDev > MaxDeviationPercent {
		return ErrInvalidMaxDev.Wrapf("max dev %d exceeds %d", c.MaxDev, MaxDeviationPercent)
	}
	return nil
}

// AssetEntry pairs a configured asset with its config and blocked flag.
type AssetEntry struct {
	Asset   Asset       `json:"asset"`
	Config  AssetConfig `json:"config"`
	Blocked bool        `json:"blocked"`
}

// String implements fmt.Stringer
func (e AssetEntry) String() string {
	return fmt.Sprintf("%s -> oracle %d (%s, max dev %d%%, blocked=%t)",
		e.Asset, e.Config.OracleIndex, e.Config.Asset, e.Config.MaxDev, e.Blocked)
}
