package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState is the complete registry state of the aggregator.
type GenesisState struct {
	Params          Params         `json:"params"`
	Admin           string         `json:"admin"`
	Oracles         []OracleConfig `json:"oracles"`
	NextOracleIndex uint32         `json:"next_oracle_index"`
	Assets          []AssetEntry   `json:"assets"`
	BaseAssets      []Asset        `json:"base_assets"`
}

// DefaultGenesis returns the default genesis state for the aggregator module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:          DefaultParams(),
		Admin:           DefaultAuthority(),
		Oracles:         []OracleConfig{},
		NextOracleIndex: 0,
		Assets:          []AssetEntry{},
		BaseAssets:      []Asset{},
	}
}

// Validate ensures the genesis state is well-formed and the registry invariants hold.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	if _, err := sdk.AccAddressFromBech32(gs.Admin); err != nil {
		return fmt.Errorf("invalid admin address %q: %w", gs.Admin, err)
	}

	if len(gs.Oracles) > MaxOracles {
		return ErrMaxOraclesExceeded.Wrapf("%d oracles in genesis", len(gs.Oracles))
	}
	indices := make(map[uint32]struct{}, len(gs.Oracles))
	addresses := make(map[string]struct{}, len(gs.Oracles))
	for _, o := range gs.Oracles {
		if err := o.Validate(); err != nil {
			return err
		}
		if o.Index >= gs.NextOracleIndex {
			return fmt.Errorf("oracle %s index %d not below next index %d", o.Address, o.Index, gs.NextOracleIndex)
		}
		if _, dup := indices[o.Index]; dup {
			return fmt.Errorf("duplicate oracle index %d", o.Index)
		}
		if _, dup := addresses[o.Address]; dup {
			return ErrOracleExists.Wrap(o.Address)
		}
		indices[o.Index] = struct{}{}
		addresses[o.Address] = struct{}{}
	}

	if len(gs.Assets) > MaxAssets {
		return ErrMaxAssetsExceeded.Wrapf("%d assets in genesis", len(gs.Assets))
	}
	if len(gs.BaseAssets) > MaxBaseAssets {
		return ErrMaxAssetsExceeded.Wrapf("%d base assets in genesis", len(gs.BaseAssets))
	}

	seen := map[string]struct{}{string(gs.Params.Base.Key()): {}}
	for _, entry := range gs.Assets {
		if err := entry.Asset.Validate(); err != nil {
			return err
		}
		if err := entry.Config.Validate(); err != nil {
			return fmt.Errorf("asset %s: %w", entry.Asset, err)
		}
		if _, ok := indices[entry.Config.OracleIndex]; !ok {
			return ErrOracleNotFound.Wrapf("asset %s references oracle index %d", entry.Asset, entry.Config.OracleIndex)
		}
		key := string(entry.Asset.Key())
		if _, dup := seen[key]; dup {
			return ErrAssetExists.Wrap(entry.Asset.String())
		}
		seen[key] = struct{}{}
	}
	for _, asset := range gs.BaseAssets {
		if err := asset.Validate(); err != nil {
			return err
		}
		key := string(asset.Key())
		if _, dup := seen[key]; dup {
			return ErrAssetExists.Wrap(asset.String())
		}
		seen[key] = struct{}{}
	}

	return nil
}
