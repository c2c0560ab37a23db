package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

// Values are JSON encoded; the registries are small, written rarely and read through
// the resolver only.

func getJSON(store storetypes.KVStore, key []byte, v interface{}) (bool, error) {
	bz := store.Get(key)
	if bz == nil {
		return false, nil
	}
	if err := json.Unmarshal(bz, v); err != nil {
		return true, fmt.Errorf("failed to decode %x: %w", key, err)
	}
	return true, nil
}

func setJSON(store storetypes.KVStore, key []byte, v interface{}) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %x: %w", key, err)
	}
	store.Set(key, bz)
	return nil
}

// IsInitialized reports whether the params were written.
func (k Keeper) IsInitialized(ctx context.Context) bool {
	return k.getStore(ctx).Has(types.ParamsKey)
}

// GetParams returns the immutable module parameters
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	var params types.Params
	found, err := getJSON(k.getStore(ctx), types.ParamsKey, &params)
	if err != nil {
		return types.Params{}, err
	}
	if !found {
		return types.Params{}, sdkerrors.ErrNotFound.Wrap("aggregator params not initialized")
	}
	return params, nil
}

// setParams is only reachable from Initialize; params never change afterwards.
func (k Keeper) setParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return setJSON(k.getStore(ctx), types.ParamsKey, params)
}

// GetAdmin returns the stored admin address
func (k Keeper) GetAdmin(ctx context.Context) string {
	return string(k.getStore(ctx).Get(types.AdminKey))
}

func (k Keeper) setAdmin(ctx context.Context, admin string) {
	k.getStore(ctx).Set(types.AdminKey, []byte(admin))
}

// ---------------------------------------------------------------------------
// Oracle registry
// ---------------------------------------------------------------------------

// GetOracle returns the oracle registered under index.
func (k Keeper) GetOracle(ctx context.Context, index uint32) (types.OracleConfig, bool, error) {
	var oracle types.OracleConfig
	found, err := getJSON(k.getStore(ctx), types.GetOracleKey(index), &oracle)
	return oracle, found, err
}

// GetOracleByAddress scans the oracle registry for address.
func (k Keeper) GetOracleByAddress(ctx context.Context, address string) (types.OracleConfig, bool, error) {
	var (
		match types.OracleConfig
		found bool
	)
	err := k.IterateOracles(ctx, func(oracle types.OracleConfig) bool {
		if oracle.Address == address {
			match, found = oracle, true
			return true
		}
		return false
	})
	return match, found, err
}

func (k Keeper) setOracle(ctx context.Context, oracle types.OracleConfig) error {
	return setJSON(k.getStore(ctx), types.GetOracleKey(oracle.Index), oracle)
}

func (k Keeper) deleteOracle(ctx context.Context, index uint32) {
	k.getStore(ctx).Delete(types.GetOracleKey(index))
}

// IterateOracles walks the oracle registry in index order.
func (k Keeper) IterateOracles(ctx context.Context, cb func(oracle types.OracleConfig) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.OracleKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var oracle types.OracleConfig
		if err := json.Unmarshal(iterator.Value(), &oracle); err != nil {
			return fmt.Errorf("failed to decode oracle config: %w", err)
		}
		if cb(oracle) {
			break
		}
	}
	return nil
}

// GetAllOracles returns every registered oracle in index order.
func (k Keeper) GetAllOracles(ctx context.Context) ([]types.OracleConfig, error) {
	oracles := make([]types.OracleConfig, 0, types.MaxOracles)
	err := k.IterateOracles(ctx, func(oracle types.OracleConfig) bool {
		oracles = append(oracles, oracle)
		return false
	})
	return oracles, err
}

// OracleCount returns the number of registered oracles.
func (k Keeper) OracleCount(ctx context.Context) (int, error) {
	count := 0
	err := k.IterateOracles(ctx, func(types.OracleConfig) bool {
		count++
		return false
	})
	return count, err
}

// NextOracleIndex returns the index the next registered oracle receives.
func (k Keeper) NextOracleIndex(ctx context.Context) uint32 {
	bz := k.getStore(ctx).Get(types.NextOracleIndexKey)
	if bz == nil {
		return 0
	}
	return types.BytesToUint32(bz)
}

func (k Keeper) setNextOracleIndex(ctx context.Context, index uint32) {
	k.getStore(ctx).Set(types.NextOracleIndexKey, types.Uint32ToBytes(index))
}

// ---------------------------------------------------------------------------
// Asset registry
// ---------------------------------------------------------------------------

// GetAssetConfig returns the config of a configured asset.
func (k Keeper) GetAssetConfig(ctx context.Context, asset types.Asset) (types.AssetConfig, bool, error) {
	var config types.AssetConfig
	found, err := getJSON(k.getStore(ctx), types.GetAssetConfigKey(asset), &config)
	return config, found, err
}

// HasAssetConfig reports whether the asset is configured.
func (k Keeper) HasAssetConfig(ctx context.Context, asset types.Asset) bool {
	return k.getStore(ctx).Has(types.GetAssetConfigKey(asset))
}

// setAssetConfig writes the config and appends the asset to the ordered list the first
// time it is configured.
func (k Keeper) setAssetConfig(ctx context.Context, asset types.Asset, config types.AssetConfig) error {
	asset = asset.Canonical()
	configured, err := k.getConfiguredAssets(ctx)
	if err != nil {
		return err
	}
	if !containsAsset(configured, asset) {
		if err := setJSON(k.getStore(ctx), types.ConfiguredAssetsKey, append(configured, asset)); err != nil {
			return err
		}
	}
	return setJSON(k.getStore(ctx), types.GetAssetConfigKey(asset), config)
}

// deleteAsset drops the config, the blocked flag and the list entry together.
func (k Keeper) deleteAsset(ctx context.Context, asset types.Asset) error {
	configured, err := k.getConfiguredAssets(ctx)
	if err != nil {
		return err
	}
	store := k.getStore(ctx)
	if err := setJSON(store, types.ConfiguredAssetsKey, removeAsset(configured, asset)); err != nil {
		return err
	}
	store.Delete(types.GetAssetConfigKey(asset))
	store.Delete(types.GetBlockedKey(asset))
	return nil
}

func (k Keeper) getConfiguredAssets(ctx context.Context) ([]types.Asset, error) {
	assets := []types.Asset{}
	if _, err := getJSON(k.getStore(ctx), types.ConfiguredAssetsKey, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// IterateAssetConfigs walks the configured assets in the order they were added.
func (k Keeper) IterateAssetConfigs(ctx context.Context, cb func(asset types.Asset, config types.AssetConfig) (stop bool)) error {
	configured, err := k.getConfiguredAssets(ctx)
	if err != nil {
		return err
	}

	for _, asset := range configured {
		config, found, err := k.GetAssetConfig(ctx, asset)
		if err != nil {
			return err
		}
		if !found {
			return types.ErrAssetNotFound.Wrapf("listed asset %s has no config", asset)
		}
		if cb(asset, config) {
			break
		}
	}
	return nil
}

// GetAllAssetEntries returns every configured asset with its config and blocked flag.
func (k Keeper) GetAllAssetEntries(ctx context.Context) ([]types.AssetEntry, error) {
	entries := make([]types.AssetEntry, 0, types.MaxAssets)
	err := k.IterateAssetConfigs(ctx, func(asset types.Asset, config types.AssetConfig) bool {
		entries = append(entries, types.AssetEntry{
			Asset:   asset,
			Config:  config,
			Blocked: k.IsBlocked(ctx, asset),
		})
		return false
	})
	return entries, err
}

// AssetCount returns the number of configured assets.
func (k Keeper) AssetCount(ctx context.Context) (int, error) {
	configured, err := k.getConfiguredAssets(ctx)
	return len(configured), err
}

// IsBlocked reports whether price resolution is disabled for the asset.
func (k Keeper) IsBlocked(ctx context.Context, asset types.Asset) bool {
	return k.getStore(ctx).Has(types.GetBlockedKey(asset))
}

func (k Keeper) setBlocked(ctx context.Context, asset types.Asset, blocked bool) {
	store := k.getStore(ctx)
	if blocked {
		store.Set(types.GetBlockedKey(asset), []byte{1})
		return
	}
	store.Delete(types.GetBlockedKey(asset))
}

// GetBaseAssets returns the pegged assets in insertion order.
func (k Keeper) GetBaseAssets(ctx context.Context) ([]types.Asset, error) {
	assets := []types.Asset{}
	if _, err := getJSON(k.getStore(ctx), types.BaseAssetsKey, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (k Keeper) setBaseAssets(ctx context.Context, assets []types.Asset) error {
	canonical := make([]types.Asset, 0, len(assets))
	for _, asset := range assets {
		canonical = append(canonical, asset.Canonical())
	}
	return setJSON(k.getStore(ctx), types.BaseAssetsKey, canonical)
}

// IsPegged reports whether the asset quotes at par with the base asset, either because
// it is the base asset or because it was added as a pegged asset.
func (k Keeper) IsPegged(ctx context.Context, params types.Params, asset types.Asset) (bool, error) {
	if asset.Equal(params.Base) {
		return true, nil
	}
	pegged, err := k.GetBaseAssets(ctx)
	if err != nil {
		return false, err
	}
	return containsAsset(pegged, asset), nil
}

func containsAsset(assets []types.Asset, asset types.Asset) bool {
	for _, a := range assets {
		if a.Equal(asset) {
			return true
		}
	}
	return false
}

func removeAsset(assets []types.Asset, asset types.Asset) []types.Asset {
	out := make([]types.Asset, 0, len(assets))
	for _, a := range assets {
		if !a.Equal(asset) {
			out = append(out, a)
		}
	}
	return out
}
