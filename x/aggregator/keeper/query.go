package keeper

import (
	"context"

	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

// AssetConfig returns the config of asset, or nil when it is not configured.
func (k Keeper) AssetConfig(ctx context.Context, asset types.Asset) (*types.AssetConfig, error) {
	config, found, err := k.GetAssetConfig(ctx, asset)
	if err != nil || !found {
		return nil, err
	}
	return &config, nil
}

// AssetConfigs returns every configured asset with its config and blocked flag, in key order.
func (k Keeper) AssetConfigs(ctx context.Context) ([]types.AssetEntry, error) {
	return k.GetAllAssetEntries(ctx)
}

// Assets lists every priceable asset: pegged assets in insertion order, then configured
// assets in the order they were added. The base asset is not listed.
func (k Keeper) Assets(ctx context.Context) ([]types.Asset, error) {
	assets, err := k.GetBaseAssets(ctx)
	if err != nil {
		return nil, err
	}
	err = k.IterateAssetConfigs(ctx, func(asset types.Asset, _ types.AssetConfig) bool {
		assets = append(assets, asset)
		return false
	})
	return assets, err
}

// MaxAge returns the staleness bound in seconds.
func (k Keeper) MaxAge(ctx context.Context) (uint64, error) {
	params, err := k.GetParams(ctx)
	return params.MaxAge, err
}

// Base returns the asset every price is quoted in.
func (k Keeper) Base(ctx context.Context) (types.Asset, error) {
	params, err := k.GetParams(ctx)
	return params.Base, err
}

// Decimals returns the reporting precision.
func (k Keeper) Decimals(ctx context.Context) (uint32, error) {
	params, err := k.GetParams(ctx)
	return params.Decimals, err
}

// Oracles returns the oracle registry in index order.
func (k Keeper) Oracles(ctx context.Context) ([]types.OracleConfig, error) {
	return k.GetAllOracles(ctx)
}

// Admin returns the current admin address.
func (k Keeper) Admin(ctx context.Context) (string, error) {
	if !k.IsInitialized(ctx) {
		return "", types.ErrUnauthorized.Wrap("aggregator not initialized")
	}
	return k.GetAdmin(ctx), nil
}

// Price is the historical read of the SEP-40 price feed interface. The aggregator only
// serves the latest price.
func (k Keeper) Price(_ context.Context, asset types.Asset, timestamp uint64) (*types.PriceData, error) {
	return nil, types.ErrNotImplemented.Wrapf("price of %s at %d", asset, timestamp)
}

// Prices is the historical range read of the SEP-40 price feed interface.
func (k Keeper) Prices(_ context.Context, asset types.Asset, records uint32) ([]types.PriceData, error) {
	return nil, types.ErrNotImplemented.Wrapf("last %d prices of %s", records, asset)
}
