package keeper

import (
	"context"

	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

// SetBaseAssets overwrites the pegged list without the admin checks.
func (k Keeper) SetBaseAssets(ctx context.Context, assets []types.Asset) error {
	return k.setBaseAssets(ctx, assets)
}

// SetOracle writes an oracle config without the admin checks.
func (k Keeper) SetOracle(ctx context.Context, oracle types.OracleConfig) error {
	return k.setOracle(ctx, oracle)
}
