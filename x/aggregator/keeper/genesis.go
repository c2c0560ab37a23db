package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

// Initialize writes the immutable params and the first admin. It fails once the
// aggregator holds params.
func (k Keeper) Initialize(ctx context.Context, admin string, params types.Params) error {
	if k.IsInitialized(ctx) {
		return types.ErrAlreadyInitialized
	}
	if _, err := sdk.AccAddressFromBech32(admin); err != nil {
		return types.ErrUnauthorized.Wrapf("invalid admin address: %s", err)
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if err := k.setParams(ctx, params); err != nil {
		return err
	}
	k.setAdmin(ctx, admin)
	if err := k.setBaseAssets(ctx, []types.Asset{}); err != nil {
		return err
	}

	k.Logger(ctx).Info("aggregator initialized",
		"admin", admin,
		"base", params.Base.String(),
		"decimals", params.Decimals,
		"max_age", params.MaxAge,
	)
	return nil
}

// InitGenesis initializes the module's state from a provided genesis state.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}
	if err := k.Initialize(ctx, genState.Admin, genState.Params); err != nil {
		return err
	}

	for _, oracle := range genState.Oracles {
		if err := k.setOracle(ctx, oracle); err != nil {
			return fmt.Errorf("failed to set oracle %s: %w", oracle.Address, err)
		}
	}
	k.setNextOracleIndex(ctx, genState.NextOracleIndex)

	for _, entry := range genState.Assets {
		if err := k.setAssetConfig(ctx, entry.Asset, entry.Config); err != nil {
			return fmt.Errorf("failed to set asset %s: %w", entry.Asset, err)
		}
		k.setBlocked(ctx, entry.Asset, entry.Blocked)
	}

	if err := k.setBaseAssets(ctx, genState.BaseAssets); err != nil {
		return err
	}

	k.Logger(ctx).Info("aggregator genesis initialized",
		"oracles", len(genState.Oracles),
		"assets", len(genState.Assets),
		"pegged", len(genState.BaseAssets),
	)
	return nil
}

// ExportGenesis returns the module's exported genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	oracles, err := k.GetAllOracles(ctx)
	if err != nil {
		return nil, err
	}
	assets, err := k.GetAllAssetEntries(ctx)
	if err != nil {
		return nil, err
	}
	pegged, err := k.GetBaseAssets(ctx)
	if err != nil {
		return nil, err
	}

	return &types.GenesisState{
		Params:          params,
		Admin:           k.GetAdmin(ctx),
		Oracles:         oracles,
		NextOracleIndex: k.NextOracleIndex(ctx),
		Assets:          assets,
		BaseAssets:      pegged,
	}, nil
}
