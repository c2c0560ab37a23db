package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

// RegisterInvariants registers all aggregator module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "registry-disjoint",
		RegistryDisjointInvariant(k))
	ir.RegisterRoute(types.ModuleName, "oracle-references",
		OracleReferencesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "registry-capacity",
		RegistryCapacityInvariant(k))
}

// AllInvariants runs all invariants of the aggregator module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := RegistryDisjointInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = OracleReferencesInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return RegistryCapacityInvariant(k)(ctx)
	}
}

func formatIssues(kind string, issues []string) string {
	if len(issues) == 0 {
		return ""
	}
	msg := fmt.Sprintf("%d %s:\n", len(issues), kind)
	for _, issue := range issues {
		msg += fmt.Sprintf("  - %s\n", issue)
	}
	return msg
}

// RegistryDisjointInvariant checks that the base asset, the pegged assets and the
// configured assets never overlap.
func RegistryDisjointInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var issues []string

		params, err := k.GetParams(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "registry-disjoint", ""), false
		}
		pegged, err := k.GetBaseAssets(ctx)
		if err != nil {
			issues = append(issues, fmt.Sprintf("error reading pegged assets: %v", err))
		}

		seen := make(map[string]struct{}, len(pegged))
		for _, asset := range pegged {
			key := string(asset.Key())
			if asset.Equal(params.Base) {
				issues = append(issues, fmt.Sprintf("base asset %s is pegged", asset))
			}
			if _, dup := seen[key]; dup {
				issues = append(issues, fmt.Sprintf("pegged asset %s listed twice", asset))
			}
			seen[key] = struct{}{}
		}

		err = k.IterateAssetConfigs(ctx, func(asset types.Asset, _ types.AssetConfig) bool {
			if asset.Equal(params.Base) {
				issues = append(issues, fmt.Sprintf("base asset %s is configured", asset))
			}
			if _, ok := seen[string(asset.Key())]; ok {
				issues = append(issues, fmt.Sprintf("asset %s is both pegged and configured", asset))
			}
			return false
		})
		if err != nil {
			issues = append(issues, fmt.Sprintf("error reading asset configs: %v", err))
		}

		return sdk.FormatInvariant(
			types.ModuleName, "registry-disjoint",
			formatIssues("overlapping assets", issues),
		), len(issues) > 0
	}
}

// OracleReferencesInvariant checks that every asset config points at a registered oracle
// and that no oracle holds an index at or past the next index.
func OracleReferencesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var issues []string

		next := k.NextOracleIndex(ctx)
		indices := make(map[uint32]struct{})
		err := k.IterateOracles(ctx, func(oracle types.OracleConfig) bool {
			if oracle.Index >= next {
				issues = append(issues, fmt.Sprintf("oracle %s index %d not below next index %d", oracle.Address, oracle.Index, next))
			}
			indices[oracle.Index] = struct{}{}
			return false
		})
		if err != nil {
			issues = append(issues, fmt.Sprintf("error reading oracles: %v", err))
		}

		err = k.IterateAssetConfigs(ctx, func(asset types.Asset, config types.AssetConfig) bool {
			if _, ok := indices[config.OracleIndex]; !ok {
				issues = append(issues, fmt.Sprintf("asset %s references missing oracle index %d", asset, config.OracleIndex))
			}
			return false
		})
		if err != nil {
			issues = append(issues, fmt.Sprintf("error reading asset configs: %v", err))
		}

		return sdk.FormatInvariant(
			types.ModuleName, "oracle-references",
			formatIssues("dangling oracle references", issues),
		), len(issues) > 0
	}
}

// RegistryCapacityInvariant checks the registry sizes against their capacities.
func RegistryCapacityInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var issues []string

		if n, err := k.OracleCount(ctx); err != nil {
			issues = append(issues, fmt.Sprintf("error counting oracles: %v", err))
		} else if n > types.MaxOracles {
			issues = append(issues, fmt.Sprintf("%d oracles exceed %d", n, types.MaxOracles))
		}
		if n, err := k.AssetCount(ctx); err != nil {
			issues = append(issues, fmt.Sprintf("error counting assets: %v", err))
		} else if n > types.MaxAssets {
			issues = append(issues, fmt.Sprintf("%d assets exceed %d", n, types.MaxAssets))
		}
		if pegged, err := k.GetBaseAssets(ctx); err != nil {
			issues = append(issues, fmt.Sprintf("error reading pegged assets: %v", err))
		} else if len(pegged) > types.MaxBaseAssets {
			issues = append(issues, fmt.Sprintf("%d pegged assets exceed %d", len(pegged), types.MaxBaseAssets))
		}

		return sdk.FormatInvariant(
			types.ModuleName, "registry-capacity",
			formatIssues("capacity violations", issues),
		), len(issues) > 0
	}
}
