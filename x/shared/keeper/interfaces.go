// Package keeper provides shared keeper interfaces for cross-module communication.
// Versioned interfaces allow stable API contracts between modules.
package keeper

import (
	"context"

	aggregatortypes "github.com/paw-chain/price-aggregator/x/aggregator/types"
)

// =============================================================================
// Price Feed Keeper Interfaces (Versioned)
// =============================================================================

// PriceFeedKeeperV1 is the minimal interface a consuming module needs to read prices.
// Version 1.0 - Initial release
// Modules should depend on this interface rather than the concrete keeper.
type PriceFeedKeeperV1 interface {
	// LastPrice returns the latest trusted price of an asset in reporting decimals.
	// A nil price with a nil error means no price is available right now.
	LastPrice(ctx context.Context, asset aggregatortypes.Asset) (*aggregatortypes.PriceData, error)

	// Decimals returns the reporting precision of every price.
	Decimals(ctx context.Context) (uint32, error)

	// Base returns the asset every price is quoted in.
	Base(ctx context.Context) (aggregatortypes.Asset, error)
}

// PriceFeedKeeperV1Extended extends V1 with registry reads.
type PriceFeedKeeperV1Extended interface {
	PriceFeedKeeperV1

	// Assets lists every priceable asset, pegged assets first.
	Assets(ctx context.Context) ([]aggregatortypes.Asset, error)

	// MaxAge returns the staleness bound in seconds.
	MaxAge(ctx context.Context) (uint64, error)
}

// =============================================================================
// Version Constants
// =============================================================================

const (
	// PriceFeedKeeperVersion is the current price feed keeper interface version.
	PriceFeedKeeperVersion = "v1.0.0"
)

/*
API Versioning Guidelines:

1. MINOR VERSION BUMP (v1.0 -> v1.1):
   - Add new methods to Extended interfaces
   - Never remove or change existing method signatures

2. MAJOR VERSION BUMP (v1 -> v2):
   - Create new interface (e.g., PriceFeedKeeperV2)
   - Old interfaces remain for backwards compatibility

3. DEPRECATION:
   - Add "Deprecated: use XxxV2 instead" comment
   - Remove in next major version
*/
