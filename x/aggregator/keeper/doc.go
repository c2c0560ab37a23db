// Package keeper implements the Aggregator module keeper for normalized price feeds.
//
// The Aggregator module sits between consuming modules and a set of upstream
// price oracles. Oracles report in different decimal precisions, publish rounds at
// different resolutions and are not always fresh; the keeper hides this behind a
// single LastPrice read that returns a price in the aggregator's reporting decimals
// or nothing.
//
// # Core Functionality
//
// Resolution: LastPrice scans the oracle backwards from its last round, one
// resolution step at a time, for at most max age seconds. When the asset has a
// deviation bound, the candidate is compared with an older round found within
// max age / resolution further reads. The accepted candidate is rescaled to the
// reporting decimals and rejected if older than max age.
//
// Pegged Assets: the base asset and any pegged asset always quote one unit at
// the current block time without contacting an oracle.
//
// Registries: oracles are stored under stable indices that are never reused;
// assets carry a config, an optional blocked flag, or a pegged membership, and
// those sets never overlap.
//
// # Usage Patterns
//
// Reading a price:
//
//	price, err := keeper.LastPrice(ctx, types.SymbolAsset("BTC"))
//	if err == nil && price == nil {
//	    // no trusted price right now, retry later
//	}
//
// Registering an asset:
//
//	_, err := keeper.NewMsgServerImpl(k).AddAsset(ctx, types.NewMsgAddAsset(admin, asset, oracle, reference, 10))
//
// # Metrics
//
// Exposes Prometheus metrics for resolution outcomes, oracle reads and registry
// sizes via AggregatorMetrics. Each resolution also opens an OpenTelemetry span.
package keeper
