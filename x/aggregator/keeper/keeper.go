package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/metric"

	"github.com/paw-chain/price-aggregator/app/telemetry"
	"github.com/paw-chain/price-aggregator/x/aggregator/types"
	sharedkeeper "github.com/paw-chain/price-aggregator/x/shared/keeper"
)

var _ sharedkeeper.PriceFeedKeeperV1Extended = Keeper{}

// Keeper maintains the asset and oracle registries of the aggregator and resolves prices
// against the registered oracles.
type Keeper struct {
	storeService store.KVStoreService
	router       types.OracleRouter
	config       types.AppConfig
	metrics      *AggregatorMetrics
	telemetry    *telemetry.Provider
	oracleCalls  metric.Int64Counter
}

// NewKeeper creates a new Aggregator Keeper instance. It starts the telemetry provider
// described by config; the caller owns it and stops it with Shutdown.
func NewKeeper(
	storeService store.KVStoreService,
	router types.OracleRouter,
	config types.AppConfig,
) (*Keeper, error) {
	provider, err := telemetry.NewProvider(config.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to start aggregator telemetry: %w", err)
	}
	oracleCalls, err := provider.Meter().Int64Counter(
		"aggregator.oracle.calls",
		metric.WithDescription("Calls made to upstream oracles"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oracle call counter: %w", err)
	}

	k := &Keeper{
		storeService: storeService,
		router:       router,
		config:       config,
		telemetry:    provider,
		oracleCalls:  oracleCalls,
	}
	if config.MetricsEnabled {
		k.metrics = NewAggregatorMetrics()
	}
	return k, nil
}

// Shutdown flushes and stops the keeper's telemetry provider.
func (k Keeper) Shutdown(ctx context.Context) error {
	return k.telemetry.Shutdown(ctx)
}

// HealthCheck reports whether the configured telemetry pipeline is running.
func (k Keeper) HealthCheck() error {
	return k.telemetry.HealthCheck()
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// AppConfig returns the node-local configuration the keeper was built with.
func (k Keeper) AppConfig() types.AppConfig {
	return k.config
}

// getStore returns the module store
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return runtime.KVStoreAdapter(k.storeService.OpenKVStore(ctx))
}

// now returns the block time in unix seconds.
func now(ctx context.Context) uint64 {
	ts := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}
