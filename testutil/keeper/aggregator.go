package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/price-aggregator/testutil/oracle"
	"github.com/paw-chain/price-aggregator/x/aggregator/keeper"
	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

// DefaultBlockTime is the block time of fresh test contexts. It is a multiple of
// every resolution the tests use.
const DefaultBlockTime int64 = 1441065600

// TestAddress derives a deterministic account address from a label.
func TestAddress(label string) string {
	addr := make([]byte, 20)
	copy(addr, label)
	return sdk.AccAddress(addr).String()
}

// TestAdmin is the admin of initialized test keepers.
var TestAdmin = TestAddress("admin")

// AggregatorKeeper creates an uninitialized aggregator keeper over an in-memory store.
// Metrics are disabled so tests do not share Prometheus state.
func AggregatorKeeper(t testing.TB) (*keeper.Keeper, *oracle.Router, sdk.Context) {
	cfg := types.DefaultAppConfig()
	cfg.MetricsEnabled = false
	return AggregatorKeeperWithConfig(t, cfg)
}

// AggregatorKeeperWithConfig is AggregatorKeeper with an explicit app config.
func AggregatorKeeperWithConfig(t testing.TB, cfg types.AppConfig) (*keeper.Keeper, *oracle.Router, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	router := oracle.NewRouter()
	k, err := keeper.NewKeeper(runtime.NewKVStoreService(storeKey), router, cfg)
	require.NoError(t, err)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: time.Unix(DefaultBlockTime, 0)}, false, log.NewNopLogger())
	return k, router, ctx
}

// InitializedAggregatorKeeper creates a keeper initialized with TestAdmin and params.
func InitializedAggregatorKeeper(t testing.TB, params types.Params) (*keeper.Keeper, *oracle.Router, sdk.Context) {
	k, router, ctx := AggregatorKeeper(t)
	require.NoError(t, k.Initialize(ctx, TestAdmin, params))
	return k, router, ctx
}

// WithBlockTime returns ctx moved to unix seconds ts.
func WithBlockTime(ctx sdk.Context, ts uint64) sdk.Context {
	return ctx.WithBlockTime(time.Unix(int64(ts), 0))
}
