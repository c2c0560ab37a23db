package keeper_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/price-aggregator/testutil/keeper"
	"github.com/paw-chain/price-aggregator/testutil/oracle"
	"github.com/paw-chain/price-aggregator/x/aggregator/keeper"
	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

func TestMetrics_RecordResolutionsAndAdminOps(t *testing.T) {
	cfg := types.DefaultAppConfig()
	require.True(t, cfg.MetricsEnabled)

	k, router, ctx := keepertest.AggregatorKeeperWithConfig(t, cfg)
	require.NoError(t, k.Initialize(ctx, keepertest.TestAdmin, defaultParams()))
	f := &fixture{k: k, ms: keeper.NewMsgServerImpl(*k), router: router, ctx: ctx, admin: keepertest.TestAdmin}

	m := keeper.GetAggregatorMetrics()
	// metric values are process wide, so compare deltas
	asset := types.SymbolAsset("METRICS_BTC")
	resolved := m.Resolutions.WithLabelValues(asset.String(), string(keeper.OutcomeResolved))
	noCandidate := m.Resolutions.WithLabelValues(asset.String(), string(keeper.OutcomeNoCandidate))
	addAssetOK := m.AdminOperations.WithLabelValues(types.TypeMsgAddAsset, "success")
	removeOracleFailed := m.AdminOperations.WithLabelValues(types.TypeMsgRemoveOracle, "failure")

	resolvedBefore := testutil.ToFloat64(resolved)
	noCandidateBefore := testutil.ToFloat64(noCandidate)
	addAssetBefore := testutil.ToFloat64(addAssetOK)
	removeOracleBefore := testutil.ToFloat64(removeOracleFailed)

	mock, addr := f.addOracle(t, "metrics-oracle", 7, 300)
	mock.SetPrice(asset, now, 1_000_000)
	f.addAsset(t, asset, addr, 0)
	require.NotNil(t, f.lastPrice(t, asset))

	f.at(now + maxAge + 1)
	require.Nil(t, f.lastPrice(t, asset))

	_, err := f.ms.RemoveOracle(f.ctx, types.NewMsgRemoveOracle(f.admin, addr))
	require.ErrorIs(t, err, types.ErrOracleInUse)

	// the add-asset probe and the first read both resolve
	require.Equal(t, resolvedBefore+2, testutil.ToFloat64(resolved))
	require.Equal(t, noCandidateBefore+1, testutil.ToFloat64(noCandidate))
	require.Equal(t, addAssetBefore+1, testutil.ToFloat64(addAssetOK))
	require.Equal(t, removeOracleBefore+1, testutil.ToFloat64(removeOracleFailed))
	require.Equal(t, float64(1_000_000), testutil.ToFloat64(m.ResolvedPrice.WithLabelValues(asset.String())))
	require.GreaterOrEqual(t, testutil.ToFloat64(m.AssetsTracked), float64(1))
}

func TestNewKeeper_Telemetry(t *testing.T) {
	k, _, ctx := keepertest.AggregatorKeeper(t)
	require.NoError(t, k.HealthCheck())
	require.NoError(t, k.Shutdown(ctx))

	cfg := types.DefaultAppConfig()
	cfg.Telemetry.Enabled = true
	_, err := keeper.NewKeeper(nil, oracle.NewRouter(), cfg)
	require.ErrorContains(t, err, "otlp endpoint is required")
}
