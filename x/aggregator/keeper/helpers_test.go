package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/price-aggregator/testutil/keeper"
	"github.com/paw-chain/price-aggregator/testutil/oracle"
	"github.com/paw-chain/price-aggregator/x/aggregator/keeper"
	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

const (
	now       = uint64(keepertest.DefaultBlockTime)
	maxAge    = uint64(900)
	reporting = uint32(7)
)

var (
	usd = types.SymbolAsset("USD")
	btc = types.SymbolAsset("BTC")
	eth = types.SymbolAsset("ETH")
	eur = types.SymbolAsset("EUR")
)

type fixture struct {
	k      *keeper.Keeper
	ms     types.MsgServer
	router *oracle.Router
	ctx    sdk.Context
	admin  string
}

func defaultParams() types.Params {
	return types.NewParams(usd, reporting, maxAge)
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithParams(t, defaultParams())
}

func newFixtureWithParams(t *testing.T, params types.Params) *fixture {
	k, router, ctx := keepertest.InitializedAggregatorKeeper(t, params)
	return &fixture{
		k:      k,
		ms:     keeper.NewMsgServerImpl(*k),
		router: router,
		ctx:    ctx,
		admin:  keepertest.TestAdmin,
	}
}

// addOracle routes a mock oracle under label and registers it.
func (f *fixture) addOracle(t *testing.T, label string, decimals, resolution uint32) (*oracle.Mock, string) {
	t.Helper()
	mock := oracle.NewMock(decimals, resolution)
	address := keepertest.TestAddress(label)
	f.router.Register(address, mock)

	_, err := f.ms.AddOracle(f.ctx, types.NewMsgAddOracle(f.admin, address))
	require.NoError(t, err)
	return mock, address
}

// addAsset configures asset against itself on the oracle.
func (f *fixture) addAsset(t *testing.T, asset types.Asset, oracleAddr string, maxDev uint32) types.PriceData {
	t.Helper()
	res, err := f.ms.AddAsset(f.ctx, types.NewMsgAddAsset(f.admin, asset, oracleAddr, asset, maxDev))
	require.NoError(t, err)
	return res.Price
}

func (f *fixture) at(ts uint64) {
	f.ctx = keepertest.WithBlockTime(f.ctx, ts)
}

func (f *fixture) lastPrice(t *testing.T, asset types.Asset) *types.PriceData {
	t.Helper()
	price, err := f.k.LastPrice(f.ctx, asset)
	require.NoError(t, err)
	return price
}

func keeperMsgServer(k *keeper.Keeper) types.MsgServer {
	return keeper.NewMsgServerImpl(*k)
}
