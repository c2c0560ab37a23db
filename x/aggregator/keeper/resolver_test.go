package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/price-aggregator/testutil/oracle"
	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

func TestLastPrice_BaseAndPeggedAssets(t *testing.T) {
	f := newFixture(t)
	mock, _ := f.addOracle(t, "oracle", 14, 300)
	mock.ResetCounters()

	price := f.lastPrice(t, usd)
	require.NotNil(t, price)
	require.Equal(t, "10000000", price.Price.String())
	require.Equal(t, now, price.Timestamp)

	_, err := f.ms.AddBaseAsset(f.ctx, types.NewMsgAddBaseAsset(f.admin, eur))
	require.NoError(t, err)

	f.at(now + 12345)
	price = f.lastPrice(t, eur)
	require.NotNil(t, price)
	require.Equal(t, "10000000", price.Price.String())
	require.Equal(t, now+12345, price.Timestamp)

	require.Zero(t, mock.Calls(), "pegged assets never contact an oracle")
}

func TestLastPrice_UnknownAsset(t *testing.T) {
	f := newFixture(t)

	_, err := f.k.LastPrice(f.ctx, btc)
	require.ErrorIs(t, err, types.ErrAssetNotFound)
}

func TestLastPrice_NormalizesToReportingDecimals(t *testing.T) {
	f := newFixture(t)
	mock, addr := f.addOracle(t, "oracle14", 14, 300)
	mock.SetPrice(btc, now, 15_000_000_000_000_000)

	probed := f.addAsset(t, btc, addr, 0)
	require.Equal(t, "1500000000", probed.Price.String())
	require.Equal(t, now, probed.Timestamp)

	price := f.lastPrice(t, btc)
	require.NotNil(t, price)
	require.Equal(t, "1500000000", price.Price.String())
	require.Equal(t, now, price.Timestamp)
}

func TestLastPrice_ScansBackOverEmptyRounds(t *testing.T) {
	f := newFixture(t)
	mock, addr := f.addOracle(t, "oracle", 7, 300)
	mock.SetPrice(btc, now-600, 1_000_000)
	mock.SetLastTimestamp(now)
	f.addAsset(t, btc, addr, 0)

	mock.ResetCounters()
	price := f.lastPrice(t, btc)
	require.NotNil(t, price)
	require.Equal(t, now-600, price.Timestamp)
	require.Equal(t, 3, mock.PriceReads())
}

func TestLastPrice_NoCandidateWithinMaxAge(t *testing.T) {
	f := newFixture(t)
	mock, addr := f.addOracle(t, "oracle", 7, 300)
	mock.SetPrice(btc, now, 1_000_000)
	f.addAsset(t, btc, addr, 0)

	f.at(now + 1200)
	mock.SetLastTimestamp(now + 1200)
	mock.ResetCounters()

	require.Nil(t, f.lastPrice(t, btc))
	require.Equal(t, int(maxAge/300)+1, mock.PriceReads(), "scan stops at the max age window")
}

func TestLastPrice_StalenessBoundary(t *testing.T) {
	f := newFixture(t)
	mock, addr := f.addOracle(t, "oracle", 7, 300)
	mock.SetPrice(btc, now, 1_000_000)
	f.addAsset(t, btc, addr, 0)

	f.at(now + maxAge)
	price := f.lastPrice(t, btc)
	require.NotNil(t, price, "a price exactly max age old is accepted")
	require.Equal(t, now, price.Timestamp)

	f.at(now + maxAge + 1)
	require.Nil(t, f.lastPrice(t, btc), "one second older is rejected")
}

func TestLastPrice_RejectsStaleRound(t *testing.T) {
	f := newFixture(t)
	mock, addr := f.addOracle(t, "oracle", 7, 300)
	mock.SetPrice(btc, now, 1_000_000)
	f.addAsset(t, btc, addr, 0)

	// The oracle answers the round at now+600 with an observation older than max age.
	f.at(now + 600)
	mock.SetRound(btc, now+600, types.NewPriceData(math.NewInt(1_000_000), now-400))
	mock.SetLastTimestamp(now + 600)

	require.Nil(t, f.lastPrice(t, btc))
}

func TestLastPrice_Deviation(t *testing.T) {
	tests := []struct {
		name      string
		candidate int64
		want      string
	}{
		{"9.5 percent up accepted", 2_300_000_000, "23000000"},
		{"exactly 10 percent down accepted", 1_890_000_000, "18900000"},
		{"10.5 percent up rejected", 2_320_000_000, ""},
		{"10.5 percent down rejected", 1_880_000_000, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			mock, addr := f.addOracle(t, "oracle9", 9, 300)
			mock.SetPrice(btc, now-300, 2_100_000_000)

			probed := f.addAsset(t, btc, addr, 10)
			require.Equal(t, "21000000", probed.Price.String())

			mock.SetPrice(btc, now, tt.candidate)
			price := f.lastPrice(t, btc)
			if tt.want == "" {
				require.Nil(t, price)
				return
			}
			require.NotNil(t, price)
			require.Equal(t, tt.want, price.Price.String())
			require.Equal(t, now, price.Timestamp)
		})
	}
}

func TestLastPrice_DeviationReferenceWindow(t *testing.T) {
	tests := []struct {
		name     string
		olderAt  uint64
		resolved bool
	}{
		{"reference three rounds back", now - 900, true},
		{"reference four rounds back", now - 1200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			mock, addr := f.addOracle(t, "oracle9", 9, 300)
			mock.SetPrice(btc, tt.olderAt, 2_100_000_000)

			f.at(now - 300)
			f.addAsset(t, btc, addr, 10)

			f.at(now)
			mock.SetPrice(btc, now, 2_200_000_000)
			mock.ResetCounters()

			price := f.lastPrice(t, btc)
			require.Equal(t, tt.resolved, price != nil)
			require.Equal(t, 1+int(maxAge/300), mock.PriceReads())
		})
	}
}

func TestLastPrice_RetryCostScalesWithResolution(t *testing.T) {
	for _, maxDev := range []uint32{0, 10} {
		f := newFixture(t)
		fine, fineAddr := f.addOracle(t, "fine", 7, 300)
		coarse, coarseAddr := f.addOracle(t, "coarse", 7, 600)
		fine.SetPrice(btc, now, 1_000_000)
		coarse.SetPrice(eth, now, 1_000_000)
		f.addAsset(t, btc, fineAddr, maxDev)
		f.addAsset(t, eth, coarseAddr, maxDev)

		later := now + 3000
		f.at(later)
		if maxDev == 0 {
			// empty rounds only: the candidate scan exhausts
			fine.SetLastTimestamp(later)
			coarse.SetLastTimestamp(later)
		} else {
			// a fresh candidate without any reference round
			fine.SetPrice(btc, later, 1_000_000)
			coarse.SetPrice(eth, later, 1_000_000)
		}
		fine.ResetCounters()
		coarse.ResetCounters()

		require.Nil(t, f.lastPrice(t, btc))
		require.Nil(t, f.lastPrice(t, eth))

		require.Equal(t, 1+int(maxAge/300), fine.PriceReads(), "max dev %d", maxDev)
		require.Equal(t, 1+int(maxAge/600), coarse.PriceReads(), "max dev %d", maxDev)
		require.Less(t, coarse.PriceReads(), fine.PriceReads())
	}
}

func TestLastPrice_BlockedAsset(t *testing.T) {
	f := newFixture(t)
	mock, addr := f.addOracle(t, "oracle", 7, 300)
	mock.SetPrice(btc, now, 1_000_000)
	f.addAsset(t, btc, addr, 0)

	_, err := f.ms.BlockAsset(f.ctx, types.NewMsgBlockAsset(f.admin, btc))
	require.NoError(t, err)
	_, err = f.ms.BlockAsset(f.ctx, types.NewMsgBlockAsset(f.admin, btc))
	require.NoError(t, err, "blocking twice is a no-op")
	require.True(t, f.k.IsBlocked(f.ctx, btc))

	mock.ResetCounters()
	_, err = f.k.LastPrice(f.ctx, btc)
	require.ErrorIs(t, err, types.ErrAssetBlocked)
	require.Zero(t, mock.Calls())

	_, err = f.ms.UnblockAsset(f.ctx, types.NewMsgUnblockAsset(f.admin, btc))
	require.NoError(t, err)
	_, err = f.ms.UnblockAsset(f.ctx, types.NewMsgUnblockAsset(f.admin, btc))
	require.NoError(t, err)
	require.False(t, f.k.IsBlocked(f.ctx, btc))
	require.NotNil(t, f.lastPrice(t, btc))
}

func TestLastPrice_OracleFailures(t *testing.T) {
	f := newFixture(t)
	mock, addr := f.addOracle(t, "oracle", 7, 300)
	mock.SetPrice(btc, now, 1_000_000)
	f.addAsset(t, btc, addr, 0)

	mock.Fail(true)
	_, err := f.k.LastPrice(f.ctx, btc)
	require.ErrorIs(t, err, oracle.ErrUnreachable)

	mock.Fail(false)
	f.router.Unregister(addr)
	_, err = f.k.LastPrice(f.ctx, btc)
	require.ErrorIs(t, err, types.ErrOracleNotFound)
}

func TestLastPrice_ChargesGasPerOracleCall(t *testing.T) {
	f := newFixture(t)
	mock, addr := f.addOracle(t, "oracle", 7, 300)
	mock.SetPrice(btc, now-600, 1_000_000)
	mock.SetLastTimestamp(now)
	f.addAsset(t, btc, addr, 0)

	f.ctx = f.ctx.WithGasMeter(storetypes.NewGasMeter(10_000_000))
	mock.ResetCounters()
	require.NotNil(t, f.lastPrice(t, btc))

	minGas := uint64(mock.Calls()) * types.DefaultOracleCallGas
	require.Equal(t, 4, mock.Calls())
	require.GreaterOrEqual(t, f.ctx.GasMeter().GasConsumed(), minGas)
}

func TestLastPrice_OutOfGasAborts(t *testing.T) {
	f := newFixture(t)
	mock, addr := f.addOracle(t, "oracle", 7, 300)
	mock.SetPrice(btc, now, 1_000_000)
	f.addAsset(t, btc, addr, 0)

	f.ctx = f.ctx.WithGasMeter(storetypes.NewGasMeter(types.DefaultOracleCallGas))
	require.Panics(t, func() {
		_, _ = f.k.LastPrice(f.ctx, btc)
	})
}

func TestLegacyHistoryReadsNotImplemented(t *testing.T) {
	f := newFixture(t)

	_, err := f.k.Price(f.ctx, btc, now)
	require.ErrorIs(t, err, types.ErrNotImplemented)
	_, err = f.k.Prices(f.ctx, btc, 5)
	require.ErrorIs(t, err, types.ErrNotImplemented)
}
