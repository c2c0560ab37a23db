package types

import (
	"testing"

	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/price-aggregator/app/telemetry"
)

func TestAppConfigFromOptions(t *testing.T) {
	require.Equal(t, DefaultAppConfig(), AppConfigFromOptions(nil))

	v := viper.New()
	require.Equal(t, DefaultAppConfig(), AppConfigFromOptions(v))

	v.Set(FlagMetricsEnabled, "false")
	v.Set(FlagOracleCallGas, "2500")
	cfg := AppConfigFromOptions(v)
	require.False(t, cfg.MetricsEnabled)
	require.Equal(t, uint64(2500), cfg.OracleCallGas)
	require.False(t, cfg.Telemetry.Enabled)

	v.Set(telemetry.FlagEnabled, true)
	v.Set(telemetry.FlagEndpoint, "localhost:4318")
	v.Set(flags.FlagChainID, "paw-1")
	cfg = AppConfigFromOptions(v)
	require.True(t, cfg.Telemetry.Enabled)
	require.Equal(t, "localhost:4318", cfg.Telemetry.Endpoint)
	require.Equal(t, "paw-1", cfg.Telemetry.ChainID)
}
