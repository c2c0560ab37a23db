package types

import (
	"github.com/spf13/cast"

	"github.com/cosmos/cosmos-sdk/client/flags"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"

	"github.com/paw-chain/price-aggregator/app/telemetry"
)

// App option keys read from app.toml under the [aggregator] section.
const (
	FlagMetricsEnabled = "aggregator.metrics-enabled"
	FlagOracleCallGas  = "aggregator.oracle-call-gas"
)

// DefaultOracleCallGas is charged for every call made to an upstream oracle.
const DefaultOracleCallGas uint64 = 1000

// AppConfig is the node-local configuration of the module. It never affects
// consensus except through OracleCallGas, which must match across validators.
type AppConfig struct {
	MetricsEnabled bool
	OracleCallGas  uint64
	Telemetry      telemetry.Config
}

// DefaultAppConfig returns the configuration used when app.toml is silent.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		MetricsEnabled: true,
		OracleCallGas:  DefaultOracleCallGas,
		Telemetry:      telemetry.ConfigFromAppOptions(nil, ""),
	}
}

// AppConfigFromOptions reads the module configuration from the node's app options,
// falling back to defaults for missing keys.
func AppConfigFromOptions(appOpts servertypes.AppOptions) AppConfig {
	cfg := DefaultAppConfig()
	if appOpts == nil {
		return cfg
	}

	if v := appOpts.Get(FlagMetricsEnabled); v != nil {
		cfg.MetricsEnabled = cast.ToBool(v)
	}
	if v := appOpts.Get(FlagOracleCallGas); v != nil {
		cfg.OracleCallGas = cast.ToUint64(v)
	}
	cfg.Telemetry = telemetry.ConfigFromAppOptions(appOpts, cast.ToString(appOpts.Get(flags.FlagChainID)))

	return cfg
}
