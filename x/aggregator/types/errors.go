package types

import (
	"errors"

	sdkerrors "cosmossdk.io/errors"
)

// Aggregator module sentinel errors. Codes 100-109 keep the numbering consumers of the
// price feed already match on.
var (
	// Interface errors
	ErrNotImplemented = sdkerrors.Register(ModuleName, 100, "not implemented")

	// Asset registry errors
	ErrInvalidAssetOracle = sdkerrors.Register(ModuleName, 101, "asset oracle did not produce a price")
	ErrMaxAssetsExceeded  = sdkerrors.Register(ModuleName, 102, "max assets exceeded")
	ErrAssetExists        = sdkerrors.Register(ModuleName, 103, "asset already exists")
	ErrAssetNotFound      = sdkerrors.Register(ModuleName, 104, "asset not found")
	ErrAssetBlocked       = sdkerrors.Register(ModuleName, 109, "asset is blocked")

	// Parameter errors
	ErrInvalidMaxAge = sdkerrors.Register(ModuleName, 105, "invalid max age")

	// Oracle registry errors
	ErrOracleExists       = sdkerrors.Register(ModuleName, 106, "oracle already exists")
	ErrOracleNotFound     = sdkerrors.Register(ModuleName, 107, "oracle not found")
	ErrMaxOraclesExceeded = sdkerrors.Register(ModuleName, 108, "max oracles exceeded")

	// Arithmetic errors
	ErrPriceOverflow = sdkerrors.Register(ModuleName, 110, "price overflows 128 bits")

	ErrOracleInUse         = sdkerrors.Register(ModuleName, 111, "oracle is referenced by an asset")
	ErrInvalidOracleConfig = sdkerrors.Register(ModuleName, 112, "invalid oracle config")
	ErrInvalidMaxDev       = sdkerrors.Register(ModuleName, 113, "invalid max deviation")
	ErrInvalidAsset        = sdkerrors.Register(ModuleName, 114, "invalid asset")
	ErrInvalidDecimals     = sdkerrors.Register(ModuleName, 115, "invalid decimals")
	ErrUnauthorized        = sdkerrors.Register(ModuleName, 116, "unauthorized")
	ErrAlreadyInitialized  = sdkerrors.Register(ModuleName, 117, "already initialized")
)

// ErrorWithRecovery wraps an error with recovery suggestions
type ErrorWithRecovery struct {
	Err      error
	Recovery string
}

func (e *ErrorWithRecovery) Error() string {
	return e.Err.Error()
}

func (e *ErrorWithRecovery) Unwrap() error {
	return e.Err
}

// RecoverySuggestions provides actionable recovery steps for each error type
var RecoverySuggestions = map[error]string{
	ErrNotImplemented:      "Historical price reads are not served by the aggregator. Use LastPrice for the current quote.",
	ErrInvalidAssetOracle:  "The oracle returned no usable price for the reference asset. Check the reference asset symbol on the oracle and retry once the oracle has published a fresh round.",
	ErrMaxAssetsExceeded:   "The registry is full. Remove an unused asset before adding another.",
	ErrAssetExists:         "The asset is already configured, pegged, or is the base asset. Query Assets to see the current registry.",
	ErrAssetNotFound:       "The asset is not registered. Query Assets for the supported list or ask the admin to add it.",
	ErrAssetBlocked:        "The asset was disabled by the admin. Prices resume once it is unblocked.",
	ErrInvalidMaxAge:       "Max age must be between 360 and 3600 seconds. Fix the genesis params.",
	ErrOracleExists:        "The oracle address is already registered. Query Oracles to see its index.",
	ErrOracleNotFound:      "The oracle address is not registered or not reachable through the router. Register it with AddOracle first.",
	ErrMaxOraclesExceeded:  "The oracle registry is full. Remove an oracle that no asset references.",
	ErrPriceOverflow:       "CRITICAL: Rescaling the oracle price does not fit 128 bits. Review the oracle decimals against the reporting decimals.",
	ErrOracleInUse:         "Remove or re-point every asset that uses this oracle before removing it.",
	ErrInvalidOracleConfig: "The oracle reported a zero resolution or more than 38 decimals. It cannot be registered.",
	ErrInvalidMaxDev:       "Max deviation is a percentage between 0 and 100. Use 0 to disable the deviation check.",
	ErrInvalidAsset:        "Addresses must be bech32 and symbols 1-32 characters of letters, digits or underscore.",
	ErrInvalidDecimals:     "Reporting decimals must not exceed 38.",
	ErrUnauthorized:        "Only the current admin may change the registries. Sign with the admin key.",
	ErrAlreadyInitialized:  "The aggregator state was already initialized. Params are immutable after genesis.",
}

// WrapWithRecovery wraps an error with recovery suggestion
func WrapWithRecovery(err error, msg string, args ...interface{}) error {
	wrapped := sdkerrors.Wrapf(err, msg, args...)

	if suggestion, ok := RecoverySuggestions[err]; ok {
		return &ErrorWithRecovery{
			Err:      wrapped,
			Recovery: suggestion,
		}
	}

	return wrapped
}

// GetRecoverySuggestion returns the recovery suggestion for an error
func GetRecoverySuggestion(err error) string {
	for sentinel, suggestion := range RecoverySuggestions {
		if errors.Is(err, sentinel) {
			return suggestion
		}
	}

	return "No recovery suggestion available. Check error message for details. Query the aggregator registries."
}
