package types

import (
	"fmt"
)

// Max age bounds, in seconds.
const (
	MinMaxAge uint64 = 360
	MaxMaxAge uint64 = 3600
)

// Params are set once at genesis and never change afterwards.
type Params struct {
	Base     Asset  `json:"base"`
	Decimals uint32 `json:"decimals"`
	MaxAge   uint64 `json:"max_age"`
}

// NewParams creates Params
func NewParams(base Asset, decimals uint32, maxAge uint64) Params {
	return Params{Base: base, Decimals: decimals, MaxAge: maxAge}
}

// DefaultParams returns default aggregator parameters
func DefaultParams() Params {
	return Params{
		Base:     SymbolAsset("USD"),
		Decimals: 7,   // stellar-style 7 decimal fixed point
		MaxAge:   900, // 15 minutes
	}
}

// Validate checks the params
func (p Params) Validate() error {
	if err := p.Base.Validate(); err != nil {
		return fmt.Errorf("base asset: %w", err)
	}
	if p.Decimals > MaxDecimals {
		return ErrInvalidDecimals.Wrapf("%d exceeds %d", p.Decimals, MaxDecimals)
	}
	if p.MaxAge < MinMaxAge || p.MaxAge > MaxMaxAge {
		return ErrInvalidMaxAge.Wrapf("%d not in [%d, %d]", p.MaxAge, MinMaxAge, MaxMaxAge)
	}
	return nil
}

// PeggedPrice returns the price every pegged asset quotes: one unit at the reporting decimals.
func (p Params) PeggedPrice(now uint64) PriceData {
	return PriceData{Price: Pow10(p.Decimals), Timestamp: now}
}
