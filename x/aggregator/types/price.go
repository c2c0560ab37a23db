package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// MaxDecimals bounds any decimal precision so that 10^decimals fits a signed 128-bit integer.
const MaxDecimals = 38

// maxPriceBits is the magnitude limit of a signed 128-bit price.
const maxPriceBits = 127

// PriceData is one timestamped price observation.
type PriceData struct {
	Price     math.Int `json:"price"`
	Timestamp uint64   `json:"timestamp"`
}

// NewPriceData creates a price observation.
func NewPriceData(price math.Int, timestamp uint64) PriceData {
	return PriceData{Price: price, Timestamp: timestamp}
}

// String implements fmt.Stringer
func (p PriceData) String() string {
	return fmt.Sprintf("%s@%d", p.Price, p.Timestamp)
}

// Normalize rescales the price between decimal precisions and keeps the timestamp.
func (p PriceData) Normalize(fromDecimals, toDecimals uint32) (PriceData, error) {
	price, err := Normalize(p.Price, fromDecimals, toDecimals)
	if err != nil {
		return PriceData{}, err
	}
	return PriceData{Price: price, Timestamp: p.Timestamp}, nil
}

// Pow10 returns 10^exp.
func Pow10(exp uint32) math.Int {
	return math.NewIntWithDecimal(1, int(exp))
}

// FitsInt128 reports whether v is representable as a signed 128-bit integer.
func FitsInt128(v math.Int) bool {
	return v.BigInt().BitLen() <= maxPriceBits
}

// Normalize rescales a fixed-point price from one decimal precision to another.
// Downscaling truncates toward zero. A result outside the signed 128-bit range
// returns ErrPriceOverflow.
func Normalize(price math.Int, fromDecimals, toDecimals uint32) (math.Int, error) {
	if fromDecimals > MaxDecimals || toDecimals > MaxDecimals {
		return math.Int{}, ErrInvalidDecimals.Wrapf("cannot rescale %d -> %d decimals", fromDecimals, toDecimals)
	}
	if !FitsInt128(price) {
		return math.Int{}, ErrPriceOverflow.Wrapf("input price %s", price)
	}

	switch {
	case fromDecimals > toDecimals:
		return price.Quo(Pow10(fromDecimals - toDecimals)), nil
	case fromDecimals < toDecimals:
		scaled, err := price.SafeMul(Pow10(toDecimals - fromDecimals))
		if err != nil || !FitsInt128(scaled) {
			return math.Int{}, ErrPriceOverflow.Wrapf("%s scaled by 10^%d", price, toDecimals-fromDecimals)
		}
		return scaled, nil
	default:
		return price, nil
	}
}
