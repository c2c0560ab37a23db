package types

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetKind tags the two variants of Asset.
type AssetKind string

const (
	// AssetKindAddress identifies an asset by an on-chain account address.
	AssetKindAddress AssetKind = "address"
	// AssetKindSymbol identifies an asset by an opaque ticker symbol.
	AssetKindSymbol AssetKind = "symbol"
)

const maxSymbolLength = 32

var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9_]{1,32}$`)

// Asset is a priceable thing: either an account address or a symbol.
// Two assets are equal when their canonical keys are equal.
type Asset struct {
	Kind  AssetKind `json:"kind"`
	Value string    `json:"value"`
}

// AddressAsset builds an address asset.
func AddressAsset(addr string) Asset {
	return Asset{Kind: AssetKindAddress, Value: strings.ToLower(addr)}
}

// SymbolAsset builds a symbol asset.
func SymbolAsset(symbol string) Asset {
	return Asset{Kind: AssetKindSymbol, Value: symbol}
}

// Canonical returns the asset in its stored form. Bech32 accepts an all upper-case
// encoding, so addresses are lower-cased; symbols are case sensitive.
func (a Asset) Canonical() Asset {
	if a.Kind == AssetKindAddress {
		a.Value = strings.ToLower(a.Value)
	}
	return a
}

// Key returns the canonical byte key used for every store and map operation.
func (a Asset) Key() []byte {
	var tag byte
	switch a.Kind {
	case AssetKindAddress:
		tag = 0x01
	case AssetKindSymbol:
		tag = 0x02
	}
	return append([]byte{tag}, a.Canonical().Value...)
}

// Equal reports whether both assets have the same canonical key.
func (a Asset) Equal(other Asset) bool {
	return bytes.Equal(a.Key(), other.Key())
}

// String implements fmt.Stringer
func (a Asset) String() string {
	return fmt.Sprintf("%s:%s", a.Kind, a.Value)
}

// Validate checks the variant tag and the value format.
func (a Asset) Validate() error {
	switch a.Kind {
	case AssetKindAddress:
		if _, err := sdk.AccAddressFromBech32(a.Value); err != nil {
			return ErrInvalidAsset.Wrapf("invalid address %q: %s", a.Value, err)
		}
	case AssetKindSymbol:
		if len(a.Value) > maxSymbolLength || !symbolRegex.MatchString(a.Value) {
			return ErrInvalidAsset.Wrapf("invalid symbol %q", a.Value)
		}
	default:
		return ErrInvalidAsset.Wrapf("unknown asset kind %q", a.Kind)
	}
	return nil
}
