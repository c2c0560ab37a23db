// Package keeper provides shared keeper interfaces and utilities for cross-module communication.
package keeper

import (
	"bytes"

	sdk "github.com/cosmos/cosmos-sdk/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
)

// ValidateAuthority checks that the signer of a message is the stored authority.
// Addresses are compared on their decoded bytes when both parse as bech32, so an
// upper-case encoding of the same account is accepted. An empty expected authority
// never matches: an unset admin cannot be claimed by an empty signer.
//
// Usage example:
//
//	if err := keeper.ValidateAuthority(admin, msg.Admin); err != nil {
//	    return nil, err
//	}
func ValidateAuthority(expected, actual string) error {
	if expected == "" {
		return govtypes.ErrInvalidSigner.Wrap("no authority configured")
	}

	if expected == actual {
		return nil
	}

	expectedAddr, errExpected := sdk.AccAddressFromBech32(expected)
	actualAddr, errActual := sdk.AccAddressFromBech32(actual)
	if errExpected == nil && errActual == nil && bytes.Equal(expectedAddr, actualAddr) {
		return nil
	}

	return govtypes.ErrInvalidSigner.Wrapf(
		"invalid authority; expected %s, got %s",
		expected,
		actual,
	)
}
