package keeper_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"github.com/paw-chain/price-aggregator/x/shared/keeper"
)

func TestValidateAuthority(t *testing.T) {
	const (
		admin = "cosmos10d07y265gmmuvt4z0w9aw880jnsr700j6zn9kn"
		other = "cosmos1fl48vsnmsdzcv85q5d2q4z5ajdha8yu34mf0eh"
	)

	tests := []struct {
		name     string
		expected string
		actual   string
		wantErr  bool
	}{
		{
			name:     "valid authority match",
			expected: admin,
			actual:   admin,
		},
		{
			name:     "upper-case encoding of the same account",
			expected: admin,
			actual:   strings.ToUpper(admin),
		},
		{
			name:     "authority mismatch",
			expected: admin,
			actual:   other,
			wantErr:  true,
		},
		{
			name:     "empty expected authority",
			expected: "",
			actual:   admin,
			wantErr:  true,
		},
		{
			name:     "empty actual authority",
			expected: admin,
			actual:   "",
			wantErr:  true,
		},
		{
			name:     "both empty never match",
			expected: "",
			actual:   "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := keeper.ValidateAuthority(tt.expected, tt.actual)
			if tt.wantErr {
				require.ErrorIs(t, err, govtypes.ErrInvalidSigner)
				return
			}
			require.NoError(t, err)
		})
	}
}
