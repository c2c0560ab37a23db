package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMsgs_ValidateBasic(t *testing.T) {
	admin := validAddress
	oracle := validAddress

	tests := []struct {
		name    string
		msg     interface{ ValidateBasic() error }
		wantErr error
	}{
		{"add oracle", NewMsgAddOracle(admin, oracle), nil},
		{"add oracle bad admin", NewMsgAddOracle("bad", oracle), ErrUnauthorized},
		{"add oracle bad address", NewMsgAddOracle(admin, "bad"), ErrInvalidOracleConfig},
		{"remove oracle", NewMsgRemoveOracle(admin, oracle), nil},
		{"remove oracle empty", NewMsgRemoveOracle(admin, ""), ErrOracleNotFound},
		{"add asset", NewMsgAddAsset(admin, SymbolAsset("BTC"), oracle, SymbolAsset("BTC"), 10), nil},
		{"add asset max dev 100", NewMsgAddAsset(admin, SymbolAsset("BTC"), oracle, SymbolAsset("BTC"), 100), nil},
		{"add asset max dev 101", NewMsgAddAsset(admin, SymbolAsset("BTC"), oracle, SymbolAsset("BTC"), 101), ErrInvalidMaxDev},
		{"add asset bad reference", NewMsgAddAsset(admin, SymbolAsset("BTC"), oracle, SymbolAsset(""), 0), ErrInvalidAsset},
		{"add asset bad asset", NewMsgAddAsset(admin, SymbolAsset("B-C"), oracle, SymbolAsset("BTC"), 0), ErrInvalidAsset},
		{"add base asset", NewMsgAddBaseAsset(admin, SymbolAsset("USDC")), nil},
		{"remove asset", NewMsgRemoveAsset(admin, SymbolAsset("BTC")), nil},
		{"block asset", NewMsgBlockAsset(admin, SymbolAsset("BTC")), nil},
		{"unblock asset bad admin", NewMsgUnblockAsset("", SymbolAsset("BTC")), ErrUnauthorized},
		{"set admin", NewMsgSetAdmin(admin, admin), nil},
		{"set admin bad new admin", NewMsgSetAdmin(admin, "x"), ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMsgs_Signers(t *testing.T) {
	msg := NewMsgSetAdmin(validAddress, validAddress)
	require.Len(t, msg.GetSigners(), 1)
	require.Equal(t, validAddress, msg.GetSigners()[0].String())
	require.Equal(t, RouterKey, msg.Route())
	require.Equal(t, TypeMsgSetAdmin, msg.Type())
}
