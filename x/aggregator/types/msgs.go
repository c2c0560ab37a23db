package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgAddOracle    = "add_oracle"
	TypeMsgRemoveOracle = "remove_oracle"
	TypeMsgAddAsset     = "add_asset"
	TypeMsgAddBaseAsset = "add_base_asset"
	TypeMsgRemoveAsset  = "remove_asset"
	TypeMsgBlockAsset   = "block_asset"
	TypeMsgUnblockAsset = "unblock_asset"
	TypeMsgSetAdmin     = "set_admin"
)

// MsgServer is the admin surface of the aggregator. Every message is signed by Admin.
type MsgServer interface {
	AddOracle(context.Context, *MsgAddOracle) (*MsgAddOracleResponse, error)
	RemoveOracle(context.Context, *MsgRemoveOracle) (*MsgRemoveOracleResponse, error)
	AddAsset(context.Context, *MsgAddAsset) (*MsgAddAssetResponse, error)
	AddBaseAsset(context.Context, *MsgAddBaseAsset) (*MsgAddBaseAssetResponse, error)
	RemoveAsset(context.Context, *MsgRemoveAsset) (*MsgRemoveAssetResponse, error)
	BlockAsset(context.Context, *MsgBlockAsset) (*MsgBlockAssetResponse, error)
	UnblockAsset(context.Context, *MsgUnblockAsset) (*MsgUnblockAssetResponse, error)
	SetAdmin(context.Context, *MsgSetAdmin) (*MsgSetAdminResponse, error)
}

func validateAdmin(admin string) error {
	if _, err := sdk.AccAddressFromBech32(admin); err != nil {
		return ErrUnauthorized.Wrapf("invalid admin address: %s", err)
	}
	return nil
}

func adminSigners(admin string) []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(admin)
	return []sdk.AccAddress{addr}
}

// MsgAddOracle registers an upstream oracle.
type MsgAddOracle struct {
	Admin  string `json:"admin"`
	Oracle string `json:"oracle"`
}

// MsgAddOracleResponse carries the config stored for the new oracle.
type MsgAddOracleResponse struct {
	Config OracleConfig `json:"config"`
}

// NewMsgAddOracle creates a new MsgAddOracle instance
func NewMsgAddOracle(admin, oracle string) *MsgAddOracle {
	return &MsgAddOracle{Admin: admin, Oracle: oracle}
}

// Route implements the legacy msg interface
func (msg *MsgAddOracle) Route() string { return RouterKey }

// Type implements the legacy msg interface
func (msg *MsgAddOracle) Type() string { return TypeMsgAddOracle }

// GetSigners returns the admin; assumes the address is valid (validated in ValidateBasic)
func (msg *MsgAddOracle) GetSigners() []sdk.AccAddress { return adminSigners(msg.Admin) }

// ValidateBasic performs stateless checks
func (msg *MsgAddOracle) ValidateBasic() error {
	if err := validateAdmin(msg.Admin); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Oracle); err != nil {
		return ErrInvalidOracleConfig.Wrapf("invalid oracle address: %s", err)
	}
	return nil
}

// MsgRemoveOracle unregisters an oracle no asset references.
type MsgRemoveOracle struct {
	Admin  string `json:"admin"`
	Oracle string `json:"oracle"`
}

// MsgRemoveOracleResponse is empty
type MsgRemoveOracleResponse struct{}

// NewMsgRemoveOracle creates a new MsgRemoveOracle instance
func NewMsgRemoveOracle(admin, oracle string) *MsgRemoveOracle {
	return &MsgRemoveOracle{Admin: admin, Oracle: oracle}
}

func (msg *MsgRemoveOracle) Route() string { return RouterKey }

func (msg *MsgRemoveOracle) Type() string { return TypeMsgRemoveOracle }

func (msg *MsgRemoveOracle) GetSigners() []sdk.AccAddress { return adminSigners(msg.Admin) }

// ValidateBasic performs stateless checks
func (msg *MsgRemoveOracle) ValidateBasic() error {
	if err := validateAdmin(msg.Admin); err != nil {
		return err
	}
	if msg.Oracle == "" {
		return ErrOracleNotFound.Wrap("oracle address cannot be empty")
	}
	return nil
}

// MsgAddAsset configures an asset to be priced by a registered oracle under
// ReferenceAsset, rejecting moves larger than MaxDev percent between rounds.
type MsgAddAsset struct {
	Admin          string `json:"admin"`
	Asset          Asset  `json:"asset"`
	Oracle         string `json:"oracle"`
	ReferenceAsset Asset  `json:"reference_asset"`
	MaxDev         uint32 `json:"max_dev"`
}

// MsgAddAssetResponse returns the probed price in reporting decimals.
type MsgAddAssetResponse struct {
	Price PriceData `json:"price"`
}

// NewMsgAddAsset creates a new MsgAddAsset instance
func NewMsgAddAsset(admin string, asset Asset, oracle string, reference Asset, maxDev uint32) *MsgAddAsset {
	return &MsgAddAsset{
		Admin:          admin,
		Asset:          asset,
		Oracle:         oracle,
		ReferenceAsset: reference,
		MaxDev:         maxDev,
	}
}

func (msg *MsgAddAsset) Route() string { return RouterKey }

func (msg *MsgAddAsset) Type() string { return TypeMsgAddAsset }

func (msg *MsgAddAsset) GetSigners() []sdk.AccAddress { return adminSigners(msg.Admin) }

// ValidateBasic performs stateless checks
func (msg *MsgAddAsset) ValidateBasic() error {
	if err := validateAdmin(msg.Admin); err != nil {
		return err
	}
	if err := msg.Asset.Validate(); err != nil {
		return err
	}
	if msg.Oracle == "" {
		return ErrOracleNotFound.Wrap("oracle address cannot be empty")
	}
	return AssetConfig{Asset: msg.ReferenceAsset, MaxDev: msg.MaxDev}.Validate()
}

// MsgAddBaseAsset pegs an asset to the base asset.
type MsgAddBaseAsset struct {
	Admin string `json:"admin"`
	Asset Asset  `json:"asset"`
}

// MsgAddBaseAssetResponse is empty
type MsgAddBaseAssetResponse struct{}

// NewMsgAddBaseAsset creates a new MsgAddBaseAsset instance
func NewMsgAddBaseAsset(admin string, asset Asset) *MsgAddBaseAsset {
	return &MsgAddBaseAsset{Admin: admin, Asset: asset}
}

func (msg *MsgAddBaseAsset) Route() string { return RouterKey }

func (msg *MsgAddBaseAsset) Type() string { return TypeMsgAddBaseAsset }

func (msg *MsgAddBaseAsset) GetSigners() []sdk.AccAddress { return adminSigners(msg.Admin) }

// ValidateBasic performs stateless checks
func (msg *MsgAddBaseAsset) ValidateBasic() error {
	if err := validateAdmin(msg.Admin); err != nil {
		return err
	}
	return msg.Asset.Validate()
}

// MsgRemoveAsset drops an asset's config and blocked flag.
type MsgRemoveAsset struct {
	Admin string `json:"admin"`
	Asset Asset  `json:"asset"`
}

// MsgRemoveAssetResponse is empty
type MsgRemoveAssetResponse struct{}

// NewMsgRemoveAsset creates a new MsgRemoveAsset instance
func NewMsgRemoveAsset(admin string, asset Asset) *MsgRemoveAsset {
	return &MsgRemoveAsset{Admin: admin, Asset: asset}
}

func (msg *MsgRemoveAsset) Route() string { return RouterKey }

func (msg *MsgRemoveAsset) Type() string { return TypeMsgRemoveAsset }

func (msg *MsgRemoveAsset) GetSigners() []sdk.AccAddress { return adminSigners(msg.Admin) }

// ValidateBasic performs stateless checks
func (msg *MsgRemoveAsset) ValidateBasic() error {
	if err := validateAdmin(msg.Admin); err != nil {
		return err
	}
	return msg.Asset.Validate()
}

// MsgBlockAsset disables price resolution for a configured asset.
type MsgBlockAsset struct {
	Admin string `json:"admin"`
	Asset Asset  `json:"asset"`
}

// MsgBlockAssetResponse is empty
type MsgBlockAssetResponse struct{}

// NewMsgBlockAsset creates a new MsgBlockAsset instance
func NewMsgBlockAsset(admin string, asset Asset) *MsgBlockAsset {
	return &MsgBlockAsset{Admin: admin, Asset: asset}
}

func (msg *MsgBlockAsset) Route() string { return RouterKey }

func (msg *MsgBlockAsset) Type() string { return TypeMsgBlockAsset }

func (msg *MsgBlockAsset) GetSigners() []sdk.AccAddress { return adminSigners(msg.Admin) }

// ValidateBasic performs stateless checks
func (msg *MsgBlockAsset) ValidateBasic() error {
	if err := validateAdmin(msg.Admin); err != nil {
		return err
	}
	return msg.Asset.Validate()
}

// MsgUnblockAsset re-enables price resolution for a configured asset.
type MsgUnblockAsset struct {
	Admin string `json:"admin"`
	Asset Asset  `json:"asset"`
}

// MsgUnblockAssetResponse is empty
type MsgUnblockAssetResponse struct{}

// NewMsgUnblockAsset creates a new MsgUnblockAsset instance
func NewMsgUnblockAsset(admin string, asset Asset) *MsgUnblockAsset {
	return &MsgUnblockAsset{Admin: admin, Asset: asset}
}

func (msg *MsgUnblockAsset) Route() string { return RouterKey }

func (msg *MsgUnblockAsset) Type() string { return TypeMsgUnblockAsset }

func (msg *MsgUnblockAsset) GetSigners() []sdk.AccAddress { return adminSigners(msg.Admin) }

// ValidateBasic performs stateless checks
func (msg *MsgUnblockAsset) ValidateBasic() error {
	if err := validateAdmin(msg.Admin); err != nil {
		return err
	}
	return msg.Asset.Validate()
}

// MsgSetAdmin hands the admin role to NewAdmin.
type MsgSetAdmin struct {
	Admin    string `json:"admin"`
	NewAdmin string `json:"new_admin"`
}

// MsgSetAdminResponse is empty
type MsgSetAdminResponse struct{}

// NewMsgSetAdmin creates a new MsgSetAdmin instance
func NewMsgSetAdmin(admin, newAdmin string) *MsgSetAdmin {
	return &MsgSetAdmin{Admin: admin, NewAdmin: newAdmin}
}

func (msg *MsgSetAdmin) Route() string { return RouterKey }

func (msg *MsgSetAdmin) Type() string { return TypeMsgSetAdmin }

func (msg *MsgSetAdmin) GetSigners() []sdk.AccAddress { return adminSigners(msg.Admin) }

// ValidateBasic performs stateless checks
func (msg *MsgSetAdmin) ValidateBasic() error {
	if err := validateAdmin(msg.Admin); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewAdmin); err != nil {
		return ErrUnauthorized.Wrapf("invalid new admin address: %s", err)
	}
	return nil
}
