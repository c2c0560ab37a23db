package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/price-aggregator/x/aggregator/types"
	sharedkeeper "github.com/paw-chain/price-aggregator/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// authorize runs the stateless checks and compares the signer with the stored admin.
// Every handler calls it before touching state.
func (ms msgServer) authorize(ctx context.Context, msg interface{ ValidateBasic() error }, signer string) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	if !ms.IsInitialized(ctx) {
		return types.ErrUnauthorized.Wrap("aggregator not initialized")
	}
	if err := sharedkeeper.ValidateAuthority(ms.GetAdmin(ctx), signer); err != nil {
		return errorsmod.Wrap(types.ErrUnauthorized, err.Error())
	}
	return nil
}

// AddOracle probes an oracle for its precision and resolution and registers it
// under the next unused index.
func (ms msgServer) AddOracle(goCtx context.Context, msg *types.MsgAddOracle) (_ *types.MsgAddOracleResponse, err error) {
	defer func() { ms.recordAdminOp(goCtx, types.TypeMsgAddOracle, err) }()

	if err := ms.authorize(goCtx, msg, msg.Admin); err != nil {
		return nil, err
	}

	_, exists, err := ms.GetOracleByAddress(goCtx, msg.Oracle)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, types.ErrOracleExists.Wrap(msg.Oracle)
	}
	count, err := ms.OracleCount(goCtx)
	if err != nil {
		return nil, err
	}
	if count >= types.MaxOracles {
		return nil, types.ErrMaxOraclesExceeded.Wrapf("registry holds %d oracles", count)
	}

	client, ok := ms.router.Oracle(goCtx, msg.Oracle)
	if !ok {
		return nil, types.ErrOracleNotFound.Wrapf("no route to oracle %s", msg.Oracle)
	}
	m := &meteredOracle{
		client:  client,
		address: msg.Oracle,
		gas:     ms.config.OracleCallGas,
		metrics: ms.metrics,
		calls:   ms.oracleCalls,
	}

	m.charge(goCtx, "decimals")
	decimals, err := client.Decimals(goCtx)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "oracle %s decimals", msg.Oracle)
	}
	m.charge(goCtx, "resolution")
	resolution, err := client.Resolution(goCtx)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "oracle %s resolution", msg.Oracle)
	}

	oracle := types.OracleConfig{
		Address:    msg.Oracle,
		Index:      ms.NextOracleIndex(goCtx),
		Resolution: resolution,
		Decimals:   decimals,
	}
	if err := oracle.Validate(); err != nil {
		return nil, err
	}

	if err := ms.setOracle(goCtx, oracle); err != nil {
		return nil, err
	}
	ms.setNextOracleIndex(goCtx, oracle.Index+1)

	ctx := sdk.UnwrapSDKContext(goCtx)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddOracle,
			sdk.NewAttribute(types.AttributeKeyOracle, oracle.Address),
			sdk.NewAttribute(types.AttributeKeyOracleIndex, fmt.Sprintf("%d", oracle.Index)),
			sdk.NewAttribute(types.AttributeKeyResolution, fmt.Sprintf("%d", oracle.Resolution)),
			sdk.NewAttribute(types.AttributeKeyDecimals, fmt.Sprintf("%d", oracle.Decimals)),
		),
	)
	ms.Logger(goCtx).Info("oracle added",
		"oracle", oracle.Address,
		"index", oracle.Index,
		"resolution", oracle.Resolution,
		"decimals", oracle.Decimals,
	)

	return &types.MsgAddOracleResponse{Config: oracle}, nil
}

// RemoveOracle unregisters an oracle. Its index is retired, never reassigned.
func (ms msgServer) RemoveOracle(goCtx context.Context, msg *types.MsgRemoveOracle) (_ *types.MsgRemoveOracleResponse, err error) {
	defer func() { ms.recordAdminOp(goCtx, types.TypeMsgRemoveOracle, err) }()

	if err := ms.authorize(goCtx, msg, msg.Admin); err != nil {
		return nil, err
	}

	oracle, found, err := ms.GetOracleByAddress(goCtx, msg.Oracle)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.ErrOracleNotFound.Wrap(msg.Oracle)
	}

	var referencedBy *types.Asset
	err = ms.IterateAssetConfigs(goCtx, func(asset types.Asset, config types.AssetConfig) bool {
		if config.OracleIndex == oracle.Index {
			referencedBy = &asset
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	if referencedBy != nil {
		return nil, types.WrapWithRecovery(types.ErrOracleInUse, "oracle %s is used by %s", oracle.Address, referencedBy)
	}

	ms.deleteOracle(goCtx, oracle.Index)

	ctx := sdk.UnwrapSDKContext(goCtx)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemoveOracle,
			sdk.NewAttribute(types.AttributeKeyOracle, oracle.Address),
			sdk.NewAttribute(types.AttributeKeyOracleIndex, fmt.Sprintf("%d", oracle.Index)),
		),
	)
	ms.Logger(goCtx).Info("oracle removed", "oracle", oracle.Address, "index", oracle.Index)

	return &types.MsgRemoveOracleResponse{}, nil
}

// AddAsset configures an asset after probing the oracle for a usable price. A pegged
// asset is promoted: it leaves the pegged list in the same call.
func (ms msgServer) AddAsset(goCtx context.Context, msg *types.MsgAddAsset) (_ *types.MsgAddAssetResponse, err error) {
	defer func() { ms.recordAdminOp(goCtx, types.TypeMsgAddAsset, err) }()

	if err := ms.authorize(goCtx, msg, msg.Admin); err != nil {
		return nil, err
	}
	params, err := ms.GetParams(goCtx)
	if err != nil {
		return nil, err
	}

	if msg.Asset.Equal(params.Base) || ms.HasAssetConfig(goCtx, msg.Asset) {
		return nil, types.ErrAssetExists.Wrap(msg.Asset.String())
	}
	count, err := ms.AssetCount(goCtx)
	if err != nil {
		return nil, err
	}
	if count >= types.MaxAssets {
		return nil, types.ErrMaxAssetsExceeded.Wrapf("registry holds %d assets", count)
	}

	oracle, found, err := ms.GetOracleByAddress(goCtx, msg.Oracle)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.ErrOracleNotFound.Wrap(msg.Oracle)
	}

	config := types.AssetConfig{
		Asset:       msg.ReferenceAsset,
		OracleIndex: oracle.Index,
		MaxDev:      msg.MaxDev,
	}
	res, err := ms.resolve(goCtx, params, msg.Asset, config, oracle, resolveProbe)
	if err != nil {
		return nil, err
	}
	if res.Outcome != OutcomeResolved {
		return nil, types.WrapWithRecovery(types.ErrInvalidAssetOracle,
			"probe of %s on oracle %s ended with %s", msg.ReferenceAsset, oracle.Address, res.Outcome)
	}

	pegged, err := ms.GetBaseAssets(goCtx)
	if err != nil {
		return nil, err
	}
	promoted := containsAsset(pegged, msg.Asset)

	if err := ms.setAssetConfig(goCtx, msg.Asset, config); err != nil {
		return nil, err
	}
	if promoted {
		if err := ms.setBaseAssets(goCtx, removeAsset(pegged, msg.Asset)); err != nil {
			return nil, err
		}
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddAsset,
			sdk.NewAttribute(types.AttributeKeyAsset, msg.Asset.String()),
			sdk.NewAttribute(types.AttributeKeyReferenceAsset, msg.ReferenceAsset.String()),
			sdk.NewAttribute(types.AttributeKeyOracle, oracle.Address),
			sdk.NewAttribute(types.AttributeKeyMaxDev, fmt.Sprintf("%d", msg.MaxDev)),
			sdk.NewAttribute(types.AttributeKeyPrice, res.Price.Price.String()),
			sdk.NewAttribute(types.AttributeKeyTimestamp, fmt.Sprintf("%d", res.Price.Timestamp)),
		),
	)
	if promoted {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAssetPromoted,
				sdk.NewAttribute(types.AttributeKeyAsset, msg.Asset.String()),
			),
		)
	}
	ms.Logger(goCtx).Info("asset added",
		"asset", msg.Asset.String(),
		"oracle", oracle.Address,
		"max_dev", msg.MaxDev,
		"promoted", promoted,
		"price", res.Price.String(),
	)

	return &types.MsgAddAssetResponse{Price: *res.Price}, nil
}

// AddBaseAsset pegs an asset to the base asset.
func (ms msgServer) AddBaseAsset(goCtx context.Context, msg *types.MsgAddBaseAsset) (_ *types.MsgAddBaseAssetResponse, err error) {
	defer func() { ms.recordAdminOp(goCtx, types.TypeMsgAddBaseAsset, err) }()

	if err := ms.authorize(goCtx, msg, msg.Admin); err != nil {
		return nil, err
	}
	params, err := ms.GetParams(goCtx)
	if err != nil {
		return nil, err
	}

	pegged, err := ms.GetBaseAssets(goCtx)
	if err != nil {
		return nil, err
	}
	if msg.Asset.Equal(params.Base) || containsAsset(pegged, msg.Asset) || ms.HasAssetConfig(goCtx, msg.Asset) {
		return nil, types.ErrAssetExists.Wrap(msg.Asset.String())
	}
	if len(pegged) >= types.MaxBaseAssets {
		return nil, types.ErrMaxAssetsExceeded.Wrapf("%d pegged assets", len(pegged))
	}

	if err := ms.setBaseAssets(goCtx, append(pegged, msg.Asset.Canonical())); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(goCtx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddBaseAsset,
			sdk.NewAttribute(types.AttributeKeyAsset, msg.Asset.String()),
		),
	)
	ms.Logger(goCtx).Info("pegged asset added", "asset", msg.Asset.String())

	return &types.MsgAddBaseAssetResponse{}, nil
}

// RemoveAsset drops a configured asset together with its blocked flag.
func (ms msgServer) RemoveAsset(goCtx context.Context, msg *types.MsgRemoveAsset) (_ *types.MsgRemoveAssetResponse, err error) {
	defer func() { ms.recordAdminOp(goCtx, types.TypeMsgRemoveAsset, err) }()

	if err := ms.authorize(goCtx, msg, msg.Admin); err != nil {
		return nil, err
	}
	if !ms.HasAssetConfig(goCtx, msg.Asset) {
		return nil, types.ErrAssetNotFound.Wrap(msg.Asset.String())
	}

	if err := ms.deleteAsset(goCtx, msg.Asset); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(goCtx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemoveAsset,
			sdk.NewAttribute(types.AttributeKeyAsset, msg.Asset.String()),
		),
	)
	ms.Logger(goCtx).Info("asset removed", "asset", msg.Asset.String())

	return &types.MsgRemoveAssetResponse{}, nil
}

// BlockAsset disables price resolution for a configured asset. Blocking twice is a no-op.
func (ms msgServer) BlockAsset(goCtx context.Context, msg *types.MsgBlockAsset) (_ *types.MsgBlockAssetResponse, err error) {
	defer func() { ms.recordAdminOp(goCtx, types.TypeMsgBlockAsset, err) }()

	if err := ms.setBlockedFlag(goCtx, msg, msg.Admin, msg.Asset, true); err != nil {
		return nil, err
	}
	return &types.MsgBlockAssetResponse{}, nil
}

// UnblockAsset re-enables price resolution. Unblocking an unblocked asset is a no-op.
func (ms msgServer) UnblockAsset(goCtx context.Context, msg *types.MsgUnblockAsset) (_ *types.MsgUnblockAssetResponse, err error) {
	defer func() { ms.recordAdminOp(goCtx, types.TypeMsgUnblockAsset, err) }()

	if err := ms.setBlockedFlag(goCtx, msg, msg.Admin, msg.Asset, false); err != nil {
		return nil, err
	}
	return &types.MsgUnblockAssetResponse{}, nil
}

func (ms msgServer) setBlockedFlag(
	goCtx context.Context,
	msg interface{ ValidateBasic() error },
	signer string,
	asset types.Asset,
	blocked bool,
) error {
	if err := ms.authorize(goCtx, msg, signer); err != nil {
		return err
	}
	if !ms.HasAssetConfig(goCtx, asset) {
		return types.ErrAssetNotFound.Wrap(asset.String())
	}

	ms.setBlocked(goCtx, asset, blocked)

	eventType := types.EventTypeUnblockAsset
	if blocked {
		eventType = types.EventTypeBlockAsset
	}
	sdk.UnwrapSDKContext(goCtx).EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyAsset, asset.String()),
		),
	)
	ms.Logger(goCtx).Info("asset blocked flag set", "asset", asset.String(), "blocked", blocked)

	return nil
}

// SetAdmin hands the admin role to another account.
func (ms msgServer) SetAdmin(goCtx context.Context, msg *types.MsgSetAdmin) (_ *types.MsgSetAdminResponse, err error) {
	defer func() { ms.recordAdminOp(goCtx, types.TypeMsgSetAdmin, err) }()

	if err := ms.authorize(goCtx, msg, msg.Admin); err != nil {
		return nil, err
	}

	previous := ms.GetAdmin(goCtx)
	ms.setAdmin(goCtx, msg.NewAdmin)

	sdk.UnwrapSDKContext(goCtx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSetAdmin,
			sdk.NewAttribute(types.AttributeKeyPreviousAdmin, previous),
			sdk.NewAttribute(types.AttributeKeyAdmin, msg.NewAdmin),
		),
	)
	ms.Logger(goCtx).Info("admin changed", "previous", previous, "admin", msg.NewAdmin)

	return &types.MsgSetAdminResponse{}, nil
}

// recordAdminOp logs rejected operations with their recovery hint and updates the
// admin counters and the registry gauges.
func (k Keeper) recordAdminOp(ctx context.Context, operation string, err error) {
	if err != nil {
		k.Logger(ctx).Info("admin operation rejected",
			"operation", operation,
			"error", err,
			"recovery", types.GetRecoverySuggestion(err),
		)
	}
	if k.metrics == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "failure"
	}
	k.metrics.AdminOperations.With(map[string]string{"operation": operation, "result": result}).Inc()
	if err != nil {
		return
	}

	if n, err := k.OracleCount(ctx); err == nil {
		k.metrics.OraclesTracked.Set(float64(n))
	}
	if n, err := k.AssetCount(ctx); err == nil {
		k.metrics.AssetsTracked.Set(float64(n))
	}
	if pegged, err := k.GetBaseAssets(ctx); err == nil {
		k.metrics.PeggedTracked.Set(float64(len(pegged)))
	}
}
