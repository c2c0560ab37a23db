package types

// Event types for the Aggregator module
// All event types use lowercase with underscore separator (module_action format)
const (
	EventTypeAddOracle     = "aggregator_add_oracle"
	EventTypeRemoveOracle  = "aggregator_remove_oracle"
	EventTypeAddAsset      = "aggregator_add_asset"
	EventTypeAddBaseAsset  = "aggregator_add_base_asset"
	EventTypeRemoveAsset   = "aggregator_remove_asset"
	EventTypeBlockAsset    = "aggregator_block_asset"
	EventTypeUnblockAsset  = "aggregator_unblock_asset"
	EventTypeSetAdmin      = "aggregator_set_admin"
	EventTypeAssetPromoted = "aggregator_asset_promoted"
)

// Event attribute keys for the Aggregator module
const (
	AttributeKeyAsset          = "asset"
	AttributeKeyReferenceAsset = "reference_asset"
	AttributeKeyOracle         = "oracle"
	AttributeKeyOracleIndex    = "oracle_index"
	AttributeKeyResolution     = "resolution"
	AttributeKeyDecimals       = "decimals"
	AttributeKeyMaxDev         = "max_dev"
	AttributeKeyPrice          = "price"
	AttributeKeyTimestamp      = "timestamp"
	AttributeKeyAdmin          = "admin"
	AttributeKeyPreviousAdmin  = "previous_admin"
)
