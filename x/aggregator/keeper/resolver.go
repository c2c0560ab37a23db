package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/paw-chain/price-aggregator/app/telemetry"
	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

// Outcome classifies how a resolution attempt ended.
type Outcome string

const (
	// OutcomeResolved means a fresh, trusted price was produced.
	OutcomeResolved Outcome = "resolved"
	// OutcomeNoCandidate means no round inside the max age window had a price.
	OutcomeNoCandidate Outcome = "no_candidate"
	// OutcomeNoReference means no older round was found to verify the deviation against.
	OutcomeNoReference Outcome = "no_reference"
	// OutcomeDeviationExceeded means the candidate moved more than max dev from the older round.
	OutcomeDeviationExceeded Outcome = "deviation_exceeded"
	// OutcomeStale means the candidate is older than max age.
	OutcomeStale Outcome = "stale"
)

// Resolution is the result of one resolution attempt. Price is set only when the
// outcome is OutcomeResolved.
type Resolution struct {
	Outcome   Outcome
	Candidate *types.PriceData
	Reference *types.PriceData
	Price     *types.PriceData
	Reads     int
}

type resolveMode int

const (
	// resolveStrict rejects a candidate whose deviation cannot be verified.
	resolveStrict resolveMode = iota
	// resolveProbe accepts a lone candidate when no older round exists yet, so that
	// an asset can be registered against a freshly started feed.
	resolveProbe
)

// meteredOracle charges gas for every oracle call and counts price reads.
type meteredOracle struct {
	client  types.OracleClient
	address string
	gas     uint64
	metrics *AggregatorMetrics
	calls   metric.Int64Counter
	reads   int
}

func (o *meteredOracle) charge(ctx context.Context, call string) {
	sdk.UnwrapSDKContext(ctx).GasMeter().ConsumeGas(o.gas, fmt.Sprintf("aggregator oracle %s", call))
	o.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("oracle", o.address),
		attribute.String("call", call),
	))
	if o.metrics != nil {
		o.metrics.OracleReads.With(map[string]string{"oracle": o.address, "call": call}).Inc()
	}
}

func (o *meteredOracle) LastTimestamp(ctx context.Context) (uint64, error) {
	o.charge(ctx, "last_timestamp")
	ts, err := o.client.LastTimestamp(ctx)
	if err != nil {
		return 0, errorsmod.Wrapf(err, "oracle %s last timestamp", o.address)
	}
	return ts, nil
}

func (o *meteredOracle) Price(ctx context.Context, asset types.Asset, ts uint64) (*types.PriceData, error) {
	o.charge(ctx, "price")
	o.reads++
	price, err := o.client.Price(ctx, asset, ts)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "oracle %s price of %s at %d", o.address, asset, ts)
	}
	return price, nil
}

// LastPrice returns the latest trusted price of asset in reporting decimals. A nil
// price with a nil error means no price is available right now.
func (k Keeper) LastPrice(ctx context.Context, asset types.Asset) (*types.PriceData, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	pegged, err := k.IsPegged(ctx, params, asset)
	if err != nil {
		return nil, err
	}
	if pegged {
		price := params.PeggedPrice(now(ctx))
		return &price, nil
	}

	config, found, err := k.GetAssetConfig(ctx, asset)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.ErrAssetNotFound.Wrap(asset.String())
	}
	if k.IsBlocked(ctx, asset) {
		return nil, types.ErrAssetBlocked.Wrap(asset.String())
	}

	oracle, found, err := k.GetOracle(ctx, config.OracleIndex)
	if err != nil {
		return nil, err
	}
	if !found {
		k.Logger(ctx).Error("asset references unknown oracle",
			"asset", asset.String(),
			"oracle_index", config.OracleIndex,
		)
		return nil, types.ErrOracleNotFound.Wrapf("asset %s references oracle index %d", asset, config.OracleIndex)
	}

	res, err := k.resolve(ctx, params, asset, config, oracle, resolveStrict)
	if err != nil {
		return nil, err
	}
	return res.Price, nil
}

// resolve runs the bounded backward scan, the deviation check and the staleness gate
// for one configured asset.
func (k Keeper) resolve(
	ctx context.Context,
	params types.Params,
	asset types.Asset,
	config types.AssetConfig,
	oracle types.OracleConfig,
	mode resolveMode,
) (res Resolution, err error) {
	_, span := k.telemetry.StartModuleSpan(ctx, types.ModuleName, "resolve")
	telemetry.AddSpanAttributes(span,
		attribute.String("asset", asset.String()),
		attribute.String("oracle", oracle.Address),
	)
	defer func() {
		telemetry.AddSpanAttributes(span,
			attribute.String("outcome", string(res.Outcome)),
			attribute.Int("reads", res.Reads),
		)
		if err != nil {
			telemetry.RecordError(span, err)
		} else {
			telemetry.SetSpanStatus(span, true, string(res.Outcome))
		}
		span.End()
		k.recordResolution(ctx, asset, res)
	}()

	client, ok := k.router.Oracle(ctx, oracle.Address)
	if !ok {
		return res, types.ErrOracleNotFound.Wrapf("no route to oracle %s", oracle.Address)
	}
	m := &meteredOracle{
		client:  client,
		address: oracle.Address,
		gas:     k.config.OracleCallGas,
		metrics: k.metrics,
		calls:   k.oracleCalls,
	}
	defer func() { res.Reads = m.reads }()

	resolution := uint64(oracle.Resolution)
	current := now(ctx)
	oldest := uint64(0)
	if current > params.MaxAge {
		oldest = current - params.MaxAge
	}

	ts, err := m.LastTimestamp(ctx)
	if err != nil {
		return res, err
	}

	for ts >= oldest {
		price, err := m.Price(ctx, config.Asset, ts)
		if err != nil {
			return res, err
		}
		if price != nil {
			res.Candidate = price
			break
		}
		if ts < resolution {
			break
		}
		ts -= resolution
	}
	if res.Candidate == nil {
		res.Outcome = OutcomeNoCandidate
		return res, nil
	}

	if config.DeviationCheckEnabled() {
		older, err := k.findReference(ctx, m, config.Asset, res.Candidate.Timestamp, params.MaxAge/resolution, resolution)
		if err != nil {
			return res, err
		}
		res.Reference = older

		switch {
		case older == nil && mode == resolveStrict:
			res.Outcome = OutcomeNoReference
			return res, nil
		case older != nil && exceedsDeviation(*res.Candidate, *older, config.MaxDev):
			res.Outcome = OutcomeDeviationExceeded
			return res, nil
		}
	}

	normalized, err := res.Candidate.Normalize(oracle.Decimals, params.Decimals)
	if err != nil {
		return res, errorsmod.Wrapf(err, "normalizing %s from oracle %s", asset, oracle.Address)
	}
	if normalized.Timestamp < oldest {
		res.Outcome = OutcomeStale
		return res, nil
	}

	res.Outcome = OutcomeResolved
	res.Price = &normalized
	return res, nil
}

// findReference scans at most steps rounds backwards, starting one round before the
// candidate, for an older price.
func (k Keeper) findReference(
	ctx context.Context,
	m *meteredOracle,
	asset types.Asset,
	candidateTs uint64,
	steps uint64,
	resolution uint64,
) (*types.PriceData, error) {
	if candidateTs < resolution {
		return nil, nil
	}
	ts := candidateTs - resolution
	for i := uint64(0); i < steps; i++ {
		price, err := m.Price(ctx, asset, ts)
		if err != nil {
			return nil, err
		}
		if price != nil {
			return price, nil
		}
		if ts < resolution {
			break
		}
		ts -= resolution
	}
	return nil, nil
}

// exceedsDeviation compares both prices in oracle decimals: the move is rejected when
// |candidate - older| > older * maxDev / 100.
func exceedsDeviation(candidate, older types.PriceData, maxDev uint32) bool {
	delta := candidate.Price.Sub(older.Price).Abs()
	bound := older.Price.MulRaw(int64(maxDev)).QuoRaw(100)
	return delta.GT(bound)
}

func (k Keeper) recordResolution(ctx context.Context, asset types.Asset, res Resolution) {
	if res.Outcome == "" {
		return
	}

	k.Logger(ctx).Debug("price resolution",
		"asset", asset.String(),
		"outcome", string(res.Outcome),
		"reads", res.Reads,
	)

	if k.metrics == nil {
		return
	}
	k.metrics.Resolutions.With(map[string]string{"asset": asset.String(), "outcome": string(res.Outcome)}).Inc()
	k.metrics.ReadsPerResolve.Observe(float64(res.Reads))
	if res.Price != nil {
		f, _ := res.Price.Price.ToLegacyDec().Float64()
		k.metrics.ResolvedPrice.With(map[string]string{"asset": asset.String()}).Set(f)
		k.metrics.PriceAge.With(map[string]string{"asset": asset.String()}).Set(float64(now(ctx)) - float64(res.Price.Timestamp))
	}
}
