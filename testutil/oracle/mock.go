// Package oracle provides a scripted in-memory price oracle for aggregator tests.
package oracle

import (
	"context"
	"errors"

	"cosmossdk.io/math"

	"github.com/paw-chain/price-aggregator/x/aggregator/types"
)

// ErrUnreachable is returned by every call once Fail is set.
var ErrUnreachable = errors.New("oracle unreachable")

// Mock is an OracleClient serving scripted rounds. It counts price reads so tests
// can assert how many rounds a resolution touched.
type Mock struct {
	decimals      uint32
	resolution    uint32
	lastTimestamp uint64
	rounds        map[string]map[uint64]types.PriceData

	priceReads int
	calls      int
	fail       bool
}

var _ types.OracleClient = (*Mock)(nil)

// NewMock creates an oracle reporting with decimals precision every resolution seconds.
func NewMock(decimals, resolution uint32) *Mock {
	return &Mock{
		decimals:   decimals,
		resolution: resolution,
		rounds:     make(map[string]map[uint64]types.PriceData),
	}
}

// SetPrice publishes a round for asset at ts. The last round timestamp moves forward
// when ts is newer.
func (m *Mock) SetPrice(asset types.Asset, ts uint64, price int64) {
	m.SetPriceInt(asset, ts, math.NewInt(price))
}

// SetPriceInt is SetPrice for prices beyond int64.
func (m *Mock) SetPriceInt(asset types.Asset, ts uint64, price math.Int) {
	m.SetRound(asset, ts, types.NewPriceData(price, ts))
	if ts > m.lastTimestamp {
		m.lastTimestamp = ts
	}
}

// SetRound serves data when asset is requested at ts, whatever timestamp data carries.
// It does not move the last round timestamp.
func (m *Mock) SetRound(asset types.Asset, ts uint64, data types.PriceData) {
	key := string(asset.Key())
	if m.rounds[key] == nil {
		m.rounds[key] = make(map[uint64]types.PriceData)
	}
	m.rounds[key][ts] = data
}

// SetLastTimestamp overrides the last round timestamp, e.g. to model empty rounds.
func (m *Mock) SetLastTimestamp(ts uint64) {
	m.lastTimestamp = ts
}

// Fail makes every subsequent call return ErrUnreachable.
func (m *Mock) Fail(fail bool) {
	m.fail = fail
}

// PriceReads returns the number of Price calls since the last reset.
func (m *Mock) PriceReads() int {
	return m.priceReads
}

// Calls returns the number of calls of any kind since the last reset.
func (m *Mock) Calls() int {
	return m.calls
}

// ResetCounters zeroes the read and call counters.
func (m *Mock) ResetCounters() {
	m.priceReads = 0
	m.calls = 0
}

func (m *Mock) LastTimestamp(context.Context) (uint64, error) {
	m.calls++
	if m.fail {
		return 0, ErrUnreachable
	}
	return m.lastTimestamp, nil
}

func (m *Mock) Price(_ context.Context, asset types.Asset, ts uint64) (*types.PriceData, error) {
	m.calls++
	m.priceReads++
	if m.fail {
		return nil, ErrUnreachable
	}
	round, ok := m.rounds[string(asset.Key())][ts]
	if !ok {
		return nil, nil
	}
	return &round, nil
}

func (m *Mock) Decimals(context.Context) (uint32, error) {
	m.calls++
	if m.fail {
		return 0, ErrUnreachable
	}
	return m.decimals, nil
}

func (m *Mock) Resolution(context.Context) (uint32, error) {
	m.calls++
	if m.fail {
		return 0, ErrUnreachable
	}
	return m.resolution, nil
}

// Router maps oracle addresses to clients.
type Router struct {
	oracles map[string]types.OracleClient
}

var _ types.OracleRouter = (*Router)(nil)

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{oracles: make(map[string]types.OracleClient)}
}

// Register routes address to client.
func (r *Router) Register(address string, client types.OracleClient) {
	r.oracles[address] = client
}

// Unregister drops the route for address.
func (r *Router) Unregister(address string) {
	delete(r.oracles, address)
}

// Oracle implements types.OracleRouter.
func (r *Router) Oracle(_ context.Context, address string) (types.OracleClient, bool) {
	client, ok := r.oracles[address]
	return client, ok
}
