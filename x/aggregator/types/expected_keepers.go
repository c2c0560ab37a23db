package types

import (
	"context"
)

// OracleClient is the read-only view of one upstream price oracle. Price returns
// nil with a nil error for an empty round; an error means the oracle could not be
// reached or answered garbage.
type OracleClient interface {
	LastTimestamp(ctx context.Context) (uint64, error)
	Price(ctx context.Context, asset Asset, timestamp uint64) (*PriceData, error)
	Decimals(ctx context.Context) (uint32, error)
	Resolution(ctx context.Context) (uint32, error)
}

// OracleRouter resolves a registered oracle address to a client able to call it.
type OracleRouter interface {
	Oracle(ctx context.Context, address string) (OracleClient, bool)
}
