// Package calculator holds the arbitrage detection core: route simulation,
// cost accounting, the profitability decision and the per-cycle scanner.
// Everything here is a deterministic computation over owned inputs, safe to
// call from any goroutine.
package calculator

import (
	"time"

	"github.com/arbscan/solana-arbscan/market"
	"github.com/shopspring/decimal"
)

type Callback interface {
	OnOpportunity(opp *Opportunity) error
}

// Opportunity is the decision artifact one evaluated route produces.
// Immutable, consumed by ranking/execution and then discarded.
type Opportunity struct {
	Id             uint64
	Route          market.Route
	AmountIn       uint64
	PerHopOutputs  []uint64
	GrossAmountOut uint64
	GrossProfit    uint64
	Costs          *CostBreakdown
	NetProfit      uint64
	NetProfitBps   uint64
	Profitable     bool
	Confidence     decimal.Decimal
	Timestamp      time.Time
}

func newId() uint64 {
	return uint64(time.Now().UnixNano() / time.Microsecond.Nanoseconds())
}
