package calculator

import (
	"errors"
	"math/big"
)

// ErrZeroAmount flags a zero-amount trade reaching the profitability formula.
// Upstream never constructs one, so seeing this is a programming defect, not
// a market condition.
var ErrZeroAmount = errors.New("calculator: amount in is zero")

// Verdict is the single decision gate the whole system exists to compute.
type Verdict struct {
	GrossProfit  uint64
	NetProfit    uint64
	NetProfitBps uint64
	Profitable   bool
}

// AssessProfitability nets the route output against all costs. Losses
// saturate at zero, they never wrap. The minimum profit boundary is
// inclusive: a route landing exactly on minProfitBps is profitable.
func AssessProfitability(amountIn, grossAmountOut uint64, costs *CostBreakdown, minProfitBps uint64) (*Verdict, error) {
	if amountIn == 0 {
		return nil, ErrZeroAmount
	}
	verdict := &Verdict{}
	if grossAmountOut > amountIn {
		verdict.GrossProfit = grossAmountOut - amountIn
	}
	if verdict.GrossProfit > costs.TotalCost {
		verdict.NetProfit = verdict.GrossProfit - costs.TotalCost
	}
	bps := new(big.Int).Div(
		new(big.Int).Mul(
			new(big.Int).SetUint64(verdict.NetProfit),
			new(big.Int).SetUint64(10000),
		),
		new(big.Int).SetUint64(amountIn),
	)
	verdict.NetProfitBps = bps.Uint64()
	verdict.Profitable = verdict.NetProfit > 0 && verdict.NetProfitBps >= minProfitBps
	return verdict, nil
}
