package calculator

import (
	"math/big"

	"github.com/arbscan/solana-arbscan/amm"
	"github.com/arbscan/solana-arbscan/market"
	"github.com/shopspring/decimal"
)

// CostConfig carries the fee constants a deployment runs with. All of them
// are configuration, none are hard-coded.
type CostConfig struct {
	NetworkBaseFee  uint64
	PriorityFee     uint64
	SafetyMarginPct uint64
}

// CostBreakdown itemizes every real-world cost of executing a route, all in
// base units of the trade input token. Derived once, never mutated.
type CostBreakdown struct {
	NetworkBaseFee  uint64
	PriorityFee     uint64
	DexFeesTotal    uint64
	SlippageCost    uint64
	PriceImpactCost uint64
	SafetyMargin    uint64
	TotalCost       uint64
}

// TotalArbitrageCosts sums the per-transaction network and priority fees, the
// DEX fee actually extracted at each hop on the running amount, the slippage
// and price impact cost estimates, and a safety margin over the subtotal.
// Always succeeds; hops whose simulation fails simply stop contributing
// swap-dependent costs (the route itself is rejected by the evaluator).
func TotalArbitrageCosts(amountIn uint64, route market.Route, cfg *CostConfig) *CostBreakdown {
	breakdown := &CostBreakdown{
		NetworkBaseFee: cfg.NetworkBaseFee,
		PriorityFee:    cfg.PriorityFee,
	}
	running := amountIn
	for _, hop := range route {
		breakdown.DexFeesTotal += bpsOf(running, hop.Pool.FeeBps)
		reserveIn, reserveOut, err := hop.Pool.Reserves(hop.TokenIn)
		if err != nil {
			break
		}
		slip, err := amm.Slippage(reserveIn, reserveOut, running, hop.Pool.FeeBps)
		if err != nil {
			break
		}
		impact, err := amm.PriceImpact(reserveIn, reserveOut, running, hop.Pool.FeeBps)
		if err != nil {
			break
		}
		breakdown.SlippageCost += pctCost(running, slip)
		breakdown.PriceImpactCost += pctCost(running, impact)
		out, err := hop.Pool.Output(hop.TokenIn, running)
		if err != nil {
			break
		}
		running = out
	}
	subtotal := breakdown.NetworkBaseFee + breakdown.PriorityFee +
		breakdown.DexFeesTotal + breakdown.SlippageCost + breakdown.PriceImpactCost
	breakdown.SafetyMargin = subtotal * cfg.SafetyMarginPct / 100
	breakdown.TotalCost = subtotal + breakdown.SafetyMargin
	return breakdown
}

func bpsOf(amount uint64, bps uint64) uint64 {
	fee := new(big.Int).Div(
		new(big.Int).Mul(
			new(big.Int).SetUint64(amount),
			new(big.Int).SetUint64(bps),
		),
		new(big.Int).SetUint64(10000),
	)
	return fee.Uint64()
}

func pctCost(amount uint64, pct decimal.Decimal) uint64 {
	cost := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0).
		Mul(pct).Div(decimal.NewFromInt(100))
	if cost.IsNegative() {
		return 0
	}
	return cost.BigInt().Uint64()
}
