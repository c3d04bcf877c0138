package amm

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PriceImpact reports the percent deviation between the pool spot price and
// the effective price of a trade of amountIn. Display and risk scoring only,
// the profitability decision stays on integer arithmetic.
func PriceImpact(reserveIn, reserveOut, amountIn uint64, feeBps uint64) (decimal.Decimal, error) {
	if amountIn == 0 {
		return decimal.Zero, nil
	}
	amountOut, err := Output(reserveIn, reserveOut, amountIn, feeBps)
	if err != nil {
		return decimal.Zero, err
	}
	spot := udec(reserveOut).Div(udec(reserveIn))
	if spot.IsZero() {
		return decimal.Zero, nil
	}
	effective := udec(amountOut).Div(udec(amountIn))
	return spot.Sub(effective).Abs().Div(spot).Mul(hundred), nil
}

// Slippage compares the naive linear price expectation with the curve output,
// as a percent of the expectation. Linear pricing always over-estimates the
// output, so the result is clamped at zero.
func Slippage(reserveIn, reserveOut, amountIn uint64, feeBps uint64) (decimal.Decimal, error) {
	if amountIn == 0 {
		return decimal.Zero, nil
	}
	amountOut, err := Output(reserveIn, reserveOut, amountIn, feeBps)
	if err != nil {
		return decimal.Zero, err
	}
	expected := udec(amountIn).Mul(udec(reserveOut)).Div(udec(reserveIn))
	if expected.IsZero() {
		return decimal.Zero, nil
	}
	slip := expected.Sub(udec(amountOut)).Div(expected).Mul(hundred)
	if slip.IsNegative() {
		return decimal.Zero, nil
	}
	return slip, nil
}

func udec(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}
