package amm

import (
	"math/big"
)

const feeDenominator = 10000

// Output computes the constant product swap output for a pool holding
// reserveIn/reserveOut, with the fee taken off the input amount before the
// curve is applied. All intermediates are big.Int, reserves near the uint64
// ceiling never wrap.
func Output(reserveIn, reserveOut, amountIn uint64, feeBps uint64) (uint64, error) {
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrInvalidReserves
	}
	if feeBps >= feeDenominator {
		return 0, ErrInvalidFee
	}
	if amountIn == 0 {
		return 0, nil
	}
	amountInAfterFee := new(big.Int).Div(
		new(big.Int).Mul(
			new(big.Int).SetUint64(amountIn),
			new(big.Int).SetUint64(feeDenominator-feeBps),
		),
		new(big.Int).SetUint64(feeDenominator),
	)
	numerator := new(big.Int).Mul(new(big.Int).SetUint64(reserveOut), amountInAfterFee)
	denominator := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), amountInAfterFee)
	amountOut := new(big.Int).Div(numerator, denominator)
	if !amountOut.IsUint64() {
		return 0, ErrInvalidReserves
	}
	out := amountOut.Uint64()
	if out >= reserveOut {
		return 0, ErrInsufficientLiquidity
	}
	return out, nil
}

// InputForExactOutput is the inverse of Output: the input needed to receive
// exactly amountOut, grossed up by the fee.
func InputForExactOutput(reserveIn, reserveOut, amountOut uint64, feeBps uint64) (uint64, error) {
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrInvalidReserves
	}
	if feeBps >= feeDenominator {
		return 0, ErrInvalidFee
	}
	if amountOut == 0 {
		return 0, nil
	}
	if amountOut >= reserveOut {
		return 0, ErrInsufficientLiquidity
	}
	amountInBeforeFee := new(big.Int).Div(
		new(big.Int).Mul(
			new(big.Int).SetUint64(reserveIn),
			new(big.Int).SetUint64(amountOut),
		),
		new(big.Int).SetUint64(reserveOut-amountOut),
	)
	amountIn := new(big.Int).Div(
		new(big.Int).Mul(amountInBeforeFee, new(big.Int).SetUint64(feeDenominator)),
		new(big.Int).SetUint64(feeDenominator-feeBps),
	)
	if !amountIn.IsUint64() {
		return 0, ErrInvalidReserves
	}
	return amountIn.Uint64(), nil
}
