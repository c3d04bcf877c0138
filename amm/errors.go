package amm

import "errors"

var (
	// ErrInvalidReserves covers empty pools and reserve values so large that
	// a swap result cannot be narrowed back to uint64.
	ErrInvalidReserves = errors.New("amm: invalid reserves")
	// ErrInsufficientLiquidity means the requested trade would take the full
	// output reserve. Such trades are rejected, never capped.
	ErrInsufficientLiquidity = errors.New("amm: insufficient liquidity")
	// ErrInvalidFee means fee_bps is not below 10000.
	ErrInvalidFee = errors.New("amm: invalid fee")
)
