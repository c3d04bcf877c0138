package calculator

import (
	"fmt"

	"github.com/arbscan/solana-arbscan/market"
)

// EvalError reports which hop of a route simulation failed.
type EvalError struct {
	HopIndex int
	Err      error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("hop %d: %v", e.HopIndex, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// RouteResult carries the simulated chain output plus per-hop diagnostics.
type RouteResult struct {
	FinalAmountOut uint64
	PerHopOutputs  []uint64
}

// EvaluateRoute walks the route hop by hop, feeding each hop's output into
// the next hop. Pure simulation, no profitability judgement.
func EvaluateRoute(route market.Route, amountIn uint64) (*RouteResult, error) {
	result := &RouteResult{
		PerHopOutputs: make([]uint64, 0, len(route)),
	}
	amount := amountIn
	for i, hop := range route {
		out, err := hop.Pool.Output(hop.TokenIn, amount)
		if err != nil {
			return nil, &EvalError{HopIndex: i, Err: err}
		}
		result.PerHopOutputs = append(result.PerHopOutputs, out)
		amount = out
	}
	result.FinalAmountOut = amount
	return result, nil
}
