package calculator

import (
	"errors"
	"testing"

	"github.com/arbscan/solana-arbscan/amm"
	"github.com/arbscan/solana-arbscan/market"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

var (
	testSOL  = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	testUSDC = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	testRAY  = solana.MustPublicKeyFromBase58("4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R")
)

func testPool(seed byte, dex string, tokenA, tokenB solana.PublicKey, reserveA, reserveB uint64, feeBps uint64) *market.Pool {
	var addr [32]byte
	for i := range addr {
		addr[i] = seed
	}
	return &market.Pool{
		Address:  solana.PublicKeyFromBytes(addr[:]),
		DexName:  dex,
		Kind:     market.ConstantProduct,
		TokenA:   tokenA,
		TokenB:   tokenB,
		ReserveA: reserveA,
		ReserveB: reserveB,
		FeeBps:   feeBps,
	}
}

// two SOL/USDC pools both priced at 200 USDC per SOL, one at 25 bps fee and
// one at 30 bps. SOL in lamports, USDC in its 1e6 base units.
func scenarioPools() (*market.Pool, *market.Pool) {
	poolA := testPool(1, "orca", testSOL, testUSDC, 10_000_000_000_000, 2_000_000_000_000, 25)
	poolB := testPool(2, "raydium", testSOL, testUSDC, 8_000_000_000_000, 1_600_000_000_000, 30)
	return poolA, poolB
}

func directRoute(poolA, poolB *market.Pool) market.Route {
	return market.Route{
		{TokenIn: testSOL, TokenOut: testUSDC, Pool: poolA},
		{TokenIn: testUSDC, TokenOut: testSOL, Pool: poolB},
	}
}

func TestEvaluateRouteMatchesManualChain(t *testing.T) {
	poolA, poolB := scenarioPools()
	route := directRoute(poolA, poolB)
	amountIn := uint64(1_000_000_000)

	result, err := EvaluateRoute(route, amountIn)
	require.NoError(t, err)

	hop1, err := amm.Output(10_000_000_000_000, 2_000_000_000_000, amountIn, 25)
	require.NoError(t, err)
	hop2, err := amm.Output(1_600_000_000_000, 8_000_000_000_000, hop1, 30)
	require.NoError(t, err)

	require.Equal(t, []uint64{hop1, hop2}, result.PerHopOutputs)
	require.Equal(t, hop2, result.FinalAmountOut)
}

func TestEvaluateRouteFailsWithHopIndex(t *testing.T) {
	poolA, _ := scenarioPools()
	dead := testPool(3, "raydium", testSOL, testUSDC, 0, 1_600_000_000_000, 30)
	route := directRoute(poolA, dead)

	_, err := EvaluateRoute(route, 1_000_000_000)
	require.Error(t, err)
	var evalErr *EvalError
	require.True(t, errors.As(err, &evalErr))
	require.Equal(t, 1, evalErr.HopIndex)
	require.ErrorIs(t, err, amm.ErrInvalidReserves)
}

func TestEvaluateRouteZeroInput(t *testing.T) {
	poolA, poolB := scenarioPools()
	result, err := EvaluateRoute(directRoute(poolA, poolB), 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), result.FinalAmountOut)
}
