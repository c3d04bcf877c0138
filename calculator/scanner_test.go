package calculator

import (
	"context"
	"io/ioutil"
	"log"
	"testing"
	"time"

	"github.com/arbscan/solana-arbscan/amm"
	"github.com/arbscan/solana-arbscan/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

func testScanConfig() *ScanConfig {
	return &ScanConfig{
		BaseToken:           testSOL,
		TradeAmount:         1_000_000_000,
		MinProfitBps:        50,
		MaxSameTokenRepeats: 1,
		MaxHops:             3,
		Costs:               testCostConfig(),
	}
}

func TestScanMirroredPoolsNotProfitable(t *testing.T) {
	// both pools price SOL at 200 USDC; after fees no direct route survives
	poolA, poolB := scenarioPools()
	scanner := NewScanner(testScanConfig(), testLogger())
	opportunities := scanner.Scan(context.Background(), &market.Snapshot{
		Slot:  1,
		Pools: []*market.Pool{poolA, poolB},
	})
	require.Empty(t, opportunities)
}

func TestScanSkewedPoolsProfitable(t *testing.T) {
	// pool B prices SOL at 300 USDC against pool A's 200: buying USDC on the
	// rich pool and selling it back on the cheap one clears any threshold
	poolA := testPool(1, "orca", testSOL, testUSDC, 10_000_000_000_000, 2_000_000_000_000, 25)
	poolB := testPool(2, "raydium", testSOL, testUSDC, 8_000_000_000_000, 2_400_000_000_000, 30)
	cfg := testScanConfig()
	scanner := NewScanner(cfg, testLogger())
	opportunities := scanner.Scan(context.Background(), &market.Snapshot{
		Slot:  1,
		Pools: []*market.Pool{poolA, poolB},
	})
	require.Len(t, opportunities, 1)
	opp := opportunities[0]

	// hand-walk the winning direction: SOL->USDC on B, USDC->SOL on A
	hop1, err := amm.Output(8_000_000_000_000, 2_400_000_000_000, cfg.TradeAmount, 30)
	require.NoError(t, err)
	hop2, err := amm.Output(2_000_000_000_000, 10_000_000_000_000, hop1, 25)
	require.NoError(t, err)
	require.Equal(t, hop2, opp.GrossAmountOut)
	require.Equal(t, hop2-cfg.TradeAmount, opp.GrossProfit)
	require.True(t, opp.Profitable)
	require.True(t, opp.NetProfitBps >= cfg.MinProfitBps)
	require.Equal(t, "raydium", opp.Route[0].Pool.DexName)
	require.Equal(t, "orca", opp.Route[1].Pool.DexName)
	// deep reserves next to a 1 SOL trade: full confidence
	require.True(t, opp.Confidence.Equal(decimal.NewFromInt(1)))
}

func TestScanRankingDeterministic(t *testing.T) {
	poolA := testPool(1, "orca", testSOL, testUSDC, 10_000_000_000_000, 2_000_000_000_000, 25)
	poolB := testPool(2, "raydium", testSOL, testUSDC, 8_000_000_000_000, 2_400_000_000_000, 30)
	poolC := testPool(3, "saber", testSOL, testUSDC, 8_000_000_000_000, 2_200_000_000_000, 30)
	snapshot := &market.Snapshot{Slot: 1, Pools: []*market.Pool{poolA, poolB, poolC}}
	scanner := NewScanner(testScanConfig(), testLogger())

	first := scanner.Scan(context.Background(), snapshot)
	require.NotEmpty(t, first)
	for run := 0; run < 5; run++ {
		again := scanner.Scan(context.Background(), snapshot)
		require.Equal(t, len(first), len(again))
		for i := range first {
			require.Equal(t, first[i].Route.Key(), again[i].Route.Key())
			require.Equal(t, first[i].NetProfitBps, again[i].NetProfitBps)
		}
	}
	for i := 1; i < len(first); i++ {
		require.True(t, first[i-1].NetProfitBps >= first[i].NetProfitBps)
	}
}

func TestScanBadPoolNeverAbortsCycle(t *testing.T) {
	poolA := testPool(1, "orca", testSOL, testUSDC, 10_000_000_000_000, 2_000_000_000_000, 25)
	poolB := testPool(2, "raydium", testSOL, testUSDC, 8_000_000_000_000, 2_400_000_000_000, 30)
	dead := testPool(3, "saber", testSOL, testUSDC, 0, 0, 30)
	scanner := NewScanner(testScanConfig(), testLogger())
	opportunities := scanner.Scan(context.Background(), &market.Snapshot{
		Slot:  1,
		Pools: []*market.Pool{poolA, dead, poolB},
	})
	require.Len(t, opportunities, 1)
}

func TestScanEmptySnapshot(t *testing.T) {
	scanner := NewScanner(testScanConfig(), testLogger())
	require.Empty(t, scanner.Scan(context.Background(), &market.Snapshot{Slot: 1}))
	require.Empty(t, scanner.Scan(context.Background(), nil))
}

func TestScanDeadlineAbandonsCandidates(t *testing.T) {
	poolA := testPool(1, "orca", testSOL, testUSDC, 10_000_000_000_000, 2_000_000_000_000, 25)
	poolB := testPool(2, "raydium", testSOL, testUSDC, 8_000_000_000_000, 2_400_000_000_000, 30)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	scanner := NewScanner(testScanConfig(), testLogger())
	opportunities := scanner.Scan(ctx, &market.Snapshot{
		Slot:  1,
		Pools: []*market.Pool{poolA, poolB},
	})
	require.Empty(t, opportunities)
}
