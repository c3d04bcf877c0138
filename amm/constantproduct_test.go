package amm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputConservationZeroFee(t *testing.T) {
	cases := []struct {
		reserveIn, reserveOut, amountIn uint64
	}{
		{1_000_000, 1_000_000, 1_000},
		{10_000_000_000_000, 2_000_000_000_000, 1_000_000_000},
		{3, 1_000_000_000, 7},
		{1 << 62, 1 << 62, 1 << 40},
	}
	for _, tc := range cases {
		amountOut, err := Output(tc.reserveIn, tc.reserveOut, tc.amountIn, 0)
		require.NoError(t, err)
		// amountOut must be the exact floor of the curve: the invariant never
		// decreases, and one more unit of output would break it.
		k := new(big.Int).Mul(
			new(big.Int).SetUint64(tc.reserveIn),
			new(big.Int).SetUint64(tc.reserveOut),
		)
		newIn := new(big.Int).Add(new(big.Int).SetUint64(tc.reserveIn), new(big.Int).SetUint64(tc.amountIn))
		newOut := new(big.Int).Sub(new(big.Int).SetUint64(tc.reserveOut), new(big.Int).SetUint64(amountOut))
		kAfter := new(big.Int).Mul(newIn, newOut)
		require.True(t, kAfter.Cmp(k) >= 0, "invariant decreased: reserves %d/%d amount %d", tc.reserveIn, tc.reserveOut, tc.amountIn)
		oneMore := new(big.Int).Mul(newIn, new(big.Int).Sub(newOut, big.NewInt(1)))
		require.True(t, oneMore.Cmp(k) < 0, "output not tight: reserves %d/%d amount %d", tc.reserveIn, tc.reserveOut, tc.amountIn)
	}
}

func TestOutputMonotonicInAmount(t *testing.T) {
	reserveIn, reserveOut := uint64(10_000_000_000), uint64(5_000_000_000)
	prev := uint64(0)
	for amount := uint64(1_000_000); amount <= 100_000_000; amount += 1_000_000 {
		out, err := Output(reserveIn, reserveOut, amount, 30)
		require.NoError(t, err)
		require.True(t, out >= prev, "output decreased at amount %d", amount)
		prev = out
	}
}

func TestOutputNonIncreasingInFee(t *testing.T) {
	reserveIn, reserveOut := uint64(10_000_000_000), uint64(5_000_000_000)
	amount := uint64(50_000_000)
	prev, err := Output(reserveIn, reserveOut, amount, 0)
	require.NoError(t, err)
	for fee := uint64(1); fee < 1000; fee += 7 {
		out, err := Output(reserveIn, reserveOut, amount, fee)
		require.NoError(t, err)
		require.True(t, out <= prev, "output increased at fee %d", fee)
		prev = out
	}
}

func TestRoundTripNeverProfits(t *testing.T) {
	// A->B->A through the same reserves with equal fees must never print
	// money, fee or no fee.
	reserveIn, reserveOut := uint64(10_000_000_000_000), uint64(2_000_000_000_000)
	for _, fee := range []uint64{0, 25, 30, 100, 500} {
		for _, amount := range []uint64{1, 1_000, 1_000_000_000, 500_000_000_000} {
			out, err := Output(reserveIn, reserveOut, amount, fee)
			require.NoError(t, err)
			back, err := Output(reserveOut, reserveIn, out, fee)
			require.NoError(t, err)
			require.True(t, back <= amount, "round trip profited: fee %d amount %d -> %d", fee, amount, back)
		}
	}
}

func TestOutputZeroAmount(t *testing.T) {
	out, err := Output(1_000_000, 1_000_000, 0, 30)
	require.NoError(t, err)
	require.Equal(t, uint64(0), out)
}

func TestOutputInvalidReserves(t *testing.T) {
	_, err := Output(0, 1_000_000, 1_000, 30)
	require.ErrorIs(t, err, ErrInvalidReserves)
	_, err = Output(1_000_000, 0, 1_000, 30)
	require.ErrorIs(t, err, ErrInvalidReserves)
}

func TestOutputInvalidFee(t *testing.T) {
	_, err := Output(1_000_000, 1_000_000, 1_000, 10000)
	require.ErrorIs(t, err, ErrInvalidFee)
}

func TestOutputNeverDrainsPool(t *testing.T) {
	// Even absurdly oversized trades cannot take the full output reserve.
	reserveIn, reserveOut := uint64(1), uint64(1_000)
	for _, amount := range []uint64{1_000_000, 1 << 40, 1 << 62} {
		out, err := Output(reserveIn, reserveOut, amount, 0)
		require.NoError(t, err)
		require.True(t, out < reserveOut, "pool drained at amount %d", amount)
	}
}

func TestInputForExactOutputInverts(t *testing.T) {
	reserveIn, reserveOut := uint64(10_000_000_000), uint64(5_000_000_000)
	for _, fee := range []uint64{0, 25, 30} {
		for _, target := range []uint64{1_000, 1_000_000, 100_000_000} {
			amountIn, err := InputForExactOutput(reserveIn, reserveOut, target, fee)
			require.NoError(t, err)
			out, err := Output(reserveIn, reserveOut, amountIn, fee)
			require.NoError(t, err)
			// rounding in both directions, the replayed trade lands within a
			// few units of the requested output
			require.InDelta(t, float64(target), float64(out), 3)
		}
	}
}

func TestInputForExactOutputInsufficientLiquidity(t *testing.T) {
	_, err := InputForExactOutput(1_000_000, 1_000_000, 1_000_000, 30)
	require.ErrorIs(t, err, ErrInsufficientLiquidity)
	_, err = InputForExactOutput(1_000_000, 1_000_000, 2_000_000, 30)
	require.ErrorIs(t, err, ErrInsufficientLiquidity)
}
