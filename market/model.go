package market

import (
	"errors"
	"math/big"

	"github.com/arbscan/solana-arbscan/amm"
	"github.com/gagliardetto/solana-go"
)

// PoolKind selects the swap curve. The set of kinds is closed, output
// selection is a switch on the variant, never interface dispatch.
type PoolKind int

const (
	ConstantProduct PoolKind = iota
	ConstantPrice
)

var (
	ErrTokenNotInPool = errors.New("market: token is not in this pool")
	ErrUnknownKind    = errors.New("market: unknown pool kind")
)

// Pool is one liquidity pool's state at measurement time. Constructed fresh
// per scan cycle from the feed snapshot, immutable once handed to the
// evaluator.
type Pool struct {
	Address  solana.PublicKey `json:"pool_address"`
	DexName  string           `json:"dex_name"`
	Kind     PoolKind         `json:"kind"`
	TokenA   solana.PublicKey `json:"token_a_mint"`
	TokenB   solana.PublicKey `json:"token_b_mint"`
	ReserveA uint64           `json:"reserve_a"`
	ReserveB uint64           `json:"reserve_b"`
	FeeBps   uint64           `json:"fee_bps"`
}

func (p *Pool) Validate() error {
	if p.ReserveA == 0 || p.ReserveB == 0 {
		return amm.ErrInvalidReserves
	}
	if p.FeeBps >= 10000 {
		return amm.ErrInvalidFee
	}
	return nil
}

func (p *Pool) HasToken(token solana.PublicKey) bool {
	return token == p.TokenA || token == p.TokenB
}

func (p *Pool) Other(token solana.PublicKey) solana.PublicKey {
	if token == p.TokenA {
		return p.TokenB
	}
	return p.TokenA
}

// Reserves orients the pool for a swap paying in tokenIn.
func (p *Pool) Reserves(tokenIn solana.PublicKey) (reserveIn, reserveOut uint64, err error) {
	switch tokenIn {
	case p.TokenA:
		return p.ReserveA, p.ReserveB, nil
	case p.TokenB:
		return p.ReserveB, p.ReserveA, nil
	default:
		return 0, 0, ErrTokenNotInPool
	}
}

// Output computes the swap output for amountIn of tokenIn under the pool's
// curve kind.
func (p *Pool) Output(tokenIn solana.PublicKey, amountIn uint64) (uint64, error) {
	reserveIn, reserveOut, err := p.Reserves(tokenIn)
	if err != nil {
		return 0, err
	}
	switch p.Kind {
	case ConstantProduct:
		return amm.Output(reserveIn, reserveOut, amountIn, p.FeeBps)
	case ConstantPrice:
		return constantPriceOutput(reserveIn, reserveOut, amountIn, p.FeeBps)
	default:
		return 0, ErrUnknownKind
	}
}

// constantPriceOutput swaps at the spot reserve ratio with the fee off the
// input, still bounded by the output reserve.
func constantPriceOutput(reserveIn, reserveOut, amountIn uint64, feeBps uint64) (uint64, error) {
	if reserveIn == 0 || reserveOut == 0 {
		return 0, amm.ErrInvalidReserves
	}
	if feeBps >= 10000 {
		return 0, amm.ErrInvalidFee
	}
	if amountIn == 0 {
		return 0, nil
	}
	amountInAfterFee := new(big.Int).Div(
		new(big.Int).Mul(
			new(big.Int).SetUint64(amountIn),
			new(big.Int).SetUint64(10000-feeBps),
		),
		new(big.Int).SetUint64(10000),
	)
	amountOut := new(big.Int).Div(
		new(big.Int).Mul(amountInAfterFee, new(big.Int).SetUint64(reserveOut)),
		new(big.Int).SetUint64(reserveIn),
	)
	if !amountOut.IsUint64() {
		return 0, amm.ErrInvalidReserves
	}
	out := amountOut.Uint64()
	if out >= reserveOut {
		return 0, amm.ErrInsufficientLiquidity
	}
	return out, nil
}

// Hop is one directed swap leg. Owned by the route being evaluated, does not
// outlive one evaluation.
type Hop struct {
	TokenIn  solana.PublicKey
	TokenOut solana.PublicKey
	Pool     *Pool
}

// Route is an ordered chain of hops closing back to the starting token.
type Route []*Hop

func (r Route) Start() solana.PublicKey {
	return r[0].TokenIn
}

// Key is a stable identity for the route, used for deterministic tie-breaks
// and deduplication.
func (r Route) Key() string {
	key := make([]byte, 0, len(r)*32)
	for _, hop := range r {
		key = append(key, hop.Pool.Address.Bytes()...)
	}
	return string(key)
}

// Snapshot is the per-cycle pool set delivered by the feed collaborator.
type Snapshot struct {
	Slot  uint64  `json:"slot"`
	Pools []*Pool `json:"pools"`
}
