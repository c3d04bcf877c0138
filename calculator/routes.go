package calculator

import (
	"github.com/arbscan/solana-arbscan/market"
	"github.com/gagliardetto/solana-go"
)

// RouteIndex is a token-indexed adjacency matrix over the snapshot's pools.
// Rebuilt fresh each cycle, it enumerates candidate arbitrage cycles from a
// base token: 2-hop direct routes across two pools and longer cycles through
// distinct intermediate tokens, up to the configured hop limit.
type RouteIndex struct {
	Indexes  []solana.PublicKey
	Matrices [][][]*market.Pool
}

func NewRouteIndex() *RouteIndex {
	return &RouteIndex{
		Indexes:  make([]solana.PublicKey, 0),
		Matrices: make([][][]*market.Pool, 0),
	}
}

func (ri *RouteIndex) Index(token solana.PublicKey) int {
	for i, index := range ri.Indexes {
		if index == token {
			return i
		}
	}
	return -1
}

func (ri *RouteIndex) index(token solana.PublicKey) int {
	if i := ri.Index(token); i != -1 {
		return i
	}
	ri.Indexes = append(ri.Indexes, token)
	newSize := len(ri.Indexes)
	for i, col := range ri.Matrices {
		ri.Matrices[i] = append(col, nil)
	}
	row := make([][]*market.Pool, newSize)
	ri.Matrices = append(ri.Matrices, row)
	return newSize - 1
}

// AddPool registers a pool on both directed edges between its tokens. Pools
// that fail validation are not indexed.
func (ri *RouteIndex) AddPool(pool *market.Pool) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	a := ri.index(pool.TokenA)
	b := ri.index(pool.TokenB)
	ri.Matrices[a][b] = append(ri.Matrices[a][b], pool)
	ri.Matrices[b][a] = append(ri.Matrices[b][a], pool)
	return nil
}

// BuildRoutes enumerates cycles that start and end at the base token with
// between 2 and maxHops hops. Intermediate tokens are all distinct and never
// the base token, and a pool is never used twice in one route, so every
// produced route passes the structural guard by construction. The guard still
// runs on each candidate before evaluation.
func (ri *RouteIndex) BuildRoutes(base solana.PublicKey, maxHops int) []market.Route {
	baseIndex := ri.Index(base)
	if baseIndex == -1 {
		return nil
	}
	routes := make([]market.Route, 0)
	prefix := make([]*market.Hop, 0, maxHops)
	ri.extend(baseIndex, baseIndex, prefix, maxHops, &routes)
	return routes
}

func (ri *RouteIndex) extend(baseIndex, curIndex int, prefix []*market.Hop, maxHops int, routes *[]market.Route) {
	for next := 0; next < len(ri.Matrices[curIndex]); next++ {
		if next == curIndex {
			continue
		}
		closing := next == baseIndex
		if closing && len(prefix) == 0 {
			continue
		}
		if !closing && ri.visited(prefix, next) {
			continue
		}
		if !closing && len(prefix)+2 > maxHops {
			// no room left for the closing hop
			continue
		}
		for _, pool := range ri.Matrices[curIndex][next] {
			if ri.poolUsed(prefix, pool) {
				continue
			}
			hop := &market.Hop{
				TokenIn:  ri.Indexes[curIndex],
				TokenOut: ri.Indexes[next],
				Pool:     pool,
			}
			chain := append(append(make([]*market.Hop, 0, len(prefix)+1), prefix...), hop)
			if closing {
				if len(chain) >= 2 {
					*routes = append(*routes, market.Route(chain))
				}
				continue
			}
			ri.extend(baseIndex, next, chain, maxHops, routes)
		}
	}
}

func (ri *RouteIndex) visited(prefix []*market.Hop, index int) bool {
	token := ri.Indexes[index]
	for _, hop := range prefix {
		if hop.TokenOut == token {
			return true
		}
	}
	return false
}

func (ri *RouteIndex) poolUsed(prefix []*market.Hop, pool *market.Pool) bool {
	for _, hop := range prefix {
		if hop.Pool.Address == pool.Address {
			return true
		}
	}
	return false
}
