package calculator

import (
	"log"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/arbscan/solana-arbscan/market"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"golang.org/x/net/context"
)

// liquidityFactor is the reserve-to-trade multiple at which a hop is
// considered fully liquid for confidence scoring.
const liquidityFactor = 100

// ScanConfig is the per-call state of a scan. The scanner itself keeps
// nothing between cycles.
type ScanConfig struct {
	BaseToken           solana.PublicKey
	TradeAmount         uint64
	MinProfitBps        uint64
	MaxSameTokenRepeats int
	MaxHops             int
	Costs               *CostConfig
}

type Scanner struct {
	cfg *ScanConfig
	log *log.Logger
}

func NewScanner(cfg *ScanConfig, logger *log.Logger) *Scanner {
	return &Scanner{
		cfg: cfg,
		log: logger,
	}
}

// Scan runs one full cycle over a pool snapshot: build candidate routes,
// guard, evaluate, cost, decide, rank. A single candidate's failure is logged
// and skipped, it never aborts the cycle. An empty result is a normal
// outcome. Candidates are evaluated concurrently; the final ranking is
// deterministic regardless of evaluation order.
func (s *Scanner) Scan(ctx context.Context, snapshot *market.Snapshot) []*Opportunity {
	if snapshot == nil || len(snapshot.Pools) == 0 {
		s.log.Printf("scan: no pool data in snapshot")
		return nil
	}
	index := NewRouteIndex()
	for _, pool := range snapshot.Pools {
		if err := index.AddPool(pool); err != nil {
			s.log.Printf("scan: pool %s rejected: %v", pool.Address, err)
		}
	}
	candidates := index.BuildRoutes(s.cfg.BaseToken, s.cfg.MaxHops)
	routes := make([]market.Route, 0, len(candidates))
	for _, route := range candidates {
		if err := market.ValidateRoute(route, s.cfg.MaxSameTokenRepeats); err != nil {
			s.log.Printf("scan: route %d hops from %s rejected: %v", len(route), route.Start(), err)
			continue
		}
		routes = append(routes, route)
	}

	var wg sync.WaitGroup
	results := make(chan *Opportunity, len(routes))
loop:
	for i, route := range routes {
		select {
		case <-ctx.Done():
			s.log.Printf("scan: deadline reached, %d candidates abandoned", len(routes)-i)
			break loop
		default:
		}
		wg.Add(1)
		go func(route market.Route) {
			defer wg.Done()
			opp, err := s.evaluate(route)
			if err != nil {
				s.log.Printf("scan: route via %s skipped: %v", routeLabel(route), err)
				return
			}
			results <- opp
		}(route)
	}
	wg.Wait()
	close(results)

	opportunities := make([]*Opportunity, 0, len(routes))
	for opp := range results {
		if opp.Profitable {
			opportunities = append(opportunities, opp)
		}
	}
	sort.Slice(opportunities, func(i, j int) bool {
		if opportunities[i].NetProfitBps != opportunities[j].NetProfitBps {
			return opportunities[i].NetProfitBps > opportunities[j].NetProfitBps
		}
		return opportunities[i].Route.Key() < opportunities[j].Route.Key()
	})
	return opportunities
}

// evaluate runs one candidate end to end: simulation, cost model, decision,
// confidence.
func (s *Scanner) evaluate(route market.Route) (*Opportunity, error) {
	result, err := EvaluateRoute(route, s.cfg.TradeAmount)
	if err != nil {
		return nil, err
	}
	costs := TotalArbitrageCosts(s.cfg.TradeAmount, route, s.cfg.Costs)
	verdict, err := AssessProfitability(s.cfg.TradeAmount, result.FinalAmountOut, costs, s.cfg.MinProfitBps)
	if err != nil {
		return nil, err
	}
	return &Opportunity{
		Id:             newId(),
		Route:          route,
		AmountIn:       s.cfg.TradeAmount,
		PerHopOutputs:  result.PerHopOutputs,
		GrossAmountOut: result.FinalAmountOut,
		GrossProfit:    verdict.GrossProfit,
		Costs:          costs,
		NetProfit:      verdict.NetProfit,
		NetProfitBps:   verdict.NetProfitBps,
		Profitable:     verdict.Profitable,
		Confidence:     s.confidence(route),
		Timestamp:      time.Now(),
	}, nil
}

// confidence weighs the route by its thinnest hop: a route whose smallest
// input-side reserve is at least liquidityFactor times the trade size scores
// 1.0, thinner routes score proportionally less.
func (s *Scanner) confidence(route market.Route) decimal.Decimal {
	minReserve := uint64(0)
	for i, hop := range route {
		reserveIn, _, err := hop.Pool.Reserves(hop.TokenIn)
		if err != nil {
			return decimal.Zero
		}
		if i == 0 || reserveIn < minReserve {
			minReserve = reserveIn
		}
	}
	if s.cfg.TradeAmount == 0 {
		return decimal.Zero
	}
	full := decimal.NewFromBigInt(new(big.Int).SetUint64(s.cfg.TradeAmount), 0).
		Mul(decimal.NewFromInt(liquidityFactor))
	score := decimal.NewFromBigInt(new(big.Int).SetUint64(minReserve), 0).Div(full)
	if score.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return score
}

func routeLabel(route market.Route) string {
	label := ""
	for i, hop := range route {
		if i > 0 {
			label += "->"
		}
		label += hop.Pool.DexName
	}
	return label
}
