package app

import (
	"strconv"

	"github.com/arbscan/solana-arbscan/store"
	"github.com/gin-gonic/gin"
)

type OpportunityInfo struct {
	Opportunities []*store.Opportunity
}

func (app *App) getOpportunity(c *gin.Context) {
	idStr, ok := c.GetQuery("id")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.JSON(500, err)
		return
	}
	opportunities, err := app.store.GetOpportunity(id)
	if err != nil {
		c.JSON(500, err)
		return
	}
	c.JSON(200, &OpportunityInfo{
		Opportunities: opportunities,
	})
}

type LatestScan struct {
	Count         int
	Opportunities []*LatestOpportunity
}

type LatestOpportunity struct {
	Id           uint64
	AmountIn     uint64
	NetProfit    uint64
	NetProfitBps uint64
	Confidence   string
	Route        []string
}

func (app *App) getLatest(c *gin.Context) {
	app.mu.RLock()
	latest := app.latest
	app.mu.RUnlock()
	result := &LatestScan{
		Count:         len(latest),
		Opportunities: make([]*LatestOpportunity, 0, len(latest)),
	}
	for _, opp := range latest {
		route := make([]string, 0, len(opp.Route))
		for _, hop := range opp.Route {
			route = append(route, hop.Pool.DexName+":"+app.env.Symbol(hop.TokenIn)+"->"+app.env.Symbol(hop.TokenOut))
		}
		result.Opportunities = append(result.Opportunities, &LatestOpportunity{
			Id:           opp.Id,
			AmountIn:     opp.AmountIn,
			NetProfit:    opp.NetProfit,
			NetProfitBps: opp.NetProfitBps,
			Confidence:   opp.Confidence.StringFixed(4),
			Route:        route,
		})
	}
	c.JSON(200, result)
}
