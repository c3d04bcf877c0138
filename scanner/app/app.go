package app

import (
	"context"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arbscan/solana-arbscan/calculator"
	"github.com/arbscan/solana-arbscan/config"
	"github.com/arbscan/solana-arbscan/dingsdk"
	"github.com/arbscan/solana-arbscan/env"
	"github.com/arbscan/solana-arbscan/feed"
	"github.com/arbscan/solana-arbscan/market"
	"github.com/arbscan/solana-arbscan/networkdetect"
	"github.com/arbscan/solana-arbscan/store"
	"github.com/arbscan/solana-arbscan/utils"
	"github.com/gin-gonic/gin"
)

var (
	Init    = int32(0)
	Started = int32(1)
	Stopped = int32(2)
)

// cycleDeadline bounds one scan cycle; candidates left when it fires are
// abandoned, the next snapshot starts clean.
var cycleDeadline = 200 * time.Millisecond

// App wires the detection core to its collaborators: the snapshot feed in,
// ranked opportunities out to the store, the notifier and the query API.
type App struct {
	ctx     context.Context
	log     *log.Logger
	config  *config.Config
	wg      sync.WaitGroup
	status  int32
	env     *env.Env
	source  feed.Source
	scanner *calculator.Scanner
	store   *store.Store
	notify  *Notify
	nd      *networkdetect.NetworkDetector

	httpServer *http.Server
	rpcPort    string

	mu     sync.RWMutex
	latest []*calculator.Opportunity
}

func NewApp(ctx context.Context, cfg *config.Config) *App {
	app := &App{
		ctx:     ctx,
		config:  cfg,
		rpcPort: cfg.Listen,
	}
	logger := utils.NewLog(config.LogPath, config.ScannerLog)
	app.log = logger
	//
	app.store = store.NewStore(ctx, cfg.DBUrl, cfg.DBScheme, cfg.DBUser, cfg.DBPasswd)
	app.env = env.NewEnv(ctx)
	dsdk := dingsdk.NewDingSdk(cfg.DingUrl)
	app.notify = NewNotify(ctx, app.env, dsdk)
	app.nd = networkdetect.NewNetworkDetector(cfg.FeedUrl, dsdk)
	app.source = feed.NewHttpSource(ctx, cfg.FeedUrl,
		time.Duration(cfg.FeedIntervalMs)*time.Millisecond,
		utils.NewLog(config.LogPath, config.FeedLog))
	app.scanner = calculator.NewScanner(&calculator.ScanConfig{
		BaseToken:           cfg.BaseToken,
		TradeAmount:         cfg.TradeAmount,
		MinProfitBps:        cfg.MinProfitBps,
		MaxSameTokenRepeats: cfg.MaxSameTokenRepeats,
		MaxHops:             cfg.MaxHops,
		Costs: &calculator.CostConfig{
			NetworkBaseFee:  cfg.NetworkBaseFee,
			PriorityFee:     cfg.PriorityFee,
			SafetyMarginPct: cfg.SafetyMarginPct,
		},
	}, logger)
	app.status = Init
	return app
}

func (app *App) Service() {
	app.Start()
	app.StartRPC()
	<-app.ctx.Done()
	app.StopRPC()
	app.Stop()
}

func (app *App) Start() {
	app.nd.Start()
	app.store.Start()
	app.env.Start()
	app.notify.Start()
	if err := app.source.Start(); err != nil {
		app.log.Printf("feed start err: %v", err)
	}
	app.wg.Add(1)
	go app.Tick()
	atomic.StoreInt32(&app.status, Started)
	app.log.Printf("opportunity scanner has started......")
}

func (app *App) Stop() {
	if err := app.source.Stop(); err != nil {
		app.log.Printf("feed stop err: %v", err)
	}
	app.wg.Wait()
	app.nd.Stop()
	app.env.Stop()
	app.store.Stop()
	atomic.StoreInt32(&app.status, Stopped)
	app.log.Printf("opportunity scanner has stopped......")
}

func (app *App) Tick() {
	defer app.wg.Done()
	for {
		select {
		case snapshot := <-app.source.Snapshots():
			app.scan(snapshot)
		case <-app.ctx.Done():
			app.log.Printf("scan tick exit")
			return
		}
	}
}

func (app *App) scan(snapshot *market.Snapshot) {
	app.log.Printf("**************** snapshot slot: %d, pools: %d ****************",
		snapshot.Slot, len(snapshot.Pools))
	ctx, cancel := context.WithTimeout(app.ctx, cycleDeadline)
	defer cancel()
	opportunities := app.scanner.Scan(ctx, snapshot)
	app.mu.Lock()
	app.latest = opportunities
	app.mu.Unlock()
	for _, opp := range opportunities {
		if err := app.OnOpportunity(opp, snapshot.Slot); err != nil {
			app.log.Printf("opportunity %d err: %v", opp.Id, err)
		}
	}
	if len(opportunities) == 0 {
		app.log.Printf("no profitable opportunity in this cycle")
	}
}

func (app *App) OnOpportunity(opp *calculator.Opportunity, slot uint64) error {
	app.log.Printf("opportunity, net profit bps: %d, net profit: %d, id: %d",
		opp.NetProfitBps, opp.NetProfit, opp.Id)
	stored := &store.Opportunity{
		Id:               opp.Id,
		Slot:             slot,
		AmountIn:         opp.AmountIn,
		GrossAmountOut:   opp.GrossAmountOut,
		GrossProfit:      opp.GrossProfit,
		TotalCost:        opp.Costs.TotalCost,
		NetProfit:        opp.NetProfit,
		NetProfitBps:     opp.NetProfitBps,
		Confidence:       opp.Confidence.StringFixed(4),
		OpportunitySteps: make([]*store.OpportunityStep, 0, len(opp.Route)),
	}
	amountIn := opp.AmountIn
	for i, hop := range opp.Route {
		stored.OpportunitySteps = append(stored.OpportunitySteps, &store.OpportunityStep{
			DexName:       hop.Pool.DexName,
			Pool:          hop.Pool.Address.String(),
			TokenIn:       hop.TokenIn.String(),
			AmountIn:      amountIn,
			TokenOut:      hop.TokenOut.String(),
			AmountOut:     opp.PerHopOutputs[i],
			OpportunityId: opp.Id,
		})
		amountIn = opp.PerHopOutputs[i]
	}
	app.store.StoreOpportunity(stored)
	app.notify.Commit(opp)
	return nil
}

func (app *App) StartRPC() {
	router := gin.New()
	g := router.Group("/api")
	g.GET("/opportunity", app.getOpportunity)
	g.GET("/latest", app.getLatest)
	app.httpServer = &http.Server{
		Addr:    app.rpcPort,
		Handler: router,
	}
	app.log.Printf("start rpc server......")
	go func() {
		if err := app.httpServer.ListenAndServe(); err != nil {
			app.log.Printf("ListenAndServe: %s", err.Error())
		}
	}()
}

func (app *App) StopRPC() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.httpServer.Shutdown(ctx); err != nil {
		app.log.Printf("rpc server shutdown err: %v", err)
	}
	app.log.Printf("rpc server has stopped......")
}
