package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/arbscan/solana-arbscan/calculator"
	"github.com/arbscan/solana-arbscan/dingsdk"
	"github.com/arbscan/solana-arbscan/env"
)

type Notify struct {
	ctx  context.Context
	wg   sync.WaitGroup
	env  *env.Env
	data chan *calculator.Opportunity
	dsdk *dingsdk.DingSdk
}

func NewNotify(ctx context.Context, env *env.Env, dsdk *dingsdk.DingSdk) *Notify {
	return &Notify{
		ctx:  ctx,
		env:  env,
		dsdk: dsdk,
		data: make(chan *calculator.Opportunity, 32),
	}
}

func (notify *Notify) Start() {
	notify.wg.Add(1)
	go notify.listen()
}

func (notify *Notify) Commit(opp *calculator.Opportunity) {
	notify.data <- opp
}

func (notify *Notify) listen() {
	defer notify.wg.Done()
	for {
		select {
		case opp := <-notify.data:
			notify.tryNotify(opp)
		case <-notify.ctx.Done():
			return
		}
	}
}

func (notify *Notify) tryNotify(opp *calculator.Opportunity) {
	items := make([]string, 0)
	items = append(items, "opportunity: ")
	items = append(items, fmt.Sprintf("id: %d;", opp.Id))
	items = append(items, fmt.Sprintf("time: %s;", opp.Timestamp.Format("2006-01-02 15:04:05")))
	base := notify.env.Token(opp.Route.Start())
	if base != nil {
		items = append(items, fmt.Sprintf("amount: %s %s;", base.AmountUi(opp.AmountIn).StringFixed(4), base.Symbol))
		items = append(items, fmt.Sprintf("net profit: %s %s (%d bps);",
			base.AmountUi(opp.NetProfit).StringFixed(6), base.Symbol, opp.NetProfitBps))
	} else {
		items = append(items, fmt.Sprintf("amount: %d;", opp.AmountIn))
		items = append(items, fmt.Sprintf("net profit: %d (%d bps);", opp.NetProfit, opp.NetProfitBps))
	}
	items = append(items, fmt.Sprintf("confidence: %s;", opp.Confidence.StringFixed(2)))
	amountIn := opp.AmountIn
	for i, hop := range opp.Route {
		items = append(items, fmt.Sprintf("%s:%s(%d)->%s(%d);", hop.Pool.DexName,
			notify.env.Symbol(hop.TokenIn), amountIn,
			notify.env.Symbol(hop.TokenOut), opp.PerHopOutputs[i]))
		amountIn = opp.PerHopOutputs[i]
	}
	notify.dsdk.NotifyText(strings.Join(items, "\n"))
}
