package networkdetect

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/arbscan/solana-arbscan/config"
	"github.com/arbscan/solana-arbscan/dingsdk"
	"github.com/arbscan/solana-arbscan/utils"
	"github.com/go-ping/ping"
)

// window is how many latency samples the rolling average keeps.
const window = 300

// NetworkDetector pings the pool feed host. Stale pool reserves make every
// profitability verdict wrong, so persistent high latency is worth an alert.
type NetworkDetector struct {
	host   string
	ttl    []int64
	avg    []int64
	pinger *ping.Pinger
	logger *log.Logger
	dsdk   *dingsdk.DingSdk
}

func NewNetworkDetector(feedUrl string, dsdk *dingsdk.DingSdk) *NetworkDetector {
	host := feedUrl
	if u, err := url.Parse(feedUrl); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	logger := utils.NewLog(config.LogPath, config.NetworkLog)
	nd := &NetworkDetector{
		host:   host,
		ttl:    make([]int64, 0),
		avg:    make([]int64, 0),
		logger: logger,
		dsdk:   dsdk,
	}
	return nd
}

func (nd *NetworkDetector) ping() {
	pinger, err := ping.NewPinger(nd.host)
	if err != nil {
		nd.logger.Printf("pinger init err: %v", err)
		return
	}
	nd.pinger = pinger
	notifyTime := time.Now().Unix()
	pinger.OnRecv = func(pkt *ping.Packet) {
		nd.ttl = append(nd.ttl, pkt.Rtt.Nanoseconds())
		sum := int64(0)
		for _, x := range nd.ttl {
			sum += x
		}
		avg := sum / int64(len(nd.ttl))
		nd.avg = append(nd.avg, avg)
		if len(nd.ttl) > window {
			nd.ttl = nd.ttl[len(nd.ttl)-window:]
		}
		if len(nd.avg) > window {
			nd.avg = nd.avg[len(nd.avg)-window:]
		}
		isLow := false
		for _, avgx := range nd.avg {
			if avgx < 20*1000*1000 {
				isLow = true
			}
		}
		nd.logger.Printf("feed ping ttl: %d", avg/1000000)
		if !isLow {
			now := time.Now().Unix()
			if now-notifyTime > 5*60 {
				nd.notify(nd.avg[len(nd.avg)-1])
				notifyTime = now
			}
		}
	}
	pinger.Run()
}

func (nd *NetworkDetector) notify(ttl int64) {
	ttStr := time.Now().Format("2006-01-02 15:04:05")
	nd.dsdk.NotifyText(fmt.Sprintf("pool feed network ttl: %d;\ntime: %s;", ttl/1000000, ttStr))
}

func (nd *NetworkDetector) Start() {
	go nd.ping()
}

func (nd *NetworkDetector) Stop() {
	if nd.pinger != nil {
		nd.pinger.Stop()
	}
}
