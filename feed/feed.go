// Package feed delivers pool reserve snapshots from an external price/pool
// collaborator. The detection core never fetches anything itself; snapshots
// are complete before a scan cycle starts.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/arbscan/solana-arbscan/market"
)

type Source interface {
	Start() error
	Stop() error
	Snapshots() <-chan *market.Snapshot
}

// HttpSource polls a JSON endpoint for the current pool set at a fixed
// cadence and pushes each snapshot on its channel. A slow consumer drops
// snapshots instead of backing up the poller; only fresh reserves are worth
// scanning.
type HttpSource struct {
	ctx       context.Context
	url       string
	interval  time.Duration
	client    *http.Client
	snapshots chan *market.Snapshot
	logger    *log.Logger
	wg        sync.WaitGroup
	cancel    context.CancelFunc
}

func NewHttpSource(ctx context.Context, url string, interval time.Duration, logger *log.Logger) *HttpSource {
	ctx, cancel := context.WithCancel(ctx)
	return &HttpSource{
		ctx:      ctx,
		cancel:   cancel,
		url:      url,
		interval: interval,
		client: &http.Client{
			Timeout: 3 * time.Second,
		},
		snapshots: make(chan *market.Snapshot, 1),
		logger:    logger,
	}
}

func (s *HttpSource) Start() error {
	s.wg.Add(1)
	go s.poll()
	return nil
}

func (s *HttpSource) Stop() error {
	s.cancel()
	s.wg.Wait()
	return nil
}

func (s *HttpSource) Snapshots() <-chan *market.Snapshot {
	return s.snapshots
}

func (s *HttpSource) poll() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			snapshot, err := s.fetch()
			if err != nil {
				s.logger.Printf("feed fetch err: %v", err)
				continue
			}
			select {
			case s.snapshots <- snapshot:
			default:
				s.logger.Printf("feed: consumer busy, snapshot for slot %d dropped", snapshot.Slot)
			}
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *HttpSource) fetch() (*market.Snapshot, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accepts", "application/json")
	resp, err := s.client.Do(req.WithContext(s.ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("response status code: %d", resp.StatusCode)
	}
	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	snapshot := &market.Snapshot{}
	if err := json.Unmarshal(respBody, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}
