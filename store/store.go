package store

import (
	"context"
)

// Store persists detected opportunities off the scan path. Writes go through
// a channel so a slow database never stalls a scan cycle.
type Store struct {
	ctx             context.Context
	opportunityChan chan *Opportunity
	dao             *Dao
}

func NewStore(ctx context.Context, url, scheme, user, passwd string) *Store {
	s := &Store{
		ctx:             ctx,
		opportunityChan: make(chan *Opportunity, 64),
	}
	s.dao = NewDao(url, scheme, user, passwd)
	return s
}

func (s *Store) Start() {
	go s.store()
}

func (s *Store) Stop() {

}

func (s *Store) store() {
	for {
		select {
		case opp := <-s.opportunityChan:
			s.dao.SaveOpportunity(opp)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Store) StoreOpportunity(opp *Opportunity) {
	s.opportunityChan <- opp
}

func (s *Store) GetOpportunity(id uint64) ([]*Opportunity, error) {
	return s.dao.SelectOpportunity(id)
}

func (s *Store) GetLatestOpportunities(limit int) ([]*Opportunity, error) {
	return s.dao.SelectLatestOpportunities(limit)
}
