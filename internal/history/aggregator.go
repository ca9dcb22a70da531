// Package history fetches the two stored collections, vitals submissions and
// chat conversations, concurrently and joins them for display.
package history

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/juliet3570/afyajamii-client/internal/gateway"
	"github.com/juliet3570/afyajamii-client/internal/platform/logger"
	"github.com/juliet3570/afyajamii-client/internal/session"
)

// DefaultLimit is the page size used when the caller does not supply one.
const DefaultLimit = 10

var ErrNotAuthenticated = errors.New("not authenticated, please log in again")

// Fetcher is the slice of the gateway the aggregator needs.
type Fetcher interface {
	VitalsHistory(ctx context.Context, token string, limit int) ([]gateway.VitalsRecord, error)
	ConversationsHistory(ctx context.Context, token string, limit int) ([]gateway.ConversationRecord, error)
}

// JoinPolicy names how the two independent fetch results are combined.
type JoinPolicy int

const (
	// JoinFailFast reports a single failure and surfaces neither list when
	// either fetch fails.
	JoinFailFast JoinPolicy = iota

	// JoinBestEffort surfaces whichever list succeeded and reports the other
	// fetch's error per-list in the Result.
	JoinBestEffort
)

// Result is one aggregated history page. Both lists arrive most-recent first.
// The per-list errors are set only under JoinBestEffort.
type Result struct {
	Vitals        []gateway.VitalsRecord
	Conversations []gateway.ConversationRecord

	VitalsErr        error
	ConversationsErr error
}

type Aggregator struct {
	api      Fetcher
	sessions *session.Store
	policy   JoinPolicy
	log      *logger.Logger
}

func NewAggregator(api Fetcher, sessions *session.Store, policy JoinPolicy, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{api: api, sessions: sessions, policy: policy, log: log}
}

// Load fetches both collections concurrently with the same limit. The two
// fetches write to disjoint fields, so no lock is needed beyond the join
// itself.
func (a *Aggregator) Load(ctx context.Context, limit int) (*Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	token := a.sessions.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	if a.policy == JoinBestEffort {
		return a.loadBestEffort(ctx, token, limit), nil
	}
	return a.loadFailFast(ctx, token, limit)
}

func (a *Aggregator) loadFailFast(ctx context.Context, token string, limit int) (*Result, error) {
	var res Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.Vitals, err = a.api.VitalsHistory(gctx, token, limit)
		return err
	})
	g.Go(func() error {
		var err error
		res.Conversations, err = a.api.ConversationsHistory(gctx, token, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.log.Debug("history loaded", "vitals", len(res.Vitals), "conversations", len(res.Conversations))
	return &res, nil
}

func (a *Aggregator) loadBestEffort(ctx context.Context, token string, limit int) *Result {
	var res Result

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res.Vitals, res.VitalsErr = a.api.VitalsHistory(ctx, token, limit)
	}()
	go func() {
		defer wg.Done()
		res.Conversations, res.ConversationsErr = a.api.ConversationsHistory(ctx, token, limit)
	}()
	wg.Wait()

	if res.VitalsErr != nil {
		a.log.Debug("vitals history failed", "error", res.VitalsErr)
	}
	if res.ConversationsErr != nil {
		a.log.Debug("conversations history failed", "error", res.ConversationsErr)
	}
	return &res
}
