package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/greenlake/portal/internal/adapter/linear"
	"github.com/greenlake/portal/internal/domain/model"
	"github.com/greenlake/portal/internal/usecase"
)

// PortalFacade exposes the subset of application functionality required by the worker.
type PortalFacade interface {
	SuborderIssues(ctx context.Context) ([]linear.Issue, error)
	IngestEvent(ctx context.Context, event model.LinearEvent) (usecase.Outcome, error)
}

// SuborderRefresher periodically re-reads the suborders project and replays
// each issue through the ingest pipeline, catching up on webhook deliveries
// that were lost or rejected.
type SuborderRefresher struct {
	facade   PortalFacade
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSuborderRefresher constructs the refresh worker. A non-positive
// interval disables it.
func NewSuborderRefresher(facade PortalFacade, interval time.Duration, logger *slog.Logger) *SuborderRefresher {
	return &SuborderRefresher{
		facade:   facade,
		interval: interval,
		logger:   logger,
	}
}

// Start launches background refreshing.
func (r *SuborderRefresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("suborder refresher disabled")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.loop(runCtx)
}

// Stop waits for the refresh loop to finish.
func (r *SuborderRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *SuborderRefresher) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *SuborderRefresher) refresh(ctx context.Context) {
	issues, err := r.facade.SuborderIssues(ctx)
	if err != nil {
		r.logger.Error("list suborder issues failed", slog.String("error", err.Error()))
		return
	}

	var applied, ignored, failed int
	for _, issue := range issues {
		if ctx.Err() != nil {
			return
		}
		outcome, err := r.facade.IngestEvent(ctx, issueEvent(issue))
		switch {
		case err != nil:
			failed++
			r.logger.Error("refresh suborder failed",
				slog.String("linear_id", issue.ID),
				slog.String("error", err.Error()),
			)
		case outcome.Status == usecase.OutcomeIgnored:
			ignored++
		default:
			applied++
		}
	}

	r.logger.Info("suborder refresh completed",
		slog.Int("applied", applied),
		slog.Int("ignored", ignored),
		slog.Int("failed", failed),
	)
}

// issueEvent synthesizes an update event equivalent to what the webhook
// would have delivered for the issue.
func issueEvent(issue linear.Issue) model.LinearEvent {
	return model.LinearEvent{
		Type:   model.EventTypeIssue,
		Action: model.EventActionUpdate,
		Issue: model.IssuePayload{
			ID:          issue.ID,
			Identifier:  issue.Identifier,
			ProjectID:   issue.ProjectID,
			Title:       issue.Title,
			Description: issue.Description,
			ParentID:    issue.ParentID,
			StateName:   issue.StateName,
			Labels:      issue.Labels,
		},
	}
}
