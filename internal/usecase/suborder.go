package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/greenlake/portal/internal/codec"
	"github.com/greenlake/portal/internal/config"
	domainErrors "github.com/greenlake/portal/internal/domain/errors"
	"github.com/greenlake/portal/internal/domain/model"
	"github.com/greenlake/portal/internal/domain/repository"
)

// Outcome statuses and actions reported by the ingestion pipeline.
const (
	OutcomeOK      = "ok"
	OutcomeIgnored = "ignored"

	ActionUpserted = "upserted"
	ActionDeleted  = "deleted"
)

// Outcome describes what the pipeline did with one event. Malformed input
// is always an "ignored" outcome, never an error: the event source is not
// ours to reject.
type Outcome struct {
	Status   string `json:"status"`
	Action   string `json:"action,omitempty"`
	Reason   string `json:"reason,omitempty"`
	LinearID string `json:"linear_id,omitempty"`
}

func ignored(linearID, reason string) Outcome {
	return Outcome{Status: OutcomeIgnored, Reason: reason, LinearID: linearID}
}

func applied(linearID, action string) Outcome {
	return Outcome{Status: OutcomeOK, Action: action, LinearID: linearID}
}

// SuborderUseCase projects Linear issue events onto the suborders table.
// The projection is pure: the row is a function of the issue's current
// title, description, state and labels, so replays and reordering converge.
type SuborderUseCase struct {
	suborders        repository.SuborderRepository
	subordersProject string
	logger           *slog.Logger
}

// NewSuborderUseCase constructs SuborderUseCase.
func NewSuborderUseCase(suborders repository.SuborderRepository, cfg *config.Config, logger *slog.Logger) *SuborderUseCase {
	return &SuborderUseCase{
		suborders:        suborders,
		subordersProject: cfg.Linear.SubordersProjectID,
		logger:           logger,
	}
}

// ApplyEvent processes one inbound change event. Errors are returned only
// for storage failures, so the delivery can be retried; everything else the
// pipeline cannot act on becomes an "ignored" outcome.
func (u *SuborderUseCase) ApplyEvent(ctx context.Context, event model.LinearEvent) (Outcome, error) {
	if event.Type != model.EventTypeIssue {
		return ignored("", "event type not handled"), nil
	}
	issue := event.Issue
	if issue.ID == "" {
		return ignored("", "missing issue id"), nil
	}
	if issue.ProjectID != "" && issue.ProjectID != u.subordersProject {
		return ignored(issue.ID, "outside suborders project"), nil
	}

	if event.Action == model.EventActionRemove {
		if err := u.suborders.Delete(ctx, issue.ID); err != nil {
			return Outcome{}, err
		}
		return applied(issue.ID, ActionDeleted), nil
	}

	orderLinearID := issue.ParentID
	if orderLinearID == "" {
		// Some update deliveries omit the parent; fall back to what we
		// already know about this issue.
		existing, err := u.suborders.Get(ctx, issue.ID)
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			u.logger.Info("suborder event without parent dropped", slog.String("issue", issue.ID))
			return ignored(issue.ID, "no parent reference"), nil
		case err != nil:
			return Outcome{}, err
		default:
			orderLinearID = existing.OrderLinearID
		}
	}

	utilities, provider, ok := codec.ParseSuborderTitle(issue.Title)
	if !ok {
		u.logger.Info("suborder title not parseable",
			slog.String("issue", issue.ID), slog.String("title", issue.Title))
		return ignored(issue.ID, "title not parseable"), nil
	}

	suborder := &model.Suborder{
		LinearID:      issue.ID,
		OrderLinearID: orderLinearID,
		Utilities:     utilities,
		Provider:      provider,
		Status:        model.DeriveSuborderStatus(issue.StateName, issue.Labels),
	}
	if scheduled, ok := codec.ParseScheduledFor(issue.Description); ok {
		suborder.ScheduledFor = &scheduled
	}

	if err := u.suborders.Upsert(ctx, suborder); err != nil {
		return Outcome{}, err
	}
	return applied(issue.ID, ActionUpserted), nil
}
