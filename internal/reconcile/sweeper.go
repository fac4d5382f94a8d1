// Package reconcile implements the drift sweep: it recomputes the expected
// tracker representation of each mirrored order, diffs it against the live
// issue, and applies fixes only after a human confirms each one.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/greenlake/portal/internal/adapter/linear"
	"github.com/greenlake/portal/internal/codec"
	domainerrors "github.com/greenlake/portal/internal/domain/errors"
	"github.com/greenlake/portal/internal/domain/model"
	"github.com/greenlake/portal/internal/domain/repository"
)

// Decision is the operator's verdict on one drifted issue.
type Decision int

const (
	DecisionSkip Decision = iota
	DecisionApply
	DecisionQuit
)

// DiffField describes one field that differs between the expected and the
// live issue.
type DiffField struct {
	Name     string
	Expected string
	Actual   string
}

// Item is one drifted issue awaiting a decision.
type Item struct {
	OrderID    string
	Identifier string
	Fields     []DiffField
}

// Prompter asks the operator what to do with a drifted issue.
type Prompter interface {
	Decide(item Item) (Decision, error)
}

// Summary reports what a sweep did.
type Summary struct {
	Examined int
	Drifted  int
	Updated  int
	Skipped  int
}

// Sweeper walks mirrored orders and reconciles their tracker issues.
type Sweeper struct {
	orders     repository.OrderRepository
	properties repository.PropertyRepository
	client     linear.Client
	prompter   Prompter
	logger     *slog.Logger
}

// NewSweeper constructs Sweeper.
func NewSweeper(orders repository.OrderRepository, properties repository.PropertyRepository, client linear.Client, prompter Prompter, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		orders:     orders,
		properties: properties,
		client:     client,
		prompter:   prompter,
		logger:     logger,
	}
}

// Run performs one sweep. It stops early when the operator quits or the
// context is cancelled; already applied fixes stay applied.
func (s *Sweeper) Run(ctx context.Context) (*Summary, error) {
	mirrored, err := s.orders.ListMirrored(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mirrored orders: %w", err)
	}

	summary := &Summary{}
	for i := range mirrored {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		order := &mirrored[i]

		quit, err := s.reconcileOrder(ctx, order, summary)
		if err != nil {
			return summary, err
		}
		if quit {
			break
		}
	}
	return summary, nil
}

func (s *Sweeper) reconcileOrder(ctx context.Context, order *model.Order, summary *Summary) (quit bool, err error) {
	property, err := s.properties.GetByCode(ctx, order.PropertyCode)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			s.logger.Warn("property missing, skipping order",
				slog.String("order_id", order.ID),
				slog.String("property_code", order.PropertyCode),
			)
			return false, nil
		}
		return false, fmt.Errorf("load property %s: %w", order.PropertyCode, err)
	}

	issue, err := s.client.GetIssue(ctx, *order.LinearID)
	if err != nil {
		return false, fmt.Errorf("get issue for order %s: %w", order.ID, err)
	}
	summary.Examined++

	issueFields, update := diffIssue(order, property, issue)

	expectedMeta := codec.OrderMetadata(order).Encode()
	metaComment, err := s.findMetadataComment(ctx, issue.ID)
	if err != nil {
		return false, fmt.Errorf("list comments for order %s: %w", order.ID, err)
	}

	fields := issueFields
	metaDrifted := metaComment == nil || strings.TrimSpace(metaComment.Body) != strings.TrimSpace(expectedMeta)
	if metaDrifted {
		actual := "(none)"
		if metaComment != nil {
			actual = metaComment.Body
		}
		fields = append(fields, DiffField{Name: "metadata", Expected: expectedMeta, Actual: actual})
	}

	if len(fields) == 0 {
		return false, nil
	}
	summary.Drifted++

	decision, err := s.prompter.Decide(Item{
		OrderID:    order.ID,
		Identifier: issue.Identifier,
		Fields:     fields,
	})
	if err != nil {
		return false, fmt.Errorf("prompt for order %s: %w", order.ID, err)
	}

	switch decision {
	case DecisionApply:
		if len(issueFields) > 0 {
			if err := s.client.UpdateIssue(ctx, issue.ID, update); err != nil {
				return false, fmt.Errorf("update issue for order %s: %w", order.ID, err)
			}
		}
		if metaDrifted {
			if err := s.repairMetadataComment(ctx, issue.ID, metaComment, expectedMeta); err != nil {
				return false, fmt.Errorf("repair metadata for order %s: %w", order.ID, err)
			}
		}
		summary.Updated++
		s.logger.Info("issue reconciled",
			slog.String("order_id", order.ID),
			slog.String("identifier", issue.Identifier),
		)
	case DecisionQuit:
		summary.Skipped++
		return true, nil
	default:
		summary.Skipped++
	}
	return false, nil
}

// findMetadataComment returns the issue's metadata comment, or nil when the
// issue carries none (the create-time comment is best-effort and may have
// been lost).
func (s *Sweeper) findMetadataComment(ctx context.Context, issueID string) (*linear.Comment, error) {
	comments, err := s.client.ListComments(ctx, issueID)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if codec.ContainsMetadataBlock(comments[i].Body) {
			return &comments[i], nil
		}
	}
	return nil, nil
}

// repairMetadataComment rewrites the stale metadata comment, or creates one
// when the issue has none.
func (s *Sweeper) repairMetadataComment(ctx context.Context, issueID string, existing *linear.Comment, body string) error {
	if existing != nil {
		return s.client.UpdateComment(ctx, existing.ID, body)
	}
	_, err := s.client.CreateComment(ctx, issueID, body)
	return err
}

// diffIssue compares the expected issue fields against the live ones and
// builds a partial update covering only the drifted fields. Descriptions are
// compared with surrounding whitespace stripped, since the tracker trims
// trailing newlines on save.
func diffIssue(order *model.Order, property *model.Property, issue *linear.Issue) ([]DiffField, linear.IssueUpdate) {
	var fields []DiffField
	var update linear.IssueUpdate

	title := codec.OrderTitle(property.Street, order.Reason, order.Utilities)
	if issue.Title != title {
		fields = append(fields, DiffField{Name: "title", Expected: title, Actual: issue.Title})
		update.Title = &title
	}

	description := codec.OrderDescription(property, order.Utilities)
	if strings.TrimSpace(issue.Description) != strings.TrimSpace(description) {
		fields = append(fields, DiffField{Name: "description", Expected: description, Actual: issue.Description})
		update.Description = &description
	}

	priority := codec.OrderPriority(order.Urgent())
	if issue.Priority != priority {
		fields = append(fields, DiffField{
			Name:     "priority",
			Expected: fmt.Sprintf("%d", priority),
			Actual:   fmt.Sprintf("%d", issue.Priority),
		})
		update.Priority = &priority
	}

	dueDate := order.DueDate()
	if !equalDueDates(issue.DueDate, dueDate) {
		fields = append(fields, DiffField{
			Name:     "due date",
			Expected: dueDateString(dueDate),
			Actual:   dueDateString(issue.DueDate),
		})
		update.DueDate = dueDate
		update.SetDueDate = true
	}

	return fields, update
}

func equalDueDates(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func dueDateString(d *string) string {
	if d == nil {
		return "(none)"
	}
	return *d
}
