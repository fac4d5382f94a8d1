package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/greenlake/portal/internal/adapter/linear"
	"github.com/greenlake/portal/internal/codec"
	"github.com/greenlake/portal/internal/config"
	domainErrors "github.com/greenlake/portal/internal/domain/errors"
	"github.com/greenlake/portal/internal/domain/model"
	"github.com/greenlake/portal/internal/domain/repository"
)

// OrderInput carries the caller-supplied order fields.
type OrderInput struct {
	PropertyCode        string
	Utilities           []model.Utility
	Reason              model.Reason
	RequestedFor        *time.Time
	SpecialInstructions string
}

// OrderResult is a two-tier outcome: the primary value plus warnings from
// secondary effects that failed without failing the operation (metadata
// comment, child issue creation).
type OrderResult struct {
	Order    *model.Order
	Warnings []string
}

// OrderView pairs an order with its suborder projections.
type OrderView struct {
	Order     model.Order
	Suborders []model.Suborder
}

// OrderUseCase keeps the database order row and its mirrored Linear issue
// (plus child suborder issues) consistent. Every operation runs its remote
// steps sequentially; no transaction spans a remote call.
type OrderUseCase struct {
	orders     repository.OrderRepository
	suborders  repository.SuborderRepository
	properties repository.PropertyRepository
	client     linear.Client
	linear     config.Linear
	logger     *slog.Logger
	now        func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	suborders repository.SuborderRepository,
	properties repository.PropertyRepository,
	client linear.Client,
	cfg *config.Config,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:     orders,
		suborders:  suborders,
		properties: properties,
		client:     client,
		linear:     cfg.Linear,
		logger:     logger,
		now:        time.Now,
	}
}

// validate checks the input before any side effect and returns the resolved
// property plus normalized utilities and special instructions.
func (u *OrderUseCase) validate(ctx context.Context, input OrderInput) (*model.Property, []model.Utility, *string, error) {
	property, err := u.properties.GetByCode(ctx, input.PropertyCode)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("property %s: %w", input.PropertyCode, domainErrors.ErrNotFound)
		}
		return nil, nil, nil, err
	}

	utilities := model.DedupeUtilities(input.Utilities)
	if len(utilities) == 0 {
		return nil, nil, nil, domainErrors.Validation("utilities must not be empty")
	}
	for _, ut := range utilities {
		if _, ok := model.ParseUtility(string(ut)); !ok {
			return nil, nil, nil, domainErrors.Validation("unknown utility %q", ut)
		}
	}
	if _, ok := model.ParseReason(string(input.Reason)); !ok {
		return nil, nil, nil, domainErrors.Validation("unknown reason %q", input.Reason)
	}

	var special *string
	if trimmed := strings.TrimSpace(input.SpecialInstructions); trimmed != "" {
		special = &trimmed
	}
	return property, utilities, special, nil
}

// Create validates the input, mirrors the order to Linear and only then
// persists the order row. If the mirrored issue cannot be created nothing is
// written locally; failures of the metadata comment or child issues
// downgrade to warnings.
func (u *OrderUseCase) Create(ctx context.Context, input OrderInput) (*OrderResult, error) {
	property, utilities, special, err := u.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	now := u.now()
	id, err := u.orders.NextID(ctx, now)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:                  id,
		PropertyCode:        property.Code,
		Utilities:           utilities,
		Reason:              input.Reason,
		RequestedFor:        input.RequestedFor,
		SpecialInstructions: special,
		Status:              model.OrderStatusTodo,
		CreatedAt:           now,
	}

	issue, err := u.client.CreateIssue(ctx, linear.IssueInput{
		TeamID:      u.linear.TeamID,
		ProjectID:   u.linear.OrdersProjectID,
		StateID:     u.linear.TodoStateID,
		Title:       codec.OrderTitle(property.Street, order.Reason, utilities),
		Description: codec.OrderDescription(property, utilities),
		Priority:    codec.OrderPriority(order.Urgent()),
		DueDate:     order.DueDate(),
	})
	if err != nil {
		return nil, domainErrors.Remote("issue create", err)
	}
	order.LinearID = &issue.ID

	result := &OrderResult{Order: order}

	if _, err := u.client.CreateComment(ctx, issue.ID, codec.OrderMetadata(order).Encode()); err != nil {
		u.logger.Warn("metadata comment not attached",
			slog.String("order", order.ID), slog.String("error", err.Error()))
		result.Warnings = append(result.Warnings, fmt.Sprintf("metadata comment not attached: %v", err))
	}

	u.createSuborderIssues(ctx, result, issue.ID, order)

	if err := u.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	return result, nil
}

// createSuborderIssues creates one child issue per requested utility, with
// the unassigned provider placeholder, and eagerly inserts the projection
// row so it is visible before any webhook lands.
func (u *OrderUseCase) createSuborderIssues(ctx context.Context, result *OrderResult, parentIssueID string, order *model.Order) {
	for _, ut := range order.Utilities {
		title, err := codec.EncodeSuborderTitle([]model.Utility{ut}, model.UnassignedProvider)
		if err != nil {
			u.logger.Warn("suborder issue skipped",
				slog.String("order", order.ID), slog.String("utility", string(ut)), slog.String("error", err.Error()))
			result.Warnings = append(result.Warnings, fmt.Sprintf("suborder for %s skipped: %v", ut, err))
			continue
		}

		child, err := u.client.CreateIssue(ctx, linear.IssueInput{
			TeamID:      u.linear.TeamID,
			ProjectID:   u.linear.SubordersProjectID,
			StateID:     u.linear.TodoStateID,
			Title:       title,
			Description: codec.SuborderMetadata(order.ID).Encode(),
			Priority:    codec.PriorityNone,
			ParentID:    parentIssueID,
		})
		if err != nil {
			u.logger.Warn("suborder issue not created",
				slog.String("order", order.ID), slog.String("utility", string(ut)), slog.String("error", err.Error()))
			result.Warnings = append(result.Warnings, fmt.Sprintf("suborder for %s not created: %v", ut, err))
			continue
		}

		projection := &model.Suborder{
			LinearID:      child.ID,
			OrderLinearID: parentIssueID,
			Utilities:     []model.Utility{ut},
			Provider:      model.UnassignedProvider,
			Status:        model.SuborderStatusTodo,
		}
		if err := u.suborders.Insert(ctx, projection); err != nil {
			u.logger.Warn("suborder projection not inserted",
				slog.String("suborder", child.ID), slog.String("error", err.Error()))
			result.Warnings = append(result.Warnings, fmt.Sprintf("suborder projection for %s not inserted: %v", ut, err))
		}
	}
}

// Update re-validates the input, pushes recomputed title, description and
// metadata to the mirrored issue, appends a change-log comment when tracked
// fields changed, then persists the new values.
func (u *OrderUseCase) Update(ctx context.Context, id string, input OrderInput) (*OrderResult, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.LinearID == nil {
		return nil, fmt.Errorf("order %s has no mirrored issue: %w", id, domainErrors.ErrNotFound)
	}

	property, utilities, special, err := u.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	previous := *order
	order.PropertyCode = property.Code
	order.Utilities = utilities
	order.Reason = input.Reason
	order.RequestedFor = input.RequestedFor
	order.SpecialInstructions = special

	title := codec.OrderTitle(property.Street, order.Reason, utilities)
	description := codec.OrderDescription(property, utilities)
	priority := codec.OrderPriority(order.Urgent())
	err = u.client.UpdateIssue(ctx, *order.LinearID, linear.IssueUpdate{
		Title:       &title,
		Description: &description,
		Priority:    &priority,
		DueDate:     order.DueDate(),
		SetDueDate:  true,
	})
	if err != nil {
		return nil, domainErrors.Remote("issue update", err)
	}

	result := &OrderResult{Order: order}

	if err := u.syncMetadataComment(ctx, *order.LinearID, codec.OrderMetadata(order).Encode()); err != nil {
		u.logger.Warn("metadata comment not synced",
			slog.String("order", order.ID), slog.String("error", err.Error()))
		result.Warnings = append(result.Warnings, fmt.Sprintf("metadata comment not synced: %v", err))
	}

	if changes := diffOrders(&previous, order); len(changes) > 0 {
		body := "Order updated:\n" + strings.Join(changes, "\n")
		if _, err := u.client.CreateComment(ctx, *order.LinearID, body); err != nil {
			u.logger.Warn("change-log comment not attached",
				slog.String("order", order.ID), slog.String("error", err.Error()))
			result.Warnings = append(result.Warnings, fmt.Sprintf("change-log comment not attached: %v", err))
		}
	}

	if err := u.orders.UpdateFields(ctx, order); err != nil {
		return nil, err
	}
	return result, nil
}

// syncMetadataComment updates the existing metadata comment in place, or
// creates one when the issue has none.
func (u *OrderUseCase) syncMetadataComment(ctx context.Context, issueID, body string) error {
	comments, err := u.client.ListComments(ctx, issueID)
	if err != nil {
		return err
	}
	for _, c := range comments {
		if codec.ContainsMetadataBlock(c.Body) {
			return u.client.UpdateComment(ctx, c.ID, body)
		}
	}
	_, err = u.client.CreateComment(ctx, issueID, body)
	return err
}

// diffOrders renders "field: old → new" lines for the tracked fields.
func diffOrders(previous, current *model.Order) []string {
	var changes []string
	appendChange := func(field, before, after string) {
		if before != after {
			changes = append(changes, fmt.Sprintf("- %s: %s → %s", field, before, after))
		}
	}
	appendChange("property", previous.PropertyCode, current.PropertyCode)
	appendChange("utilities", model.FormatUtilities(previous.Utilities), model.FormatUtilities(current.Utilities))
	appendChange("requested_for", formatOptionalDate(previous.RequestedFor), formatOptionalDate(current.RequestedFor))
	appendChange("reason", string(previous.Reason), string(current.Reason))
	appendChange("special_instructions", formatOptional(previous.SpecialInstructions), formatOptional(current.SpecialInstructions))
	return changes
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "null"
	}
	return t.Format(model.DateLayout)
}

func formatOptional(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

// Cancel moves the mirrored issue to the Canceled workflow state and marks
// the order canceled. Orders that never got a mirrored issue only change
// locally.
func (u *OrderUseCase) Cancel(ctx context.Context, id string) (*OrderResult, error) {
	return u.setStatus(ctx, id, model.OrderStatusCanceled, u.linear.CanceledStateID, "issue cancel")
}

// Uncancel returns the mirrored issue to the initial Todo state and the
// order to TODO.
func (u *OrderUseCase) Uncancel(ctx context.Context, id string) (*OrderResult, error) {
	return u.setStatus(ctx, id, model.OrderStatusTodo, u.linear.TodoStateID, "issue uncancel")
}

func (u *OrderUseCase) setStatus(ctx context.Context, id string, status model.OrderStatus, stateID, op string) (*OrderResult, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.LinearID != nil {
		if err := u.client.UpdateIssue(ctx, *order.LinearID, linear.IssueUpdate{StateID: &stateID}); err != nil {
			return nil, domainErrors.Remote(op, err)
		}
	}
	if err := u.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status
	return &OrderResult{Order: order}, nil
}

// Get returns one order with its suborder projections.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*OrderView, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &OrderView{Order: *order}
	if order.LinearID != nil {
		if view.Suborders, err = u.suborders.ListByOrder(ctx, *order.LinearID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// List returns all orders, newest first, with suborder projections.
func (u *OrderUseCase) List(ctx context.Context) ([]OrderView, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		view := OrderView{Order: order}
		if order.LinearID != nil {
			if view.Suborders, err = u.suborders.ListByOrder(ctx, *order.LinearID); err != nil {
				return nil, err
			}
		}
		views = append(views, view)
	}
	return views, nil
}
