package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/greenlake/portal/internal/adapter/linear"
	"github.com/greenlake/portal/internal/config"
	domainErrors "github.com/greenlake/portal/internal/domain/errors"
	"github.com/greenlake/portal/internal/domain/model"
)

type orderRepoStub struct {
	nextIDFn       func(context.Context, time.Time) (string, error)
	insertFn       func(context.Context, *model.Order) error
	getFn          func(context.Context, string) (*model.Order, error)
	listFn         func(context.Context) ([]model.Order, error)
	listMirroredFn func(context.Context) ([]model.Order, error)
	updateFieldsFn func(context.Context, *model.Order) error
	updateStatusFn func(context.Context, string, model.OrderStatus) error
}

func (s orderRepoStub) NextID(ctx context.Context, day time.Time) (string, error) {
	if s.nextIDFn != nil {
		return s.nextIDFn(ctx, day)
	}
	return day.Format("20060102") + "-001", nil
}

func (s orderRepoStub) Insert(ctx context.Context, order *model.Order) error {
	if s.insertFn != nil {
		return s.insertFn(ctx, order)
	}
	return nil
}

func (s orderRepoStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	panic("not implemented")
}

func (s orderRepoStub) List(ctx context.Context) ([]model.Order, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	panic("not implemented")
}

func (s orderRepoStub) ListMirrored(ctx context.Context) ([]model.Order, error) {
	if s.listMirroredFn != nil {
		return s.listMirroredFn(ctx)
	}
	panic("not implemented")
}

func (s orderRepoStub) UpdateFields(ctx context.Context, order *model.Order) error {
	if s.updateFieldsFn != nil {
		return s.updateFieldsFn(ctx, order)
	}
	return nil
}

func (s orderRepoStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, status)
	}
	return nil
}

type suborderRepoStub struct {
	insertFn      func(context.Context, *model.Suborder) error
	upsertFn      func(context.Context, *model.Suborder) error
	getFn         func(context.Context, string) (*model.Suborder, error)
	listByOrderFn func(context.Context, string) ([]model.Suborder, error)
	deleteFn      func(context.Context, string) error
}

func (s suborderRepoStub) Insert(ctx context.Context, suborder *model.Suborder) error {
	if s.insertFn != nil {
		return s.insertFn(ctx, suborder)
	}
	return nil
}

func (s suborderRepoStub) Upsert(ctx context.Context, suborder *model.Suborder) error {
	if s.upsertFn != nil {
		return s.upsertFn(ctx, suborder)
	}
	return nil
}

func (s suborderRepoStub) Get(ctx context.Context, linearID string) (*model.Suborder, error) {
	if s.getFn != nil {
		return s.getFn(ctx, linearID)
	}
	panic("not implemented")
}

func (s suborderRepoStub) ListByOrder(ctx context.Context, orderLinearID string) ([]model.Suborder, error) {
	if s.listByOrderFn != nil {
		return s.listByOrderFn(ctx, orderLinearID)
	}
	return nil, nil
}

func (s suborderRepoStub) Delete(ctx context.Context, linearID string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, linearID)
	}
	return nil
}

type propertyRepoStub struct {
	getByCodeFn func(context.Context, string) (*model.Property, error)
}

func (s propertyRepoStub) GetByCode(ctx context.Context, code string) (*model.Property, error) {
	if s.getByCodeFn != nil {
		return s.getByCodeFn(ctx, code)
	}
	return nil, domainErrors.ErrNotFound
}

type linearClientStub struct {
	createIssueFn   func(context.Context, linear.IssueInput) (*linear.Issue, error)
	updateIssueFn   func(context.Context, string, linear.IssueUpdate) error
	createCommentFn func(context.Context, string, string) (*linear.Comment, error)
	updateCommentFn func(context.Context, string, string) error
	listCommentsFn  func(context.Context, string) ([]linear.Comment, error)
}

func (s linearClientStub) CreateIssue(ctx context.Context, input linear.IssueInput) (*linear.Issue, error) {
	if s.createIssueFn != nil {
		return s.createIssueFn(ctx, input)
	}
	return &linear.Issue{ID: "issue-1", Title: input.Title}, nil
}

func (s linearClientStub) UpdateIssue(ctx context.Context, id string, update linear.IssueUpdate) error {
	if s.updateIssueFn != nil {
		return s.updateIssueFn(ctx, id, update)
	}
	return nil
}

func (linearClientStub) GetIssue(context.Context, string) (*linear.Issue, error) {
	panic("not implemented")
}

func (linearClientStub) ListProjectIssues(context.Context, string) ([]linear.Issue, error) {
	panic("not implemented")
}

func (s linearClientStub) CreateComment(ctx context.Context, issueID, body string) (*linear.Comment, error) {
	if s.createCommentFn != nil {
		return s.createCommentFn(ctx, issueID, body)
	}
	return &linear.Comment{ID: "comment-1", Body: body}, nil
}

func (s linearClientStub) UpdateComment(ctx context.Context, commentID, body string) error {
	if s.updateCommentFn != nil {
		return s.updateCommentFn(ctx, commentID, body)
	}
	return nil
}

func (s linearClientStub) ListComments(ctx context.Context, issueID string) ([]linear.Comment, error) {
	if s.listCommentsFn != nil {
		return s.listCommentsFn(ctx, issueID)
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Linear: config.Linear{
			TeamID:             "team-1",
			OrdersProjectID:    "proj-orders",
			SubordersProjectID: "proj-suborders",
			TodoStateID:        "state-todo",
			CanceledStateID:    "state-canceled",
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func birchwood() *model.Property {
	return &model.Property{Code: "BW312", Street: "312 Birchwood Ave", City: "Duluth", State: "MN", Zip: "55803"}
}

func knownProperty() propertyRepoStub {
	return propertyRepoStub{getByCodeFn: func(_ context.Context, code string) (*model.Property, error) {
		if code == "BW312" {
			return birchwood(), nil
		}
		return nil, domainErrors.ErrNotFound
	}}
}

func newOrderUseCase(orders orderRepoStub, suborders suborderRepoStub, properties propertyRepoStub, client linearClientStub) *OrderUseCase {
	return NewOrderUseCase(orders, suborders, properties, client, testConfig(), testLogger())
}

func TestOrderUseCaseCreateMirrorsAndPersists(t *testing.T) {
	var created []linear.IssueInput
	var inserted *model.Order
	var projections []*model.Suborder

	client := linearClientStub{createIssueFn: func(_ context.Context, input linear.IssueInput) (*linear.Issue, error) {
		created = append(created, input)
		return &linear.Issue{ID: "issue-" + input.ProjectID, Title: input.Title}, nil
	}}
	orders := orderRepoStub{insertFn: func(_ context.Context, order *model.Order) error {
		inserted = order
		return nil
	}}
	suborders := suborderRepoStub{insertFn: func(_ context.Context, s *model.Suborder) error {
		projections = append(projections, s)
		return nil
	}}

	uc := newOrderUseCase(orders, suborders, knownProperty(), client)
	result, err := uc.Create(context.Background(), OrderInput{
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityElectric, model.UtilityGas},
		Reason:       model.ReasonAcquisition,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}

	if len(created) != 3 {
		t.Fatalf("expected parent plus two children, got %d issues", len(created))
	}
	parent := created[0]
	if parent.Title != "[312 Birchwood Ave] Acquisition (EG)" {
		t.Fatalf("unexpected parent title %q", parent.Title)
	}
	if parent.Priority != 1 || parent.DueDate != nil {
		t.Fatalf("expected urgent parent without due date, got priority %d", parent.Priority)
	}
	if parent.ProjectID != "proj-orders" || parent.StateID != "state-todo" {
		t.Fatalf("unexpected parent routing %+v", parent)
	}
	if created[1].Title != "Activate E via ?" || created[2].Title != "Activate G via ?" {
		t.Fatalf("unexpected child titles %q, %q", created[1].Title, created[2].Title)
	}
	for _, child := range created[1:] {
		if child.ProjectID != "proj-suborders" || child.ParentID != "issue-proj-orders" {
			t.Fatalf("unexpected child routing %+v", child)
		}
	}

	if inserted == nil {
		t.Fatal("expected order to be inserted")
	}
	if inserted.LinearID == nil || *inserted.LinearID != "issue-proj-orders" {
		t.Fatalf("unexpected mirrored id %v", inserted.LinearID)
	}
	if inserted.Status != model.OrderStatusTodo {
		t.Fatalf("unexpected status %s", inserted.Status)
	}
	if len(projections) != 2 {
		t.Fatalf("expected eager projections, got %d", len(projections))
	}
	if projections[0].Provider != model.UnassignedProvider {
		t.Fatalf("unexpected provider %q", projections[0].Provider)
	}
}

func TestOrderUseCaseCreateRejectsUnknownProperty(t *testing.T) {
	uc := newOrderUseCase(orderRepoStub{}, suborderRepoStub{}, propertyRepoStub{}, linearClientStub{
		createIssueFn: func(context.Context, linear.IssueInput) (*linear.Issue, error) {
			t.Fatal("no issue should be created for invalid input")
			return nil, nil
		},
	})

	_, err := uc.Create(context.Background(), OrderInput{
		PropertyCode: "NOPE",
		Utilities:    []model.Utility{model.UtilityGas},
		Reason:       model.ReasonAcquisition,
	})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderUseCaseCreateRejectsWrappedNotFoundProperty(t *testing.T) {
	// Storage may wrap the sentinel; the orchestrator must still see it.
	properties := propertyRepoStub{getByCodeFn: func(_ context.Context, code string) (*model.Property, error) {
		return nil, fmt.Errorf("lookup %s: %w", code, domainErrors.ErrNotFound)
	}}
	uc := newOrderUseCase(orderRepoStub{}, suborderRepoStub{}, properties, linearClientStub{
		createIssueFn: func(context.Context, linear.IssueInput) (*linear.Issue, error) {
			t.Fatal("no issue should be created for invalid input")
			return nil, nil
		},
	})

	_, err := uc.Create(context.Background(), OrderInput{
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityGas},
		Reason:       model.ReasonAcquisition,
	})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderUseCaseCreateRejectsEmptyUtilities(t *testing.T) {
	uc := newOrderUseCase(orderRepoStub{}, suborderRepoStub{}, knownProperty(), linearClientStub{})

	_, err := uc.Create(context.Background(), OrderInput{PropertyCode: "BW312", Reason: model.ReasonAcquisition})
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderUseCaseCreateRejectsUnknownReason(t *testing.T) {
	uc := newOrderUseCase(orderRepoStub{}, suborderRepoStub{}, knownProperty(), linearClientStub{})

	_, err := uc.Create(context.Background(), OrderInput{
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityGas},
		Reason:       "BECAUSE",
	})
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderUseCaseCreateAbortsWhenMirrorFails(t *testing.T) {
	client := linearClientStub{createIssueFn: func(context.Context, linear.IssueInput) (*linear.Issue, error) {
		return nil, errors.New("api down")
	}}
	orders := orderRepoStub{insertFn: func(context.Context, *model.Order) error {
		t.Fatal("order must not be persisted when the mirror fails")
		return nil
	}}

	uc := newOrderUseCase(orders, suborderRepoStub{}, knownProperty(), client)
	_, err := uc.Create(context.Background(), OrderInput{
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityGas},
		Reason:       model.ReasonAcquisition,
	})
	if !domainErrors.IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
}

func TestOrderUseCaseCreateSecondaryFailuresDowngradeToWarnings(t *testing.T) {
	calls := 0
	client := linearClientStub{
		createIssueFn: func(_ context.Context, input linear.IssueInput) (*linear.Issue, error) {
			calls++
			if calls == 1 {
				return &linear.Issue{ID: "parent-1", Title: input.Title}, nil
			}
			return nil, errors.New("child create failed")
		},
		createCommentFn: func(context.Context, string, string) (*linear.Comment, error) {
			return nil, errors.New("comment failed")
		},
	}
	inserted := false
	orders := orderRepoStub{insertFn: func(context.Context, *model.Order) error {
		inserted = true
		return nil
	}}

	uc := newOrderUseCase(orders, suborderRepoStub{}, knownProperty(), client)
	result, err := uc.Create(context.Background(), OrderInput{
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityGas},
		Reason:       model.ReasonAcquisition,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted {
		t.Fatal("expected order to be persisted despite warnings")
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected metadata and suborder warnings, got %v", result.Warnings)
	}
}

func TestOrderUseCaseCreateSkipsUnrepresentableSuborders(t *testing.T) {
	var created []linear.IssueInput
	client := linearClientStub{createIssueFn: func(_ context.Context, input linear.IssueInput) (*linear.Issue, error) {
		created = append(created, input)
		return &linear.Issue{ID: "issue-1", Title: input.Title}, nil
	}}

	uc := newOrderUseCase(orderRepoStub{}, suborderRepoStub{}, knownProperty(), client)
	result, err := uc.Create(context.Background(), OrderInput{
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityElectric, model.UtilitySewer},
		Reason:       model.ReasonAcquisition,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Parent issue plus the electric child only.
	if len(created) != 2 {
		t.Fatalf("expected sewer child to be skipped, got %d issues", len(created))
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "SEWER") {
		t.Fatalf("expected a sewer warning, got %v", result.Warnings)
	}
}

func mirroredOrder() *model.Order {
	linearID := "parent-1"
	return &model.Order{
		ID:           "20240611-004",
		LinearID:     &linearID,
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityElectric},
		Reason:       model.ReasonAcquisition,
		Status:       model.OrderStatusTodo,
		CreatedAt:    time.Date(2024, time.June, 11, 9, 30, 0, 0, time.UTC),
	}
}

func TestOrderUseCaseUpdatePushesRecomputedFields(t *testing.T) {
	var update linear.IssueUpdate
	var changelog []string
	client := linearClientStub{
		updateIssueFn: func(_ context.Context, id string, u linear.IssueUpdate) error {
			if id != "parent-1" {
				t.Fatalf("unexpected issue id %s", id)
			}
			update = u
			return nil
		},
		createCommentFn: func(_ context.Context, _, body string) (*linear.Comment, error) {
			changelog = append(changelog, body)
			return &linear.Comment{ID: "comment-1"}, nil
		},
	}
	var persisted *model.Order
	orders := orderRepoStub{
		getFn:          func(context.Context, string) (*model.Order, error) { return mirroredOrder(), nil },
		updateFieldsFn: func(_ context.Context, o *model.Order) error { persisted = o; return nil },
	}

	requested := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)
	uc := newOrderUseCase(orders, suborderRepoStub{}, knownProperty(), client)
	result, err := uc.Update(context.Background(), "20240611-004", OrderInput{
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityElectric, model.UtilityGas},
		Reason:       model.ReasonMoveOut,
		RequestedFor: &requested,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", result.Warnings)
	}

	if update.Title == nil || *update.Title != "[312 Birchwood Ave] Move-Out (EG)" {
		t.Fatalf("unexpected title %v", update.Title)
	}
	if !update.SetDueDate || update.DueDate == nil || *update.DueDate != "2024-06-20" {
		t.Fatalf("unexpected due date %v", update.DueDate)
	}
	if update.Priority == nil || *update.Priority != 0 {
		t.Fatalf("expected priority cleared, got %v", update.Priority)
	}

	// The metadata comment plus one change-log comment.
	if len(changelog) != 2 {
		t.Fatalf("expected two comments, got %d", len(changelog))
	}
	log := changelog[1]
	if !strings.HasPrefix(log, "Order updated:") {
		t.Fatalf("unexpected change log %q", log)
	}
	for _, field := range []string{"utilities", "requested_for", "reason"} {
		if !strings.Contains(log, field) {
			t.Fatalf("expected %s in change log %q", field, log)
		}
	}
	if strings.Contains(log, "property:") {
		t.Fatalf("property did not change, log %q", log)
	}

	if persisted == nil || persisted.Reason != model.ReasonMoveOut {
		t.Fatalf("expected new values persisted, got %+v", persisted)
	}
}

func TestOrderUseCaseUpdateSyncsExistingMetadataComment(t *testing.T) {
	updatedComments := 0
	client := linearClientStub{
		listCommentsFn: func(context.Context, string) ([]linear.Comment, error) {
			return []linear.Comment{
				{ID: "c1", Body: "just chatter"},
				{ID: "c2", Body: "+++ **Order Data**\n\n```\nid: 20240611-004\n```\n\n+++"},
			}, nil
		},
		updateCommentFn: func(_ context.Context, commentID, _ string) error {
			if commentID != "c2" {
				t.Fatalf("unexpected comment id %s", commentID)
			}
			updatedComments++
			return nil
		},
		createCommentFn: func(_ context.Context, _, body string) (*linear.Comment, error) {
			if strings.Contains(body, "**Portal Data**") {
				t.Fatal("metadata comment must be updated in place, not recreated")
			}
			return &linear.Comment{ID: "c3"}, nil
		},
	}
	orders := orderRepoStub{
		getFn: func(context.Context, string) (*model.Order, error) { return mirroredOrder(), nil },
	}

	uc := newOrderUseCase(orders, suborderRepoStub{}, knownProperty(), client)
	if _, err := uc.Update(context.Background(), "20240611-004", OrderInput{
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityElectric},
		Reason:       model.ReasonAcquisition,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updatedComments != 1 {
		t.Fatalf("expected one comment update, got %d", updatedComments)
	}
}

func TestOrderUseCaseUpdateRejectsUnmirroredOrder(t *testing.T) {
	orders := orderRepoStub{getFn: func(context.Context, string) (*model.Order, error) {
		order := mirroredOrder()
		order.LinearID = nil
		return order, nil
	}}

	uc := newOrderUseCase(orders, suborderRepoStub{}, knownProperty(), linearClientStub{})
	_, err := uc.Update(context.Background(), "20240611-004", OrderInput{
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityElectric},
		Reason:       model.ReasonAcquisition,
	})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderUseCaseUpdateAbortsWhenMirrorFails(t *testing.T) {
	client := linearClientStub{updateIssueFn: func(context.Context, string, linear.IssueUpdate) error {
		return errors.New("api down")
	}}
	orders := orderRepoStub{
		getFn:          func(context.Context, string) (*model.Order, error) { return mirroredOrder(), nil },
		updateFieldsFn: func(context.Context, *model.Order) error { t.Fatal("must not persist"); return nil },
	}

	uc := newOrderUseCase(orders, suborderRepoStub{}, knownProperty(), client)
	_, err := uc.Update(context.Background(), "20240611-004", OrderInput{
		PropertyCode: "BW312",
		Utilities:    []model.Utility{model.UtilityElectric},
		Reason:       model.ReasonAcquisition,
	})
	if !domainErrors.IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
}

func TestOrderUseCaseCancelMovesIssueState(t *testing.T) {
	var movedTo string
	client := linearClientStub{updateIssueFn: func(_ context.Context, id string, u linear.IssueUpdate) error {
		if id != "parent-1" || u.StateID == nil {
			t.Fatalf("unexpected update %s %+v", id, u)
		}
		movedTo = *u.StateID
		return nil
	}}
	var status model.OrderStatus
	orders := orderRepoStub{
		getFn:          func(context.Context, string) (*model.Order, error) { return mirroredOrder(), nil },
		updateStatusFn: func(_ context.Context, _ string, s model.OrderStatus) error { status = s; return nil },
	}

	uc := newOrderUseCase(orders, suborderRepoStub{}, knownProperty(), client)
	result, err := uc.Cancel(context.Background(), "20240611-004")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movedTo != "state-canceled" {
		t.Fatalf("unexpected state %s", movedTo)
	}
	if status != model.OrderStatusCanceled || result.Order.Status != model.OrderStatusCanceled {
		t.Fatalf("unexpected status %s", status)
	}
}

func TestOrderUseCaseUncancelRestoresTodo(t *testing.T) {
	var movedTo string
	client := linearClientStub{updateIssueFn: func(_ context.Context, _ string, u linear.IssueUpdate) error {
		movedTo = *u.StateID
		return nil
	}}
	orders := orderRepoStub{
		getFn: func(context.Context, string) (*model.Order, error) {
			order := mirroredOrder()
			order.Status = model.OrderStatusCanceled
			return order, nil
		},
	}

	uc := newOrderUseCase(orders, suborderRepoStub{}, knownProperty(), client)
	result, err := uc.Uncancel(context.Background(), "20240611-004")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movedTo != "state-todo" {
		t.Fatalf("unexpected state %s", movedTo)
	}
	if result.Order.Status != model.OrderStatusTodo {
		t.Fatalf("unexpected status %s", result.Order.Status)
	}
}

func TestOrderUseCaseCancelUnmirroredOrderOnlyLocal(t *testing.T) {
	client := linearClientStub{updateIssueFn: func(context.Context, string, linear.IssueUpdate) error {
		t.Fatal("no remote call expected for unmirrored order")
		return nil
	}}
	orders := orderRepoStub{getFn: func(context.Context, string) (*model.Order, error) {
		order := mirroredOrder()
		order.LinearID = nil
		return order, nil
	}}

	uc := newOrderUseCase(orders, suborderRepoStub{}, knownProperty(), client)
	if _, err := uc.Cancel(context.Background(), "20240611-004"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrderUseCaseGetIncludesProjections(t *testing.T) {
	orders := orderRepoStub{getFn: func(context.Context, string) (*model.Order, error) { return mirroredOrder(), nil }}
	suborders := suborderRepoStub{listByOrderFn: func(_ context.Context, orderLinearID string) ([]model.Suborder, error) {
		if orderLinearID != "parent-1" {
			t.Fatalf("unexpected parent id %s", orderLinearID)
		}
		return []model.Suborder{{LinearID: "child-1", OrderLinearID: orderLinearID}}, nil
	}}

	uc := newOrderUseCase(orders, suborders, knownProperty(), linearClientStub{})
	view, err := uc.Get(context.Background(), "20240611-004")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Suborders) != 1 || view.Suborders[0].LinearID != "child-1" {
		t.Fatalf("unexpected suborders %v", view.Suborders)
	}
}
