package test

import (
	"context"
	"fmt"

	"github.com/greenlake/portal/internal/adapter/linear"
)

// IssueUpdateCall stores information about UpdateIssue invocations.
type IssueUpdateCall struct {
	ID     string
	Update linear.IssueUpdate
}

// CommentCall stores information about comment writes.
type CommentCall struct {
	ID   string
	Body string
}

// LinearClientStub records tracker calls and allows overriding each
// operation.
type LinearClientStub struct {
	CreateIssueFn       func(context.Context, linear.IssueInput) (*linear.Issue, error)
	UpdateIssueFn       func(context.Context, string, linear.IssueUpdate) error
	GetIssueFn          func(context.Context, string) (*linear.Issue, error)
	ListProjectIssuesFn func(context.Context, string) ([]linear.Issue, error)
	CreateCommentFn     func(context.Context, string, string) (*linear.Comment, error)
	UpdateCommentFn     func(context.Context, string, string) error
	ListCommentsFn      func(context.Context, string) ([]linear.Comment, error)

	CreatedIssues   []linear.IssueInput
	IssueUpdates    []IssueUpdateCall
	CreatedComments []CommentCall
	UpdatedComments []CommentCall
	Seq             int
}

// CreateIssue records the input and returns an issue with a generated id.
func (s *LinearClientStub) CreateIssue(ctx context.Context, input linear.IssueInput) (*linear.Issue, error) {
	if s.CreateIssueFn != nil {
		return s.CreateIssueFn(ctx, input)
	}
	s.CreatedIssues = append(s.CreatedIssues, input)
	s.Seq++
	return &linear.Issue{
		ID:          fmt.Sprintf("issue-%d", s.Seq),
		Identifier:  fmt.Sprintf("SUB-%d", s.Seq),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		ProjectID:   input.ProjectID,
		ParentID:    input.ParentID,
	}, nil
}

// UpdateIssue records the partial update.
func (s *LinearClientStub) UpdateIssue(ctx context.Context, id string, update linear.IssueUpdate) error {
	if s.UpdateIssueFn != nil {
		return s.UpdateIssueFn(ctx, id, update)
	}
	s.IssueUpdates = append(s.IssueUpdates, IssueUpdateCall{ID: id, Update: update})
	return nil
}

// GetIssue delegates to the override or returns an empty issue.
func (s *LinearClientStub) GetIssue(ctx context.Context, id string) (*linear.Issue, error) {
	if s.GetIssueFn != nil {
		return s.GetIssueFn(ctx, id)
	}
	return &linear.Issue{ID: id}, nil
}

// ListProjectIssues delegates to the override or returns nothing.
func (s *LinearClientStub) ListProjectIssues(ctx context.Context, projectID string) ([]linear.Issue, error) {
	if s.ListProjectIssuesFn != nil {
		return s.ListProjectIssuesFn(ctx, projectID)
	}
	return nil, nil
}

// CreateComment records the comment body.
func (s *LinearClientStub) CreateComment(ctx context.Context, issueID, body string) (*linear.Comment, error) {
	if s.CreateCommentFn != nil {
		return s.CreateCommentFn(ctx, issueID, body)
	}
	s.CreatedComments = append(s.CreatedComments, CommentCall{ID: issueID, Body: body})
	s.Seq++
	return &linear.Comment{ID: fmt.Sprintf("comment-%d", s.Seq), Body: body}, nil
}

// UpdateComment records the replacement body.
func (s *LinearClientStub) UpdateComment(ctx context.Context, commentID, body string) error {
	if s.UpdateCommentFn != nil {
		return s.UpdateCommentFn(ctx, commentID, body)
	}
	s.UpdatedComments = append(s.UpdatedComments, CommentCall{ID: commentID, Body: body})
	return nil
}

// ListComments delegates to the override or returns nothing.
func (s *LinearClientStub) ListComments(ctx context.Context, issueID string) ([]linear.Comment, error) {
	if s.ListCommentsFn != nil {
		return s.ListCommentsFn(ctx, issueID)
	}
	return nil, nil
}
