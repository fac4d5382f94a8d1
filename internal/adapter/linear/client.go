// Package linear implements the outbound GraphQL client for the issue
// tracker. It covers exactly the surface the sync engine needs: issue
// create/update/get, comment create/update/list, and paginated listing of a
// project's issues.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client exposes tracker operations used by the sync engine.
type Client interface {
	CreateIssue(ctx context.Context, input IssueInput) (*Issue, error)
	UpdateIssue(ctx context.Context, id string, update IssueUpdate) error
	GetIssue(ctx context.Context, id string) (*Issue, error)
	ListProjectIssues(ctx context.Context, projectID string) ([]Issue, error)
	CreateComment(ctx context.Context, issueID, body string) (*Comment, error)
	UpdateComment(ctx context.Context, commentID, body string) error
	ListComments(ctx context.Context, issueID string) ([]Comment, error)
}

// Issue mirrors the tracker issue fields the engine reads.
type Issue struct {
	ID          string
	Identifier  string
	Title       string
	Description string
	Priority    int
	DueDate     *string
	ProjectID   string
	ParentID    string
	StateName   string
	Labels      []string
}

// IssueInput carries the required fields for issue creation.
type IssueInput struct {
	TeamID      string
	ProjectID   string
	StateID     string
	Title       string
	Description string
	Priority    int
	DueDate     *string
	ParentID    string
	LabelIDs    []string
}

// IssueUpdate is a partial update; nil fields are left untouched. SetDueDate
// includes the due date in the mutation even when DueDate is nil, which
// clears it on the tracker side.
type IssueUpdate struct {
	Title       *string
	Description *string
	Priority    *int
	DueDate     *string
	SetDueDate  bool
	StateID     *string
}

// Comment is a tracker issue comment.
type Comment struct {
	ID   string
	Body string
}

// HTTPClient implements Client against the Linear GraphQL API.
type HTTPClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a Linear client with a default timeout.
func NewHTTPClient(endpoint, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse linear url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("linear url must be absolute")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("linear api key must be provided")
	}
	return &HTTPClient{
		endpoint: parsed.String(),
		apiKey:   apiKey,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// do executes one GraphQL request and unmarshals the data payload into out.
func (c *HTTPClient) do(ctx context.Context, query string, variables map[string]any, out any) error {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("linear request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("linear: unexpected status %s", resp.Status)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("linear: decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("linear: %s", strings.Join(messages, "; "))
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("linear: decode data: %w", err)
		}
	}
	return nil
}

// issueNode is the wire shape of an issue.
type issueNode struct {
	ID          string   `json:"id"`
	Identifier  string   `json:"identifier"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Priority    float64  `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	Project     *idNode  `json:"project"`
	Parent      *idNode  `json:"parent"`
	State       *named   `json:"state"`
	Labels      *nameSet `json:"labels"`
}

type idNode struct {
	ID string `json:"id"`
}

type named struct {
	Name string `json:"name"`
}

type nameSet struct {
	Nodes []named `json:"nodes"`
}

func (n *issueNode) toIssue() *Issue {
	issue := &Issue{
		ID:         n.ID,
		Identifier: n.Identifier,
		Title:      n.Title,
		Priority:   int(n.Priority),
		DueDate:    n.DueDate,
	}
	if n.Description != nil {
		issue.Description = *n.Description
	}
	if n.Project != nil {
		issue.ProjectID = n.Project.ID
	}
	if n.Parent != nil {
		issue.ParentID = n.Parent.ID
	}
	if n.State != nil {
		issue.StateName = n.State.Name
	}
	if n.Labels != nil {
		for _, l := range n.Labels.Nodes {
			issue.Labels = append(issue.Labels, l.Name)
		}
	}
	return issue
}

const issueFields = `
	id
	identifier
	title
	description
	priority
	dueDate
	project { id }
	parent { id }
	state { name }
	labels { nodes { name } }
`

const createIssueMutation = `
	mutation CreateIssue($input: IssueCreateInput!) {
		issueCreate(input: $input) {
			success
			issue {` + issueFields + `}
		}
	}
`

// CreateIssue creates an issue and returns the tracker's view of it.
func (c *HTTPClient) CreateIssue(ctx context.Context, input IssueInput) (*Issue, error) {
	vars := map[string]any{
		"teamId":      input.TeamID,
		"projectId":   input.ProjectID,
		"stateId":     input.StateID,
		"title":       input.Title,
		"description": input.Description,
		"priority":    input.Priority,
	}
	if input.DueDate != nil {
		vars["dueDate"] = *input.DueDate
	}
	if input.ParentID != "" {
		vars["parentId"] = input.ParentID
	}
	if len(input.LabelIDs) > 0 {
		vars["labelIds"] = input.LabelIDs
	}

	var result struct {
		IssueCreate struct {
			Success bool       `json:"success"`
			Issue   *issueNode `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := c.do(ctx, createIssueMutation, map[string]any{"input": vars}, &result); err != nil {
		return nil, err
	}
	if !result.IssueCreate.Success || result.IssueCreate.Issue == nil {
		return nil, fmt.Errorf("linear: issue create unsuccessful")
	}
	return result.IssueCreate.Issue.toIssue(), nil
}

const updateIssueMutation = `
	mutation UpdateIssue($id: String!, $input: IssueUpdateInput!) {
		issueUpdate(id: $id, input: $input) {
			success
		}
	}
`

// UpdateIssue applies a partial update to an issue.
func (c *HTTPClient) UpdateIssue(ctx context.Context, id string, update IssueUpdate) error {
	input := map[string]any{}
	if update.Title != nil {
		input["title"] = *update.Title
	}
	if update.Description != nil {
		input["description"] = *update.Description
	}
	if update.Priority != nil {
		input["priority"] = *update.Priority
	}
	if update.SetDueDate {
		if update.DueDate != nil {
			input["dueDate"] = *update.DueDate
		} else {
			input["dueDate"] = nil
		}
	}
	if update.StateID != nil {
		input["stateId"] = *update.StateID
	}
	if len(input) == 0 {
		return nil
	}

	var result struct {
		IssueUpdate struct {
			Success bool `json:"success"`
		} `json:"issueUpdate"`
	}
	if err := c.do(ctx, updateIssueMutation, map[string]any{"id": id, "input": input}, &result); err != nil {
		return err
	}
	if !result.IssueUpdate.Success {
		return fmt.Errorf("linear: issue update unsuccessful")
	}
	return nil
}

const getIssueQuery = `
	query GetIssue($id: String!) {
		issue(id: $id) {` + issueFields + `}
	}
`

// GetIssue fetches one issue by id.
func (c *HTTPClient) GetIssue(ctx context.Context, id string) (*Issue, error) {
	var result struct {
		Issue *issueNode `json:"issue"`
	}
	if err := c.do(ctx, getIssueQuery, map[string]any{"id": id}, &result); err != nil {
		return nil, err
	}
	if result.Issue == nil {
		return nil, fmt.Errorf("linear: issue %s not found", id)
	}
	return result.Issue.toIssue(), nil
}

const listProjectIssuesQuery = `
	query ProjectIssues($projectId: ID!, $cursor: String) {
		issues(
			first: 100
			after: $cursor
			filter: { project: { id: { eq: $projectId } } }
		) {
			pageInfo {
				hasNextPage
				endCursor
			}
			nodes {` + issueFields + `}
		}
	}
`

// ListProjectIssues pages through every issue in a project.
func (c *HTTPClient) ListProjectIssues(ctx context.Context, projectID string) ([]Issue, error) {
	var issues []Issue
	var cursor *string
	for {
		var result struct {
			Issues struct {
				PageInfo struct {
					HasNextPage bool    `json:"hasNextPage"`
					EndCursor   *string `json:"endCursor"`
				} `json:"pageInfo"`
				Nodes []issueNode `json:"nodes"`
			} `json:"issues"`
		}
		vars := map[string]any{"projectId": projectID}
		if cursor != nil {
			vars["cursor"] = *cursor
		}
		if err := c.do(ctx, listProjectIssuesQuery, vars, &result); err != nil {
			return nil, err
		}
		for i := range result.Issues.Nodes {
			issues = append(issues, *result.Issues.Nodes[i].toIssue())
		}
		if !result.Issues.PageInfo.HasNextPage {
			return issues, nil
		}
		cursor = result.Issues.PageInfo.EndCursor
	}
}

const createCommentMutation = `
	mutation CreateComment($input: CommentCreateInput!) {
		commentCreate(input: $input) {
			success
			comment { id body }
		}
	}
`

// CreateComment attaches a comment to an issue.
func (c *HTTPClient) CreateComment(ctx context.Context, issueID, body string) (*Comment, error) {
	var result struct {
		CommentCreate struct {
			Success bool     `json:"success"`
			Comment *Comment `json:"comment"`
		} `json:"commentCreate"`
	}
	vars := map[string]any{"input": map[string]any{"issueId": issueID, "body": body}}
	if err := c.do(ctx, createCommentMutation, vars, &result); err != nil {
		return nil, err
	}
	if !result.CommentCreate.Success || result.CommentCreate.Comment == nil {
		return nil, fmt.Errorf("linear: comment create unsuccessful")
	}
	return result.CommentCreate.Comment, nil
}

const updateCommentMutation = `
	mutation UpdateComment($id: String!, $input: CommentUpdateInput!) {
		commentUpdate(id: $id, input: $input) {
			success
		}
	}
`

// UpdateComment replaces a comment's body.
func (c *HTTPClient) UpdateComment(ctx context.Context, commentID, body string) error {
	var result struct {
		CommentUpdate struct {
			Success bool `json:"success"`
		} `json:"commentUpdate"`
	}
	vars := map[string]any{"id": commentID, "input": map[string]any{"body": body}}
	if err := c.do(ctx, updateCommentMutation, vars, &result); err != nil {
		return err
	}
	if !result.CommentUpdate.Success {
		return fmt.Errorf("linear: comment update unsuccessful")
	}
	return nil
}

const listCommentsQuery = `
	query IssueComments($id: String!) {
		issue(id: $id) {
			comments {
				nodes { id body }
			}
		}
	}
`

// ListComments returns an issue's comments.
func (c *HTTPClient) ListComments(ctx context.Context, issueID string) ([]Comment, error) {
	var result struct {
		Issue *struct {
			Comments struct {
				Nodes []Comment `json:"nodes"`
			} `json:"comments"`
		} `json:"issue"`
	}
	if err := c.do(ctx, listCommentsQuery, map[string]any{"id": issueID}, &result); err != nil {
		return nil, err
	}
	if result.Issue == nil {
		return nil, fmt.Errorf("linear: issue %s not found", issueID)
	}
	return result.Issue.Comments.Nodes, nil
}
