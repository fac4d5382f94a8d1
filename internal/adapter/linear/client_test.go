package linear

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(server.URL, "lin_api_test", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client, server
}

func decodeRequest(t *testing.T, r *http.Request) (string, map[string]any) {
	t.Helper()
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	return req.Query, req.Variables
}

func TestNewHTTPClientValidation(t *testing.T) {
	if _, err := NewHTTPClient("::not-a-url", "key", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "key", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	if _, err := NewHTTPClient("https://api.linear.app/graphql", "", testLogger()); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestCreateIssue(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "lin_api_test" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		query, vars := decodeRequest(t, r)
		if !strings.Contains(query, "issueCreate") {
			t.Fatalf("unexpected query %q", query)
		}
		input := vars["input"].(map[string]any)
		if input["teamId"] != "team-1" || input["parentId"] != "parent-1" {
			t.Fatalf("unexpected input %v", input)
		}
		fmt.Fprint(w, `{"data":{"issueCreate":{"success":true,"issue":{
			"id":"issue-9",
			"identifier":"SUB-9",
			"title":"Activate E via ?",
			"description":"body",
			"priority":0,
			"dueDate":null,
			"project":{"id":"proj-suborders"},
			"parent":{"id":"parent-1"},
			"state":{"name":"Todo"},
			"labels":{"nodes":[{"name":"Blocked - Manager"}]}
		}}}}`)
	})

	issue, err := client.CreateIssue(context.Background(), IssueInput{
		TeamID:    "team-1",
		ProjectID: "proj-suborders",
		StateID:   "state-todo",
		Title:     "Activate E via ?",
		ParentID:  "parent-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issue.ID != "issue-9" || issue.Identifier != "SUB-9" {
		t.Fatalf("unexpected issue %+v", issue)
	}
	if issue.ProjectID != "proj-suborders" || issue.ParentID != "parent-1" {
		t.Fatalf("unexpected references %+v", issue)
	}
	if issue.StateName != "Todo" || len(issue.Labels) != 1 || issue.Labels[0] != "Blocked - Manager" {
		t.Fatalf("unexpected state %+v", issue)
	}
}

func TestCreateIssueUnsuccessful(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"issueCreate":{"success":false}}}`)
	})

	if _, err := client.CreateIssue(context.Background(), IssueInput{Title: "x"}); err == nil {
		t.Fatal("expected error for unsuccessful create")
	}
}

func TestUpdateIssueSendsOnlySetFields(t *testing.T) {
	var input map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, vars := decodeRequest(t, r)
		input = vars["input"].(map[string]any)
		fmt.Fprint(w, `{"data":{"issueUpdate":{"success":true}}}`)
	})

	title := "new title"
	if err := client.UpdateIssue(context.Background(), "issue-1", IssueUpdate{Title: &title}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(input) != 1 || input["title"] != "new title" {
		t.Fatalf("unexpected input %v", input)
	}
}

func TestUpdateIssueClearsDueDate(t *testing.T) {
	var input map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, vars := decodeRequest(t, r)
		input = vars["input"].(map[string]any)
		fmt.Fprint(w, `{"data":{"issueUpdate":{"success":true}}}`)
	})

	if err := client.UpdateIssue(context.Background(), "issue-1", IssueUpdate{SetDueDate: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value, present := input["dueDate"]
	if !present || value != nil {
		t.Fatalf("expected explicit null due date, got %v (present=%v)", value, present)
	}
}

func TestUpdateIssueEmptyUpdateSkipsRequest(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty update")
	})

	if err := client.UpdateIssue(context.Background(), "issue-1", IssueUpdate{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGraphQLErrorsSurface(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"rate limited"}]}`)
	})

	_, err := client.GetIssue(context.Background(), "issue-1")
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected graphql error, got %v", err)
	}
}

func TestHTTPStatusErrorsSurface(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	if _, err := client.GetIssue(context.Background(), "issue-1"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestListProjectIssuesPaginates(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, vars := decodeRequest(t, r)
		calls++
		switch calls {
		case 1:
			if _, present := vars["cursor"]; present {
				t.Fatalf("first page must not carry a cursor, got %v", vars)
			}
			fmt.Fprint(w, `{"data":{"issues":{
				"pageInfo":{"hasNextPage":true,"endCursor":"c1"},
				"nodes":[{"id":"issue-1","title":"Activate E via ?"}]
			}}}`)
		case 2:
			if vars["cursor"] != "c1" {
				t.Fatalf("expected cursor c1, got %v", vars["cursor"])
			}
			fmt.Fprint(w, `{"data":{"issues":{
				"pageInfo":{"hasNextPage":false,"endCursor":null},
				"nodes":[{"id":"issue-2","title":"Activate G via Xcel"}]
			}}}`)
		default:
			t.Fatalf("unexpected extra request %d", calls)
		}
	})

	issues, err := client.ListProjectIssues(context.Background(), "proj-suborders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 2 || issues[0].ID != "issue-1" || issues[1].ID != "issue-2" {
		t.Fatalf("unexpected issues %+v", issues)
	}
}

func TestCommentLifecycle(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query, _ := decodeRequest(t, r)
		switch {
		case strings.Contains(query, "commentCreate"):
			fmt.Fprint(w, `{"data":{"commentCreate":{"success":true,"comment":{"id":"c1","body":"hello"}}}}`)
		case strings.Contains(query, "commentUpdate"):
			fmt.Fprint(w, `{"data":{"commentUpdate":{"success":true}}}`)
		default:
			fmt.Fprint(w, `{"data":{"issue":{"comments":{"nodes":[{"id":"c1","body":"hello"}]}}}}`)
		}
	})

	comment, err := client.CreateComment(context.Background(), "issue-1", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.ID != "c1" {
		t.Fatalf("unexpected comment %+v", comment)
	}

	if err := client.UpdateComment(context.Background(), "c1", "updated"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	comments, err := client.ListComments(context.Background(), "issue-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 1 || comments[0].Body != "hello" {
		t.Fatalf("unexpected comments %+v", comments)
	}
}
