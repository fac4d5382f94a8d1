package model

// Linear webhook event fields the ingestion pipeline cares about.
const (
	EventTypeIssue    = "Issue"
	EventActionCreate = "create"
	EventActionUpdate = "update"
	EventActionRemove = "remove"
)

// IssuePayload carries the issue fields delivered with a webhook event or
// fetched during a refresh. ParentID is empty when the delivery omits the
// parent reference, which some update events do.
type IssuePayload struct {
	ID          string
	Identifier  string
	ProjectID   string
	Title       string
	Description string
	ParentID    string
	StateName   string
	Labels      []string
}

// LinearEvent is a single inbound change notification. Delivery is
// at-least-once and possibly out of order.
type LinearEvent struct {
	Type   string
	Action string
	Issue  IssuePayload
}
