package dto

// WebhookRequest is the inbound Linear webhook envelope.
type WebhookRequest struct {
	Type   string       `json:"type"`
	Action string       `json:"action"`
	Data   WebhookIssue `json:"data"`
}

// WebhookIssue is the issue payload inside a webhook delivery. Parent is
// nil when the delivery omits the parent reference.
type WebhookIssue struct {
	ID          string        `json:"id"`
	Identifier  string        `json:"identifier"`
	ProjectID   string        `json:"projectId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Parent      *WebhookRef   `json:"parent"`
	State       *WebhookName  `json:"state"`
	Labels      []WebhookName `json:"labels"`
}

// WebhookRef is a reference-by-id object.
type WebhookRef struct {
	ID string `json:"id"`
}

// WebhookName is a reference-by-name object.
type WebhookName struct {
	Name string `json:"name"`
}
