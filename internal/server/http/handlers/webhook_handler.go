package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenlake/portal/internal/domain/model"
	"github.com/greenlake/portal/internal/server/http/dto"
	"github.com/greenlake/portal/internal/usecase"
)

// WebhookHandler receives Linear change events.
type WebhookHandler struct {
	facade WebhookFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// Receive handles POST /api/webhooks/linear. Malformed payloads are
// acknowledged as ignored, never rejected: the tracker is not ours to push
// back on. Only storage failures return a non-2xx status so delivery is
// retried.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, usecase.Outcome{Status: usecase.OutcomeIgnored, Reason: "malformed payload"})
		return
	}

	outcome, err := h.facade.IngestEvent(c.Request.Context(), toEvent(req))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func toEvent(req dto.WebhookRequest) model.LinearEvent {
	event := model.LinearEvent{
		Type:   req.Type,
		Action: req.Action,
		Issue: model.IssuePayload{
			ID:          req.Data.ID,
			Identifier:  req.Data.Identifier,
			ProjectID:   req.Data.ProjectID,
			Title:       req.Data.Title,
			Description: req.Data.Description,
		},
	}
	if req.Data.Parent != nil {
		event.Issue.ParentID = req.Data.Parent.ID
	}
	if req.Data.State != nil {
		event.Issue.StateName = req.Data.State.Name
	}
	for _, label := range req.Data.Labels {
		event.Issue.Labels = append(event.Issue.Labels, label.Name)
	}
	return event
}
