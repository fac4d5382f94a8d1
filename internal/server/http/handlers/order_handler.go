package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/greenlake/portal/internal/domain/errors"
	"github.com/greenlake/portal/internal/domain/model"
	"github.com/greenlake/portal/internal/server/http/dto"
	"github.com/greenlake/portal/internal/usecase"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	input, ok := bindOrderInput(c)
	if !ok {
		return
	}
	result, err := h.facade.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(result.Order, nil, result.Warnings))
}

// Update handles PUT /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	input, ok := bindOrderInput(c)
	if !ok {
		return
	}
	result, err := h.facade.UpdateOrder(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(result.Order, nil, result.Warnings))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	result, err := h.facade.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(result.Order, nil, result.Warnings))
}

// Uncancel handles POST /api/orders/:id/uncancel.
func (h *OrderHandler) Uncancel(c *gin.Context) {
	result, err := h.facade.UncancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(result.Order, nil, result.Warnings))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	view, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(&view.Order, view.Suborders, nil))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	views, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]dto.OrderResponse, 0, len(views))
	for i := range views {
		response = append(response, toOrderResponse(&views[i].Order, views[i].Suborders, nil))
	}
	c.JSON(http.StatusOK, response)
}

func bindOrderInput(c *gin.Context) (usecase.OrderInput, bool) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return usecase.OrderInput{}, false
	}

	input := usecase.OrderInput{
		PropertyCode:        req.PropertyCode,
		Reason:              model.Reason(req.Reason),
		SpecialInstructions: req.SpecialInstructions,
	}
	for _, u := range req.Utilities {
		input.Utilities = append(input.Utilities, model.Utility(u))
	}
	if req.RequestedFor != nil && *req.RequestedFor != "" {
		t, err := time.Parse(model.DateLayout, *req.RequestedFor)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "requested_for must be YYYY-MM-DD"})
			return usecase.OrderInput{}, false
		}
		input.RequestedFor = &t
	}
	return input, true
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrNotFound):
		status = http.StatusNotFound
	case domainErrors.IsRemote(err):
		status = http.StatusBadGateway
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func toOrderResponse(order *model.Order, suborders []model.Suborder, warnings []string) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:                  order.ID,
		LinearID:            order.LinearID,
		PropertyCode:        order.PropertyCode,
		Reason:              string(order.Reason),
		RequestedFor:        order.DueDate(),
		SpecialInstructions: order.SpecialInstructions,
		Status:              string(order.Status),
		CreatedAt:           order.CreatedAt,
		Warnings:            warnings,
	}
	for _, u := range order.Utilities {
		resp.Utilities = append(resp.Utilities, string(u))
	}
	for _, sub := range suborders {
		resp.Suborders = append(resp.Suborders, toSuborderResponse(sub))
	}
	return resp
}

func toSuborderResponse(sub model.Suborder) dto.SuborderResponse {
	resp := dto.SuborderResponse{
		LinearID: sub.LinearID,
		Provider: sub.Provider,
		Status:   string(sub.Status),
	}
	for _, u := range sub.Utilities {
		resp.Utilities = append(resp.Utilities, string(u))
	}
	if sub.ScheduledFor != nil {
		s := sub.ScheduledFor.Format(model.DateLayout)
		resp.ScheduledFor = &s
	}
	return resp
}
