package dto

import "time"

// OrderRequest is the payload for order create and update.
type OrderRequest struct {
	PropertyCode        string   `json:"property_code" binding:"required"`
	Utilities           []string `json:"utilities" binding:"required"`
	Reason              string   `json:"reason" binding:"required"`
	RequestedFor        *string  `json:"requested_for"`
	SpecialInstructions string   `json:"special_instructions"`
}

// SuborderResponse is the projected suborder view.
type SuborderResponse struct {
	LinearID     string   `json:"linear_id"`
	Utilities    []string `json:"utilities"`
	Provider     string   `json:"provider"`
	ScheduledFor *string  `json:"scheduled_for,omitempty"`
	Status       string   `json:"status"`
}

// OrderResponse is the order view returned by mutating and read endpoints.
// Warnings report secondary effects that failed without failing the
// operation.
type OrderResponse struct {
	ID                  string             `json:"id"`
	LinearID            *string            `json:"linear_id,omitempty"`
	PropertyCode        string             `json:"property_code"`
	Utilities           []string           `json:"utilities"`
	Reason              string             `json:"reason"`
	RequestedFor        *string            `json:"requested_for,omitempty"`
	SpecialInstructions *string            `json:"special_instructions,omitempty"`
	Status              string             `json:"status"`
	CreatedAt           time.Time          `json:"created_at"`
	Suborders           []SuborderResponse `json:"suborders,omitempty"`
	Warnings            []string           `json:"warnings,omitempty"`
}

// ErrorResponse carries the error string for failed operations.
type ErrorResponse struct {
	Error string `json:"error"`
}
