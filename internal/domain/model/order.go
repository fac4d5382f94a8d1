package model

import "time"

// DateLayout is the wire format for calendar dates (due dates, scheduled
// dates, requested-for dates).
const DateLayout = "2006-01-02"

// Reason explains why an order was placed.
type Reason string

const (
	ReasonAcquisition Reason = "ACQUISITION"
	ReasonDisposition Reason = "DISPOSITION"
	ReasonMoveOut     Reason = "MOVE_OUT"
	ReasonEviction    Reason = "EVICTION"
	ReasonAbandonment Reason = "ABANDONMENT"
	ReasonOnboarding  Reason = "ONBOARDING"
	ReasonOther       Reason = "OTHER"
)

var reasonDisplay = map[Reason]string{
	ReasonAcquisition: "Acquisition",
	ReasonDisposition: "Disposition",
	ReasonMoveOut:     "Move-Out",
	ReasonEviction:    "Eviction",
	ReasonAbandonment: "Abandonment",
	ReasonOnboarding:  "Onboarding",
	ReasonOther:       "Other",
}

// ParseReason returns the reason for its canonical name.
func ParseReason(s string) (Reason, bool) {
	if _, ok := reasonDisplay[Reason(s)]; ok {
		return Reason(s), true
	}
	return "", false
}

// Display returns the human-facing label for the reason.
func (r Reason) Display() string {
	if label, ok := reasonDisplay[r]; ok {
		return label
	}
	return string(r)
}

// OrderStatus describes the order lifecycle. Transitions are driven by
// explicit cancel/uncancel operations only.
type OrderStatus string

const (
	OrderStatusTodo     OrderStatus = "TODO"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// Order is a work request to change utility service at a property. The
// database owns it; Linear mirrors it as a parent issue.
type Order struct {
	ID                  string
	LinearID            *string
	PropertyCode        string
	Utilities           []Utility
	Reason              Reason
	RequestedFor        *time.Time
	SpecialInstructions *string
	Status              OrderStatus
	CreatedAt           time.Time
	CompletedOn         *time.Time
}

// Urgent reports whether the order has no requested date. Urgent orders map
// to the highest Linear priority and carry no due date.
func (o *Order) Urgent() bool {
	return o.RequestedFor == nil
}

// DueDate returns the requested date in wire format, or nil when urgent.
func (o *Order) DueDate() *string {
	if o.RequestedFor == nil {
		return nil
	}
	s := o.RequestedFor.Format(DateLayout)
	return &s
}
