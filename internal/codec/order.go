package codec

import (
	"fmt"
	"strings"
	"time"

	"github.com/greenlake/portal/internal/domain/model"
)

// Linear priorities used for order issues: 1 is urgent, 0 is none.
const (
	PriorityUrgent = 1
	PriorityNone   = 0
)

// Metadata block keys for order issues, in encoding order.
const (
	MetaKeyType                = "type"
	MetaKeyID                  = "id"
	MetaKeyRequestedAt         = "requested_at"
	MetaKeyPropertyCode        = "property_code"
	MetaKeyUtilities           = "utilities"
	MetaKeyReason              = "reason"
	MetaKeyIsUrgent            = "is_urgent"
	MetaKeyRequestedFor        = "requested_for"
	MetaKeySpecialInstructions = "special_instructions"
	MetaKeyOrderID             = "order_id"
	MetaKeyScheduledFor        = "scheduled_for"
)

// OrderTitle composes the mirrored issue title from the street address,
// reason display label and first-letter utility abbreviations, e.g.
// "[312 Birchwood Ave] Acquisition (EG)".
func OrderTitle(street string, reason model.Reason, utilities []model.Utility) string {
	return fmt.Sprintf("[%s] %s (%s)", street, reason.Display(), model.AbbrevString(utilities))
}

// OrderPriority maps urgency to a Linear priority.
func OrderPriority(urgent bool) int {
	if urgent {
		return PriorityUrgent
	}
	return PriorityNone
}

// OrderDescription composes the mirrored issue body from the property
// snapshot and requested utilities. Reconciliation recomputes the same text,
// so the rendering must stay deterministic.
func OrderDescription(property *model.Property, utilities []model.Utility) string {
	names := make([]string, 0, len(utilities))
	for _, u := range utilities {
		names = append(names, string(u))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s, %s %s\n\n", property.Street, property.City, property.State, property.Zip)
	fmt.Fprintf(&b, "Property code: %s\n", property.Code)
	fmt.Fprintf(&b, "Utilities: %s", strings.Join(names, ", "))
	return b.String()
}

// OrderMetadata builds the metadata block for an order, with keys in fixed
// order so encodings are comparable.
func OrderMetadata(o *model.Order) *Metadata {
	m := NewMetadata()
	m.SetString(MetaKeyType, "Order")
	m.SetString(MetaKeyID, o.ID)
	m.SetString(MetaKeyRequestedAt, o.CreatedAt.UTC().Format(time.RFC3339))
	m.SetString(MetaKeyPropertyCode, o.PropertyCode)
	m.SetString(MetaKeyUtilities, model.FormatUtilities(o.Utilities))
	m.SetString(MetaKeyReason, string(o.Reason))
	m.SetString(MetaKeyIsUrgent, fmt.Sprintf("%t", o.Urgent()))
	m.Set(MetaKeyRequestedFor, o.DueDate())
	m.Set(MetaKeySpecialInstructions, o.SpecialInstructions)
	return m
}

// SuborderMetadata builds the initial block for a child suborder issue.
// Fields Linear later owns (schedule) start out null.
func SuborderMetadata(orderID string) *Metadata {
	m := NewMetadata()
	m.SetString(MetaKeyType, "Suborder")
	m.SetString(MetaKeyOrderID, orderID)
	m.Set(MetaKeyScheduledFor, nil)
	return m
}
