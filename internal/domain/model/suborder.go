package model

import "time"

// UnassignedProvider is the placeholder provider name for suborders whose
// vendor has not been chosen in Linear yet.
const UnassignedProvider = "?"

// SuborderStatus is derived from a Linear issue's workflow state and labels.
type SuborderStatus string

const (
	SuborderStatusTodo            SuborderStatus = "TODO"
	SuborderStatusInProgress      SuborderStatus = "IN_PROGRESS"
	SuborderStatusBlockedManager  SuborderStatus = "BLOCKED_MANAGER"
	SuborderStatusBlockedProvider SuborderStatus = "BLOCKED_PROVIDER"
	SuborderStatusDone            SuborderStatus = "DONE"
	SuborderStatusCanceled        SuborderStatus = "CANCELED"
	SuborderStatusReturned        SuborderStatus = "RETURNED"
)

// Workflow state and label names the derivation recognizes in Linear.
const (
	StateNameTodo       = "Todo"
	StateNameInProgress = "In Progress"
	StateNameDone       = "Done"
	StateNameCanceled   = "Canceled"

	LabelReturned        = "Returned"
	LabelBlockedManager  = "Blocked - Manager"
	LabelBlockedProvider = "Blocked - Provider"
)

// Suborder is one utility's activation task. Linear owns it; the database
// row is a pure projection of the issue's title, description, state and
// labels, and holds no state of its own.
type Suborder struct {
	LinearID      string
	OrderLinearID string
	Utilities     []Utility
	Provider      string
	ScheduledFor  *time.Time
	Status        SuborderStatus
}

// DeriveSuborderStatus maps a workflow state name and label set to a
// suborder status. Terminal states take precedence over blocked labels, and
// unrecognized state names degrade to TODO rather than failing.
func DeriveSuborderStatus(stateName string, labelNames []string) SuborderStatus {
	if stateName == StateNameDone {
		return SuborderStatusDone
	}
	if stateName == StateNameCanceled {
		if hasLabel(labelNames, LabelReturned) {
			return SuborderStatusReturned
		}
		return SuborderStatusCanceled
	}

	if hasLabel(labelNames, LabelBlockedManager) {
		return SuborderStatusBlockedManager
	}
	if hasLabel(labelNames, LabelBlockedProvider) {
		return SuborderStatusBlockedProvider
	}

	switch stateName {
	case StateNameTodo:
		return SuborderStatusTodo
	case StateNameInProgress:
		return SuborderStatusInProgress
	}
	return SuborderStatusTodo
}

func hasLabel(labels []string, name string) bool {
	for _, l := range labels {
		if l == name {
			return true
		}
	}
	return false
}
