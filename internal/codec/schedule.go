package codec

import (
	"regexp"
	"time"

	"github.com/greenlake/portal/internal/domain/model"
)

// The scheduled date is a standalone convention, not part of the metadata
// block: a "scheduled_for: YYYY-MM-DD" line anywhere in free text. Any other
// date shape is absent, never an error.
var scheduledForRe = regexp.MustCompile(`scheduled_for:\s*(\d{4}-\d{2}-\d{2})`)

// ParseScheduledFor extracts the scheduled date from free text.
func ParseScheduledFor(text string) (time.Time, bool) {
	m := scheduledForRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(model.DateLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
