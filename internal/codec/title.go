// Package codec implements the text conventions used to round-trip
// structured portal data through Linear's free-text fields: the suborder
// title grammar, the fenced metadata block, and the scheduled-date line.
// Everything here is pure and must satisfy a round-trip law: decoding an
// encoded value reproduces the value.
package codec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/greenlake/portal/internal/domain/model"
)

// Suborder titles follow "Activate <letters> via <provider>". Only E, G and
// W are valid letters; SEWER and TRASH have no representation in this
// grammar, so suborders for them cannot be synchronized back from titles.
var suborderTitleRe = regexp.MustCompile(`^Activate ([EGW]+) via (.+)$`)

// EncodeSuborderTitle renders a suborder title. It fails for utilities with
// no title letter rather than emitting something the parser would reject.
func EncodeSuborderTitle(utilities []model.Utility, provider string) (string, error) {
	if len(utilities) == 0 {
		return "", fmt.Errorf("encode suborder title: empty utility set")
	}
	if strings.TrimSpace(provider) == "" {
		return "", fmt.Errorf("encode suborder title: empty provider")
	}
	var letters strings.Builder
	for _, u := range utilities {
		c, ok := u.Letter()
		if !ok {
			return "", fmt.Errorf("encode suborder title: no letter for utility %s", u)
		}
		letters.WriteByte(c)
	}
	return fmt.Sprintf("Activate %s via %s", letters.String(), provider), nil
}

// ParseSuborderTitle decodes a suborder title. A title outside the grammar
// returns ok=false; callers treat that as "ignore", not as a failure,
// because out-of-grammar titles are expected for stray issues.
func ParseSuborderTitle(title string) ([]model.Utility, string, bool) {
	m := suborderTitleRe.FindStringSubmatch(title)
	if m == nil {
		return nil, "", false
	}
	letters, provider := m[1], m[2]
	utilities := make([]model.Utility, 0, len(letters))
	for i := 0; i < len(letters); i++ {
		u, ok := model.UtilityFromLetter(letters[i])
		if !ok {
			return nil, "", false
		}
		utilities = append(utilities, u)
	}
	return utilities, provider, true
}
