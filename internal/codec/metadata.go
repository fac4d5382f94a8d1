package codec

import (
	"regexp"
	"strings"
)

// MetadataHeader marks a metadata block. OlderMetadataHeader is the header
// an earlier backend wrote; it is still accepted on decode, but new blocks
// always carry the current header.
const (
	MetadataHeader      = "**Portal Data**"
	OlderMetadataHeader = "**Order Data**"
)

const fence = "```"

// nullValue is the sentinel rendering for an absent value.
const nullValue = "null"

// metadataBlockRe extracts the contents of the first fenced block that
// follows either recognized header.
var metadataBlockRe = regexp.MustCompile(
	`(?s)\*\*(?:Portal|Order) Data\*\*\s*\n+` + fence + `[^\n]*\n(.*?)` + fence,
)

// Metadata is an ordered key to value mapping. A nil value renders as the
// "null" sentinel and decodes back to nil, which is what makes the encoding
// round-trip absent fields.
type Metadata struct {
	keys   []string
	values map[string]*string
}

// NewMetadata returns an empty mapping.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]*string)}
}

// Set stores value under key, preserving first-set key order.
func (m *Metadata) Set(key string, value *string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// SetString stores a present value under key.
func (m *Metadata) SetString(key, value string) {
	v := value
	m.Set(key, &v)
}

// Get returns the value for key. A nil value with ok=true means the key is
// present but null.
func (m *Metadata) Get(key string) (*string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (m *Metadata) Keys() []string {
	return m.keys
}

// Len reports the number of keys.
func (m *Metadata) Len() int {
	return len(m.keys)
}

// Encode renders the framed, headered, fenced block. The output always
// decodes back to the same mapping.
func (m *Metadata) Encode() string {
	var b strings.Builder
	b.WriteString("+++ ")
	b.WriteString(MetadataHeader)
	b.WriteString("\n\n")
	b.WriteString(fence)
	b.WriteString("\n")
	for _, key := range m.keys {
		b.WriteString(key)
		b.WriteString(": ")
		if v := m.values[key]; v != nil {
			b.WriteString(*v)
		} else {
			b.WriteString(nullValue)
		}
		b.WriteString("\n")
	}
	b.WriteString(fence)
	b.WriteString("\n\n+++")
	return b.String()
}

// ParseMetadata extracts the first metadata block from free text. Each line
// containing a colon contributes one pair: text before the first colon is
// the key, everything after is the value, both trimmed. The literal "null"
// decodes to an absent value. Lines without a colon are skipped.
func ParseMetadata(text string) (*Metadata, bool) {
	m := metadataBlockRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	meta := NewMetadata()
	for _, line := range strings.Split(m[1], "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		value := strings.TrimSpace(line[idx+1:])
		if value == nullValue {
			meta.Set(key, nil)
		} else {
			meta.SetString(key, value)
		}
	}
	return meta, true
}

// ContainsMetadataBlock reports whether text carries a metadata block under
// either recognized header. Used to locate the metadata comment on an order
// issue.
func ContainsMetadataBlock(text string) bool {
	return strings.Contains(text, MetadataHeader) || strings.Contains(text, OlderMetadataHeader)
}
