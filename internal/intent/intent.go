package intent

// Intent is a structured shopping request extracted from free-text chat by
// the assistant backend. Identity is the ID; a later arrival with the same ID
// replaces the whole record.
type Intent struct {
	ID                string         `json:"id"`
	RawText           string         `json:"raw_text"`
	CanonicalCategory string         `json:"canonical_category,omitempty"`
	Quantity          float64        `json:"quantity"`
	Attributes        map[string]any `json:"attributes,omitempty"`
	Status            string         `json:"status"`
	CreatedAt         string         `json:"created_at,omitempty"`
}
