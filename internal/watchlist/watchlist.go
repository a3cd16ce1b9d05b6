package watchlist

import "sort"

// WatchedItem is an item intent the user flagged for price tracking, as
// returned by the watchlist endpoint. Price fields are pointers: a nil price
// means the server has no value, which is different from a value of zero.
type WatchedItem struct {
	ItemID            string   `json:"item_id"`
	RawText           string   `json:"raw_text"`
	CanonicalCategory string   `json:"canonical_category,omitempty"`
	LastPrice         *float64 `json:"last_price,omitempty"`
	PreviousPrice     *float64 `json:"previous_price,omitempty"`
	PriceDrop         *float64 `json:"price_drop,omitempty"`
}

// Tracker owns watched-item membership for the active user. Membership
// reflects the last confirmed server response per item; optimistic local
// updates are transient and corrected when the server answers.
type Tracker struct {
	watched map[string]struct{}
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{watched: make(map[string]struct{})}
}

// IsWatched reports whether the item is currently watched.
func (t *Tracker) IsWatched(itemID string) bool {
	_, ok := t.watched[itemID]
	return ok
}

// SetLocally applies an optimistic membership change without waiting for the
// server, keeping the UI responsive while a toggle request is in flight. The
// caller is expected to either ReconcileToggle on success or SetLocally back
// to the previous value on failure.
func (t *Tracker) SetLocally(itemID string, watched bool) {
	if watched {
		t.watched[itemID] = struct{}{}
	} else {
		delete(t.watched, itemID)
	}
}

// ReconcileToggle applies the server's answer for a toggle. The server value
// always wins over any optimistic guess, including guesses made for the same
// item by a concurrent toggle.
func (t *Tracker) ReconcileToggle(itemID string, serverWatched bool) {
	t.SetLocally(itemID, serverWatched)
}

// LoadSnapshot replaces membership wholesale from a freshly fetched
// watchlist. It is a replacement, not a merge: items absent from ids are
// forgotten.
func (t *Tracker) LoadSnapshot(ids []string) {
	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	t.watched = next
}

// IDs returns the watched item ids, sorted for deterministic rendering.
func (t *Tracker) IDs() []string {
	ids := make([]string, 0, len(t.watched))
	for id := range t.watched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of watched items.
func (t *Tracker) Len() int {
	return len(t.watched)
}
