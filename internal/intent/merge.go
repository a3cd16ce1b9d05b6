package intent

import "sort"

// Merge folds a batch of incoming intents into the current shopping list.
// Incoming entries always replace an existing entry with the same ID, whole
// record, so re-applying the same batch is idempotent. The result is ordered
// by CreatedAt ascending (lexicographic; ISO-8601 timestamps sort correctly,
// missing timestamps sort first as the empty string).
func Merge(current, incoming []Intent) []Intent {
	if len(incoming) == 0 {
		return current
	}

	byID := make(map[string]Intent, len(current)+len(incoming))
	order := make([]string, 0, len(current)+len(incoming))

	for _, it := range current {
		if _, seen := byID[it.ID]; !seen {
			order = append(order, it.ID)
		}
		byID[it.ID] = it
	}
	for _, it := range incoming {
		if _, seen := byID[it.ID]; !seen {
			order = append(order, it.ID)
		}
		byID[it.ID] = it
	}

	merged := make([]Intent, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}

	// Stable, so equal timestamps keep arrival order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt < merged[j].CreatedAt
	})

	return merged
}
