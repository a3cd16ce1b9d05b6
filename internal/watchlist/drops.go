package watchlist

// EffectiveDrop computes the price decrease attributed to a watched item.
// A server-supplied PriceDrop is authoritative, even when it is zero.
// Otherwise the drop is derived from PreviousPrice - LastPrice, clamped to
// zero when the price was flat or rose, so downstream aggregation never sees
// a negative value. When neither source is available the second return is
// false: unknown is not the same thing as no drop.
func EffectiveDrop(item WatchedItem) (float64, bool) {
	if item.PriceDrop != nil {
		return *item.PriceDrop, true
	}
	if item.PreviousPrice != nil && item.LastPrice != nil {
		diff := *item.PreviousPrice - *item.LastPrice
		if diff > 0 {
			return diff, true
		}
		return 0, true
	}
	return 0, false
}

// WithPositiveDrop filters to items whose effective drop is known and
// strictly positive.
func WithPositiveDrop(items []WatchedItem) []WatchedItem {
	var dropped []WatchedItem
	for _, it := range items {
		if d, ok := EffectiveDrop(it); ok && d > 0 {
			dropped = append(dropped, it)
		}
	}
	return dropped
}

// BiggestDrop returns the item with the largest effective drop among those
// with a positive drop. Ties keep the first item in input order. The second
// return is false when no item has a positive drop.
func BiggestDrop(items []WatchedItem) (WatchedItem, bool) {
	var (
		best     WatchedItem
		bestDrop float64
		found    bool
	)
	for _, it := range items {
		d, ok := EffectiveDrop(it)
		if !ok || d <= 0 {
			continue
		}
		if !found || d > bestDrop {
			best = it
			bestDrop = d
			found = true
		}
	}
	return best, found
}
