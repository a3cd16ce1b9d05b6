package plan

import (
	"sort"
	"strings"
)

const waypointSep = " to "

// IsRecommended reports whether key is the plan the backend recommends.
// A missing recommendation, or one pointing at a key not present in Plans,
// means no plan is highlighted: false for every key, never an error.
func IsRecommended(key string, resp *Response) bool {
	if resp == nil || resp.RecommendedPlan == "" {
		return false
	}
	if _, ok := resp.Plans[resp.RecommendedPlan]; !ok {
		return false
	}
	return key == resp.RecommendedPlan
}

// SortedKeys returns the plan keys in lexicographic order so candidate plans
// render in a stable order regardless of map iteration.
func SortedKeys(resp *Response) []string {
	if resp == nil {
		return nil
	}
	keys := make([]string, 0, len(resp.Plans))
	for k := range resp.Plans {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BuildRouteQuery assembles the opaque mapping-service query for a plan's
// route: origin first, then the stores in plan order, then the destination.
// A blank destination defaults to the origin, and the destination leg is
// omitted when it matches the origin segment so "return to start" is implied
// rather than spelled out. The second return is false when there is nothing
// to route through.
func BuildRouteQuery(origin, destination string, stores []Store) (string, bool) {
	if len(stores) == 0 {
		return "", false
	}

	var segments []string
	o := strings.TrimSpace(origin)
	if o != "" {
		segments = append(segments, o)
	}
	for _, s := range stores {
		if name := strings.TrimSpace(s.Name); name != "" {
			segments = append(segments, name)
		}
	}
	d := strings.TrimSpace(destination)
	if d == "" {
		d = o
	}
	if d != "" && d != o {
		segments = append(segments, d)
	}

	if len(segments) == 0 {
		return "", false
	}
	return strings.Join(segments, waypointSep), true
}
