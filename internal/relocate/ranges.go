package relocate

import "sort"

// Ranges is the set of [start,end) intervals already claimed by injected
// highlights. Intervals never overlap; Add keeps the set sorted.
type Ranges struct {
	spans [][2]int
}

// Add records a claimed interval. The caller guarantees it does not
// overlap an existing one (the locator never returns overlapping spans).
func (r *Ranges) Add(start, end int) {
	i := sort.Search(len(r.spans), func(i int) bool {
		return r.spans[i][0] >= start
	})
	r.spans = append(r.spans, [2]int{})
	copy(r.spans[i+1:], r.spans[i:])
	r.spans[i] = [2]int{start, end}
}

// Overlaps reports whether [start,end) intersects any claimed interval.
func (r *Ranges) Overlaps(start, end int) bool {
	i := sort.Search(len(r.spans), func(i int) bool {
		return r.spans[i][1] > start
	})
	return i < len(r.spans) && r.spans[i][0] < end
}

// All returns the claimed intervals in ascending order.
func (r *Ranges) All() [][2]int {
	out := make([][2]int, len(r.spans))
	copy(out, r.spans)
	return out
}
