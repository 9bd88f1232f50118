package schedule

import "sort"

// BusyIndex is the merged view of a calendar window: either the whole
// day is blocked by an all-day entry, or Spans holds the minimal ordered
// set of disjoint busy intervals.
type BusyIndex struct {
	FullyBlocked bool
	Spans        []Interval
}

// BuildBusyIndex collapses raw calendar events into a BusyIndex. Any
// all-day event blocks the whole window and dominates everything else.
// Timed events are sorted by start and merged where they genuinely
// overlap; spans that merely touch (one ends exactly where the next
// starts) stay separate, matching half-open interval semantics.
// Zero- and negative-length events are dropped.
func BuildBusyIndex(events []Event) BusyIndex {
	var spans []Interval
	for _, ev := range events {
		if ev.AllDay {
			return BusyIndex{FullyBlocked: true}
		}
		if !ev.Start.Before(ev.End) {
			continue
		}
		spans = append(spans, Interval{Start: ev.Start, End: ev.End})
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start.Before(spans[j].Start)
	})

	var merged []Interval
	for _, s := range spans {
		if len(merged) == 0 {
			merged = append(merged, s)
			continue
		}
		last := &merged[len(merged)-1]
		if s.Start.Before(last.End) {
			if s.End.After(last.End) {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}

	return BusyIndex{Spans: merged}
}
