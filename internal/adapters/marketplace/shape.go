package marketplace

import (
	"slices"

	ptime "sellerbot/internal/platform/time"
)

// ParseTime converts an RFC3339 timestamp to unix seconds; unparsable or
// pre-epoch values give 0
func ParseTime(s string) uint64 {
	ts, err := ptime.ParseUnix(s)
	if err != nil {
		return 0
	}
	return ts
}

// FormatTime renders unix seconds as RFC3339 in UTC
func FormatTime(ts uint64) string { return ptime.FormatUnix(ts) }

// Clamp bounds limit to [lo, hi]
func Clamp(limit, lo, hi uint32) uint32 {
	return max(lo, min(limit, hi))
}

// Shape sorts items newest first, drops those published before dateFrom and
// keeps at most limit
func Shape[T any](items []T, publishedAt func(T) uint64, limit uint32, dateFrom uint64) []T {
	slices.SortStableFunc(items, func(a, b T) int {
		ta, tb := publishedAt(a), publishedAt(b)
		switch {
		case ta > tb:
			return -1
		case ta < tb:
			return 1
		}
		return 0
	})
	out := items[:0]
	for _, it := range items {
		if uint32(len(out)) >= limit {
			break
		}
		if publishedAt(it) >= dateFrom {
			out = append(out, it)
		}
	}
	return out
}
