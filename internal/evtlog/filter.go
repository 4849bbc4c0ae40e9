package evtlog

import (
	"sort"
	"strings"
)

// MatchMessage reports whether msg matches pattern. Matching is
// case-insensitive and anchored: '*' matches any run of characters, every
// other character is literal, and the whole message must be covered. A
// pattern with a trailing '*' therefore behaves as a prefix match.
func MatchMessage(pattern, msg string) bool {
	return matchWildcard(strings.ToLower(pattern), strings.ToLower(msg))
}

// matchWildcard is an iterative glob matcher with backtracking over '*'.
func matchWildcard(p, s string) bool {
	pi, si := 0, 0
	starP, starS := -1, 0

	for si < len(s) {
		switch {
		case pi < len(p) && p[pi] == '*':
			starP, starS = pi, si
			pi++
		case pi < len(p) && p[pi] == s[si]:
			pi++
			si++
		case starP >= 0:
			// Backtrack: let the last '*' consume one more character.
			starS++
			pi, si = starP+1, starS
		default:
			return false
		}
	}

	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}

// FilterMessage returns the records whose message matches pattern,
// preserving input order.
func FilterMessage(records []Record, pattern string) []Record {
	var matched []Record
	for _, r := range records {
		if MatchMessage(pattern, r.Message) {
			matched = append(matched, r)
		}
	}
	return matched
}

// SortNewestFirst orders records by creation time descending. The sort is
// stable so records sharing a timestamp keep their original relative order.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
}

// Limit truncates records to at most n entries.
func Limit(records []Record, n int) []Record {
	if n >= 0 && len(records) > n {
		return records[:n]
	}
	return records
}
