// Package levenshtein ranks candidate names by edit distance so mistyped
// flag values can be answered with a suggestion.
package levenshtein

import (
	"fmt"
	"strings"
)

// DefaultMaxDistance is the largest distance Closest treats as a typo.
const DefaultMaxDistance = 2

// Context reuses its row buffers across Distance calls.
type Context struct {
	prev []int
	curr []int
}

func grow(buf []int, length int) []int {
	if cap(buf) < length {
		return make([]int, length)
	}

	return buf[:length]
}

// Distance returns the number of single-rune insertions, deletions or
// substitutions needed to turn a into b.
func (ctx *Context) Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	ctx.prev = grow(ctx.prev, len(rb)+1)
	ctx.curr = grow(ctx.curr, len(rb)+1)

	for j := range ctx.prev {
		ctx.prev[j] = j
	}

	for i, ca := range ra {
		ctx.curr[0] = i + 1

		for j, cb := range rb {
			cost := 1
			if ca == cb {
				cost = 0
			}

			ctx.curr[j+1] = min(ctx.prev[j+1]+1, ctx.curr[j]+1, ctx.prev[j]+cost)
		}

		ctx.prev, ctx.curr = ctx.curr, ctx.prev
	}

	return ctx.prev[len(rb)]
}

// Closest returns the candidate nearest to input, compared case-insensitively,
// when it is within maxDistance edits. Ties keep the earlier candidate.
func Closest(input string, candidates []string, maxDistance int) (string, bool) {
	var ctx Context

	best, bestDist := "", maxDistance+1
	needle := strings.ToLower(input)

	for _, candidate := range candidates {
		d := ctx.Distance(needle, strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}

	return best, bestDist <= maxDistance
}

// Suggestion formats a " (did you mean ...?)" hint, or "" when nothing is close.
func Suggestion(input string, candidates []string) string {
	match, ok := Closest(input, candidates, DefaultMaxDistance)
	if !ok || match == input {
		return ""
	}

	return fmt.Sprintf(" (did you mean %q?)", match)
}
