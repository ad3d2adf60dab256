package errors

import (
	"fmt"
	"strings"
)

// SuggestName proposes the closest valid name for an unknown one, or
// lists the valid names when nothing is close.
func SuggestName(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}

	best, dist := closest(strings.ToUpper(unknown), valid)
	if dist <= maxSuggestDistance(unknown) {
		return fmt.Sprintf("Did you mean '%s'?", best)
	}

	if len(valid) > 5 {
		return fmt.Sprintf("Valid names include: %s, ...", strings.Join(valid[:5], ", "))
	}
	return fmt.Sprintf("Valid names: %s", strings.Join(valid, ", "))
}

// SuggestMissingField suggests adding a required field.
func SuggestMissingField(fieldName, exampleValue string) string {
	if exampleValue != "" {
		return fmt.Sprintf("Add '%s: %s'", fieldName, exampleValue)
	}
	return fmt.Sprintf("Add a '%s' field", fieldName)
}

func closest(unknown string, valid []string) (string, int) {
	best := ""
	minDistance := int(^uint(0) >> 1)
	for _, v := range valid {
		d := levenshteinDistance(unknown, strings.ToUpper(v))
		if d < minDistance {
			minDistance = d
			best = v
		}
	}
	return best, minDistance
}

func maxSuggestDistance(s string) int {
	if len(s) < 6 {
		return 2
	}
	return 4
}

// levenshteinDistance returns the edit distance between s1 and s2.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
