// SPDX-License-Identifier: GPL-3.0-or-later
package similarity

import (
	"regexp"
	"strings"
)

var (
	timestampPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)
	urlPattern       = regexp.MustCompile(`(?i)https?://\S+`)
	nonAlnumPattern  = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

// Normalize canonicalizes a message body for comparison: absolute
// timestamps, URLs and all non-alphanumeric characters are removed, the
// remainder is lowercased, tokens of length <= 2 are dropped and whitespace
// is collapsed to single spaces. Normalize is total and idempotent on its
// own output.
func Normalize(body string) string {
	if body == "" {
		return ""
	}

	s := timestampPattern.ReplaceAllString(body, "")
	s = urlPattern.ReplaceAllString(s, "")
	s = nonAlnumPattern.ReplaceAllString(s, "")
	s = strings.ToLower(s)

	tokens := strings.Fields(s)
	kept := tokens[:0]
	for _, token := range tokens {
		if len(token) > 2 {
			kept = append(kept, token)
		}
	}

	return strings.Join(kept, " ")
}

// Head returns the first n runes of s, used for the head-of-body
// second-stage similarity check.
func Head(s string, n int) string {
	if n < 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
