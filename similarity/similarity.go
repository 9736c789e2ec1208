// SPDX-License-Identifier: GPL-3.0-or-later
package similarity

// Ratio computes a bounded [0,1] sequence similarity between two strings:
// twice the length of their longest common subsequence over the sum of both
// lengths. Empty input on either side yields 0. Ratio is symmetric and
// Ratio(a, a) == 1 for non-empty a.
func Ratio(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	matched := lcsLength(ra, rb)
	return 2 * float64(matched) / float64(len(ra)+len(rb))
}

func lcsLength(a, b []rune) int {
	// Two-row dynamic program; keep the shorter sequence as the row.
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
