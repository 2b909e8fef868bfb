// Package wer computes word error rate, the standard accuracy metric for
// speech recognition output: (substitutions + deletions + insertions)
// divided by the number of reference words.
package wer

import (
	"math"
	"strings"
)

// Counts breaks an alignment down by edit operation.
type Counts struct {
	Substitutions int
	Deletions     int
	Insertions    int
}

// Total returns the total number of word edits.
func (c Counts) Total() int {
	return c.Substitutions + c.Deletions + c.Insertions
}

// Score returns the word error rate between a reference transcript and a
// hypothesis. Tokenization is whitespace splitting; callers pre-normalize
// case and punctuation if they want those ignored. An empty reference
// scores 0 against an empty hypothesis and +Inf against anything else.
func Score(reference, hypothesis string) float64 {
	ref := strings.Fields(reference)
	hyp := strings.Fields(hypothesis)

	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 0
		}
		return math.Inf(1)
	}

	c := Align(ref, hyp)
	return float64(c.Total()) / float64(len(ref))
}

// Align computes the word-level Levenshtein alignment between ref and hyp
// and returns the edit counts.
func Align(ref, hyp []string) Counts {
	n, m := len(ref), len(hyp)

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		dp[i][0] = i
	}
	for j := 1; j <= m; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if ref[i-1] == hyp[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			dp[i][j] = min3(dp[i-1][j-1], dp[i][j-1], dp[i-1][j]) + 1
		}
	}

	// Backtrack to attribute each edit.
	var c Counts
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && ref[i-1] == hyp[j-1]:
			i--
			j--
		case i > 0 && j > 0 && dp[i][j] == dp[i-1][j-1]+1:
			c.Substitutions++
			i--
			j--
		case j > 0 && dp[i][j] == dp[i][j-1]+1:
			c.Insertions++
			j--
		default:
			c.Deletions++
			i--
		}
	}
	return c
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
