// Package aijson pulls a JSON document out of free-form model output.
// Models asked for "JSON only" still wrap answers in markdown fences or
// prose often enough that the callers treat extraction as a sequence of
// heuristics rather than a straight unmarshal.
package aijson

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

// Extract returns the best JSON candidate in text. Strategies in order:
// the body of the first fenced code block, then the substring between the
// first "{" and the last "}", then the whole trimmed text. Extract never
// fails; whether the result actually parses is the caller's problem.
func Extract(text string) string {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return strings.TrimSpace(text[start : end+1])
	}

	return strings.TrimSpace(text)
}
