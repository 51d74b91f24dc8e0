// Package textnorm rewrites free-text Turkish product queries into a form
// the filter-translation prompt can work with: magnitude shorthands become
// full numbers, locale-specific number punctuation becomes machine-readable,
// and units are converted to the ones the catalog stores.
package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	binRe      = regexp.MustCompile(`(\d+)\s*bin\b`)
	kRe        = regexp.MustCompile(`(\d+)\s*k\b`)
	decimalRe  = regexp.MustCompile(`(\d+),(\d+)`)
	thousandRe = regexp.MustCompile(`(\d{1,3})\.(\d{3})\b`)
	gramsRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*g\b`)
	gramRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*gram\b`)
	inchRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*"`)
)

// Normalize lowercases t and applies, in order:
//   - "30 bin" / "30k" → "30000"
//   - decimal comma → decimal point ("15,6" → "15.6")
//   - thousands-separator dot removal ("1.000" → "1000")
//   - grams → kilograms with unit relabeling ("500 g" → "0.5 kg")
//   - trailing inch mark → textual unit (`15"` → "15 inç")
//
// mAh is deliberately left alone: without a voltage there is no sound
// conversion to Wh, so the battery field stays unresolved for such queries.
func Normalize(t string) string {
	text := strings.ToLower(t)

	text = replaceScaled(binRe, text, 1000, "")
	text = replaceScaled(kRe, text, 1000, "")
	text = decimalRe.ReplaceAllString(text, "$1.$2")
	text = thousandRe.ReplaceAllString(text, "$1$2")
	text = replaceScaled(gramsRe, text, 0.001, " kg")
	text = replaceScaled(gramRe, text, 0.001, " kg")
	text = inchRe.ReplaceAllString(text, "$1 inç")

	return strings.TrimSpace(text)
}

func replaceScaled(re *regexp.Regexp, text string, factor float64, unit string) string {
	return re.ReplaceAllStringFunc(text, func(match string) string {
		sub := re.FindStringSubmatch(match)
		n, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return match
		}
		return strconv.FormatFloat(n*factor, 'f', -1, 64) + unit
	})
}
