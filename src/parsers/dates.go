package parsers

import (
	"fmt"
	"strings"
	"time"
)

// instantLayout is the canonical wire form for trade timestamps.
const instantLayout = "2006-01-02T15:04:05Z"

// timeNow is swapped out by tests that pin "today".
var timeNow = time.Now

// nativeLayouts are date shapes accepted verbatim when the input already
// carries a '-' separator (ISO-like exports need no rewriting).
var nativeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDate converts heterogeneous broker date text into a canonical
// UTC instant string. It is total: empty, garbage and bare-time inputs all
// yield a usable instant instead of an error, because trade identity keys
// on the order id and a fuzzy timestamp must not abort an importable row.
//
// Decision order:
//  1. empty               -> current instant
//  2. ISO-like ('-' form) -> returned as-is
//  3. slash/dot/dash date -> rewritten to YYYY-MM-DDTHH:MM:SSZ
//  4. bare time (19:18:44)-> combined with today's date
//  5. anything else       -> current instant
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return timeNow().UTC().Format(instantLayout)
	}

	if strings.Contains(s, "-") && parsesNatively(s) {
		return s
	}

	unified := strings.NewReplacer(".", "/", "-", "/").Replace(s)
	if strings.Contains(unified, "/") {
		if out, ok := rewriteSlashedDate(unified); ok {
			return out
		}
	}

	if strings.Contains(s, ":") && !strings.ContainsAny(s, "/-.") {
		clock := padClock(keepDigitsAndColons(s))
		out := timeNow().Format("2006-01-02") + "T" + clock + "Z"
		if _, err := time.Parse(instantLayout, out); err == nil {
			return out
		}
	}

	return timeNow().UTC().Format(instantLayout)
}

// ParseInstant reads a NormalizeDate output (or a plain ISO date) back into
// a time.Time. It is the inverse the import pipeline relies on.
func ParseInstant(s string) (time.Time, error) {
	for _, layout := range append([]string{instantLayout}, nativeLayouts...) {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized instant %q", s)
}

func parsesNatively(s string) bool {
	for _, layout := range nativeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// rewriteSlashedDate handles dates whose separators were unified to '/'.
// The year position disambiguates chunk order: a 4-digit first chunk means
// YYYY/MM/DD, a 4-digit third chunk means DD/MM/YYYY.
func rewriteSlashedDate(unified string) (string, bool) {
	datePart, timePart, hasTime := strings.Cut(unified, " ")
	if !hasTime {
		timePart = "00:00:00"
	}

	chunks := strings.Split(datePart, "/")
	if len(chunks) != 3 {
		return "", false
	}
	p1 := keepDigits(chunks[0])
	p2 := keepDigits(chunks[1])
	p3 := keepDigits(chunks[2])

	var year, month, day string
	switch {
	case len(p1) == 4:
		year, month, day = p1, p2, p3
	case len(p3) == 4:
		year, month, day = p3, p2, p1
	default:
		return "", false
	}
	month = padTwo(month)
	day = padTwo(day)

	clock := keepDigitsAndColons(timePart)
	if !strings.Contains(clock, ":") {
		clock = "00:00:00"
	} else {
		clock = padClock(clock)
	}

	out := year + "-" + month + "-" + day + "T" + clock + "Z"
	if _, err := time.Parse(instantLayout, out); err != nil {
		return "", false
	}
	return out, true
}

// padClock forces HH:MM:SS: each component is zero-padded to two digits and
// missing components default to zero (e.g. "4:41" -> "04:41:00").
func padClock(clock string) string {
	parts := strings.Split(clock, ":")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for len(parts) < 3 {
		parts = append(parts, "00")
	}
	for i, p := range parts {
		parts[i] = padTwo(p)
	}
	return strings.Join(parts, ":")
}

func padTwo(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func keepDigits(s string) string {
	return strings.Map(func(c rune) rune {
		if c >= '0' && c <= '9' {
			return c
		}
		return -1
	}, s)
}

func keepDigitsAndColons(s string) string {
	return strings.Map(func(c rune) rune {
		if (c >= '0' && c <= '9') || c == ':' {
			return c
		}
		return -1
	}, s)
}
