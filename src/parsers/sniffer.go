package parsers

import "strings"

// DetectDelimiter picks the field separator by sampling the first five lines
// of the decoded text. Tab wins only when it strictly outnumbers commas;
// everything else (including an empty sample) falls back to comma.
func DetectDelimiter(text string) rune {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	sample := strings.Join(lines, "\n")
	if strings.Count(sample, "\t") > strings.Count(sample, ",") {
		return '\t'
	}
	return ','
}
