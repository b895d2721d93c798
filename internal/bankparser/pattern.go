package bankparser

import "strings"

// headerLines is how many leading lines may carry the pattern name.
const headerLines = 10

// ExtractPatternName returns the name declared as `模式名称: "..."` within the
// first lines of content.
func ExtractPatternName(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	if len(lines) > headerLines {
		lines = lines[:headerLines]
	}
	header := strings.Join(lines, "\n")

	for offset := 0; offset < len(header); {
		i := strings.Index(header[offset:], PatternNameLabel)
		if i < 0 {
			break
		}
		start := offset + i + len(PatternNameLabel)
		if name, ok := scanQuoted(skipSpace(header[start:])); ok {
			return name, true
		}
		offset = start
	}
	return "", false
}
