package bankparser

import (
	"strings"
	"unicode"
)

// Literal tokens of the bank file format.
const (
	AssignmentTarget = "全局.quize"
	StringWrapper    = "自定义字符串"
	PatternNameLabel = "模式名称:"
)

// Slot indices used by the assignment target.
const (
	promptSlot = 0
	answerSlot = 5
)

type valueKind int

const (
	valueString valueKind = iota + 1
	valueInteger
)

// assignment is one recognised `全局.quize[d] = value` statement.
type assignment struct {
	slot int
	kind valueKind
	text string
}

// scanAssignments returns every well-formed assignment in line, left to right.
func scanAssignments(line string) []assignment {
	var found []assignment
	prefix := AssignmentTarget + "["
	for offset := 0; offset < len(line); {
		i := strings.Index(line[offset:], prefix)
		if i < 0 {
			break
		}
		start := offset + i + len(prefix)
		if a, ok := scanAssignmentAt(line[start:]); ok {
			found = append(found, a)
		}
		offset = start
	}
	return found
}

// scanAssignmentAt parses `d] = value` at the start of s.
func scanAssignmentAt(s string) (assignment, bool) {
	if len(s) < 2 || !isASCIIDigit(s[0]) || s[1] != ']' {
		return assignment{}, false
	}
	a := assignment{slot: int(s[0] - '0')}

	rest := skipSpace(s[2:])
	if !strings.HasPrefix(rest, "=") {
		return assignment{}, false
	}
	rest = skipSpace(rest[1:])

	if text, ok := scanWrappedString(rest); ok {
		a.kind = valueString
		a.text = text
		return a, true
	}
	if digits := leadingDigits(rest); digits != "" {
		a.kind = valueInteger
		a.text = digits
		return a, true
	}
	return assignment{}, false
}

// scanWrappedString matches `自定义字符串("text")` with non-empty text free of quotes.
func scanWrappedString(s string) (string, bool) {
	open := StringWrapper + `("`
	if !strings.HasPrefix(s, open) {
		return "", false
	}
	body := s[len(open):]
	end := strings.IndexByte(body, '"')
	if end <= 0 {
		return "", false
	}
	if !strings.HasPrefix(body[end+1:], ")") {
		return "", false
	}
	return body[:end], true
}

// scanQuoted matches `"text"` with non-empty text free of quotes.
func scanQuoted(s string) (string, bool) {
	if !strings.HasPrefix(s, `"`) {
		return "", false
	}
	end := strings.IndexByte(s[1:], '"')
	if end <= 0 {
		return "", false
	}
	return s[1 : 1+end], true
}

func leadingDigits(s string) string {
	n := 0
	for n < len(s) && isASCIIDigit(s[n]) {
		n++
	}
	return s[:n]
}

func skipSpace(s string) string {
	return strings.TrimLeftFunc(s, isSpace)
}

func trimLine(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// isSpace matches the ECMAScript whitespace set: the byte order mark counts
// so a BOM-prefixed first line is still recognised, NEL (U+0085) does not.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
