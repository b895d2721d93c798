package bankparser

import (
	"strconv"
	"strings"
)

// block is the question currently being assembled.
type block struct {
	prompt  string
	pending bool
	options [OptionCount]string
	filled  [OptionCount]bool
}

func (b *block) start(prompt string) {
	*b = block{prompt: prompt, pending: true}
}

func (b *block) reset() {
	*b = block{}
}

func (b *block) complete() bool {
	for _, ok := range b.filled {
		if !ok {
			return false
		}
	}
	return true
}

func (b *block) record() QuestionRecord {
	return QuestionRecord{Prompt: b.prompt, Options: b.options}
}

// ParseQuestions extracts question records from the raw text of a bank file.
// Malformed or unfinished blocks are dropped silently.
func ParseQuestions(content string) []QuestionRecord {
	records, _ := Parse(content)
	return records
}

// Parse is ParseQuestions plus a summary of what was kept and dropped.
func Parse(content string) ([]QuestionRecord, ParseSummary) {
	var (
		records []QuestionRecord
		summary ParseSummary
		cur     block
	)

	for _, raw := range strings.Split(content, "\n") {
		summary.LinesScanned++
		line := trimLine(raw)
		if line == "" {
			continue
		}
		found := scanAssignments(line)
		if len(found) == 0 {
			continue
		}

		if prompt, ok := firstPrompt(found); ok {
			if cur.pending {
				if cur.complete() {
					records = append(records, cur.record())
					summary.AnswerlessRecords++
				} else {
					summary.DiscardedBlocks++
				}
			}
			cur.start(prompt)
			continue
		}

		if !cur.pending {
			continue
		}

		if opt, ok := firstOption(found); ok {
			cur.options[opt.slot-1] = opt.text
			cur.filled[opt.slot-1] = true
			continue
		}

		ans, ok := firstAnswer(found)
		if !ok || !cur.complete() {
			continue
		}
		idx := answerIndex(ans.text)
		if idx >= 0 && idx < OptionCount && cur.options[idx] != "" {
			rec := cur.record()
			rec.Answer = cur.options[idx]
			rec.AnswerIndex = &idx
			records = append(records, rec)
			summary.CompleteRecords++
		} else {
			summary.DiscardedBlocks++
		}
		cur.reset()
	}

	if cur.pending {
		summary.DiscardedBlocks++
	}
	return records, summary
}

func firstPrompt(found []assignment) (string, bool) {
	for _, a := range found {
		if a.slot == promptSlot && a.kind == valueString {
			return a.text, true
		}
	}
	return "", false
}

func firstOption(found []assignment) (assignment, bool) {
	for _, a := range found {
		if a.slot >= 1 && a.slot <= OptionCount && a.kind == valueString {
			return a, true
		}
	}
	return assignment{}, false
}

func firstAnswer(found []assignment) (assignment, bool) {
	for _, a := range found {
		if a.slot == answerSlot && a.kind == valueInteger {
			return a, true
		}
	}
	return assignment{}, false
}

// answerIndex converts the declared 1-based answer into a slot index.
// Values that do not fit an int map to -1.
func answerIndex(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return -1
	}
	return n - 1
}
