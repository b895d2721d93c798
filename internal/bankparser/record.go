package bankparser

// OptionCount is the fixed number of answer choices in a question block.
const OptionCount = 4

// QuestionRecord is a single question extracted from a bank file.
// Records flushed by a following prompt line carry no answer fields.
type QuestionRecord struct {
	Prompt      string              `json:"question"`
	Options     [OptionCount]string `json:"options"`
	Answer      string              `json:"answer,omitempty"`
	AnswerIndex *int                `json:"answer_index,omitempty"`
}

// Answered reports whether the record declares a correct option.
func (q QuestionRecord) Answered() bool {
	return q.AnswerIndex != nil
}

// IsCorrect reports whether option i is the declared answer.
func (q QuestionRecord) IsCorrect(i int) bool {
	return q.AnswerIndex != nil && *q.AnswerIndex == i
}

// ParseSummary counts what a parse pass kept and dropped.
type ParseSummary struct {
	LinesScanned      int `json:"lines_scanned"`
	CompleteRecords   int `json:"complete_records"`
	AnswerlessRecords int `json:"answerless_records"`
	DiscardedBlocks   int `json:"discarded_blocks"`
}

// Total is the number of emitted records.
func (s ParseSummary) Total() int {
	return s.CompleteRecords + s.AnswerlessRecords
}
