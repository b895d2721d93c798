package bankparser

import "strings"

// FilterResult is the outcome of a keyword search over parsed records.
// Searched is false when the keyword was blank and no search ran.
type FilterResult struct {
	Keyword  string
	Searched bool
	Matches  []QuestionRecord
}

// Count is the number of matched records.
func (r FilterResult) Count() int {
	return len(r.Matches)
}

// FilterByKeyword keeps the records whose prompt contains keyword, ignoring case.
func FilterByKeyword(records []QuestionRecord, keyword string) FilterResult {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return FilterResult{}
	}

	needle := strings.ToLower(keyword)
	result := FilterResult{Keyword: keyword, Searched: true, Matches: []QuestionRecord{}}
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Prompt), needle) {
			result.Matches = append(result.Matches, rec)
		}
	}
	return result
}
