package models

import "github.com/SAP-F-2025/quizbank-service/internal/bankparser"

type SearchStatus string

const (
	SearchNoFile    SearchStatus = "no_file"
	SearchNoKeyword SearchStatus = "no_keyword"
	SearchNoMatch   SearchStatus = "no_match"
	SearchMatched   SearchStatus = "matched"
)

// SearchResult is what the search surface shows for one query.
type SearchResult struct {
	Status    SearchStatus                `json:"status"`
	FileID    string                      `json:"file_id,omitempty"`
	FileName  string                      `json:"file_name,omitempty"`
	Keyword   string                      `json:"keyword,omitempty"`
	Count     int                         `json:"count"`
	Questions []bankparser.QuestionRecord `json:"questions"`
}

// NewSearchResult maps a filter outcome onto a search status.
func NewSearchResult(file *BankFile, filtered bankparser.FilterResult) *SearchResult {
	result := &SearchResult{
		Status:    SearchNoKeyword,
		Questions: []bankparser.QuestionRecord{},
	}
	if file != nil {
		result.FileID = file.ID
		result.FileName = file.Name
	}
	if !filtered.Searched {
		return result
	}

	result.Keyword = filtered.Keyword
	result.Count = filtered.Count()
	result.Questions = filtered.Matches
	if result.Count == 0 {
		result.Status = SearchNoMatch
	} else {
		result.Status = SearchMatched
	}
	return result
}
