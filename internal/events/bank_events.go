package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of bank file lifecycle events
type EventType string

const (
	EventBankUploaded EventType = "bank.uploaded"
	EventBankRenamed  EventType = "bank.renamed"
	EventBankDeleted  EventType = "bank.deleted"
)

const (
	eventSource  = "quizbank-service"
	eventVersion = "1.0"
)

// BankEvent is the envelope for all bank file events
type BankEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      BankFileEventData      `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type BankFileEventData struct {
	FileID          string `json:"file_id"`
	Name            string `json:"name"`
	PreviousName    string `json:"previous_name,omitempty"`
	OriginalName    string `json:"original_name,omitempty"`
	Size            int64  `json:"size,omitempty"`
	QuestionCount   int    `json:"question_count,omitempty"`
	AnswerlessCount int    `json:"answerless_count,omitempty"`
	DiscardedBlocks int    `json:"discarded_blocks,omitempty"`
	SessionID       string `json:"session_id,omitempty"`
}

// NewBankEvent stamps a new event envelope around data
func NewBankEvent(eventType EventType, data BankFileEventData) *BankEvent {
	return &BankEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
