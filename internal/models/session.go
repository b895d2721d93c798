package models

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid reports whether t is a known theme.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// SessionState is the per-browser view state: which bank is selected and
// which theme is shown.
type SessionState struct {
	ID            string    `json:"id"`
	CurrentFileID *string   `json:"current_file_id,omitempty"`
	Theme         Theme     `json:"theme"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewSessionState(id string) *SessionState {
	return &SessionState{
		ID:        id,
		Theme:     ThemeLight,
		UpdatedAt: time.Now(),
	}
}

// HasSelection reports whether a bank file is selected.
func (s *SessionState) HasSelection() bool {
	return s.CurrentFileID != nil && *s.CurrentFileID != ""
}

func (s *SessionState) Select(fileID string) {
	s.CurrentFileID = &fileID
}

func (s *SessionState) ClearSelection() {
	s.CurrentFileID = nil
}
