package models

import (
	"time"

	"gorm.io/datatypes"
)

// BankFile is an uploaded question bank kept with its full text.
type BankFile struct {
	ID           string `json:"id" gorm:"primaryKey;size:36"` // UUID
	Name         string `json:"name" gorm:"not null;size:200"`
	OriginalName string `json:"original_name" gorm:"size:255"`
	Content      string `json:"-" gorm:"type:text;not null"`
	Size         int64  `json:"size" gorm:"not null"`

	// Parse statistics captured at upload time
	Summary datatypes.JSON `json:"summary" gorm:"type:jsonb"` // bankparser.ParseSummary

	UploadedAt time.Time `json:"uploaded_at" gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (BankFile) TableName() string {
	return "bank_files"
}

// DownloadName is the file name offered when the bank is downloaded.
func (f *BankFile) DownloadName() string {
	if f.OriginalName != "" {
		return f.OriginalName
	}
	return f.Name + ".txt"
}
