package services

import (
	"time"

	"github.com/SAP-F-2025/quizbank-service/internal/bankparser"
)

// ===== REQUEST STRUCTURES =====

type UploadBankFileRequest struct {
	FileName string
	Content  []byte
}

type ListBankFilesRequest struct {
	Name      string     `form:"name"`
	DateFrom  *time.Time `form:"date_from" time_format:"2006-01-02T15:04:05Z07:00"`
	DateTo    *time.Time `form:"date_to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int        `form:"limit" validate:"omitempty,min=1,max=500"`
	Offset    int        `form:"offset" validate:"omitempty,min=0"`
	SortBy    string     `form:"sort_by" validate:"omitempty,oneof=uploaded_at name"`
	SortOrder string     `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type RenameBankFileRequest struct {
	Name string `json:"name" validate:"bank_name"`
}

type SelectFileRequest struct {
	FileID string `json:"file_id" validate:"required"`
}

type SetThemeRequest struct {
	Theme string `json:"theme" validate:"required,theme"`
}

// ===== RESPONSE STRUCTURES =====

type BankFileResponse struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	OriginalName string                  `json:"original_name"`
	Size         int64                   `json:"size"`
	Summary      bankparser.ParseSummary `json:"summary"`
	UploadedAt   time.Time               `json:"uploaded_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

type BankFileListResponse struct {
	Files []*BankFileResponse `json:"files"`
	Total int64               `json:"total"`
}

type DownloadResponse struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}
