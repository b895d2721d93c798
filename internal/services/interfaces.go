package services

import (
	"context"

	"github.com/SAP-F-2025/quizbank-service/internal/models"
)

// BankFileService manages uploaded question bank files
type BankFileService interface {
	Upload(ctx context.Context, req *UploadBankFileRequest) (*BankFileResponse, error)
	List(ctx context.Context, req *ListBankFilesRequest) (*BankFileListResponse, error)
	Get(ctx context.Context, id string) (*BankFileResponse, error)
	Rename(ctx context.Context, id string, req *RenameBankFileRequest) (*BankFileResponse, error)
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, id string) (*DownloadResponse, error)
}

// SessionService keeps the per-session selection and theme
type SessionService interface {
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)
	SelectFile(ctx context.Context, sessionID string, fileID string) (*models.SessionState, error)
	ClearSelection(ctx context.Context, sessionID string) (*models.SessionState, error)
	// ForgetFile clears the selection only when it points at fileID.
	ForgetFile(ctx context.Context, sessionID string, fileID string) error
	SetTheme(ctx context.Context, sessionID string, theme models.Theme) (*models.SessionState, error)
	ToggleTheme(ctx context.Context, sessionID string) (*models.SessionState, error)
	// Reset forgets the stored state and returns the defaults.
	Reset(ctx context.Context, sessionID string) (*models.SessionState, error)
}

// SearchService runs keyword searches over the parsed content of a bank file
type SearchService interface {
	Search(ctx context.Context, sessionID string, keyword string) (*models.SearchResult, error)
	SearchFile(ctx context.Context, fileID string, keyword string) (*models.SearchResult, error)
}

// ExportService renders parsed questions as downloadable spreadsheets
type ExportService interface {
	ExportMatches(ctx context.Context, req *models.ExportRequest) (*models.ExportFile, error)
}

// ServiceManager exposes every service to the transport layer
type ServiceManager interface {
	BankFile() BankFileService
	Session() SessionService
	Search() SearchService
	Export() ExportService
}
