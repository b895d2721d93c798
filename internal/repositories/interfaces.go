package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/quizbank-service/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// ===== SHARED FILTER STRUCTS =====

type BankFileFilters struct {
	Name      string     `json:"name"` // case-insensitive substring of the display name
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "uploaded_at", "name"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

// ===== REPOSITORY INTERFACES =====

// BankFileRepository stores uploaded bank files
type BankFileRepository interface {
	Create(ctx context.Context, file *models.BankFile) error
	GetByID(ctx context.Context, id string) (*models.BankFile, error)
	// List omits file content.
	List(ctx context.Context, filters BankFileFilters) ([]*models.BankFile, int64, error)
	UpdateName(ctx context.Context, id string, name string) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// Repository groups the repositories and connection lifecycle
type Repository interface {
	BankFile() BankFileRepository
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
