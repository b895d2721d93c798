package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/repositories"
	"gorm.io/gorm"
)

type BankFilePostgreSQL struct {
	db *gorm.DB
}

func NewBankFilePostgreSQL(db *gorm.DB) repositories.BankFileRepository {
	return &BankFilePostgreSQL{db: db}
}

// Create inserts a new bank file
func (b *BankFilePostgreSQL) Create(ctx context.Context, file *models.BankFile) error {
	if err := b.db.WithContext(ctx).Create(file).Error; err != nil {
		return fmt.Errorf("failed to create bank file: %w", err)
	}
	return nil
}

// GetByID retrieves a bank file including its content
func (b *BankFilePostgreSQL) GetByID(ctx context.Context, id string) (*models.BankFile, error) {
	var file models.BankFile
	if err := b.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bank file: %w", err)
	}
	return &file, nil
}

// List retrieves bank files without their content
func (b *BankFilePostgreSQL) List(ctx context.Context, filters repositories.BankFileFilters) ([]*models.BankFile, int64, error) {
	query := b.applyFilters(b.db.WithContext(ctx).Model(&models.BankFile{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = b.applyPaginationAndSort(query, filters)

	var files []*models.BankFile
	if err := query.Omit("content").Find(&files).Error; err != nil {
		return nil, 0, err
	}

	return files, total, nil
}

// UpdateName renames a bank file
func (b *BankFilePostgreSQL) UpdateName(ctx context.Context, id string, name string) error {
	result := b.db.WithContext(ctx).
		Model(&models.BankFile{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("failed to rename bank file: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete removes a bank file permanently
func (b *BankFilePostgreSQL) Delete(ctx context.Context, id string) error {
	result := b.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BankFile{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete bank file: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Exists checks whether a bank file with id is stored
func (b *BankFilePostgreSQL) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := b.db.WithContext(ctx).
		Model(&models.BankFile{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// ===== HELPER METHODS =====

func (b *BankFilePostgreSQL) applyFilters(query *gorm.DB, filters repositories.BankFileFilters) *gorm.DB {
	if name := strings.TrimSpace(filters.Name); name != "" {
		query = query.Where("name ILIKE ?", "%"+escapeLike(name)+"%")
	}
	if filters.DateFrom != nil {
		query = query.Where("uploaded_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("uploaded_at <= ?", *filters.DateTo)
	}
	return query
}

func (b *BankFilePostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.BankFileFilters) *gorm.DB {
	sortBy := "uploaded_at"
	if filters.SortBy == "name" {
		sortBy = "name"
	}
	sortOrder := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		sortOrder = "DESC"
	}
	query = query.Order(sortBy + " " + sortOrder).Order("id ASC")

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
