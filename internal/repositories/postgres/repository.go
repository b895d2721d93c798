package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db       *gorm.DB
	bankFile repositories.BankFileRepository
}

// NewRepository wires the PostgreSQL repositories around one connection
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:       db,
		bankFile: NewBankFilePostgreSQL(db),
	}
}

func (r *repository) BankFile() repositories.BankFileRepository {
	return r.bankFile
}

func (r *repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.BankFile{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
