package services

import (
	"log/slog"

	"github.com/SAP-F-2025/quizbank-service/internal/cache"
	"github.com/SAP-F-2025/quizbank-service/internal/config"
	"github.com/SAP-F-2025/quizbank-service/internal/events"
	"github.com/SAP-F-2025/quizbank-service/internal/repositories"
	"github.com/SAP-F-2025/quizbank-service/internal/validator"
)

type serviceManager struct {
	bankFile BankFileService
	session  SessionService
	search   SearchService
	export   ExportService
}

func NewServiceManager(
	cfg *config.Config,
	repo repositories.Repository,
	cache cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	session := NewSessionService(repo, cache, logger, cfg.SessionTTL)
	return &serviceManager{
		bankFile: NewBankFileService(repo, publisher, logger, validator, cfg.MaxUploadBytes),
		session:  session,
		search:   NewSearchService(repo, session, logger),
		export:   NewExportService(repo, logger, validator),
	}
}

func (m *serviceManager) BankFile() BankFileService { return m.bankFile }
func (m *serviceManager) Session() SessionService   { return m.session }
func (m *serviceManager) Search() SearchService     { return m.search }
func (m *serviceManager) Export() ExportService     { return m.export }
