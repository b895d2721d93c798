package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/quizbank-service/internal/bankparser"
	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/repositories"
)

type searchService struct {
	repo     repositories.Repository
	sessions SessionService
	logger   *slog.Logger
}

func NewSearchService(repo repositories.Repository, sessions SessionService, logger *slog.Logger) SearchService {
	return &searchService{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *searchService) Search(ctx context.Context, sessionID string, keyword string) (*models.SearchResult, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.HasSelection() {
		return &models.SearchResult{
			Status:    models.SearchNoFile,
			Questions: []bankparser.QuestionRecord{},
		}, nil
	}
	return s.SearchFile(ctx, *state.CurrentFileID, keyword)
}

func (s *searchService) SearchFile(ctx context.Context, fileID string, keyword string) (*models.SearchResult, error) {
	file, err := loadBankFile(ctx, s.repo, fileID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(keyword) == "" {
		return models.NewSearchResult(file, bankparser.FilterResult{}), nil
	}

	// Content is re-parsed on every search.
	records := bankparser.ParseQuestions(file.Content)
	filtered := bankparser.FilterByKeyword(records, keyword)

	s.logger.Debug("Bank search completed",
		"file_id", file.ID,
		"keyword", filtered.Keyword,
		"parsed", len(records),
		"matches", filtered.Count())

	return models.NewSearchResult(file, filtered), nil
}
