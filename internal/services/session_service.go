package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/quizbank-service/internal/cache"
	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/repositories"
)

const sessionKeyPrefix = "session:"

type sessionService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
	ttl    time.Duration
}

func NewSessionService(repo repositories.Repository, cache cache.CacheService, logger *slog.Logger, ttl time.Duration) SessionService {
	return &sessionService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		ttl:    ttl,
	}
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !state.HasSelection() {
		return state, nil
	}

	exists, err := s.repo.BankFile().Exists(ctx, *state.CurrentFileID)
	if err != nil {
		return nil, fmt.Errorf("failed to check selected bank file: %w", err)
	}
	if exists {
		return state, nil
	}

	s.logger.Info("Clearing stale bank selection",
		"session_id", sessionID,
		"file_id", *state.CurrentFileID)
	state.ClearSelection()
	if err := s.save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *sessionService) SelectFile(ctx context.Context, sessionID string, fileID string) (*models.SessionState, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, NewValidationError("file_id", "is required", fileID)
	}

	exists, err := s.repo.BankFile().Exists(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to check bank file: %w", err)
	}
	if !exists {
		return nil, ErrBankFileNotFound
	}

	return s.update(ctx, sessionID, func(state *models.SessionState) {
		state.Select(fileID)
	})
}

func (s *sessionService) ClearSelection(ctx context.Context, sessionID string) (*models.SessionState, error) {
	return s.update(ctx, sessionID, func(state *models.SessionState) {
		state.ClearSelection()
	})
}

func (s *sessionService) ForgetFile(ctx context.Context, sessionID string, fileID string) error {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if !state.HasSelection() || *state.CurrentFileID != fileID {
		return nil
	}
	state.ClearSelection()
	return s.save(ctx, state)
}

func (s *sessionService) SetTheme(ctx context.Context, sessionID string, theme models.Theme) (*models.SessionState, error) {
	if !theme.IsValid() {
		return nil, ErrInvalidTheme
	}
	return s.update(ctx, sessionID, func(state *models.SessionState) {
		state.Theme = theme
	})
}

func (s *sessionService) ToggleTheme(ctx context.Context, sessionID string) (*models.SessionState, error) {
	return s.update(ctx, sessionID, func(state *models.SessionState) {
		state.Theme = state.Theme.Toggle()
	})
}

func (s *sessionService) Reset(ctx context.Context, sessionID string) (*models.SessionState, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	if err := s.cache.Delete(ctx, sessionKeyPrefix+sessionID); err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}
	s.logger.Info("Session reset", "session_id", sessionID)
	return models.NewSessionState(sessionID), nil
}

// ===== HELPERS =====

func (s *sessionService) update(ctx context.Context, sessionID string, mutate func(*models.SessionState)) (*models.SessionState, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	mutate(state)
	if err := s.save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// load returns the stored state, or a fresh default when none is stored.
func (s *sessionService) load(ctx context.Context, sessionID string) (*models.SessionState, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}

	var state models.SessionState
	err := s.cache.Get(ctx, sessionKeyPrefix+sessionID, &state)
	switch {
	case errors.Is(err, cache.ErrCacheMiss):
		return models.NewSessionState(sessionID), nil
	case err != nil:
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	state.ID = sessionID
	if !state.Theme.IsValid() {
		state.Theme = models.ThemeLight
	}
	return &state, nil
}

func (s *sessionService) save(ctx context.Context, state *models.SessionState) error {
	state.UpdatedAt = time.Now().UTC()
	if err := s.cache.Set(ctx, sessionKeyPrefix+state.ID, state, s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
