package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SAP-F-2025/quizbank-service/internal/bankparser"
	"github.com/SAP-F-2025/quizbank-service/internal/events"
	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/repositories"
	"github.com/SAP-F-2025/quizbank-service/internal/validator"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const resourceBankFile = "bank_file"

type bankFileService struct {
	repo           repositories.Repository
	publisher      events.EventPublisher
	logger         *slog.Logger
	opLogger       *ServiceLogger
	validator      *validator.Validator
	maxUploadBytes int64
}

func NewBankFileService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
	maxUploadBytes int64,
) BankFileService {
	return &bankFileService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		opLogger: NewServiceLogger(logger, LogConfig{
			Service:   "quizbank-service",
			Component: "bank_files",
		}),
		validator:      validator,
		maxUploadBytes: maxUploadBytes,
	}
}

// ===== CORE OPERATIONS =====

func (s *bankFileService) Upload(ctx context.Context, req *UploadBankFileRequest) (resp *BankFileResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "upload_bank_file")
	defer func() {
		id := ""
		if resp != nil {
			id = resp.ID
		}
		op.LogResult(id, resourceBankFile, err)
	}()

	if errs := s.validator.Bank().ValidateUpload(req.FileName, req.Content, s.maxUploadBytes); len(errs) > 0 {
		return nil, errs
	}
	if len(req.Content) == 0 {
		return nil, NewBusinessRuleError(RuleNonEmptyBank, "bank file has no content", map[string]interface{}{
			"file_name": req.FileName,
		})
	}

	content := string(req.Content)
	_, summary := bankparser.Parse(content)
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parse summary: %w", err)
	}

	now := time.Now().UTC()
	file := &models.BankFile{
		ID:           uuid.NewString(),
		Name:         DisplayName(req.FileName, content),
		OriginalName: req.FileName,
		Content:      content,
		Size:         int64(len(req.Content)),
		Summary:      datatypes.JSON(summaryJSON),
		UploadedAt:   now,
		UpdatedAt:    now,
	}

	if err = s.repo.BankFile().Create(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to store bank file: %w", err)
	}

	s.logger.Info("Bank file uploaded",
		"file_id", file.ID,
		"name", file.Name,
		"questions", summary.Total(),
		"discarded_blocks", summary.DiscardedBlocks)
	op.LogAudit(AuditEventCreate, file.ID, resourceBankFile, nil, file.Name)

	s.publish(ctx, events.EventBankUploaded, events.BankFileEventData{
		FileID:          file.ID,
		Name:            file.Name,
		OriginalName:    file.OriginalName,
		Size:            file.Size,
		QuestionCount:   summary.CompleteRecords,
		AnswerlessCount: summary.AnswerlessRecords,
		DiscardedBlocks: summary.DiscardedBlocks,
	})

	return toBankFileResponse(file), nil
}

func (s *bankFileService) List(ctx context.Context, req *ListBankFilesRequest) (*BankFileListResponse, error) {
	if req == nil {
		req = &ListBankFilesRequest{}
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		return nil, NewValidationError("date_to", "must not be before date_from", req.DateTo)
	}

	files, total, err := s.repo.BankFile().List(ctx, repositories.BankFileFilters{
		Name:      req.Name,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		Limit:     req.Limit,
		Offset:    req.Offset,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bank files: %w", err)
	}

	resp := &BankFileListResponse{
		Files: make([]*BankFileResponse, 0, len(files)),
		Total: total,
	}
	for _, f := range files {
		resp.Files = append(resp.Files, toBankFileResponse(f))
	}
	return resp, nil
}

func (s *bankFileService) Get(ctx context.Context, id string) (*BankFileResponse, error) {
	file, err := s.getFile(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBankFileResponse(file), nil
}

func (s *bankFileService) Rename(ctx context.Context, id string, req *RenameBankFileRequest) (resp *BankFileResponse, err error) {
	op := s.opLogger.WithOperation(ctx, "rename_bank_file")
	defer func() { op.LogResult(id, resourceBankFile, err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)

	file, err := s.getFile(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := file.Name

	if err = s.repo.BankFile().UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBankFileNotFound
		}
		return nil, fmt.Errorf("failed to rename bank file: %w", err)
	}
	file.Name = name
	file.UpdatedAt = time.Now().UTC()

	op.LogAudit(AuditEventUpdate, id, resourceBankFile, previous, name)
	s.publish(ctx, events.EventBankRenamed, events.BankFileEventData{
		FileID:       id,
		Name:         name,
		PreviousName: previous,
	})

	return toBankFileResponse(file), nil
}

func (s *bankFileService) Delete(ctx context.Context, id string) (err error) {
	op := s.opLogger.WithOperation(ctx, "delete_bank_file")
	defer func() { op.LogResult(id, resourceBankFile, err) }()

	file, err := s.getFile(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.BankFile().Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBankFileNotFound
		}
		return fmt.Errorf("failed to delete bank file: %w", err)
	}

	op.LogAudit(AuditEventDelete, id, resourceBankFile, file.Name, nil)
	s.publish(ctx, events.EventBankDeleted, events.BankFileEventData{
		FileID: id,
		Name:   file.Name,
	})
	return nil
}

func (s *bankFileService) Download(ctx context.Context, id string) (*DownloadResponse, error) {
	file, err := s.getFile(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DownloadResponse{
		FileName:    file.DownloadName(),
		ContentType: "text/plain; charset=utf-8",
		Content:     []byte(file.Content),
	}, nil
}

// ===== HELPERS =====

func (s *bankFileService) getFile(ctx context.Context, id string) (*models.BankFile, error) {
	return loadBankFile(ctx, s.repo, id)
}

// loadBankFile fetches a file with content, mapping a missing row to ErrBankFileNotFound.
func loadBankFile(ctx context.Context, repo repositories.Repository, id string) (*models.BankFile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewValidationError("id", "is required", id)
	}
	file, err := repo.BankFile().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBankFileNotFound
		}
		return nil, fmt.Errorf("failed to get bank file: %w", err)
	}
	return file, nil
}

// publish sends a lifecycle event; failures are logged, never returned.
func (s *bankFileService) publish(ctx context.Context, eventType events.EventType, data events.BankFileEventData) {
	data.SessionID = sessionIDFromContext(ctx)
	if err := s.publisher.PublishBankEvent(ctx, events.NewBankEvent(eventType, data)); err != nil {
		s.logger.Warn("Failed to publish bank event",
			"event_type", eventType,
			"file_id", data.FileID,
			"error", err)
	}
}

func toBankFileResponse(file *models.BankFile) *BankFileResponse {
	resp := &BankFileResponse{
		ID:           file.ID,
		Name:         file.Name,
		OriginalName: file.OriginalName,
		Size:         file.Size,
		UploadedAt:   file.UploadedAt,
		UpdatedAt:    file.UpdatedAt,
	}
	if len(file.Summary) > 0 {
		_ = json.Unmarshal(file.Summary, &resp.Summary)
	}
	return resp
}

// DisplayName picks the name shown for an upload: the pattern name declared in
// the file header, else the file name without its last extension.
func DisplayName(fileName string, content string) string {
	if name, ok := bankparser.ExtractPatternName(content); ok {
		return truncateRunes(name, validator.MaxBankNameLength)
	}
	return truncateRunes(stripExtension(fileName), validator.MaxBankNameLength)
}

// stripExtension drops a trailing ".ext" whose extension holds no '/' or '.'.
// A name that would become empty is returned unchanged.
func stripExtension(fileName string) string {
	dot := strings.LastIndexByte(fileName, '.')
	if dot < 0 || dot == len(fileName)-1 || strings.ContainsRune(fileName[dot+1:], '/') {
		return fileName
	}
	if dot == 0 {
		return fileName
	}
	return fileName[:dot]
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
