package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/quizbank-service/internal/bankparser"
	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/SAP-F-2025/quizbank-service/internal/repositories"
	"github.com/SAP-F-2025/quizbank-service/internal/validator"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Questions"

// correctOptionFill is the green used for the correct option cell.
const correctOptionFill = "C6EFCE"

var exportHeaders = []string{
	"prompt", "option_1", "option_2", "option_3", "option_4", "answer_index", "answer",
}

type exportService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewExportService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ExportService {
	return &exportService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ExportMatches renders the records of a bank that match the keyword. A blank
// keyword exports every parsed record.
func (s *exportService) ExportMatches(ctx context.Context, req *models.ExportRequest) (*models.ExportFile, error) {
	if req == nil {
		return nil, ErrBadRequest
	}
	if req.Format != models.ExportCSV && req.Format != models.ExportXLSX {
		return nil, ErrUnsupportedExportFormat
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	file, err := loadBankFile(ctx, s.repo, req.FileID)
	if err != nil {
		return nil, err
	}

	records := bankparser.ParseQuestions(file.Content)
	if strings.TrimSpace(req.Keyword) != "" {
		records = bankparser.FilterByKeyword(records, req.Keyword).Matches
	}

	var data []byte
	switch req.Format {
	case models.ExportXLSX:
		data, err = s.renderExcel(records)
	default:
		data, err = s.renderCSV(records)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bank export rendered",
		"file_id", file.ID,
		"format", req.Format,
		"keyword", req.Keyword,
		"rows", len(records))

	return &models.ExportFile{
		FileName:    file.Name + "." + string(req.Format),
		ContentType: req.Format.ContentType(),
		Data:        data,
		Rows:        len(records),
	}, nil
}

func (s *exportService) renderCSV(records []bankparser.QuestionRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(recordToRow(record)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) renderExcel(records []bankparser.QuestionRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	correctStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{correctOptionFill}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel style: %w", err)
	}

	for col, header := range exportHeaders {
		if err := setCell(f, col+1, 1, header); err != nil {
			return nil, err
		}
	}

	for i, record := range records {
		row := i + 2
		for col, value := range recordToRow(record) {
			if err := setCell(f, col+1, row, value); err != nil {
				return nil, err
			}
		}
		if !record.Answered() {
			continue
		}
		// Option columns start at B.
		cell, err := excelize.CoordinatesToCellName(*record.AnswerIndex+2, row)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve answer cell: %w", err)
		}
		if err := f.SetCellStyle(exportSheetName, cell, cell, correctStyle); err != nil {
			return nil, fmt.Errorf("failed to style answer cell: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}

// recordToRow lays a record out in exportHeaders order; answer_index is 1-based.
func recordToRow(record bankparser.QuestionRecord) []string {
	row := make([]string, 0, len(exportHeaders))
	row = append(row, record.Prompt)
	row = append(row, record.Options[:]...)
	if record.Answered() {
		row = append(row, strconv.Itoa(*record.AnswerIndex+1), record.Answer)
	} else {
		row = append(row, "", "")
	}
	return row
}
