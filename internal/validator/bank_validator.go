package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/SAP-F-2025/quizbank-service/internal/errors"
)

// BankValidator checks uploads before they are parsed and stored
type BankValidator struct{}

func NewBankValidator() *BankValidator {
	return &BankValidator{}
}

// ValidateUpload checks the file name, size limit and text encoding of an upload.
func (v *BankValidator) ValidateUpload(fileName string, content []byte, maxBytes int64) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(fileName) == "" {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("file_name", "is required", "required", fileName))
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		errs = append(errs, *apperrors.NewValidationErrorWithRule(
			"file", fmt.Sprintf("must be at most %d bytes", maxBytes), "max", len(content)))
	}
	if !utf8.Valid(content) {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("file", "must be UTF-8 text", "utf8", nil))
	}

	return errs
}
