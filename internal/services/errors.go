package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/quizbank-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrBadRequest = errors.New("bad request")

	// Bank file errors
	ErrBankFileNotFound = errors.New("bank file not found")

	// Session errors
	ErrSessionRequired = errors.New("session id is required")
	ErrInvalidTheme    = errors.New("invalid theme")

	// Export errors
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

// Business rules
const RuleNonEmptyBank = "non_empty_bank"

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) ValidationErrors {
	return ValidationErrors{*apperrors.NewValidationError(field, message, value)}
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBankFileNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsBadRequest checks if error is caused by the caller's input
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrSessionRequired) ||
		errors.Is(err, ErrInvalidTheme) ||
		errors.Is(err, ErrUnsupportedExportFormat)
}
