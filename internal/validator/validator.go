package validator

import (
	"reflect"
	"strings"
	"unicode/utf8"

	apperrors "github.com/SAP-F-2025/quizbank-service/internal/errors"
	"github.com/SAP-F-2025/quizbank-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// MaxBankNameLength bounds display names of bank files.
const MaxBankNameLength = 200

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator *validator.Validate
	bankValidator   *BankValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		bankValidator:   NewBankValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	err := v.ValidateStruct(s)
	if err == nil {
		return nil
	}
	if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
		return errs
	}
	return err
}

// Bank returns the bank file validator
func (v *Validator) Bank() *BankValidator {
	return v.bankValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("theme", validateTheme)
	validate.RegisterValidation("bank_name", validateBankName)
	validate.RegisterValidation("export_format", validateExportFormat)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateTheme(fl validator.FieldLevel) bool {
	return models.Theme(fl.Field().String()).IsValid()
}

func validateBankName(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	return name != "" && utf8.RuneCountInString(name) <= MaxBankNameLength
}

func validateExportFormat(fl validator.FieldLevel) bool {
	switch models.ExportFormat(fl.Field().String()) {
	case models.ExportCSV, models.ExportXLSX:
		return true
	}
	return false
}
