package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrValidation marks input rejected on the client before any network call.
var ErrValidation = errors.New("validation error")

// ValidationError carries the user-facing message. errors.Is(err,
// ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

const (
	// MaxUploadSize is the largest spreadsheet accepted for import.
	MaxUploadSize = 10 * 1024 * 1024

	// MaxRemarkLength is counted in characters, not bytes.
	MaxRemarkLength = 1000

	// DateLayout is the wire format of payment-expectation dates.
	DateLayout = "2006-01-02"
)

// uploadContentTypes maps accepted spreadsheet extensions to their MIME type.
var uploadContentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
	".csv":  "text/csv",
}

// ValidateUpload checks a spreadsheet before import and returns the MIME type
// to send with it.
func ValidateUpload(name string, size int64) (string, error) {
	contentType, ok := uploadContentTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return "", invalid("file", "Invalid file type. Only Excel files (.xlsx, .xls, .csv) are allowed.")
	}
	if size > MaxUploadSize {
		return "", invalid("file", "File size exceeds 10MB limit.")
	}
	return contentType, nil
}

// NormalizeRemark trims text and enforces the non-empty and length rules.
func NormalizeRemark(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalid("remark", "Please enter a remark")
	}
	if utf8.RuneCountInString(text) > MaxRemarkLength {
		return "", invalid("remark", "Remark must be at most %d characters", MaxRemarkLength)
	}
	return text, nil
}

// ValidateDate accepts YYYY-MM-DD.
func ValidateDate(field, value string) error {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return invalid(field, "%s must be a date in YYYY-MM-DD format", field)
	}
	return nil
}

// Validate checks an update before it is sent.
func (d UpdateRecordData) Validate() error {
	if d.PaymentExpected == nil && d.PaymentExpectedDate == nil {
		return invalid("", "Nothing to update")
	}
	if d.PaymentExpectedDate != nil && *d.PaymentExpectedDate != "" {
		return ValidateDate("paymentExpectedDate", *d.PaymentExpectedDate)
	}
	return nil
}

// Validate checks the date bounds of the filters.
func (f RecordFilters) Validate() error {
	if f.PaymentExpectedDateFrom != "" {
		if err := ValidateDate("paymentExpectedDateFrom", f.PaymentExpectedDateFrom); err != nil {
			return err
		}
	}
	if f.PaymentExpectedDateTo != "" {
		if err := ValidateDate("paymentExpectedDateTo", f.PaymentExpectedDateTo); err != nil {
			return err
		}
	}
	if f.Page < 0 || f.Limit < 0 {
		return invalid("page", "page and limit must be positive")
	}
	return nil
}
