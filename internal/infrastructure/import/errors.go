package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Row error codes
const (
	ErrCodeRequired          = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidType       = "ERR_IMPORT_INVALID_TYPE"
	ErrCodeInvalidLength     = "ERR_IMPORT_INVALID_LENGTH"
	ErrCodeInvalidRange      = "ERR_IMPORT_INVALID_RANGE"
	ErrCodeInvalidValue      = "ERR_IMPORT_INVALID_VALUE"
	ErrCodeDuplicateInFile   = "ERR_IMPORT_DUPLICATE_IN_FILE"
	ErrCodeDuplicateInStore  = "ERR_IMPORT_DUPLICATE_IN_STORE"
	ErrCodeReferenceNotFound = "ERR_IMPORT_REFERENCE_NOT_FOUND"
	ErrCodeRejected          = "ERR_IMPORT_REJECTED"
)

// File level errors
var (
	ErrEmptyFile       = errors.New("CSV file is empty")
	ErrInvalidEncoding = errors.New("CSV file is not UTF-8 encoded")
	ErrMissingHeader   = errors.New("CSV file missing header row")
	ErrInvalidHeader   = errors.New("invalid CSV header")
	ErrMalformedRow    = errors.New("malformed CSV row")
	ErrTooManyRows     = errors.New("CSV file has too many rows")
)

// RowError is a problem with one cell or line of the file
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorCollection keeps the first max errors and counts the rest
type ErrorCollection struct {
	errors []RowError
	max    int
	total  int
	rows   map[int]struct{}
}

// NewErrorCollection creates a collection holding at most max errors (100 if max <= 0)
func NewErrorCollection(max int) *ErrorCollection {
	if max <= 0 {
		max = 100
	}
	return &ErrorCollection{max: max, rows: make(map[int]struct{})}
}

// Add records err
func (ec *ErrorCollection) Add(err RowError) {
	ec.total++
	ec.rows[err.Row] = struct{}{}
	if len(ec.errors) < ec.max {
		ec.errors = append(ec.errors, err)
	}
}

// Addf records an error built from its parts
func (ec *ErrorCollection) Addf(row int, column, code, value, format string, args ...any) {
	ec.Add(RowError{Row: row, Column: column, Code: code, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Errors returns the kept errors in the order they were added
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// Total counts every error added, kept or not
func (ec *ErrorCollection) Total() int {
	return ec.total
}

// HasErrors reports whether anything was added
func (ec *ErrorCollection) HasErrors() bool {
	return ec.total > 0
}

// RowFailed reports whether any error was recorded for row
func (ec *ErrorCollection) RowFailed(row int) bool {
	_, ok := ec.rows[row]
	return ok
}

// FailedRows counts the distinct rows with errors
func (ec *ErrorCollection) FailedRows() int {
	return len(ec.rows)
}

// IsTruncated reports whether errors were dropped because of the limit
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.total > ec.max
}

// Summary counts the kept errors by code
func (ec *ErrorCollection) Summary() map[string]int {
	summary := make(map[string]int)
	for _, err := range ec.errors {
		summary[err.Code]++
	}
	return summary
}

func (ec *ErrorCollection) String() string {
	if !ec.HasErrors() {
		return "no errors"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s) found", ec.total)
	if ec.IsTruncated() {
		fmt.Fprintf(&sb, " (showing first %d)", ec.max)
	}
	sb.WriteString(":\n")
	for _, err := range ec.errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}
