package csvimport

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FieldType is the expected type of a column's values
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInt     FieldType = "integer"
	FieldTypeDecimal FieldType = "decimal"
	FieldTypeBool    FieldType = "boolean"
)

// FieldRule describes how one column is checked. Blank optional cells
// skip every check.
type FieldRule struct {
	Column    string
	Required  bool
	Type      FieldType
	MaxLength int
	Min       *decimal.Decimal
	Max       *decimal.Decimal
	// MaxPlaces caps the decimal places of a decimal column; negative means unchecked
	MaxPlaces int32
	// UniqueInFile rejects a value already seen in an earlier row
	UniqueInFile bool
	Custom       func(value string) error
}

// FieldRuleBuilder builds a FieldRule fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field starts a rule for column
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{
		Column:    normalizeHeader(column),
		Type:      FieldTypeString,
		MaxPlaces: -1,
	}}
}

// Required marks the column as required
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Int expects whole numbers
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = FieldTypeInt
	return b
}

// Decimal expects numbers with at most places decimal places
func (b *FieldRuleBuilder) Decimal(places int32) *FieldRuleBuilder {
	b.rule.Type = FieldTypeDecimal
	b.rule.MaxPlaces = places
	return b
}

// Bool expects true/false, yes/no, 1/0
func (b *FieldRuleBuilder) Bool() *FieldRuleBuilder {
	b.rule.Type = FieldTypeBool
	return b
}

// MaxLength caps the length in characters
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// Range bounds numeric values inclusively
func (b *FieldRuleBuilder) Range(min, max decimal.Decimal) *FieldRuleBuilder {
	b.rule.Min = &min
	b.rule.Max = &max
	return b
}

// MinValue bounds numeric values from below
func (b *FieldRuleBuilder) MinValue(min decimal.Decimal) *FieldRuleBuilder {
	b.rule.Min = &min
	return b
}

// UniqueInFile rejects repeated values within the file
func (b *FieldRuleBuilder) UniqueInFile() *FieldRuleBuilder {
	b.rule.UniqueInFile = true
	return b
}

// Custom adds a final check run after the type checks pass
func (b *FieldRuleBuilder) Custom(fn func(value string) error) *FieldRuleBuilder {
	b.rule.Custom = fn
	return b
}

// Build returns the rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// RowValidator applies a rule set to rows, remembering values for the
// in-file uniqueness checks.
type RowValidator struct {
	rules  []FieldRule
	seen   map[string]map[string]int
	errors *ErrorCollection
}

// NewRowValidator creates a validator reporting into errs
func NewRowValidator(rules []FieldRule, errs *ErrorCollection) *RowValidator {
	seen := make(map[string]map[string]int)
	for _, r := range rules {
		if r.UniqueInFile {
			seen[r.Column] = make(map[string]int)
		}
	}
	return &RowValidator{rules: rules, seen: seen, errors: errs}
}

// RequiredColumns lists the columns that must appear in the header
func (v *RowValidator) RequiredColumns() []string {
	var cols []string
	for _, r := range v.rules {
		if r.Required {
			cols = append(cols, r.Column)
		}
	}
	return cols
}

// Validate checks every rule against row and reports whether it passed
func (v *RowValidator) Validate(row *Row) bool {
	ok := true
	for _, rule := range v.rules {
		if !v.check(row, rule) {
			ok = false
		}
	}
	return ok
}

func (v *RowValidator) check(row *Row, rule FieldRule) bool {
	value := row.Get(rule.Column)
	if value == "" {
		if rule.Required {
			v.errors.Addf(row.Line, rule.Column, ErrCodeRequired, "", "field '%s' is required", rule.Column)
			return false
		}
		return true
	}

	if rule.MaxLength > 0 && utf8.RuneCountInString(value) > rule.MaxLength {
		v.errors.Addf(row.Line, rule.Column, ErrCodeInvalidLength, value, "length must be at most %d", rule.MaxLength)
		return false
	}

	switch rule.Type {
	case FieldTypeInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			v.errors.Addf(row.Line, rule.Column, ErrCodeInvalidType, value, "expected %s", rule.Type)
			return false
		}
		if !v.inRange(row, rule, decimal.NewFromInt(n), value) {
			return false
		}
	case FieldTypeDecimal:
		d, err := decimal.NewFromString(value)
		if err != nil {
			v.errors.Addf(row.Line, rule.Column, ErrCodeInvalidType, value, "expected %s", rule.Type)
			return false
		}
		if rule.MaxPlaces >= 0 && !d.Equal(d.Truncate(rule.MaxPlaces)) {
			v.errors.Addf(row.Line, rule.Column, ErrCodeInvalidValue, value, "at most %d decimal places allowed", rule.MaxPlaces)
			return false
		}
		if !v.inRange(row, rule, d, value) {
			return false
		}
	case FieldTypeBool:
		if _, err := ParseBool(value); err != nil {
			v.errors.Addf(row.Line, rule.Column, ErrCodeInvalidType, value, "expected %s", rule.Type)
			return false
		}
	}

	if rule.Custom != nil {
		if err := rule.Custom(value); err != nil {
			v.errors.Addf(row.Line, rule.Column, ErrCodeInvalidValue, value, "%s", err.Error())
			return false
		}
	}

	if seen, ok := v.seen[rule.Column]; ok {
		key := strings.ToLower(value)
		if first, dup := seen[key]; dup {
			v.errors.Addf(row.Line, rule.Column, ErrCodeDuplicateInFile, value, "duplicate of row %d", first)
			return false
		}
		seen[key] = row.Line
	}
	return true
}

func (v *RowValidator) inRange(row *Row, rule FieldRule, d decimal.Decimal, raw string) bool {
	if rule.Min != nil && d.LessThan(*rule.Min) {
		v.errors.Addf(row.Line, rule.Column, ErrCodeInvalidRange, raw, "must be at least %s", rule.Min.String())
		return false
	}
	if rule.Max != nil && d.GreaterThan(*rule.Max) {
		v.errors.Addf(row.Line, rule.Column, ErrCodeInvalidRange, raw, "must be at most %s", rule.Max.String())
		return false
	}
	return true
}

// ParseBool accepts the spellings spreadsheets commonly export
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y":
		return true, nil
	case "0", "false", "f", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
