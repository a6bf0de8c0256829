package csvimport

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRules() []FieldRule {
	return []FieldRule{
		Field("name").Required().MaxLength(10).Build(),
		Field("slug").UniqueInFile().Build(),
		Field("price").Required().Decimal(2).Range(decimal.Zero, decimal.RequireFromString("9999.99")).Build(),
		Field("stock").Int().MinValue(decimal.Zero).Build(),
		Field("is_available").Bool().Build(),
		Field("category").Custom(func(v string) error {
			if v == "misc" {
				return errors.New("category misc is retired")
			}
			return nil
		}).Build(),
	}
}

func TestRowValidator_RequiredColumns(t *testing.T) {
	v := NewRowValidator(productRules(), NewErrorCollection(0))
	assert.Equal(t, []string{"name", "price"}, v.RequiredColumns())
}

func TestRowValidator_Validate(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		column string
		code   string
	}{
		{name: "valid", values: map[string]string{"name": "Mug", "price": "12.50", "stock": "3", "is_available": "yes"}},
		{name: "optional blanks", values: map[string]string{"name": "Mug", "price": "0"}},
		{name: "missing name", values: map[string]string{"price": "1"}, column: "name", code: ErrCodeRequired},
		{name: "long name", values: map[string]string{"name": "Twelve chars", "price": "1"}, column: "name", code: ErrCodeInvalidLength},
		{name: "price not a number", values: map[string]string{"name": "Mug", "price": "abc"}, column: "price", code: ErrCodeInvalidType},
		{name: "price too precise", values: map[string]string{"name": "Mug", "price": "1.005"}, column: "price", code: ErrCodeInvalidValue},
		{name: "price too high", values: map[string]string{"name": "Mug", "price": "10000"}, column: "price", code: ErrCodeInvalidRange},
		{name: "negative stock", values: map[string]string{"name": "Mug", "price": "1", "stock": "-2"}, column: "stock", code: ErrCodeInvalidRange},
		{name: "fractional stock", values: map[string]string{"name": "Mug", "price": "1", "stock": "1.5"}, column: "stock", code: ErrCodeInvalidType},
		{name: "bad bool", values: map[string]string{"name": "Mug", "price": "1", "is_available": "maybe"}, column: "is_available", code: ErrCodeInvalidType},
		{name: "custom rule", values: map[string]string{"name": "Mug", "price": "1", "category": "misc"}, column: "category", code: ErrCodeInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := NewErrorCollection(0)
			ok := NewRowValidator(productRules(), errs).Validate(NewRow(2, tt.values))

			if tt.code == "" {
				assert.True(t, ok)
				assert.False(t, errs.HasErrors())
				return
			}
			assert.False(t, ok)
			require.Equal(t, 1, errs.Total())
			assert.Equal(t, tt.column, errs.Errors()[0].Column)
			assert.Equal(t, tt.code, errs.Errors()[0].Code)
			assert.True(t, errs.RowFailed(2))
		})
	}
}

func TestRowValidator_DuplicateInFile(t *testing.T) {
	errs := NewErrorCollection(0)
	v := NewRowValidator(productRules(), errs)

	assert.True(t, v.Validate(NewRow(2, map[string]string{"name": "Mug", "slug": "mug", "price": "1"})))
	assert.False(t, v.Validate(NewRow(3, map[string]string{"name": "Mug 2", "slug": "MUG", "price": "1"})))

	require.Len(t, errs.Errors(), 1)
	assert.Equal(t, ErrCodeDuplicateInFile, errs.Errors()[0].Code)
	assert.Equal(t, "duplicate of row 2", errs.Errors()[0].Message)
}

func TestErrorCollection_Truncates(t *testing.T) {
	errs := NewErrorCollection(2)
	for row := 2; row <= 4; row++ {
		errs.Addf(row, "name", ErrCodeRequired, "", "field '%s' is required", "name")
	}
	errs.Addf(4, "price", ErrCodeInvalidType, "x", "expected decimal")

	assert.Len(t, errs.Errors(), 2)
	assert.Equal(t, 4, errs.Total())
	assert.Equal(t, 3, errs.FailedRows())
	assert.True(t, errs.IsTruncated())
	assert.Equal(t, map[string]int{ErrCodeRequired: 2}, errs.Summary())
	assert.Contains(t, errs.String(), "4 error(s) found (showing first 2)")
	assert.Equal(t, "row 2, column 'name': field 'name' is required", errs.Errors()[0].Error())
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "TRUE", "yes", "Y"} {
		v, err := ParseBool(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"0", "false", "No"} {
		v, err := ParseBool(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBool("perhaps")
	assert.Error(t, err)
}
