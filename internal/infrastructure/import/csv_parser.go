// Package csvimport reads catalog spreadsheets: a UTF-8 CSV file with a
// header row, validated column by column before anything is written.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// encodingCheckSize is how much of the file is checked for valid UTF-8 up
// front; later records are checked as they are read
const encodingCheckSize = 4096

// Parser reads rows of a CSV file keyed by header name
type Parser struct {
	delimiter rune
	reader    *csv.Reader
	headers   []string
	index     map[string]int
	line      int
}

// ParserOption is a functional option for Parser configuration
type ParserOption func(*Parser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *Parser) {
		p.delimiter = d
	}
}

// NewParser wraps r, dropping a UTF-8 byte order mark and rejecting
// files that are empty or not UTF-8.
func NewParser(r io.Reader, opts ...ParserOption) (*Parser, error) {
	p := &Parser{delimiter: ','}
	for _, opt := range opts {
		opt(p)
	}

	buf := bufio.NewReaderSize(r, encodingCheckSize)
	if bom, err := buf.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	head, err := buf.Peek(encodingCheckSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(strings.TrimSpace(string(head))) == 0 {
		return nil, ErrEmptyFile
	}
	// a multi-byte rune may straddle the checked boundary
	if len(head) == encodingCheckSize {
		head = trimPartialRune(head)
	}
	if !utf8.Valid(head) {
		return nil, ErrInvalidEncoding
	}

	p.reader = csv.NewReader(buf)
	p.reader.Comma = p.delimiter
	p.reader.LazyQuotes = true
	p.reader.TrimLeadingSpace = true
	p.reader.FieldsPerRecord = -1
	return p, nil
}

func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax-1 && len(b) > 0; i++ {
		if r, _ := utf8.DecodeLastRune(b); r != utf8.RuneError {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}

func validUTF8(record []string) bool {
	for _, field := range record {
		if !utf8.ValidString(field) {
			return false
		}
	}
	return true
}

// ReadHeader consumes the header row. Header names are matched
// case-insensitively.
func (p *Parser) ReadHeader() error {
	record, err := p.reader.Read()
	if errors.Is(err, io.EOF) {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	p.line = 1
	if !validUTF8(record) {
		return fmt.Errorf("%w: line %d", ErrInvalidEncoding, p.line)
	}

	p.headers = make([]string, len(record))
	p.index = make(map[string]int, len(record))
	for i, h := range record {
		name := normalizeHeader(h)
		if name == "" {
			continue
		}
		if _, dup := p.index[name]; dup {
			return fmt.Errorf("%w: column %q appears twice", ErrInvalidHeader, name)
		}
		p.headers[i] = name
		p.index[name] = i
	}
	if len(p.index) == 0 {
		return ErrMissingHeader
	}
	return nil
}

// Headers returns the header names in file order
func (p *Parser) Headers() []string {
	return p.headers
}

// HasColumn reports whether the header row names column
func (p *Parser) HasColumn(column string) bool {
	_, ok := p.index[normalizeHeader(column)]
	return ok
}

// MissingColumns returns the required columns absent from the header
func (p *Parser) MissingColumns(required []string) []string {
	var missing []string
	for _, c := range required {
		if !p.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Next returns the next non-blank row or io.EOF. A record that is not
// UTF-8 fails with ErrInvalidEncoding.
func (p *Parser) Next() (*Row, error) {
	for {
		record, err := p.reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		p.line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, p.line, err)
		}
		if !validUTF8(record) {
			return nil, fmt.Errorf("%w: line %d", ErrInvalidEncoding, p.line)
		}

		row := &Row{Line: p.line, values: make(map[string]string, len(p.index))}
		for name, i := range p.index {
			if i < len(record) {
				row.values[name] = strings.TrimSpace(record[i])
			}
		}
		if !row.IsBlank() {
			return row, nil
		}
	}
}

// Line returns the line number of the last row read
func (p *Parser) Line() int {
	return p.line
}

// Row is one data line of the file
type Row struct {
	Line   int
	values map[string]string
}

// NewRow builds a row from column values, mostly for tests
func NewRow(line int, values map[string]string) *Row {
	row := &Row{Line: line, values: make(map[string]string, len(values))}
	for k, v := range values {
		row.values[normalizeHeader(k)] = v
	}
	return row
}

// Get returns the trimmed value of column, or "" if the file lacks it
func (r *Row) Get(column string) string {
	return r.values[normalizeHeader(column)]
}

// GetOr returns the value of column or fallback when it is blank
func (r *Row) GetOr(column, fallback string) string {
	if v := r.Get(column); v != "" {
		return v
	}
	return fallback
}

// IsBlank reports whether every cell is empty
func (r *Row) IsBlank() bool {
	for _, v := range r.values {
		if v != "" {
			return false
		}
	}
	return true
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
