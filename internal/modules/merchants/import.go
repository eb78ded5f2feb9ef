package merchants

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gorm.io/gorm"
)

// CSV layout: name, email, status, identifier type, identifier value.
const (
	csvColumnName       = 0
	csvColumnEmail      = 1
	csvColumnStatus     = 2
	csvColumnIdentType  = 3
	csvColumnIdentValue = 4

	csvColumnCount = 5
)

type ImportError struct {
	Line int
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("error while importing CSV line [%d]: %v", e.Line, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ParseMerchantCSV reads merchant rows from r. Parse errors carry the
// offending line number; an empty trailing line is tolerated.
func ParseMerchantCSV(r io.Reader) ([]MerchantInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var out []MerchantInput
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &ImportError{Line: line, Err: err}
		}
		if len(record) != csvColumnCount {
			return nil, &ImportError{Line: line,
				Err: fmt.Errorf("expected %d columns, got %d", csvColumnCount, len(record))}
		}

		in := MerchantInput{
			Name:         strings.TrimSpace(record[csvColumnName]),
			Email:        strings.TrimSpace(record[csvColumnEmail]),
			StatusTypeID: strings.TrimSpace(record[csvColumnStatus]),
		}
		if v := strings.TrimSpace(record[csvColumnIdentType]); v != "" {
			in.IdentifierTypeID = &v
		}
		if v := strings.TrimSpace(record[csvColumnIdentValue]); v != "" {
			in.IdentifierValue = &v
		}
		if in.Name == "" || in.Email == "" || in.StatusTypeID == "" {
			return nil, &ImportError{Line: line,
				Err: fmt.Errorf("name, email and status are required")}
		}
		out = append(out, in)
	}
	return out, nil
}

type ImportService struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewImportService(db *gorm.DB, log *slog.Logger) *ImportService {
	return &ImportService{db: db, log: log}
}

// Import loads all merchants from the CSV stream in one transaction; any
// bad line rolls the whole import back.
func (s *ImportService) Import(ctx context.Context, r io.Reader) (int, error) {
	inputs, err := ParseMerchantCSV(r)
	if err != nil {
		return 0, err
	}

	count := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := NewService(tx, s.log)
		for i, in := range inputs {
			if _, err := scoped.Add(ctx, in); err != nil {
				return &ImportError{Line: i + 1, Err: err}
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "merchants_imported", slog.Int("count", count))
	return count, nil
}
