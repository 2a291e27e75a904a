package app

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"momentum/internal/domain"
)

var (
	errMissingField   = errors.New("expected date,weight")
	errWeightNotPosit = errors.New("weight must be a positive number")
)

// LineError describes one rejected import line.
type LineError struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// ImportResult reports the outcome of a bulk import. ImportedCount counts
// distinct days merged, not lines; ErrorCount counts rejected lines. Blank
// lines and in-batch duplicates superseded by a later line count in neither.
type ImportResult struct {
	ImportedCount int         `json:"importedCount"`
	ErrorCount    int         `json:"errorCount"`
	Errors        []LineError `json:"errors,omitempty"`
}

// ImportOutcome summarises an ImportResult for user feedback.
type ImportOutcome string

const (
	ImportSucceeded ImportOutcome = "success"
	ImportPartial   ImportOutcome = "partial"
	ImportFailed    ImportOutcome = "failed"
	ImportNothing   ImportOutcome = "empty"
)

// Outcome classifies the result the way the import dialog reports it.
func (r ImportResult) Outcome() ImportOutcome {
	switch {
	case r.ImportedCount > 0 && r.ErrorCount > 0:
		return ImportPartial
	case r.ImportedCount > 0:
		return ImportSucceeded
	case r.ErrorCount > 0:
		return ImportFailed
	}
	return ImportNothing
}

// ParsedImport is the per-batch result of parsing import text.
type ParsedImport struct {
	// Weights maps each valid day to the weight in kilograms of its last
	// occurrence in the text.
	Weights map[domain.Day]float64
	// Order lists the days of Weights by first appearance.
	Order  []domain.Day
	Errors []LineError
}

// ParseImport classifies every line of text independently. Each non-blank
// line is either accepted into the day map or recorded as an error; a
// later line for the same day replaces an earlier one.
func ParseImport(text string, unit domain.Unit) ParsedImport {
	p := ParsedImport{Weights: make(map[domain.Day]float64)}
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		day, kg, err := parseLine(line, unit)
		if err != nil {
			p.Errors = append(p.Errors, LineError{Line: n + 1, Text: line, Reason: err.Error()})
			continue
		}
		if _, ok := p.Weights[day]; !ok {
			p.Order = append(p.Order, day)
		}
		p.Weights[day] = kg
	}
	return p
}

func parseLine(line string, unit domain.Unit) (domain.Day, float64, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rec, err := r.Read()
	if err != nil {
		return domain.Day{}, 0, fmt.Errorf("malformed line: %w", err)
	}
	if len(rec) < 2 {
		return domain.Day{}, 0, errMissingField
	}
	dateStr, weightStr := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
	if dateStr == "" || weightStr == "" {
		return domain.Day{}, 0, errMissingField
	}
	day, err := domain.ParseDay(dateStr)
	if err != nil {
		return domain.Day{}, 0, err
	}
	w, err := parseWeight(weightStr)
	if err != nil {
		return domain.Day{}, 0, err
	}
	return day, domain.ToKilograms(w, unit), nil
}

// parseWeight parses a user-entered decimal number and requires it to be
// positive and finite.
func parseWeight(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid weight %q", s)
	}
	if !d.IsPositive() {
		return 0, errWeightNotPosit
	}
	w := d.InexactFloat64()
	if !domain.ValidWeight(w) {
		return 0, errWeightNotPosit
	}
	return w, nil
}
