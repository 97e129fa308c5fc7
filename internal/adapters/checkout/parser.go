// Package checkout parses CHECK_OUT ledger exports. The parser is the
// validation boundary: every transaction it emits has a parseable date
// and quantity, so downstream calculations never re-check them.
package checkout

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/dataset"
)

// Warning describes a skipped input line.
type Warning struct {
	Line   int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}

// Result holds the parsed transactions and the lines that were skipped.
type Result struct {
	Transactions []dataset.Transaction
	Warnings     []Warning
}

// Date formats seen in CHECK_OUT exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// Header aliases, normalized form to canonical column.
var headerAliases = map[string]string{
	"DATE":                "DATE",
	"ITEM SERIAL":         "ITEM_SERIAL",
	"ITEM SERIAL NO":      "ITEM_SERIAL",
	"ITEM NAME":           "ITEM_NAME",
	"DEPARTMENT":          "DEPARTMENT",
	"ISSUED TO":           "ISSUED_TO",
	"QUANTITY":            "QUANTITY",
	"UNIT OF MEASURE":     "UNIT_OF_MEASURE",
	"UOM":                 "UNIT_OF_MEASURE",
	"ITEM CATEGORY":       "ITEM_CATEGORY",
	"WEEK":                "WEEK",
	"REFERENCE":           "REFERENCE",
	"DEPARTMENT CAT":      "DEPARTMENT_CAT",
	"DEPARTMENT CATEGORY": "DEPARTMENT_CAT",
	"BATCH NO":            "BATCH_NO",
	"STORE":               "STORE",
	"RECEIVED BY":         "RECEIVED_BY",
}

var requiredColumns = []string{"DATE", "ITEM_NAME", "DEPARTMENT", "QUANTITY"}

// Parse reads a CHECK_OUT CSV export. Rows with an unparseable date or
// quantity are dropped and reported as warnings; a missing required
// header fails the whole parse.
func Parse(r io.Reader) (*Result, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("export is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := mapHeader(header)
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	result := &Result{}
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Warnings = append(result.Warnings, Warning{Line: line, Reason: err.Error()})
			continue
		}

		get := func(column string) string {
			idx, ok := columns[column]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		date, err := parseDate(get("DATE"))
		if err != nil {
			result.Warnings = append(result.Warnings, Warning{Line: line, Reason: err.Error()})
			continue
		}
		quantity, err := strconv.ParseFloat(get("QUANTITY"), 64)
		if err != nil {
			result.Warnings = append(result.Warnings, Warning{Line: line, Reason: fmt.Sprintf("unparseable quantity %q", get("QUANTITY"))})
			continue
		}
		name := get("ITEM_NAME")
		if name == "" {
			result.Warnings = append(result.Warnings, Warning{Line: line, Reason: "empty item name"})
			continue
		}

		result.Transactions = append(result.Transactions, dataset.Transaction{
			Date:               date,
			ItemSerial:         get("ITEM_SERIAL"),
			ItemName:           name,
			Department:         get("DEPARTMENT"),
			IssuedTo:           get("ISSUED_TO"),
			Quantity:           quantity,
			UnitOfMeasure:      get("UNIT_OF_MEASURE"),
			ItemCategory:       get("ITEM_CATEGORY"),
			Week:               get("WEEK"),
			Reference:          get("REFERENCE"),
			DepartmentCategory: get("DEPARTMENT_CAT"),
			BatchNumber:        get("BATCH_NO"),
			Store:              get("STORE"),
			ReceivedBy:         get("RECEIVED_BY"),
		})
	}

	return result, nil
}

func mapHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, raw := range header {
		normalized := strings.ToUpper(strings.TrimSpace(raw))
		normalized = strings.ReplaceAll(normalized, "_", " ")
		normalized = strings.TrimSuffix(normalized, ".")
		normalized = strings.TrimSpace(normalized)
		if canonical, ok := headerAliases[normalized]; ok {
			if _, seen := columns[canonical]; !seen {
				columns[canonical] = i
			}
		}
	}
	return columns
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// skipBOM strips a UTF-8 byte order mark if present. Sheet exports often
// carry one.
func skipBOM(r io.Reader) io.Reader {
	buffered := bufio.NewReader(r)
	leading, err := buffered.Peek(3)
	if err == nil && leading[0] == 0xEF && leading[1] == 0xBB && leading[2] == 0xBF {
		buffered.Discard(3)
	}
	return buffered
}
