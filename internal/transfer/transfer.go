// Package transfer implements bulk export and import of owned counts in the
// two-column text format the tracker exchanges with the user:
//
//	cardNumber,count
//	001,3
//	002,1
//
// Export rows carry only counts above 0 and end with CRLF. Import replaces
// the whole ownership mapping; malformed rows are skipped and counted, never
// fatal.
package transfer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ktanahashi/cardbinder/internal/catalog"
)

const (
	// ExportFilename is the fixed name of the export artifact.
	ExportFilename = "owned_cards.csv"

	// ContentType is the MIME type of the export artifact.
	ContentType = "text/csv"
)

var header = []string{"cardNumber", "count"}

// ErrNothingToExport reports that no entry has a count above 0.
var ErrNothingToExport = errors.New("no owned cards to export")

// Export writes the export artifact for the given counts. Entries with
// count 0 (or below) are omitted; rows are ordered by card number so equal
// collections serialize identically. When no entry qualifies it returns
// ErrNothingToExport without writing anything.
func Export(w io.Writer, counts map[string]int) error {
	numbers := make([]string, 0, len(counts))
	for number, count := range counts {
		if count > 0 {
			numbers = append(numbers, number)
		}
	}
	if len(numbers) == 0 {
		return ErrNothingToExport
	}
	sort.Strings(numbers)

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, number := range numbers {
		if err := cw.Write([]string{number, strconv.Itoa(counts[number])}); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

// ImportResult is the outcome of parsing an import file.
type ImportResult struct {
	// Counts is the replacement mapping built from the valid rows.
	Counts map[string]int

	// RowErrors counts rows that were skipped: wrong field count, a count
	// that does not parse as a non-negative integer, or a number not in
	// the catalog.
	RowErrors int
}

// Import parses the two-column format into a fresh replacement mapping,
// validating every number against the catalog. The first line is always
// discarded as the header. Duplicate numbers let the last row win. A row
// failure never aborts the batch; only a read error does.
func Import(r io.Reader, cat *catalog.Catalog) (*ImportResult, error) {
	result := &ImportResult{Counts: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			result.RowErrors++
			continue
		}

		number := strings.TrimSpace(fields[0])
		count, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || count < 0 {
			result.RowErrors++
			continue
		}
		if !cat.Has(number) {
			result.RowErrors++
			continue
		}

		result.Counts[number] = count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read import data: %w", err)
	}

	return result, nil
}
