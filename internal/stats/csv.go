package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// csvTable is a parsed CSV file with case-insensitive header lookup
type csvTable struct {
	header map[string]int
	rows   [][]string
}

func readCSVFile(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: empty CSV file", path)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.ToUpper(strings.TrimSpace(name))] = i
	}

	return &csvTable{header: header, rows: records[1:]}, nil
}

// str returns the named column for a row, empty string when absent
func (t *csvTable) str(row []string, col string) string {
	idx, ok := t.header[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// num returns the named numeric column for a row, 0 when absent or malformed
func (t *csvTable) num(row []string, col string) float64 {
	s := t.str(row, col)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// intVal returns the named integer column for a row, 0 when absent
func (t *csvTable) intVal(row []string, col string) int {
	return int(t.num(row, col))
}

// hasColumn reports whether the CSV carries the named column
func (t *csvTable) hasColumn(col string) bool {
	_, ok := t.header[col]
	return ok
}

// requireColumns fails the load when an identity column is missing.
// Stat columns stay optional so partial exports still load with zeros.
func requireColumns(t *csvTable, path string, cols ...string) error {
	for _, col := range cols {
		if !t.hasColumn(col) {
			return fmt.Errorf("%s: missing required column %s", path, col)
		}
	}
	return nil
}
