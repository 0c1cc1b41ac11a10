package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// rawTable is one CSV source before merging: a canonicalized header plus
// string-valued rows, padded or truncated to the header width.
type rawTable struct {
	name    string
	columns []string
	rows    [][]string
}

func readTable(path, name string) (*rawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: file is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	t := &rawTable{name: name}
	for _, h := range header {
		t.columns = append(t.columns, canonicalName(h))
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if len(record) < len(t.columns) {
			padded := make([]string, len(t.columns))
			copy(padded, record)
			record = padded
		} else if len(record) > len(t.columns) {
			record = record[:len(t.columns)]
		}
		t.rows = append(t.rows, record)
	}

	return t, nil
}

// canonicalName maps a CSV header to a SQL-safe column name: lowercased,
// with runs of non-alphanumeric characters collapsed to underscores.
func canonicalName(header string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	name := b.String()
	if name == "" {
		return "column"
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "c_" + name
	}
	return name
}

func (t *rawTable) hasColumn(name string) bool {
	return t.columnIndex(name) >= 0
}

func (t *rawTable) columnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// rename maps a source-specific column onto a canonical name. It is a no-op
// when the source column is absent or the canonical name is already taken.
func (t *rawTable) rename(from, to string) {
	i := t.columnIndex(from)
	if i < 0 || t.hasColumn(to) {
		return
	}
	t.columns[i] = to
}

// addEmptyColumn appends an all-NULL placeholder column.
func (t *rawTable) addEmptyColumn(name string) {
	if t.hasColumn(name) {
		return
	}
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], "")
	}
}

// columnTypes infers a SQLite type per column: REAL when every non-empty
// value parses as a number, TEXT otherwise.
func (t *rawTable) columnTypes() []string {
	types := make([]string, len(t.columns))
	for i := range t.columns {
		numeric := false
		for _, row := range t.rows {
			v := strings.TrimSpace(row[i])
			if v == "" {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric = false
				break
			}
			numeric = true
		}
		if numeric {
			types[i] = "REAL"
		} else {
			types[i] = "TEXT"
		}
	}
	return types
}
