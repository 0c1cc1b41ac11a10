// Package dataset loads two track-metadata CSV files into an in-memory
// SQLite database and merges them once into a single read-only table that
// the query layer runs against.
package dataset

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// PrimaryFile is the left side of the merge; every one of its rows
	// survives into the merged table.
	PrimaryFile = "tracks.csv"

	// SecondaryFile contributes extra columns (popularity, audio features)
	// where its rows match the primary.
	SecondaryFile = "spotify_tracks.csv"
)

var (
	// ErrDataUnavailable means one of the input files is missing or
	// unreadable. Callers must not query.
	ErrDataUnavailable = errors.New("dataset unavailable")

	// ErrMissingJoinKey means neither the id/track_id pair nor a
	// title/artist composite key is present in both sources.
	ErrMissingJoinKey = errors.New("no common join key between datasets (expected 'id'/'track_id' or 'title'/'artist')")
)

// Dataset is the merged track table. It is immutable after Load; every
// query derives a fresh result from it.
type Dataset struct {
	db      *sql.DB
	caps    Capabilities
	columns []string
}

// Load reads the primary and secondary CSV files from dir and merges them.
// Repeated calls on the same files produce the same row count and columns.
func Load(dir string) (*Dataset, error) {
	primary, err := readTable(filepath.Join(dir, PrimaryFile), "tracks")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	secondary, err := readTable(filepath.Join(dir, SecondaryFile), "spotify")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	primary.rename("name", "title")
	primary.rename("artists", "artist")
	secondary.rename("track_name", "title")
	secondary.rename("artists", "artist")

	// Align schemas so the merged table always has a year column when the
	// primary source does.
	if primary.hasColumn("year") && !secondary.hasColumn("year") {
		secondary.addEmptyColumn("year")
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each pool connection would get its own empty :memory: database.
	db.SetMaxOpenConns(1)

	if err := insertTable(db, primary); err != nil {
		db.Close()
		return nil, err
	}
	if err := insertTable(db, secondary); err != nil {
		db.Close()
		return nil, err
	}
	if err := mergeTables(db, primary, secondary); err != nil {
		db.Close()
		return nil, err
	}

	columns, err := tableColumns(db, "merged")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Dataset{
		db:      db,
		caps:    detectCapabilities(columns),
		columns: columns,
	}, nil
}

// DB exposes the underlying database for the query layer. The merged table
// must be treated as read-only.
func (d *Dataset) DB() *sql.DB {
	return d.db
}

// Caps reports which optional columns the merged table carries.
func (d *Dataset) Caps() Capabilities {
	return d.caps
}

// Columns lists the merged table's column names in order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// RowCount returns the number of merged rows.
func (d *Dataset) RowCount() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM merged").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting merged rows: %w", err)
	}
	return n, nil
}

func (d *Dataset) Close() error {
	return d.db.Close()
}

func insertTable(db *sql.DB, t *rawTable) error {
	types := t.columnTypes()
	defs := make([]string, len(t.columns))
	for i, c := range t.columns {
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(c), types[i])
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(t.name), strings.Join(defs, ", "))
	if _, err := db.Exec(create); err != nil {
		return fmt.Errorf("creating table %s: %w", t.name, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(t.columns)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(t.name), placeholders))
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", t.name, err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(t.columns))
	for _, row := range t.rows {
		for i, v := range row {
			v = strings.TrimSpace(v)
			switch {
			case v == "":
				args[i] = nil
			case types[i] == "REAL":
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return fmt.Errorf("parsing %q as number for %s.%s: %w", v, t.name, t.columns[i], err)
				}
				args[i] = f
			default:
				args[i] = v
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting into %s: %w", t.name, err)
		}
	}

	return tx.Commit()
}

// mergeTables builds the merged table with a LEFT JOIN so every primary row
// survives. Secondary columns that collide with a primary column name get a
// _spotify suffix; composite join keys are not duplicated.
func mergeTables(db *sql.DB, primary, secondary *rawTable) error {
	var on string
	joinKeys := make(map[string]bool)
	switch {
	case primary.hasColumn("id") && secondary.hasColumn("track_id"):
		on = fmt.Sprintf("p.%s = s.%s", quoteIdent("id"), quoteIdent("track_id"))
	default:
		var conds []string
		for _, k := range []string{"title", "artist"} {
			if primary.hasColumn(k) && secondary.hasColumn(k) {
				conds = append(conds, fmt.Sprintf("p.%s = s.%s", quoteIdent(k), quoteIdent(k)))
				joinKeys[k] = true
			}
		}
		if len(conds) == 0 {
			return ErrMissingJoinKey
		}
		on = strings.Join(conds, " AND ")
	}

	primaryCols := make(map[string]bool)
	for _, c := range primary.columns {
		primaryCols[c] = true
	}

	sel := []string{"p.*"}
	for _, c := range secondary.columns {
		if joinKeys[c] {
			continue
		}
		if primaryCols[c] {
			sel = append(sel, fmt.Sprintf("s.%s AS %s", quoteIdent(c), quoteIdent(c+"_spotify")))
		} else {
			sel = append(sel, "s."+quoteIdent(c))
		}
	}

	query := fmt.Sprintf("CREATE TABLE merged AS SELECT %s FROM %s p LEFT JOIN %s s ON %s",
		strings.Join(sel, ", "), quoteIdent(primary.name), quoteIdent(secondary.name), on)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("merging datasets: %w", err)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
