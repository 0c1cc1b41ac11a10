package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeDataDir(t *testing.T, primary, secondary string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PrimaryFile), []byte(primary), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, SecondaryFile), []byte(secondary), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMergesOnTrackID(t *testing.T) {
	dir := writeDataDir(t,
		"id,name,artists,year\nt1,Song A,Artist X,2010\n",
		"track_id,track_name,artists,popularity\nt1,Song A,Artist X,77\n")

	d, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer d.Close()

	var title, artist string
	var year, popularity int
	row := d.DB().QueryRow("SELECT title, artist, CAST(year AS INTEGER), CAST(popularity AS INTEGER) FROM merged")
	if err := row.Scan(&title, &artist, &year, &popularity); err != nil {
		t.Fatalf("scanning merged row: %v", err)
	}
	if title != "Song A" || artist != "Artist X" || year != 2010 || popularity != 77 {
		t.Errorf("got (%q, %q, %d, %d), want (Song A, Artist X, 2010, 77)", title, artist, year, popularity)
	}
}

func TestLoadMergesOnTitleArtist(t *testing.T) {
	dir := writeDataDir(t,
		"name,artists,year\nSong A,Artist X,2010\n",
		"track_name,artists,popularity\nSong A,Artist X,77\n")

	d, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer d.Close()

	if !d.Caps().HasPopularity {
		t.Errorf("merged table should have popularity, columns: %v", d.Columns())
	}

	var popularity float64
	err = d.DB().QueryRow("SELECT popularity FROM merged WHERE title = 'Song A'").Scan(&popularity)
	if err != nil {
		t.Fatalf("scanning popularity: %v", err)
	}
	if popularity != 77 {
		t.Errorf("popularity = %v, want 77", popularity)
	}
}

func TestLoadKeepsUnmatchedPrimaryRows(t *testing.T) {
	dir := writeDataDir(t,
		"id,name,artists,year\nt1,Song A,Artist X,2010\nt2,Song B,Artist Y,2011\n",
		"track_id,track_name,artists,popularity\nt1,Song A,Artist X,77\n")

	d, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer d.Close()

	count, err := d.RowCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("RowCount = %d, want 2 (left join keeps every primary row)", count)
	}

	var nulls int
	err = d.DB().QueryRow("SELECT COUNT(*) FROM merged WHERE popularity IS NULL").Scan(&nulls)
	if err != nil {
		t.Fatal(err)
	}
	if nulls != 1 {
		t.Errorf("unmatched row should have NULL popularity, got %d NULL rows", nulls)
	}
}

func TestLoadMissingJoinKey(t *testing.T) {
	dir := writeDataDir(t,
		"foo,year\n1,2010\n",
		"bar,popularity\n2,50\n")

	_, err := Load(dir)
	if !errors.Is(err, ErrMissingJoinKey) {
		t.Errorf("Load = %v, want ErrMissingJoinKey", err)
	}
}

func TestLoadDataUnavailable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PrimaryFile), []byte("name,artists\na,b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Load = %v, want ErrDataUnavailable", err)
	}
}

func TestLoadSuffixesCollidingColumns(t *testing.T) {
	dir := writeDataDir(t,
		"id,name,artists,popularity\nt1,Song A,Artist X,10\n",
		"track_id,track_name,artists,popularity\nt1,Song A,Artist X,99\n")

	d, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer d.Close()

	found := false
	for _, c := range d.Columns() {
		if c == "popularity_spotify" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected popularity_spotify column, got %v", d.Columns())
	}

	var primary, secondary float64
	err = d.DB().QueryRow("SELECT popularity, popularity_spotify FROM merged").Scan(&primary, &secondary)
	if err != nil {
		t.Fatal(err)
	}
	if primary != 10 || secondary != 99 {
		t.Errorf("got (%v, %v), want primary value 10 preserved and secondary 99 suffixed", primary, secondary)
	}
}

func TestLoadBackfillsYear(t *testing.T) {
	dir := writeDataDir(t,
		"id,name,artists,year\nt1,Song A,Artist X,2010\n",
		"track_id,track_name,artists\nt1,Song A,Artist X\n")

	d, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer d.Close()

	if !d.Caps().HasYear {
		t.Errorf("merged table should keep the primary's year column, columns: %v", d.Columns())
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	dir := writeDataDir(t,
		"id,name,artists,year\nt1,Song A,Artist X,2010\nt2,Song B,Artist Y,2011\n",
		"track_id,track_name,artists,popularity\nt1,Song A,Artist X,77\n")

	first, err := Load(dir)
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	defer first.Close()
	second, err := Load(dir)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	defer second.Close()

	firstCount, _ := first.RowCount()
	secondCount, _ := second.RowCount()
	if firstCount != secondCount {
		t.Errorf("row counts differ: %d vs %d", firstCount, secondCount)
	}
	if !reflect.DeepEqual(first.Columns(), second.Columns()) {
		t.Errorf("column sets differ: %v vs %v", first.Columns(), second.Columns())
	}
}

func TestCanonicalName(t *testing.T) {
	cases := map[string]string{
		"Track Name":   "track_name",
		" artists ":    "artists",
		"Popularity":   "popularity",
		"valence(0-1)": "valence_0_1",
		"2020 rank":    "c_2020_rank",
	}
	for in, want := range cases {
		if got := canonicalName(in); got != want {
			t.Errorf("canonicalName(%q) = %q, want %q", in, got, want)
		}
	}
}
