package clean

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileDecodesLatin1AndSkipsRaggedRows(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "historical_data.csv")
	outPath := filepath.Join(dir, "clean_historical_data.csv")

	// "Beyonc\xe9" is Latin-1 for Beyoncé; the third row has a stray column.
	raw := []byte("title,artist,year\n" +
		"Halo,Beyonc\xe9,2008\n" +
		"Bad Row,Artist,2009,extra\n" +
		"Good Row,Artist,2010\n")
	if err := os.WriteFile(inPath, raw, 0644); err != nil {
		t.Fatal(err)
	}

	res, err := File(inPath, outPath)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kept != 2 || res.Skipped != 1 {
		t.Errorf("Result = %+v, want 2 kept and 1 skipped", res)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	cleaned := string(out)
	if !strings.Contains(cleaned, "Beyoncé") {
		t.Errorf("output should contain the UTF-8 decoded artist, got:\n%s", cleaned)
	}
	if strings.Contains(cleaned, "Bad Row") {
		t.Errorf("ragged row should have been dropped, got:\n%s", cleaned)
	}
}

func TestFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := File(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}
