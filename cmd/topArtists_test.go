/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPrintTopArtistsDatasetDoesntExist(t *testing.T) {
	err := printTopArtists(filepath.Join(t.TempDir(), "nope"), 10, []string{"2010"})
	if err == nil {
		t.Fatalf("printTopArtists should have errored with no dataset")
	}
	if !strings.Contains(err.Error(), "dataset unavailable") {
		t.Fatalf("printTopArtists should have said the dataset is unavailable: %v", err)
	}
}

func TestPrintTopArtistsInvalidYear(t *testing.T) {
	err := printTopArtists(t.TempDir(), 10, []string{"derp"})
	if err == nil {
		t.Fatalf("printTopArtists should have errored with an invalid year")
	}
}

func TestTopArtistsAnalyzerResults(t *testing.T) {
	dataDir := writeReportDataDir(t)

	analyzer := TopArtistsAnalyzer{}.SetConfig(AnalyserConfig{NumToReturn: 10})
	out, err := analyzer.GetResults(dataDir, 2010)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}

	rendered := out.String()
	if !strings.Contains(rendered, "Artist X") {
		t.Errorf("Expected results to include Artist X, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "80.0") {
		t.Errorf("Expected Artist X's mean popularity of 80.0, got:\n%s", rendered)
	}
}

func TestTopArtistsAnalyzerNoData(t *testing.T) {
	dataDir := writeReportDataDir(t)

	out, err := TopArtistsAnalyzer{}.GetResults(dataDir, 1999)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if !strings.Contains(out.String(), "No artist popularity data for 1999") {
		t.Errorf("Expected a no-data summary, got %q", out.String())
	}
}

func TestTopArtistsAnalyzerConfigure(t *testing.T) {
	analyzer := &TopArtistsAnalyzer{}
	if err := analyzer.Configure(map[string]string{"n": "5"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if analyzer.Config.NumToReturn != 5 {
		t.Errorf("Expected NumToReturn to be 5, got %d", analyzer.Config.NumToReturn)
	}

	if err := analyzer.Configure(map[string]string{"n": "lots"}); err == nil {
		t.Errorf("Configure should have rejected a non-numeric 'n'")
	}
}
