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
	"strings"
	"testing"
)

func TestAnalysisStringRendersTable(t *testing.T) {
	a := Analysis{
		results: [][]string{
			{"Artist", "Mean popularity"},
			{"Artist X", "85.0"},
		},
		summary: "Top 1 artists\n",
	}

	out := a.String()
	if !strings.Contains(out, "Artist X") {
		t.Errorf("Expected rendered table to contain the artist, got:\n%s", out)
	}
	if !strings.Contains(out, "85.0") {
		t.Errorf("Expected rendered table to contain the popularity, got:\n%s", out)
	}
	if !strings.Contains(out, "Top 1 artists") {
		t.Errorf("Expected output to end with the summary, got:\n%s", out)
	}
}

func TestAnalysisStringEmptyResultsIsJustSummary(t *testing.T) {
	a := Analysis{
		results: [][]string{{"Artist", "Mean popularity"}},
		summary: "No artist popularity data for 1999\n",
	}

	if got := a.String(); got != a.summary {
		t.Errorf("Expected header-only results to print the summary alone, got %q", got)
	}
}

func TestAnalysisStringBodyOverride(t *testing.T) {
	a := Analysis{
		results:      [][]string{{"Artist"}, {"Artist X"}},
		summary:      "should not appear\n",
		BodyOverride: "The most popular song of 2010 was \"Song A\".\n",
	}

	if got := a.String(); got != a.BodyOverride {
		t.Errorf("Expected BodyOverride to win, got %q", got)
	}
}
