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

func TestParseYearArg_valid(t *testing.T) {
	year, err := parseYearArg("2010")
	if err != nil {
		t.Fatalf("parseYearArg(2010): %v", err)
	}
	if year != 2010 {
		t.Fatalf("Expected 2010, got %d", year)
	}
}

func TestParseYearArg_invalid(t *testing.T) {
	for _, s := range []string{"", "20", "20100", "derp", "2010-01", "201o"} {
		_, err := parseYearArg(s)
		if err == nil {
			t.Fatalf("Expected error parsing %q", s)
		}
		if !strings.Contains(err.Error(), "Invalid year") {
			t.Fatalf("Should have errored with invalid year: %v", err)
		}
	}
}
