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
	"fmt"
	"regexp"
	"strconv"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// parseYearArg validates a 4-digit year argument like '2010'.
func parseYearArg(s string) (int, error) {
	if !yearPattern.MatchString(s) {
		return 0, fmt.Errorf("Invalid year %q: expected a 4-digit year like '2010'", s)
	}
	return strconv.Atoi(s)
}
