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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdash/music-explorer/internal/analysis"
	"github.com/pdash/music-explorer/internal/dataset"
)

var compareCmd = &cobra.Command{
	Use:   "compare <artist1> <artist2>",
	Short: "Compares two artists' popularity over the years",
	Long:  `Shows the mean track popularity per year for each artist, for every year either artist has data.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printComparison(viper.GetString("data"), args[0], args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func printComparison(dataDir, artist1, artist2 string) error {
	analyzer := &CompareAnalyzer{Artist1: artist1, Artist2: artist2}
	out, err := analyzer.GetResults(dataDir, 0)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type CompareAnalyzer struct {
	Artist1 string
	Artist2 string
}

func (c CompareAnalyzer) GetName() string {
	return "Artist comparison"
}

func (c *CompareAnalyzer) Configure(params map[string]string) error {
	if val, ok := params["artist1"]; ok {
		c.Artist1 = val
	}
	if val, ok := params["artist2"]; ok {
		c.Artist2 = val
	}
	if c.Artist1 == "" || c.Artist2 == "" {
		return fmt.Errorf("'artist1' and 'artist2' parameters are required")
	}
	return nil
}

// The year argument is unused; the comparison always spans all years.
func (c CompareAnalyzer) GetResults(dataDir string, _ int) (out Analysis, err error) {
	d, err := dataset.Load(dataDir)
	if err != nil {
		err = fmt.Errorf("printComparison: %w", err)
		return
	}
	defer d.Close()

	rows, err := analysis.CompareArtists(d, c.Artist1, c.Artist2)
	if err != nil {
		return
	}

	out.results = [][]string{{"Year", "Artist", "Mean popularity"}}
	for _, r := range rows {
		out.results = append(out.results, []string{
			fmt.Sprintf("%d", r.Year), r.Artist, fmt.Sprintf("%.1f", r.MeanPopularity)})
	}
	if len(rows) == 0 {
		out.summary = fmt.Sprintf("No popularity data for %q or %q\n", c.Artist1, c.Artist2)
	} else {
		out.summary = fmt.Sprintf("Popularity comparison: %s vs. %s\n", c.Artist1, c.Artist2)
	}
	return
}
