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
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdash/music-explorer/internal/analysis"
	"github.com/pdash/music-explorer/internal/dataset"
)

var topArtistsNumber int
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists <year>",
	Short: "Gets the top artists by mean popularity for a year",
	Long:  `Ranks artists by the average popularity of their tracks in the given year. Ties are broken by artist name.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopArtists(viper.GetString("data"), topArtistsNumber, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", 10, "number of results to return")
}

func printTopArtists(dataDir string, numToReturn int, args []string) error {
	year, err := parseYearArg(args[0])
	if err != nil {
		return err
	}

	config := AnalyserConfig{NumToReturn: numToReturn}
	out, err := TopArtistsAnalyzer{}.SetConfig(config).GetResults(dataDir, year)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopArtistsAnalyzer) SetConfig(config AnalyserConfig) TopArtistsAnalyzer {
	t.Config = config
	return t
}

func (t TopArtistsAnalyzer) GetName() string {
	return "Top artists"
}

func (t *TopArtistsAnalyzer) Configure(params map[string]string) error {
	if val, ok := params["n"]; ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid value for 'n': %v", err)
		}
		t.Config.NumToReturn = n
	}
	return nil
}

func (t TopArtistsAnalyzer) GetResults(dataDir string, year int) (out Analysis, err error) {
	d, err := dataset.Load(dataDir)
	if err != nil {
		err = fmt.Errorf("printTopArtists: %w", err)
		return
	}
	defer d.Close()

	n := t.Config.NumToReturn
	if n == 0 {
		n = 10
	}

	artists, err := analysis.TopArtists(d, year, n)
	if err != nil {
		return
	}

	out.results = [][]string{{"Artist", "Mean popularity"}}
	for _, a := range artists {
		out.results = append(out.results, []string{a.Artist, fmt.Sprintf("%.1f", a.MeanPopularity)})
	}
	if len(artists) == 0 {
		out.summary = fmt.Sprintf("No artist popularity data for %d\n", year)
	} else {
		out.summary = fmt.Sprintf("Top %d artists of %d by mean popularity\n", len(artists), year)
	}
	return
}
