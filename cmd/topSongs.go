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

var topSongsNumber int
var topSongsCmd = &cobra.Command{
	Use:   "top-songs <year>",
	Short: "Gets the most popular songs for a year",
	Long:  `Lists songs sorted by popularity, descending. Ties are broken by title.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopSongs(viper.GetString("data"), topSongsNumber, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topSongsCmd)

	topSongsCmd.Flags().IntVarP(&topSongsNumber, "number", "n", 20, "number of results to return")
}

func printTopSongs(dataDir string, numToReturn int, args []string) error {
	year, err := parseYearArg(args[0])
	if err != nil {
		return err
	}

	config := AnalyserConfig{NumToReturn: numToReturn}
	out, err := TopSongsAnalyzer{}.SetConfig(config).GetResults(dataDir, year)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type TopSongsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopSongsAnalyzer) SetConfig(config AnalyserConfig) TopSongsAnalyzer {
	t.Config = config
	return t
}

func (t TopSongsAnalyzer) GetName() string {
	return "Top songs"
}

func (t *TopSongsAnalyzer) Configure(params map[string]string) error {
	if val, ok := params["n"]; ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid value for 'n': %v", err)
		}
		t.Config.NumToReturn = n
	}
	return nil
}

func (t TopSongsAnalyzer) GetResults(dataDir string, year int) (out Analysis, err error) {
	d, err := dataset.Load(dataDir)
	if err != nil {
		err = fmt.Errorf("printTopSongs: %w", err)
		return
	}
	defer d.Close()

	n := t.Config.NumToReturn
	if n == 0 {
		n = 20
	}

	songs, err := analysis.MostPopularSongs(d, year, n)
	if err != nil {
		return
	}

	out.results = [][]string{{"Title", "Artist", "Popularity"}}
	for _, s := range songs {
		out.results = append(out.results, []string{s.Title, s.Artist, fmt.Sprintf("%.0f", s.Popularity)})
	}
	if len(songs) == 0 {
		out.summary = fmt.Sprintf("No song popularity data for %d\n", year)
	} else {
		out.summary = fmt.Sprintf("Top %d songs of %d\n", len(songs), year)
	}
	return
}
