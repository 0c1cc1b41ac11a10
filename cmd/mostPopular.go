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

var mostPopularCmd = &cobra.Command{
	Use:   "most-popular <year>",
	Short: "Gets the single most popular song of a year",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printMostPopular(viper.GetString("data"), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mostPopularCmd)
}

func printMostPopular(dataDir string, args []string) error {
	year, err := parseYearArg(args[0])
	if err != nil {
		return err
	}

	out, err := MostPopularAnalyzer{}.GetResults(dataDir, year)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type MostPopularAnalyzer struct{}

func (m MostPopularAnalyzer) GetName() string {
	return "Most popular song"
}

func (m MostPopularAnalyzer) GetResults(dataDir string, year int) (out Analysis, err error) {
	d, err := dataset.Load(dataDir)
	if err != nil {
		err = fmt.Errorf("printMostPopular: %w", err)
		return
	}
	defer d.Close()

	song, ok, err := analysis.MostPopularSongByYear(d, year)
	if err != nil {
		return
	}
	if !ok {
		out.BodyOverride = fmt.Sprintf("No data available for %d.\n", year)
		return
	}

	out.BodyOverride = fmt.Sprintf("The most popular song of %d was %q by %s, with a popularity score of %.0f.\n",
		year, song.Title, song.Artist, song.Popularity)
	return
}
