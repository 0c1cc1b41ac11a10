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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdash/music-explorer/internal/analysis"
	"github.com/pdash/music-explorer/internal/dataset"
)

var (
	reportArtists int
	reportSongs   int
)

var reportCmd = &cobra.Command{
	Use:   "report <year>",
	Short: "Generates a textual summary of a year in music",
	Long:  `Generates a report including the top artists, top songs, and the single most popular song of the given year.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printReport(os.Stdout, viper.GetString("data"), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().IntVar(&reportArtists, "artists", 10, "Number of top artists to show")
	reportCmd.Flags().IntVar(&reportSongs, "songs", 10, "Number of top songs to show")
}

func printReport(out io.Writer, dataDir string, args []string) error {
	year, err := parseYearArg(args[0])
	if err != nil {
		return err
	}

	d, err := dataset.Load(dataDir)
	if err != nil {
		return fmt.Errorf("printReport: %w", err)
	}
	defer d.Close()

	total, err := d.RowCount()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Music Report for %d\n", year)
	fmt.Fprintf(out, "Dataset: %d merged tracks\n\n", total)

	// 1. Top Artists
	if reportArtists > 0 {
		artists, err := analysis.TopArtists(d, year, reportArtists)
		if err != nil {
			return fmt.Errorf("top artists: %w", err)
		}

		fmt.Fprintf(out, "## Top %d Artists\n", reportArtists)
		if len(artists) == 0 {
			fmt.Fprintln(out, "No artist popularity data.")
		}
		for i, a := range artists {
			fmt.Fprintf(out, "%d. %s (%.1f)\n", i+1, a.Artist, a.MeanPopularity)
		}
		fmt.Fprintln(out)
	}

	// 2. Top Songs
	if reportSongs > 0 {
		songs, err := analysis.MostPopularSongs(d, year, reportSongs)
		if err != nil {
			return fmt.Errorf("top songs: %w", err)
		}

		fmt.Fprintf(out, "## Top %d Songs\n", reportSongs)
		if len(songs) == 0 {
			fmt.Fprintln(out, "No song popularity data.")
		}
		for i, s := range songs {
			fmt.Fprintf(out, "%d. %s - %s (%.0f)\n", i+1, s.Title, s.Artist, s.Popularity)
		}
		fmt.Fprintln(out)
	}

	// 3. Most Popular Song
	song, ok, err := analysis.MostPopularSongByYear(d, year)
	if err != nil {
		return fmt.Errorf("most popular song: %w", err)
	}
	if ok {
		fmt.Fprintf(out, "Most popular song: %q by %s (%.0f)\n", song.Title, song.Artist, song.Popularity)
	}

	return nil
}
