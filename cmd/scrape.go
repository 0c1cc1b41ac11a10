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
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdash/music-explorer/internal/scrape"
)

var scrapeOut string

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape <year>",
	Short: "Scrapes the Spotify Global Daily Top 200 for a year",
	Long: `Fetches the kworb.net daily chart for every day of the given year and
saves the raw rows to a CSV file. Days without a published chart are skipped.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := scrapeYear(args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&scrapeOut, "out", "", "Output CSV path (default kworb_daily_<year>.csv)")
}

func scrapeYear(args []string) error {
	year, err := parseYearArg(args[0])
	if err != nil {
		return err
	}

	outPath := scrapeOut
	if outPath == "" {
		outPath = fmt.Sprintf("kworb_daily_%d.csv", year)
	}

	client := scrape.NewClient()
	ctx := context.Background()

	var rows []scrape.Entry
	days := scrape.DaysOfYear(year)
	for i, day := range days {
		entries, err := client.FetchDay(ctx, day)
		if err != nil {
			return fmt.Errorf("scraping %s: %w", day, err)
		}
		rows = append(rows, entries...)
		if (i+1)%30 == 0 || i == len(days)-1 {
			fmt.Printf("Scraped %d of %d days (%d rows so far)\n", i+1, len(days), len(rows))
		}
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data scraped for %d", year)
	}

	if err := writeChartCSV(outPath, rows); err != nil {
		return err
	}
	fmt.Printf("Saved %s with %d rows\n", outPath, len(rows))
	return nil
}

func writeChartCSV(path string, rows []scrape.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "artist", "title", "streams"}); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Date, r.Artist, r.Title, strconv.FormatInt(r.Streams, 10)}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}
