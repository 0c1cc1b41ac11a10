package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdash/music-explorer/internal/analysis"
	"github.com/pdash/music-explorer/internal/dataset"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "Lists the years present in the dataset, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		err := printYears(viper.GetString("data"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(yearsCmd)
}

func printYears(dataDir string) error {
	d, err := dataset.Load(dataDir)
	if err != nil {
		return fmt.Errorf("printYears: %w", err)
	}
	defer d.Close()

	years, err := analysis.Years(d)
	if err != nil {
		return err
	}
	if len(years) == 0 {
		fmt.Println("No year data available.")
		return nil
	}

	for _, y := range years {
		fmt.Println(y)
	}
	return nil
}
