package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdash/music-explorer/internal/clean"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <input> <output>",
	Short: "Repairs a messy historical CSV export",
	Long:  `Decodes Latin-1 to UTF-8 and drops malformed rows so the file can be used as a dataset.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := clean.File(args[0], args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s: kept %d rows, skipped %d\n", args[1], res.Kept, res.Skipped)
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
