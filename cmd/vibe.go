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
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdash/music-explorer/internal/analysis"
	"github.com/pdash/music-explorer/internal/dataset"
)

var vibeNumber int
var vibeSeed int64
var vibeCmd = &cobra.Command{
	Use:   "vibe <name>",
	Short: "Generates a random playlist for a mood",
	Long: `Samples songs whose audio features match the named vibe.
Vibes: ` + strings.Join(analysis.Vibes(), ", ") + `.
The sample is random; pass --seed for a reproducible playlist.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printVibePlaylist(viper.GetString("data"), args[0], vibeNumber, vibeSeed)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(vibeCmd)

	vibeCmd.Flags().IntVarP(&vibeNumber, "number", "n", 20, "number of songs to include")
	vibeCmd.Flags().Int64Var(&vibeSeed, "seed", 0, "random seed for the sample (0 seeds from the clock)")
}

func printVibePlaylist(dataDir, vibe string, numSongs int, seed int64) error {
	analyzer := &VibeAnalyzer{Vibe: vibe, NumSongs: numSongs, Seed: seed}
	out, err := analyzer.GetResults(dataDir, 0)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type VibeAnalyzer struct {
	Vibe     string
	NumSongs int
	Seed     int64
}

func (v VibeAnalyzer) GetName() string {
	return "Vibe playlist"
}

func (v *VibeAnalyzer) Configure(params map[string]string) error {
	if val, ok := params["vibe"]; ok {
		v.Vibe = val
	}
	if v.Vibe == "" {
		return fmt.Errorf("'vibe' parameter is required (one of %s)", strings.Join(analysis.Vibes(), ", "))
	}
	if val, ok := params["n"]; ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid value for 'n': %v", err)
		}
		v.NumSongs = n
	}
	if val, ok := params["seed"]; ok {
		seed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid value for 'seed': %v", err)
		}
		v.Seed = seed
	}
	return nil
}

// The year argument is unused; vibes filter on audio features only.
func (v VibeAnalyzer) GetResults(dataDir string, _ int) (out Analysis, err error) {
	d, err := dataset.Load(dataDir)
	if err != nil {
		err = fmt.Errorf("printVibePlaylist: %w", err)
		return
	}
	defer d.Close()

	n := v.NumSongs
	if n == 0 {
		n = 20
	}

	songs, total, err := analysis.SongsByVibe(d, v.Vibe, n, v.Seed)
	if err != nil {
		return
	}

	out.results = [][]string{{"Title", "Artist", "Popularity"}}
	for _, s := range songs {
		out.results = append(out.results, []string{s.Title, s.Artist, fmt.Sprintf("%.0f", s.Popularity)})
	}
	if len(songs) == 0 {
		out.summary = fmt.Sprintf("No songs found for vibe %q (or audio feature data missing)\n", v.Vibe)
	} else {
		out.summary = fmt.Sprintf("Sampled %d of %d songs matching vibe %q\n", len(songs), total, v.Vibe)
	}
	return
}
