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
	"github.com/spf13/viper"

	"github.com/pdash/music-explorer/internal/spotify"
)

var fetchPlaylistOut string
var fetchPlaylistProbe bool

// fetchPlaylistCmd represents the fetch-playlist command
var fetchPlaylistCmd = &cobra.Command{
	Use:   "fetch-playlist <playlist-id>",
	Short: "Downloads a public Spotify playlist as a CSV dataset",
	Long: `Writes track_name, artists, popularity, and track_uri columns.
The output is usable directly as the spotify_tracks.csv secondary dataset.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := fetchPlaylist(args[0], fetchPlaylistOut)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchPlaylistCmd)

	fetchPlaylistCmd.Flags().StringVar(&fetchPlaylistOut, "out", "spotify_tracks.csv", "Output CSV path")
	fetchPlaylistCmd.Flags().BoolVar(&fetchPlaylistProbe, "probe", false, "Run a search query first to confirm API access")
}

func newAppClient(ctx context.Context) (*spotify.Client, error) {
	id := viper.GetString("spotify_client_id")
	secret := viper.GetString("spotify_client_secret")
	if id == "" || secret == "" {
		return nil, fmt.Errorf("spotify_client_id and spotify_client_secret must be set")
	}
	return spotify.New(ctx, id, secret), nil
}

func fetchPlaylist(playlistID, outPath string) error {
	ctx := context.Background()
	client, err := newAppClient(ctx)
	if err != nil {
		return err
	}

	if fetchPlaylistProbe {
		probe, err := client.SearchTracks(ctx, "Taylor Swift", 10)
		if err != nil {
			return fmt.Errorf("API probe failed, check your credentials: %w", err)
		}
		fmt.Printf("API probe OK: search returned %d tracks\n", len(probe))
	}

	tracks, err := client.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("fetching playlist: %w", err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("no tracks found: playlist may be restricted or empty")
	}

	if err := writeTracksCSV(outPath, tracks); err != nil {
		return err
	}
	fmt.Printf("Saved %s with %d tracks\n", outPath, len(tracks))
	return nil
}

func writeTracksCSV(path string, tracks []spotify.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"track_name", "artists", "popularity", "track_uri"}); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, t := range tracks {
		record := []string{t.Name, t.Artists, strconv.Itoa(t.Popularity), t.URI}
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
