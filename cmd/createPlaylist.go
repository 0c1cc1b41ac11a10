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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"

	"github.com/pdash/music-explorer/internal/analysis"
	"github.com/pdash/music-explorer/internal/dataset"
	"github.com/pdash/music-explorer/internal/spotify"
)

const tokenCachePath = ".cache"

var createPlaylistNumber int
var createPlaylistSeed int64
var createPlaylistName string

var createPlaylistCmd = &cobra.Command{
	Use:   "create-playlist <vibe>",
	Short: "Creates a vibe playlist on your Spotify account",
	Long: `Samples songs matching the vibe from the merged dataset and creates a
public playlist with them. The dataset must carry track URIs; run
fetch-playlist first to build a secondary dataset that has them.
Requires a one-time browser login; the token is cached in ` + tokenCachePath + `.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := createPlaylist(viper.GetString("data"), args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(createPlaylistCmd)

	createPlaylistCmd.Flags().IntVarP(&createPlaylistNumber, "number", "n", 20, "number of songs to include")
	createPlaylistCmd.Flags().Int64Var(&createPlaylistSeed, "seed", 0, "random seed for the sample")
	createPlaylistCmd.Flags().StringVar(&createPlaylistName, "name", "", "playlist name (default '<vibe> Vibes')")
}

func createPlaylist(dataDir, vibe string) error {
	d, err := dataset.Load(dataDir)
	if err != nil {
		return fmt.Errorf("createPlaylist: %w", err)
	}
	defer d.Close()

	songs, _, err := analysis.SongsByVibe(d, vibe, createPlaylistNumber, createPlaylistSeed)
	if err != nil {
		return err
	}

	var uris []string
	for _, s := range songs {
		if s.URI != "" {
			uris = append(uris, s.URI)
		}
	}
	if len(uris) == 0 {
		return fmt.Errorf("no songs with track URIs match vibe %q - the dataset needs a track_uri column (run fetch-playlist first)", vibe)
	}

	conf := spotify.OAuthConfig(
		viper.GetString("spotify_client_id"),
		viper.GetString("spotify_client_secret"),
		viper.GetString("spotify_redirect_uri"))
	if conf.ClientID == "" || conf.ClientSecret == "" || conf.RedirectURL == "" {
		return fmt.Errorf("spotify_client_id, spotify_client_secret, and spotify_redirect_uri must be set")
	}

	ctx := context.Background()
	token, err := userToken(ctx, conf)
	if err != nil {
		return err
	}

	client := spotify.NewUser(ctx, conf, token)
	userID, err := client.CurrentUserID(ctx)
	if err != nil {
		// Cached token may be stale; force a fresh login next time.
		os.Remove(tokenCachePath)
		return fmt.Errorf("session expired, please re-run to log in again: %w", err)
	}

	name := createPlaylistName
	if name == "" {
		name = fmt.Sprintf("%s Vibes", vibe)
	}
	description := fmt.Sprintf("Generated by music-explorer: Vibe=%s", vibe)

	playlist, err := client.CreatePlaylist(ctx, userID, name, description)
	if err != nil {
		return err
	}
	if err := client.AddTracks(ctx, playlist.ID, uris); err != nil {
		return err
	}

	fmt.Printf("Playlist %q created with %d tracks\n", name, len(uris))
	if playlist.WebURL != "" {
		fmt.Printf("Open it on Spotify: %s\n", playlist.WebURL)
	}
	return nil
}

// userToken returns the cached user token, or walks through the
// authorization-code flow on first use.
func userToken(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	if data, err := os.ReadFile(tokenCachePath); err == nil {
		var token oauth2.Token
		if err := json.Unmarshal(data, &token); err == nil {
			return &token, nil
		}
	}

	authURL := conf.AuthCodeURL("state")
	fmt.Printf("To create a playlist, log in to Spotify:\n%s\n\n", authURL)
	fmt.Print("Paste the 'code' parameter from the redirect URL: ")

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading code: %w", err)
	}

	token, err := conf.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("exchanging code: %w", err)
	}

	if data, err := json.Marshal(token); err == nil {
		os.WriteFile(tokenCachePath, data, 0600)
	}
	return token, nil
}
