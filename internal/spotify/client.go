// Package spotify is a minimal Spotify Web API client covering the pieces
// this tool needs: public playlist reads with app credentials and playlist
// creation on behalf of a logged-in user.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/avast/retry-go"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	apiBase  = "https://api.spotify.com/v1"
	tokenURL = "https://accounts.spotify.com/api/token"
	authURL  = "https://accounts.spotify.com/authorize"
)

// Track is one playlist or search result row.
type Track struct {
	Name       string
	Artists    string // artist names, comma-joined
	Popularity int
	URI        string
}

// Client reads public data with the client-credentials flow.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New returns a client that fetches app tokens with the client-credentials
// flow as needed.
func New(ctx context.Context, clientID, clientSecret string) *Client {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return &Client{httpClient: conf.Client(ctx), baseURL: apiBase}
}

type trackObject struct {
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
	URI        string `json:"uri"`
	Artists    []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

func (t *trackObject) toTrack() Track {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return Track{
		Name:       t.Name,
		Artists:    strings.Join(names, ", "),
		Popularity: t.Popularity,
		URI:        t.URI,
	}
}

type playlistPage struct {
	Items []struct {
		Track *trackObject `json:"track"`
	} `json:"items"`
	Next string `json:"next"`
}

// PlaylistTracks fetches every track of a public playlist, following the
// API's limit/offset pagination. Local or removed items (null track) are
// skipped.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	const limit = 100
	var all []Track
	for offset := 0; ; offset += limit {
		u := fmt.Sprintf("%s/playlists/%s/tracks?limit=%d&offset=%d",
			c.baseURL, url.PathEscape(playlistID), limit, offset)

		var page playlistPage
		if err := c.getJSON(ctx, u, &page); err != nil {
			return nil, fmt.Errorf("fetching playlist page at offset %d: %w", offset, err)
		}
		if len(page.Items) == 0 {
			break
		}
		for _, item := range page.Items {
			if item.Track == nil {
				continue
			}
			all = append(all, item.Track.toTrack())
		}
		if page.Next == "" {
			break
		}
	}
	return all, nil
}

// SearchTracks runs a track search; used as a connectivity probe.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	params := url.Values{
		"q":     {query},
		"type":  {"track"},
		"limit": {strconv.Itoa(limit)},
	}
	var result struct {
		Tracks struct {
			Items []trackObject `json:"items"`
		} `json:"tracks"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/search?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("searching tracks: %w", err)
	}

	var tracks []Track
	for i := range result.Tracks.Items {
		tracks = append(tracks, result.Tracks.Items[i].toTrack())
	}
	return tracks, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode/100 == 5 {
				return fmt.Errorf("spotify returned %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("spotify returned %d", resp.StatusCode))
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decoding response: %w", err))
			}
			return nil
		},
		retry.Attempts(3),
	)
}
