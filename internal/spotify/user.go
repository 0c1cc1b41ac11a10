package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

// Scopes needed to create public playlists for the logged-in user.
var Scopes = []string{"playlist-modify-public", "user-read-private"}

// OAuthConfig builds the authorization-code flow configuration.
func OAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}
}

// UserClient acts on behalf of a logged-in user.
type UserClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewUser wraps a previously obtained user token.
func NewUser(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) *UserClient {
	return &UserClient{httpClient: conf.Client(ctx, token), baseURL: apiBase}
}

// CurrentUserID fetches the logged-in user's ID.
func (c *UserClient) CurrentUserID(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify returned %d fetching profile", resp.StatusCode)
	}

	var profile struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", fmt.Errorf("decoding profile: %w", err)
	}
	return profile.ID, nil
}

// Playlist identifies a playlist created for the user.
type Playlist struct {
	ID     string
	WebURL string
}

// CreatePlaylist makes a new public playlist on the user's account.
func (c *UserClient) CreatePlaylist(ctx context.Context, userID, name, description string) (Playlist, error) {
	body := map[string]interface{}{
		"name":        name,
		"public":      true,
		"description": description,
	}
	var created struct {
		ID           string `json:"id"`
		ExternalURLs struct {
			Spotify string `json:"spotify"`
		} `json:"external_urls"`
	}
	u := fmt.Sprintf("%s/users/%s/playlists", c.baseURL, url.PathEscape(userID))
	if err := c.postJSON(ctx, u, body, &created); err != nil {
		return Playlist{}, fmt.Errorf("creating playlist: %w", err)
	}
	return Playlist{ID: created.ID, WebURL: created.ExternalURLs.Spotify}, nil
}

// AddTracks appends track URIs to a playlist, batching to the API's limit
// of 100 per request.
func (c *UserClient) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	const batch = 100
	for len(uris) > 0 {
		n := len(uris)
		if n > batch {
			n = batch
		}
		body := map[string]interface{}{"uris": uris[:n]}
		u := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, url.PathEscape(playlistID))
		if err := c.postJSON(ctx, u, body, nil); err != nil {
			return fmt.Errorf("adding tracks: %w", err)
		}
		uris = uris[n:]
	}
	return nil
}

func (c *UserClient) postJSON(ctx context.Context, url string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("spotify returned %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
