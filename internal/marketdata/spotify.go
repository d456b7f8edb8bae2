package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyAPIBaseURL = "https://api.spotify.com/v1"
	spotifyTokenURL   = "https://accounts.spotify.com/api/token"
)

// SpotifyClient talks to the Spotify Web API using the client-credentials
// flow. The oauth2 transport caches the token and re-acquires it on expiry.
type SpotifyClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewSpotifyClient(clientID, clientSecret string) *SpotifyClient {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}
	client := conf.Client(context.Background())
	client.Timeout = 10 * time.Second

	return &SpotifyClient{
		httpClient: client,
		baseURL:    spotifyAPIBaseURL,
	}
}

// FetchArtistMetrics searches the catalog by name and takes the first match.
func (c *SpotifyClient) FetchArtistMetrics(ctx context.Context, name string) (*StreamingMetrics, error) {
	fullURL := fmt.Sprintf("%s/search?q=%s&type=artist&limit=1", c.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error querying API: %s", resp.Status)
	}

	var result struct {
		Artists struct {
			Items []struct {
				Name       string `json:"name"`
				Popularity int    `json:"popularity"`
				Followers  struct {
					Total int64 `json:"total"`
				} `json:"followers"`
			} `json:"items"`
		} `json:"artists"`
	}
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, err
	}

	if len(result.Artists.Items) == 0 {
		return nil, ErrArtistNotFound
	}

	item := result.Artists.Items[0]
	return &StreamingMetrics{
		Name:       item.Name,
		Popularity: item.Popularity,
		// Follower count approximates the audience size.
		MonthlyListeners: item.Followers.Total,
	}, nil
}
