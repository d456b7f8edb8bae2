package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	youtubeAPIBaseURL  = "https://www.googleapis.com/youtube/v3"
	recentVideosPerSum = 5
)

// YouTubeClient sums view counts over an artist channel's most recent
// uploads. It is API-key authenticated.
type YouTubeClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    youtubeAPIBaseURL,
	}
}

func (c *YouTubeClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 403 means quota exhaustion or key rejection, which must not be read as
	// a true zero-views observation.
	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error querying API: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchTotalViews finds the top channel matching the artist name, lists its
// most recent videos and sums their view counts. A missing channel or an
// empty upload list is a true zero, quota failures return ErrQuotaExceeded.
func (c *YouTubeClient) FetchTotalViews(ctx context.Context, name string) (int64, error) {
	var channelSearch struct {
		Items []struct {
			ID struct {
				ChannelID string `json:"channelId"`
			} `json:"id"`
		} `json:"items"`
	}
	err := c.get(ctx, "search", url.Values{
		"q":          {name},
		"part":       {"snippet"},
		"type":       {"channel"},
		"maxResults": {"1"},
	}, &channelSearch)
	if err != nil {
		return 0, err
	}
	if len(channelSearch.Items) == 0 {
		return 0, nil
	}
	channelID := channelSearch.Items[0].ID.ChannelID

	var videoSearch struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	err = c.get(ctx, "search", url.Values{
		"channelId":  {channelID},
		"part":       {"snippet"},
		"order":      {"date"},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(recentVideosPerSum)},
	}, &videoSearch)
	if err != nil {
		return 0, err
	}

	videoIDs := make([]string, 0, len(videoSearch.Items))
	for _, item := range videoSearch.Items {
		if item.ID.VideoID != "" {
			videoIDs = append(videoIDs, item.ID.VideoID)
		}
	}
	if len(videoIDs) == 0 {
		return 0, nil
	}

	var stats struct {
		Items []struct {
			Statistics struct {
				ViewCount string `json:"viewCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	err = c.get(ctx, "videos", url.Values{
		"id":   {strings.Join(videoIDs, ",")},
		"part": {"statistics"},
	}, &stats)
	if err != nil {
		return 0, err
	}

	var totalViews int64
	for _, item := range stats.Items {
		views, err := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		if err != nil {
			continue
		}
		totalViews += views
	}
	return totalViews, nil
}
