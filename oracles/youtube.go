package oracles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"sentiment-insight/models"
)

const youtubeSearchURL = "https://www.googleapis.com/youtube/v3/search"

// YouTubeSearcher queries the YouTube Data API v3. Without an API key
// every search returns an empty list so recommendations degrade
// instead of failing the request.
type YouTubeSearcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewYouTubeSearcher builds a searcher. An empty apiKey is valid and
// disables searching.
func NewYouTubeSearcher(apiKey string, timeout time.Duration) *YouTubeSearcher {
	return &YouTubeSearcher{
		apiKey:  apiKey,
		baseURL: youtubeSearchURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search runs a video search for query, returning at most maxResults
// items. Missing credential yields an empty list, not an error.
func (y *YouTubeSearcher) Search(ctx context.Context, query string, maxResults int) ([]models.Video, error) {
	if y.apiKey == "" {
		return []models.Video{}, nil
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprint(maxResults))
	params.Set("key", y.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("youtube API error: %s", string(msg))
	}

	var out youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	videos := make([]models.Video, 0, len(out.Items))
	for _, item := range out.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, models.Video{
			ID:            item.ID.VideoID,
			Title:         item.Snippet.Title,
			Thumbnail:     item.Snippet.Thumbnails.Medium.URL,
			Channel:       item.Snippet.ChannelTitle,
			PublishedDate: item.Snippet.PublishedAt,
		})
	}
	return videos, nil
}
