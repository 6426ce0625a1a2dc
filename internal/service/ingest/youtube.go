package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"signalscout/internal/service/scoring"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeFetcher pulls videos from the YouTube Data API.
type YouTubeFetcher struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewYouTubeFetcher creates a YouTube fetcher.
func NewYouTubeFetcher(baseURL, apiKey string, timeout time.Duration) *YouTubeFetcher {
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &YouTubeFetcher{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type youtubeVideoList struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string   `json:"title"`
			Description  string   `json:"description"`
			ChannelTitle string   `json:"channelTitle"`
			Tags         []string `json:"tags"`
			PublishedAt  string   `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type youtubeSearchList struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FetchTrending returns the region's most popular videos.
func (f *YouTubeFetcher) FetchTrending(ctx context.Context, regionCode string, maxResults int) ([]scoring.YouTubeVideo, error) {
	if regionCode == "" {
		regionCode = "US"
	}
	if maxResults <= 0 {
		maxResults = 25
	}

	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("chart", "mostPopular")
	params.Set("regionCode", regionCode)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("key", f.apiKey)

	return f.listVideos(ctx, params)
}

// Search finds videos matching the query and hydrates their statistics. The
// search endpoint itself returns no counters, so a second videos call is
// always needed.
func (f *YouTubeFetcher) Search(ctx context.Context, query string, maxResults int) ([]scoring.YouTubeVideo, error) {
	if maxResults <= 0 {
		maxResults = 25
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("order", "viewCount")
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("key", f.apiKey)

	var search youtubeSearchList
	if err := f.get(ctx, "/search", params, &search); err != nil {
		return nil, err
	}
	if search.Error != nil {
		return nil, fmt.Errorf("youtube error %d: %s", search.Error.Code, search.Error.Message)
	}

	ids := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	videoParams := url.Values{}
	videoParams.Set("part", "snippet,statistics")
	videoParams.Set("id", strings.Join(ids, ","))
	videoParams.Set("key", f.apiKey)

	return f.listVideos(ctx, videoParams)
}

func (f *YouTubeFetcher) listVideos(ctx context.Context, params url.Values) ([]scoring.YouTubeVideo, error) {
	var list youtubeVideoList
	if err := f.get(ctx, "/videos", params, &list); err != nil {
		return nil, err
	}
	if list.Error != nil {
		return nil, fmt.Errorf("youtube error %d: %s", list.Error.Code, list.Error.Message)
	}

	videos := make([]scoring.YouTubeVideo, 0, len(list.Items))
	for _, item := range list.Items {
		videos = append(videos, scoring.YouTubeVideo{
			ID:           item.ID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
			Tags:         item.Snippet.Tags,
			ViewCount:    item.Statistics.ViewCount,
			LikeCount:    item.Statistics.LikeCount,
			CommentCount: item.Statistics.CommentCount,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}
	return videos, nil
}

func (f *YouTubeFetcher) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling youtube: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
