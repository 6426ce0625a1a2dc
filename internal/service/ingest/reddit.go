package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"signalscout/internal/service/scoring"
)

const defaultRedditBaseURL = "https://www.reddit.com"

// RedditFetcher pulls hot posts from the public reddit JSON listing.
type RedditFetcher struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewRedditFetcher creates a reddit fetcher. The user agent is required by
// reddit's API rules; an empty value gets a generic default.
func NewRedditFetcher(baseURL, userAgent string, timeout time.Duration) *RedditFetcher {
	if baseURL == "" {
		baseURL = defaultRedditBaseURL
	}
	if userAgent == "" {
		userAgent = "signalscout/1.0"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RedditFetcher{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				SelfText    string  `json:"selftext"`
				Permalink   string  `json:"permalink"`
				Author      string  `json:"author"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
				Stickied    bool    `json:"stickied"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchHot returns up to limit hot posts from one subreddit.
func (f *RedditFetcher) FetchHot(ctx context.Context, subreddit string, limit int) ([]scoring.RedditPost, error) {
	if limit <= 0 {
		limit = 25
	}

	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", f.baseURL, url.PathEscape(subreddit), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching subreddit %s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit returned status %d for r/%s", resp.StatusCode, subreddit)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding listing: %w", err)
	}

	posts := make([]scoring.RedditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, scoring.RedditPost{
			ID:          d.ID,
			Title:       d.Title,
			SelfText:    d.SelfText,
			Permalink:   d.Permalink,
			Author:      d.Author,
			Score:       d.Score,
			NumComments: d.NumComments,
			CreatedUTC:  d.CreatedUTC,
			Stickied:    d.Stickied,
		})
	}
	return posts, nil
}
