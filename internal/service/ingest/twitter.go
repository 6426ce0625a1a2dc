package ingest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"signalscout/internal/service/scoring"
)

// bearerAuthorizer adds the app-only bearer token to each API request.
type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// TwitterFetcher pulls recent tweets via the v2 search API.
type TwitterFetcher struct {
	client *twitter.Client
}

// NewTwitterFetcher creates a twitter fetcher with app-only auth.
func NewTwitterFetcher(bearerToken string, timeout time.Duration) *TwitterFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &TwitterFetcher{
		client: &twitter.Client{
			Authorizer: bearerAuthorizer{token: bearerToken},
			Client:     &http.Client{Timeout: timeout},
			Host:       "https://api.twitter.com",
		},
	}
}

// Search returns recent tweets matching the query with their public metrics
// and author usernames resolved.
func (f *TwitterFetcher) Search(ctx context.Context, query string, maxResults int) ([]scoring.Tweet, error) {
	if maxResults < 10 {
		maxResults = 10
	}
	if maxResults > 100 {
		maxResults = 100
	}

	opts := twitter.TweetRecentSearchOpts{
		MaxResults: maxResults,
		Expansions: []twitter.Expansion{twitter.ExpansionAuthorID},
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldPublicMetrics,
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldAuthorID,
		},
		UserFields: []twitter.UserField{twitter.UserFieldUserName},
	}

	resp, err := f.client.TweetRecentSearch(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching tweets: %w", err)
	}
	if resp.Raw == nil {
		return nil, nil
	}

	usernames := make(map[string]string)
	if resp.Raw.Includes != nil {
		for _, user := range resp.Raw.Includes.Users {
			usernames[user.ID] = user.UserName
		}
	}

	tweets := make([]scoring.Tweet, 0, len(resp.Raw.Tweets))
	for _, raw := range resp.Raw.Tweets {
		t := scoring.Tweet{
			ID:             raw.ID,
			Text:           raw.Text,
			AuthorUsername: usernames[raw.AuthorID],
		}
		if raw.PublicMetrics != nil {
			t.Likes = raw.PublicMetrics.Likes
			t.Replies = raw.PublicMetrics.Replies
			t.Retweets = raw.PublicMetrics.Retweets
		}
		if created, err := time.Parse(time.RFC3339, raw.CreatedAt); err == nil {
			t.CreatedAt = created
		}
		tweets = append(tweets, t)
	}
	return tweets, nil
}
