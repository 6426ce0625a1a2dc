package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"signalscout/internal/domain/trend"
	"signalscout/internal/service/scoring"
)

// SubjectTrendIngested carries each newly stored trend record.
const SubjectTrendIngested = "trend.ingested"

// TrendWriter stores fetched records, skipping duplicates.
type TrendWriter interface {
	InsertIfAbsent(ctx context.Context, r *trend.Record) (bool, error)
}

// Summary reports one ingestion run.
type Summary struct {
	JobID    string         `json:"job_id"`
	Platform trend.Platform `json:"platform"`
	Target   string         `json:"target"`
	Fetched  int            `json:"fetched"`
	Stored   int            `json:"stored"`
	Skipped  int            `json:"skipped"`
}

// Service fetches platform content, scores it and stores the records. Every
// newly stored record is published on the event bus for live consumers.
type Service struct {
	store    TrendWriter
	eventBus *nats.Conn
	log      *logrus.Logger

	reddit  *RedditFetcher
	youtube *YouTubeFetcher
	twitter *TwitterFetcher

	redditCalc  *scoring.RedditCalculator
	youtubeCalc *scoring.YouTubeCalculator
	twitterCalc *scoring.TwitterCalculator
}

// NewService creates an ingestion service. Fetchers may be nil when a
// platform is not configured; ingesting from a nil platform errors.
func NewService(
	store TrendWriter,
	eventBus *nats.Conn,
	reddit *RedditFetcher,
	youtube *YouTubeFetcher,
	twitter *TwitterFetcher,
	log *logrus.Logger,
) *Service {
	return &Service{
		store:       store,
		eventBus:    eventBus,
		log:         log,
		reddit:      reddit,
		youtube:     youtube,
		twitter:     twitter,
		redditCalc:  scoring.NewRedditCalculator(),
		youtubeCalc: scoring.NewYouTubeCalculator(),
		twitterCalc: scoring.NewTwitterCalculator(),
	}
}

// IngestReddit fetches one subreddit's hot posts and stores them.
func (s *Service) IngestReddit(ctx context.Context, subreddit string, limit int) (*Summary, error) {
	if s.reddit == nil {
		return nil, fmt.Errorf("reddit ingestion is not configured")
	}

	posts, err := s.reddit.FetchHot(ctx, subreddit, limit)
	if err != nil {
		return nil, err
	}

	summary := s.newSummary(trend.PlatformReddit, subreddit)
	summary.Fetched = len(posts)

	for _, post := range posts {
		record, ok := s.redditCalc.Calculate(post)
		if !ok {
			summary.Skipped++
			continue
		}
		if err := s.storeRecord(ctx, &record, summary); err != nil {
			return nil, err
		}
	}

	s.logSummary(summary)
	return summary, nil
}

// IngestYouTubeTrending fetches the region's most popular videos.
func (s *Service) IngestYouTubeTrending(ctx context.Context, regionCode string, maxResults int) (*Summary, error) {
	if s.youtube == nil {
		return nil, fmt.Errorf("youtube ingestion is not configured")
	}

	videos, err := s.youtube.FetchTrending(ctx, regionCode, maxResults)
	if err != nil {
		return nil, err
	}
	return s.ingestVideos(ctx, regionCode, videos)
}

// IngestYouTubeSearch fetches videos matching a keyword query.
func (s *Service) IngestYouTubeSearch(ctx context.Context, query string, maxResults int) (*Summary, error) {
	if s.youtube == nil {
		return nil, fmt.Errorf("youtube ingestion is not configured")
	}

	videos, err := s.youtube.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	return s.ingestVideos(ctx, query, videos)
}

func (s *Service) ingestVideos(ctx context.Context, target string, videos []scoring.YouTubeVideo) (*Summary, error) {
	summary := s.newSummary(trend.PlatformYouTube, target)
	summary.Fetched = len(videos)

	for _, video := range videos {
		record, err := s.youtubeCalc.Calculate(video)
		if err != nil {
			// A malformed video is a data problem, not a run failure.
			s.log.WithError(err).WithField("video_id", video.ID).Warn("Skipping video")
			summary.Skipped++
			continue
		}
		if err := s.storeRecord(ctx, &record, summary); err != nil {
			return nil, err
		}
	}

	s.logSummary(summary)
	return summary, nil
}

// IngestTwitter fetches recent tweets matching a query and stores them.
func (s *Service) IngestTwitter(ctx context.Context, query string, maxResults int) (*Summary, error) {
	if s.twitter == nil {
		return nil, fmt.Errorf("twitter ingestion is not configured")
	}

	tweets, err := s.twitter.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	summary := s.newSummary(trend.PlatformTwitter, query)
	summary.Fetched = len(tweets)

	for _, tweet := range tweets {
		record := s.twitterCalc.Calculate(tweet)
		if err := s.storeRecord(ctx, &record, summary); err != nil {
			return nil, err
		}
	}

	s.logSummary(summary)
	return summary, nil
}

// EnqueueJob publishes an ingestion job for the platform worker. The job
// runs asynchronously on whichever dispatcher holds the subscription.
func (s *Service) EnqueueJob(platform trend.Platform, job Job) error {
	if s.eventBus == nil {
		return fmt.Errorf("event bus is not configured")
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshaling ingestion job: %w", err)
	}
	if err := s.eventBus.Publish(fmt.Sprintf("ingest.%s", platform), payload); err != nil {
		return fmt.Errorf("publishing ingestion job: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"platform": platform,
		"target":   job.Target,
	}).Info("Ingestion job queued")
	return nil
}

func (s *Service) newSummary(platform trend.Platform, target string) *Summary {
	return &Summary{
		JobID:    uuid.New().String(),
		Platform: platform,
		Target:   target,
	}
}

func (s *Service) storeRecord(ctx context.Context, record *trend.Record, summary *Summary) error {
	inserted, err := s.store.InsertIfAbsent(ctx, record)
	if err != nil {
		return fmt.Errorf("storing trend: %w", err)
	}
	if !inserted {
		summary.Skipped++
		return nil
	}
	summary.Stored++
	s.publishIngested(record)
	return nil
}

// publishIngested notifies live consumers of a new record. Publishing is
// best effort: a bus outage must not fail the ingestion.
func (s *Service) publishIngested(record *trend.Record) {
	if s.eventBus == nil {
		return
	}

	payload, err := json.Marshal(record)
	if err != nil {
		s.log.WithError(err).Error("Failed to marshal trend event")
		return
	}
	if err := s.eventBus.Publish(SubjectTrendIngested, payload); err != nil {
		s.log.WithError(err).Error("Failed to publish trend event")
	}
}

func (s *Service) logSummary(summary *Summary) {
	s.log.WithFields(logrus.Fields{
		"job_id":   summary.JobID,
		"platform": summary.Platform,
		"target":   summary.Target,
		"fetched":  summary.Fetched,
		"stored":   summary.Stored,
		"skipped":  summary.Skipped,
	}).Info("Ingestion run complete")
}

// ScheduledTarget is one recurring ingestion target.
type ScheduledTarget struct {
	Platform trend.Platform
	Target   string
	Limit    int
}

// RunLoop ingests every target on a fixed interval until the context ends.
func (s *Service) RunLoop(ctx context.Context, interval time.Duration, targets []ScheduledTarget) {
	if interval <= 0 || len(targets) == 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.runTargets(ctx, targets)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Service) runTargets(ctx context.Context, targets []ScheduledTarget) {
	for _, target := range targets {
		var err error
		switch target.Platform {
		case trend.PlatformReddit:
			_, err = s.IngestReddit(ctx, target.Target, target.Limit)
		case trend.PlatformYouTube:
			_, err = s.IngestYouTubeTrending(ctx, target.Target, target.Limit)
		case trend.PlatformTwitter:
			_, err = s.IngestTwitter(ctx, target.Target, target.Limit)
		default:
			err = fmt.Errorf("unsupported platform: %s", target.Platform)
		}
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"platform": target.Platform,
				"target":   target.Target,
			}).Error("Scheduled ingestion failed")
		}
	}
}
