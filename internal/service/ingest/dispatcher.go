package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"signalscout/internal/domain/trend"
)

// Job requests one ingestion run over the event bus. Subjects follow the
// ingest.<platform> scheme.
type Job struct {
	Target string `json:"target"`
	Limit  int    `json:"limit"`
	// Search switches a youtube job from the trending chart to a keyword
	// search over Target. Other platforms ignore it.
	Search bool `json:"search,omitempty"`
}

// Dispatcher runs ingestion jobs requested over NATS, so other processes can
// trigger fetches without touching the HTTP API.
type Dispatcher struct {
	service  *Service
	eventBus *nats.Conn
	log      *logrus.Logger

	subs []*nats.Subscription
}

// NewDispatcher creates a job dispatcher.
func NewDispatcher(service *Service, eventBus *nats.Conn, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{service: service, eventBus: eventBus, log: log}
}

// Start subscribes to the per-platform job subjects. Jobs run on the NATS
// delivery goroutine; they are short-lived fetch cycles.
func (d *Dispatcher) Start(ctx context.Context) error {
	platforms := []trend.Platform{trend.PlatformReddit, trend.PlatformYouTube, trend.PlatformTwitter}

	for _, platform := range platforms {
		platform := platform
		subject := fmt.Sprintf("ingest.%s", platform)

		sub, err := d.eventBus.Subscribe(subject, func(msg *nats.Msg) {
			d.handle(ctx, platform, msg)
		})
		if err != nil {
			return fmt.Errorf("subscribing to %s: %w", subject, err)
		}
		d.subs = append(d.subs, sub)
	}

	d.log.Info("Ingestion dispatcher started")
	return nil
}

// Stop drains the subscriptions.
func (d *Dispatcher) Stop() {
	for _, sub := range d.subs {
		if err := sub.Unsubscribe(); err != nil {
			d.log.WithError(err).Warn("Failed to unsubscribe")
		}
	}
	d.subs = nil
}

func (d *Dispatcher) handle(ctx context.Context, platform trend.Platform, msg *nats.Msg) {
	var job Job
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		d.log.WithError(err).WithField("subject", msg.Subject).Error("Invalid ingestion job")
		return
	}

	var err error
	switch platform {
	case trend.PlatformReddit:
		_, err = d.service.IngestReddit(ctx, job.Target, job.Limit)
	case trend.PlatformYouTube:
		if job.Search {
			_, err = d.service.IngestYouTubeSearch(ctx, job.Target, job.Limit)
		} else {
			_, err = d.service.IngestYouTubeTrending(ctx, job.Target, job.Limit)
		}
	case trend.PlatformTwitter:
		_, err = d.service.IngestTwitter(ctx, job.Target, job.Limit)
	}
	if err != nil {
		d.log.WithError(err).WithFields(logrus.Fields{
			"platform": platform,
			"target":   job.Target,
		}).Error("Ingestion job failed")
	}
}
