package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/lunchradar/backend/internal/domain"
)

// MenuSummarizer is the slice of the Summarizer the sweep depends on.
type MenuSummarizer interface {
	Summarize(ctx context.Context, sourceURL string, forceRefresh bool) (*domain.MenuRecord, error)
}

// DeliveryResult records the outcome of one notification attempt.
type DeliveryResult struct {
	SourceURL string
	Target    string
	Err       error // nil on successful delivery
}

// SweeperConfig holds configuration for the change sweep
type SweeperConfig struct {
	Interval time.Duration // defaults to 1h if <= 0
	Now      func() time.Time
	Log      logrus.FieldLogger
}

// Sweeper periodically re-summarizes every subscribed source and notifies
// subscribers when today's menu differs from the previously cached one.
type Sweeper struct {
	menus      domain.MenuRepository
	subs       domain.SubscriptionRepository
	summarizer MenuSummarizer
	sink       domain.NotificationSink
	interval   time.Duration
	now        func() time.Time
	log        logrus.FieldLogger
}

// NewSweeper creates a sweeper with dependencies
func NewSweeper(
	menus domain.MenuRepository,
	subs domain.SubscriptionRepository,
	summarizer MenuSummarizer,
	sink domain.NotificationSink,
	config SweeperConfig,
) *Sweeper {
	interval := config.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	log := config.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sweeper{
		menus:      menus,
		subs:       subs,
		summarizer: summarizer,
		sink:       sink,
		interval:   interval,
		now:        now,
		log:        log,
	}
}

// Run executes RunOnce on the configured interval until the context is
// cancelled. The first sweep happens after one full interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.WithField("interval", s.interval).Info("change sweep started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("change sweep stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep over a snapshot of the subscribed sources.
// Per source it compares the pre-sweep cached record for today against a
// forced fresh summarization and, on a difference in the item sequences,
// notifies every subscriber. One source's failure never aborts the sweep;
// one target's delivery failure never blocks the others. The per-target
// outcomes are returned for inspection.
func (s *Sweeper) RunOnce(ctx context.Context) []DeliveryResult {
	sources, err := s.subs.SubscribedSources(ctx)
	if err != nil {
		s.log.WithError(err).Error("sweep: listing subscribed sources failed")
		return nil
	}

	today := s.now().Format(domain.DateLayout)
	var results []DeliveryResult

	for _, source := range sources {
		log := s.log.WithField("source", source)

		previous, err := s.menus.Get(ctx, source, today)
		if err != nil {
			if !errors.Is(err, domain.ErrCacheMiss) {
				log.WithError(err).Warn("sweep: reading previous record failed")
			}
			previous = nil // nothing trustworthy to compare against
		}

		current, err := s.summarizer.Summarize(ctx, source, true)
		if err != nil {
			log.WithError(err).Warn("sweep: refresh failed, skipping source")
			continue
		}

		if previous == nil || cmp.Equal(previous.MenuItems, current.MenuItems) {
			continue
		}
		log.Info("sweep: menu changed, notifying subscribers")

		targets, err := s.subs.Subscribers(ctx, source)
		if err != nil {
			log.WithError(err).Warn("sweep: listing subscribers failed")
			continue
		}

		results = append(results, s.notifyAll(ctx, source, targets, *current)...)
	}

	return results
}

// notifyAll fans out one notification per target concurrently, capturing
// each delivery outcome in isolation.
func (s *Sweeper) notifyAll(ctx context.Context, source string, targets []string, menu domain.MenuRecord) []DeliveryResult {
	payload := domain.ChangeNotification{SourceURL: source, NewMenu: menu}

	results := make([]DeliveryResult, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			err := s.sink.Notify(ctx, target, payload)
			if err != nil {
				s.log.WithFields(logrus.Fields{"source": source, "target": target}).
					WithError(err).Warn("sweep: notification delivery failed")
			}
			results[i] = DeliveryResult{SourceURL: source, Target: target, Err: err}
		}(i, target)
	}
	wg.Wait()

	return results
}
