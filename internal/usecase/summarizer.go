package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lunchradar/backend/internal/domain"
)

// SummarizerConfig holds configuration for the summarizer service
type SummarizerConfig struct {
	// Now supplies the processing day; defaults to time.Now. Injected so
	// date defaulting and cache keys are testable with a fixed clock.
	Now func() time.Time
	Log logrus.FieldLogger
}

// Summarizer runs the fetch -> normalize -> prompt -> model -> parse -> cache
// pipeline for a single source and serves repeated requests from the cache.
type Summarizer struct {
	menus   domain.MenuRepository
	fetcher domain.Fetcher
	model   domain.ModelClient
	now     func() time.Time
	log     logrus.FieldLogger
}

// NewSummarizer creates a summarizer service with dependencies
func NewSummarizer(
	menus domain.MenuRepository,
	fetcher domain.Fetcher,
	model domain.ModelClient,
	config SummarizerConfig,
) *Summarizer {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	log := config.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Summarizer{
		menus:   menus,
		fetcher: fetcher,
		model:   model,
		now:     now,
		log:     log,
	}
}

// Summarize returns the menu record for the source and the current day.
// Flow: check cache -> fetch page -> normalize -> prompt -> model -> parse
// -> cache -> return. With forceRefresh the cache check is skipped and the
// fresh result replaces today's entry. Failures come back as a
// *domain.PipelineError naming the stage; a failed run never writes to the
// cache.
func (s *Summarizer) Summarize(ctx context.Context, sourceURL string, forceRefresh bool) (*domain.MenuRecord, error) {
	if sourceURL == "" {
		return nil, domain.ErrInvalidRequest
	}

	today := s.now().Format(domain.DateLayout)
	log := s.log.WithField("source", sourceURL)

	if !forceRefresh {
		cached, err := s.menus.Get(ctx, sourceURL, today)
		if err == nil {
			log.Debug("cache hit")
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			return nil, &domain.PipelineError{SourceURL: sourceURL, Stage: "cache", Err: err}
		}
		log.Debug("cache miss")
	}

	log.Info("fetching source page")
	raw, err := s.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, &domain.PipelineError{SourceURL: sourceURL, Stage: "fetch", Err: err}
	}

	text := NormalizeText(raw)
	log.WithField("chars", len(text)).Debug("extracted page text")

	reply, err := s.model.Generate(ctx, BuildExtractionPrompt(text, sourceURL))
	if err != nil {
		return nil, &domain.PipelineError{SourceURL: sourceURL, Stage: "model", Err: err}
	}

	record, err := ParseModelReply(reply, sourceURL, s.now())
	if err != nil {
		return nil, &domain.PipelineError{SourceURL: sourceURL, Stage: "parse", Err: err}
	}

	if err := s.menus.Upsert(ctx, record); err != nil {
		return nil, &domain.PipelineError{SourceURL: sourceURL, Stage: "cache", Err: err}
	}
	log.WithField("items", len(record.MenuItems)).Info("cached extracted menu")

	return record, nil
}
