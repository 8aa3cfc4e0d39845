// Package service ranks meet results and scores them against a score table.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/okian/meetscore/internal/domain/model"
	"github.com/okian/meetscore/internal/domain/ranking"
	"github.com/okian/meetscore/internal/domain/scoring"
	"github.com/okian/meetscore/internal/domain/types"
	"github.com/okian/meetscore/pkg/logger"
	"github.com/okian/meetscore/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// ErrNoScorer is returned when no score table could be set up.
var ErrNoScorer = errors.New("no score table configured")

// Service scores ranked meet results.
type Service struct {
	scorer      scoring.Scorer
	reference   string
	strict      bool
	concurrency int

	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScorer sets the score table. The built-in table is used otherwise.
func WithScorer(scorer scoring.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithReferenceEvent scores every event against desc (e.g. "100 Freestyle (SCY)")
// for the event's gender, instead of against the event's own description.
func WithReferenceEvent(desc string) Option {
	return func(s *Service) {
		s.reference = desc
	}
}

// WithStrict makes ScoreMeet stop at the first event that cannot be scored.
func WithStrict(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// WithConcurrency bounds how many events are scored at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. The global manager is used otherwise.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		concurrency: runtime.NumCPU(),
		metrics:     metrics.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.New()
	}
	if s.scorer == nil {
		if t, err := scoring.DefaultTable(); err == nil {
			s.scorer = t
		}
	}
	return s
}

// Validate checks the reference event, if any, before a run starts.
func (s *Service) Validate() error {
	if s.scorer == nil {
		return ErrNoScorer
	}
	if s.reference != "" {
		if _, err := scoring.ParseDescription(model.GenderMale, s.reference); err != nil {
			return fmt.Errorf("reference event: %w", err)
		}
	}
	return nil
}

// ScoreEvent scores every ranked entry of eventName that has a final time,
// looking points up for gender. Entries without a final time are counted in
// Skipped. The table lookup only happens once a timed entry is found, so an
// event without timed entries never fails. Lookup errors wrap
// scoring.ErrNoReferenceData.
func (s *Service) ScoreEvent(ctx context.Context, ranked ranking.Results, eventName string, gender model.Gender) (types.EventReport, error) {
	report := types.EventReport{Event: eventName, Gender: gender.Noun()}
	if s.scorer == nil {
		return report, ErrNoScorer
	}

	start := time.Now()
	var (
		key      scoring.Key
		resolved bool
	)
	for _, entry := range ranked[eventName] {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !entry.FinalTime.Valid() {
			report.Skipped++
			continue
		}
		if !resolved {
			k, err := s.keyFor(eventName, gender)
			if err != nil {
				return types.EventReport{Event: eventName, Gender: gender.Noun()}, err
			}
			key, resolved = k, true
		}

		score, err := s.scorer.Score(key, entry.FinalTime.Seconds())
		if err != nil {
			return types.EventReport{Event: eventName, Gender: gender.Noun()}, err
		}
		report.Results = append(report.Results, types.Scored{
			Swimmer: entry.Swimmer,
			Time:    entry.FinalTime.Seconds(),
			Score:   score,
		})
	}

	s.metrics.RecordEventDuration(time.Since(start))
	s.metrics.RecordResultsScored(len(report.Results))
	s.metrics.RecordEntriesSkipped(report.Skipped)
	return report, nil
}

// keyFor picks the table key for an event: the event's own description, or the
// reference description when one is configured.
func (s *Service) keyFor(eventName string, gender model.Gender) (scoring.Key, error) {
	desc := s.reference
	if desc == "" {
		k, err := scoring.ParseKey(eventName)
		if err != nil {
			return scoring.Key{}, fmt.Errorf("%w: %v", scoring.ErrNoReferenceData, err)
		}
		desc = k.Description()
	}
	key, err := scoring.ParseDescription(gender, desc)
	if err != nil {
		return scoring.Key{}, fmt.Errorf("%w: %v", scoring.ErrNoReferenceData, err)
	}
	return key, nil
}

// ScoreMeet ranks the meet and scores the named events in parallel. With no
// names, every event of the meet is scored. An event that fails is reported in
// its EventReport and the others continue, unless the service is strict; then
// the first failure is returned alongside the partial report.
func (s *Service) ScoreMeet(ctx context.Context, meet *model.Meet, eventNames []string) (*types.Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	ranked := ranking.Aggregate(meet.Events)

	total := 0
	for _, entries := range ranked {
		total += len(entries)
	}
	s.metrics.RecordEntriesRanked(total)

	if len(eventNames) == 0 {
		eventNames = ranking.Names(meet.Events)
	}
	s.logger.Info(ctx, "scoring meet",
		logger.String("run_id", runID),
		logger.String("meet", meet.Name),
		logger.Int("events", len(eventNames)),
		logger.Int("entries", total),
	)

	report := &types.Report{RunID: runID, Meet: meet.Name, Events: make([]types.EventReport, len(eventNames))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, name := range eventNames {
		i, name := i, name // per-iteration copy; go directive is 1.21 (pre-1.22 loop semantics)
		g.Go(func() error {
			if _, ok := ranked[name]; !ok {
				s.logger.Warn(gctx, "event not found in meet", logger.String("run_id", runID), logger.String("event", name))
			}

			gender := model.GenderUnknown
			if k, err := scoring.ParseKey(name); err == nil {
				gender = k.Gender
			}

			rep, err := s.ScoreEvent(gctx, ranked, name, gender)
			report.Events[i] = rep
			if err != nil {
				report.Events[i].Err = err
				// In strict mode a failed sibling cancels gctx; the events it
				// interrupts are not failures of their own.
				if s.strict && errors.Is(err, context.Canceled) && ctx.Err() == nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				s.metrics.RecordEventScored(false)
				if errors.Is(err, scoring.ErrNoReferenceData) {
					s.metrics.RecordLookupFailure(name)
				}
				s.logger.Error(gctx, "event scoring failed",
					logger.String("run_id", runID),
					logger.String("event", name),
					logger.Error(err),
				)
				if s.strict {
					return fmt.Errorf("%s: %w", name, err)
				}
				return nil
			}

			s.metrics.RecordEventScored(true)
			s.logger.Debug(gctx, "event scored",
				logger.String("run_id", runID),
				logger.String("event", name),
				logger.Int("results", len(rep.Results)),
				logger.Int("skipped", rep.Skipped),
			)
			return nil
		})
	}

	err := g.Wait()
	s.metrics.RecordRun(time.Since(start), time.Now())
	if err != nil {
		return report, err
	}

	s.logger.Info(ctx, "meet scored",
		logger.String("run_id", runID),
		logger.Int("failed", len(report.Failed())),
		logger.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// Rankings returns the ranked placings of every event in meet order.
func (s *Service) Rankings(ctx context.Context, meet *model.Meet) []types.EventRanking {
	ranked := ranking.Aggregate(meet.Events)
	names := ranking.Names(meet.Events)

	out := make([]types.EventRanking, 0, len(names))
	for _, name := range names {
		out = append(out, types.EventRanking{Event: name, Placings: ranking.Placings(ranked[name])})
	}
	s.logger.Debug(ctx, "ranked meet", logger.String("meet", meet.Name), logger.Int("events", len(out)))
	return out
}
