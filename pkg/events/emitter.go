// Package events handles event emission for match lifecycle changes
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter handles event emission for Clover
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitMatchesGenerated emits an event after a scoring run produces matches
func (e *Emitter) EmitMatchesGenerated(ctx context.Context, startupID string, userID string, results []models.MatchResult) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMatchesGenerated")
	defer span.End()

	event := &kafka.MatchEvent{
		EventType:  "match.generated",
		StartupID:  startupID,
		UserID:     userID,
		MatchCount: len(results),
	}
	if len(results) > 0 {
		event.TopScore = results[0].Score
	}

	if err := e.producer.PublishMatchEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit match.generated event")
		return err
	}

	return nil
}

// EmitMatchesSaved emits an event after generated matches are persisted
func (e *Emitter) EmitMatchesSaved(ctx context.Context, startupID string, userID string, count int) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMatchesSaved")
	defer span.End()

	event := &kafka.MatchEvent{
		EventType:  "match.saved",
		StartupID:  startupID,
		UserID:     userID,
		MatchCount: count,
	}

	if err := e.producer.PublishMatchEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit match.saved event")
		return err
	}

	return nil
}

// EmitDealFeedback emits an event after a deal outcome is propagated to matches
func (e *Emitter) EmitDealFeedback(ctx context.Context, deal models.Deal) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitDealFeedback")
	defer span.End()

	event := &kafka.MatchEvent{
		EventType: "deal.feedback",
		StartupID: deal.StartupID,
		DealID:    deal.ID,
	}

	if err := e.producer.PublishMatchEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit deal.feedback event")
		return err
	}

	return nil
}
