package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/dkoval/hirepath/internal/domain"
)

// Event kinds emitted by the pipeline service.
const (
	EventStageCreated  = "stage_created"
	EventStatusChanged = "status_changed"
	EventDataMerged    = "data_merged"
	EventMetaUpdated   = "meta_updated"
	EventStageDeleted  = "stage_deleted"
)

// StageEvent describes one successful pipeline mutation, for the external
// notification/logging subsystem.
type StageEvent struct {
	ApplicationID string
	StageID       string
	Type          domain.StageType
	ActorID       string
	Kind          string
}

// EventSink receives stage events. Emission is fire-and-forget: a sink must
// never block a mutation, and delivery is not guaranteed.
type EventSink interface {
	Emit(ctx context.Context, event StageEvent)
}

// NoopEventSink discards all events. Useful for tests.
type NoopEventSink struct{}

func (NoopEventSink) Emit(context.Context, StageEvent) {}

type logEventSink struct {
	logger *slog.Logger
}

// NewLogEventSink writes stage events to the provided writer as structured
// log lines.
func NewLogEventSink(w io.Writer) EventSink {
	if w == nil {
		return NoopEventSink{}
	}
	return &logEventSink{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (s *logEventSink) Emit(ctx context.Context, event StageEvent) {
	s.logger.InfoContext(ctx, "stage_event",
		"kind", event.Kind,
		"application_id", event.ApplicationID,
		"stage_id", event.StageID,
		"stage_type", event.Type,
		"actor_id", event.ActorID,
	)
}
