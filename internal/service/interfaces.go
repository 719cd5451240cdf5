package service

import (
	"context"
	"encoding/json"

	"github.com/dkoval/hirepath/internal/domain"
)

// StageDraft is the caller-supplied part of a new stage. Payload fields are
// optional at creation; completeness is only checked when the stage is
// marked completed.
type StageDraft struct {
	Type                domain.StageType
	Title               string
	HiddenFromCandidate bool
	Data                json.RawMessage
}

// StageStats aggregates one application's timeline for dashboards.
type StageStats struct {
	Total     int
	Completed int
	ByStatus  map[domain.StageStatus]int
	ByType    map[domain.StageType]int
}

type ApplicationService interface {
	// Create persists the application together with its submit_application
	// stage at order 0, atomically.
	Create(ctx context.Context, a *domain.Application, actorID string) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context) ([]*domain.Application, error)
}

type PipelineService interface {
	CreateStage(ctx context.Context, applicationID string, draft StageDraft, actorID string) (*domain.ApplicationStage, error)
	UpdateStageStatus(ctx context.Context, stageID string, newStatus domain.StageStatus, actorID string) error
	AddStageData(ctx context.Context, stageID string, partial json.RawMessage, actorID string) error
	// UpdateStageMeta edits title and candidate visibility, the only fields
	// that remain editable once a stage is terminal.
	UpdateStageMeta(ctx context.Context, stageID string, title *string, visible *bool, actorID string) error
	DeleteStage(ctx context.Context, stageID string, actorID string) error

	GetVisibleStages(ctx context.Context, applicationID string, role domain.Role) ([]*domain.ApplicationStage, error)
	GetActiveStage(ctx context.Context, applicationID string) (*domain.ApplicationStage, error)
	GetStagesByType(ctx context.Context, applicationID string, t domain.StageType) ([]*domain.ApplicationStage, error)
	GetStageStats(ctx context.Context, applicationID string) (*StageStats, error)

	// ValidateTimeline checks the whole stage set against the ordering,
	// cardinality and exclusivity invariants, reporting every violation.
	ValidateTimeline(ctx context.Context, applicationID string) error
	// NormalizeOrder reassigns dense order values 0..n-1. Explicit
	// maintenance operation, never part of the regular write path.
	NormalizeOrder(ctx context.Context, applicationID string) error
}
