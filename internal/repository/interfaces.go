package repository

import (
	"context"
	"time"

	"github.com/dkoval/hirepath/internal/domain"
)

type ApplicationRepo interface {
	Create(ctx context.Context, a *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context) ([]*domain.Application, error)
	Delete(ctx context.Context, id string) error
}

// StageRepo persists application stages. It runs no business validation:
// transition, cardinality and completeness checks belong to the pipeline
// service, which is expected to have passed before any write lands here.
type StageRepo interface {
	Create(ctx context.Context, s *domain.ApplicationStage) error
	GetByID(ctx context.Context, id string) (*domain.ApplicationStage, error)
	ListByApplication(ctx context.Context, applicationID string) ([]*domain.ApplicationStage, error)
	ListByType(ctx context.Context, applicationID string, t domain.StageType) ([]*domain.ApplicationStage, error)
	ListByStatus(ctx context.Context, applicationID string, st domain.StageStatus) ([]*domain.ApplicationStage, error)
	// ListVisible returns the role's projection of the timeline, sorted by
	// order: candidates see only stages with visible_to_candidate set,
	// recruiters see everything.
	ListVisible(ctx context.Context, applicationID string, role domain.Role) ([]*domain.ApplicationStage, error)
	// FindActiveStage returns the stage currently in an active status
	// (in_progress or awaiting_*), or nil when no stage is active. The
	// pipeline service preserves the at-most-one-active invariant.
	FindActiveStage(ctx context.Context, applicationID string) (*domain.ApplicationStage, error)
	// UpdateStatus sets the status and updated_at, stamping completed_at
	// only when the new status is completed.
	UpdateStatus(ctx context.Context, stageID string, newStatus domain.StageStatus, now time.Time) error
	// MergeData overlays a partial payload onto the stored one: fields
	// present in partial override, omitted fields persist.
	MergeData(ctx context.Context, stageID string, partial []byte, now time.Time) error
	// UpdateMeta edits the display title and candidate visibility, the only
	// fields that stay mutable on a terminal stage.
	UpdateMeta(ctx context.Context, stageID string, title *string, visible *bool, now time.Time) error
	CountByType(ctx context.Context, applicationID string, t domain.StageType) (int, error)
	// MaxOrder returns the highest order value, or -1 when the application
	// has no stages.
	MaxOrder(ctx context.Context, applicationID string) (int, error)
	// ReplaceOrders rewrites the order values of the given stages, used by
	// the explicit normalize maintenance operation.
	ReplaceOrders(ctx context.Context, stages []*domain.ApplicationStage, now time.Time) error
	Delete(ctx context.Context, stageID string) error
}
