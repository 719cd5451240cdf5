package service

import (
	"context"
	"time"

	"github.com/dkoval/hirepath/internal/db"
	"github.com/dkoval/hirepath/internal/domain"
	"github.com/dkoval/hirepath/internal/repository"
	"github.com/google/uuid"
)

type applicationService struct {
	apps   repository.ApplicationRepo
	uow    db.UnitOfWork
	events EventSink
}

func NewApplicationService(apps repository.ApplicationRepo, uow db.UnitOfWork, events EventSink) ApplicationService {
	if events == nil {
		events = NoopEventSink{}
	}
	return &applicationService{apps: apps, uow: uow, events: events}
}

// Create persists the application and its submit_application stage in one
// transaction: a timeline is never observable without its first stage. The
// submission stage is born completed, since submitting is what created the
// application.
func (s *applicationService) Create(ctx context.Context, a *domain.Application, actorID string) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	submission := &domain.ApplicationStage{
		ID:                 uuid.New().String(),
		ApplicationID:      a.ID,
		Type:               domain.StageSubmitApplication,
		Order:              0,
		Status:             domain.StatusCompleted,
		VisibleToCandidate: true,
		Data:               &domain.SubmitApplicationData{SubmittedAt: &now},
		CreatedBy:          actorID,
		CreatedAt:          now,
		UpdatedAt:          now,
		CompletedAt:        &now,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txApps := repository.NewSQLiteApplicationRepo(tx)
		txStages := repository.NewSQLiteStageRepo(tx)
		if err := txApps.Create(ctx, a); err != nil {
			return err
		}
		return txStages.Create(ctx, submission)
	})
	if err != nil {
		return err
	}

	s.events.Emit(ctx, StageEvent{
		ApplicationID: a.ID,
		StageID:       submission.ID,
		Type:          submission.Type,
		ActorID:       actorID,
		Kind:          EventStageCreated,
	})
	return nil
}

func (s *applicationService) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	return s.apps.GetByID(ctx, id)
}

func (s *applicationService) List(ctx context.Context) ([]*domain.Application, error) {
	return s.apps.List(ctx)
}
