package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dkoval/hirepath/internal/db"
	"github.com/dkoval/hirepath/internal/domain"
	"github.com/dkoval/hirepath/internal/repository"
	"github.com/dkoval/hirepath/internal/rules"
	"github.com/google/uuid"
)

type pipelineService struct {
	stages repository.StageRepo
	apps   repository.ApplicationRepo
	uow    db.UnitOfWork
	locks  *appLocks
	events EventSink
}

func NewPipelineService(stages repository.StageRepo, apps repository.ApplicationRepo, uow db.UnitOfWork, events EventSink) PipelineService {
	if events == nil {
		events = NoopEventSink{}
	}
	return &pipelineService{
		stages: stages,
		apps:   apps,
		uow:    uow,
		locks:  newAppLocks(),
		events: events,
	}
}

func (s *pipelineService) CreateStage(ctx context.Context, applicationID string, draft StageDraft, actorID string) (*domain.ApplicationStage, error) {
	unlock := s.locks.acquire(applicationID)
	defer unlock()

	var created *domain.ApplicationStage
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txApps := repository.NewSQLiteApplicationRepo(tx)
		txStages := repository.NewSQLiteStageRepo(tx)

		if _, err := txApps.GetByID(ctx, applicationID); err != nil {
			return err
		}
		existing, err := txStages.ListByApplication(ctx, applicationID)
		if err != nil {
			return err
		}

		// Business rules first, then the chain transition, then ordering and
		// structural checks. Stop at the first failing group.
		if err := rules.CheckCardinality(existing, draft.Type); err != nil {
			return err
		}
		if err := rules.CheckUniqueSingleton(existing, draft.Type); err != nil {
			return err
		}
		if err := rules.CheckTerminalExclusivity(existing, draft.Type); err != nil {
			return err
		}
		if len(existing) > 0 {
			last := existing[len(existing)-1] // highest order, list is sorted
			if err := rules.CanAddNextStage(last, draft.Type); err != nil {
				return err
			}
		}

		stage, err := buildStage(applicationID, draft, actorID, rules.NextOrder(existing))
		if err != nil {
			return err
		}
		if err := rules.ValidateStageCommon(stage); err != nil {
			return err
		}
		if err := txStages.Create(ctx, stage); err != nil {
			return err
		}
		created = stage
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, StageEvent{
		ApplicationID: applicationID,
		StageID:       created.ID,
		Type:          created.Type,
		ActorID:       actorID,
		Kind:          EventStageCreated,
	})
	return created, nil
}

func buildStage(applicationID string, draft StageDraft, actorID string, order int) (*domain.ApplicationStage, error) {
	data, err := domain.NewStageData(draft.Type)
	if err != nil {
		return nil, err
	}
	if len(draft.Data) > 0 {
		data, err = domain.MergeStageData(data, draft.Data)
		if err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	return &domain.ApplicationStage{
		ID:                 uuid.New().String(),
		ApplicationID:      applicationID,
		Type:               draft.Type,
		Order:              order,
		Status:             domain.StatusPending,
		Title:              draft.Title,
		VisibleToCandidate: !draft.HiddenFromCandidate,
		Data:               data,
		CreatedBy:          actorID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (s *pipelineService) UpdateStageStatus(ctx context.Context, stageID string, newStatus domain.StageStatus, actorID string) error {
	stage, err := s.stages.GetByID(ctx, stageID)
	if err != nil {
		return err
	}

	unlock := s.locks.acquire(stage.ApplicationID)
	defer unlock()

	// Re-read under the lock so the validation sees the latest state.
	stage, err = s.stages.GetByID(ctx, stageID)
	if err != nil {
		return err
	}
	if err := rules.CanChangeStatus(stage, newStatus); err != nil {
		return err
	}
	if newStatus.IsActive() {
		active, err := s.stages.FindActiveStage(ctx, stage.ApplicationID)
		if err != nil {
			return err
		}
		if active != nil && active.ID != stage.ID {
			return fmt.Errorf("stage %s is already %s: %w",
				active.ID, active.Status, domain.ErrActiveStageExists)
		}
	}
	if newStatus == domain.StatusCompleted {
		if err := rules.ValidateCompleteness(stage); err != nil {
			return err
		}
	}
	if err := s.stages.UpdateStatus(ctx, stageID, newStatus, time.Now().UTC()); err != nil {
		return err
	}

	s.events.Emit(ctx, StageEvent{
		ApplicationID: stage.ApplicationID,
		StageID:       stage.ID,
		Type:          stage.Type,
		ActorID:       actorID,
		Kind:          EventStatusChanged,
	})
	return nil
}

func (s *pipelineService) AddStageData(ctx context.Context, stageID string, partial json.RawMessage, actorID string) error {
	stage, err := s.stages.GetByID(ctx, stageID)
	if err != nil {
		return err
	}

	unlock := s.locks.acquire(stage.ApplicationID)
	defer unlock()

	stage, err = s.stages.GetByID(ctx, stageID)
	if err != nil {
		return err
	}
	if stage.IsTerminal() {
		return fmt.Errorf("stage %s is %s: %w", stage.ID, stage.Status, domain.ErrTerminalStage)
	}
	if err := s.stages.MergeData(ctx, stageID, partial, time.Now().UTC()); err != nil {
		return err
	}

	s.events.Emit(ctx, StageEvent{
		ApplicationID: stage.ApplicationID,
		StageID:       stage.ID,
		Type:          stage.Type,
		ActorID:       actorID,
		Kind:          EventDataMerged,
	})
	return nil
}

func (s *pipelineService) UpdateStageMeta(ctx context.Context, stageID string, title *string, visible *bool, actorID string) error {
	stage, err := s.stages.GetByID(ctx, stageID)
	if err != nil {
		return err
	}

	unlock := s.locks.acquire(stage.ApplicationID)
	defer unlock()

	// Title and visibility stay editable even on terminal stages.
	if err := s.stages.UpdateMeta(ctx, stageID, title, visible, time.Now().UTC()); err != nil {
		return err
	}

	s.events.Emit(ctx, StageEvent{
		ApplicationID: stage.ApplicationID,
		StageID:       stage.ID,
		Type:          stage.Type,
		ActorID:       actorID,
		Kind:          EventMetaUpdated,
	})
	return nil
}

func (s *pipelineService) DeleteStage(ctx context.Context, stageID string, actorID string) error {
	stage, err := s.stages.GetByID(ctx, stageID)
	if err != nil {
		return err
	}

	unlock := s.locks.acquire(stage.ApplicationID)
	defer unlock()

	stage, err = s.stages.GetByID(ctx, stageID)
	if err != nil {
		return err
	}
	if stage.Type == domain.StageSubmitApplication {
		return fmt.Errorf("stage %s: %w", stage.ID, domain.ErrCannotDeleteSubmission)
	}
	if stage.Status == domain.StatusCompleted {
		return fmt.Errorf("stage %s: %w", stage.ID, domain.ErrCannotDeleteCompleted)
	}
	if err := s.stages.Delete(ctx, stageID); err != nil {
		return err
	}

	s.events.Emit(ctx, StageEvent{
		ApplicationID: stage.ApplicationID,
		StageID:       stage.ID,
		Type:          stage.Type,
		ActorID:       actorID,
		Kind:          EventStageDeleted,
	})
	return nil
}

func (s *pipelineService) GetVisibleStages(ctx context.Context, applicationID string, role domain.Role) ([]*domain.ApplicationStage, error) {
	return s.stages.ListVisible(ctx, applicationID, role)
}

func (s *pipelineService) GetActiveStage(ctx context.Context, applicationID string) (*domain.ApplicationStage, error) {
	return s.stages.FindActiveStage(ctx, applicationID)
}

func (s *pipelineService) GetStagesByType(ctx context.Context, applicationID string, t domain.StageType) ([]*domain.ApplicationStage, error) {
	return s.stages.ListByType(ctx, applicationID, t)
}

func (s *pipelineService) GetStageStats(ctx context.Context, applicationID string) (*StageStats, error) {
	stages, err := s.stages.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	stats := &StageStats{
		Total:    len(stages),
		ByStatus: make(map[domain.StageStatus]int),
		ByType:   make(map[domain.StageType]int),
	}
	for _, st := range stages {
		stats.ByStatus[st.Status]++
		stats.ByType[st.Type]++
		if st.Status == domain.StatusCompleted {
			stats.Completed++
		}
	}
	return stats, nil
}

func (s *pipelineService) ValidateTimeline(ctx context.Context, applicationID string) error {
	stages, err := s.stages.ListByApplication(ctx, applicationID)
	if err != nil {
		return err
	}

	// Whole-set validation reports every violated rule, not just the first.
	var violations []error
	if err := rules.ValidateOrder(stages); err != nil {
		violations = append(violations, err)
	}
	counts := make(map[domain.StageType]int)
	terminals := make(map[domain.StageType]bool)
	for _, st := range stages {
		counts[st.Type]++
		if st.Type.IsTerminal() {
			terminals[st.Type] = true
		}
	}
	for t, n := range counts {
		if max := rules.TypeCap(t); n > max {
			violations = append(violations, fmt.Errorf("%d %s stages exceed cap %d: %w",
				n, t, max, domain.ErrCardinalityExceeded))
		}
	}
	if terminals[domain.StageOfferAccepted] && terminals[domain.StageDisqualified] {
		violations = append(violations, fmt.Errorf("offer_accepted and disqualified coexist: %w",
			domain.ErrConflictingTerminal))
	}
	return errors.Join(violations...)
}

func (s *pipelineService) NormalizeOrder(ctx context.Context, applicationID string) error {
	unlock := s.locks.acquire(applicationID)
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStages := repository.NewSQLiteStageRepo(tx)
		stages, err := txStages.ListByApplication(ctx, applicationID)
		if err != nil {
			return err
		}
		if len(stages) == 0 {
			return nil
		}
		rules.Normalize(stages)
		return txStages.ReplaceOrders(ctx, stages, time.Now().UTC())
	})
}
