package testutil

import (
	"time"

	"github.com/dkoval/hirepath/internal/domain"
	"github.com/google/uuid"
)

// Application options
type ApplicationOption func(*domain.Application)

func WithCandidateID(id string) ApplicationOption {
	return func(a *domain.Application) {
		a.CandidateID = id
	}
}

func WithJobTitle(title string) ApplicationOption {
	return func(a *domain.Application) {
		a.JobTitle = title
	}
}

func NewTestApplication(opts ...ApplicationOption) *domain.Application {
	now := time.Now().UTC()
	a := &domain.Application{
		ID:          uuid.New().String(),
		CandidateID: uuid.New().String(),
		JobTitle:    "Backend Engineer",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Stage options
type StageOption func(*domain.ApplicationStage)

func WithOrder(order int) StageOption {
	return func(s *domain.ApplicationStage) {
		s.Order = order
	}
}

func WithStatus(status domain.StageStatus) StageOption {
	return func(s *domain.ApplicationStage) {
		s.Status = status
		if status == domain.StatusCompleted {
			now := time.Now().UTC()
			s.CompletedAt = &now
		}
	}
}

func WithTitle(title string) StageOption {
	return func(s *domain.ApplicationStage) {
		s.Title = title
	}
}

func WithHiddenFromCandidate() StageOption {
	return func(s *domain.ApplicationStage) {
		s.VisibleToCandidate = false
	}
}

func WithData(d domain.StageData) StageOption {
	return func(s *domain.ApplicationStage) {
		s.Data = d
	}
}

func WithCreatedBy(actorID string) StageOption {
	return func(s *domain.ApplicationStage) {
		s.CreatedBy = actorID
	}
}

// NewTestStage builds a stage of the given type with an empty payload,
// pending status, and visible to the candidate.
func NewTestStage(applicationID string, t domain.StageType, opts ...StageOption) *domain.ApplicationStage {
	now := time.Now().UTC()
	data, err := domain.NewStageData(t)
	if err != nil {
		panic(err)
	}
	s := &domain.ApplicationStage{
		ID:                 uuid.New().String(),
		ApplicationID:      applicationID,
		Type:               t,
		Status:             domain.StatusPending,
		VisibleToCandidate: true,
		Data:               data,
		CreatedBy:          "recruiter-1",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TimePtr returns a pointer to t, for building payload fixtures.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
