package repository

import (
	"context"
	"testing"
	"time"

	"github.com/dkoval/hirepath/internal/domain"
	"github.com/dkoval/hirepath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStageRepo(t *testing.T) (*SQLiteStageRepo, *SQLiteApplicationRepo, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	appRepo := NewSQLiteApplicationRepo(database)
	stageRepo := NewSQLiteStageRepo(database)

	app := testutil.NewTestApplication()
	require.NoError(t, appRepo.Create(context.Background(), app))
	return stageRepo, appRepo, app.ID
}

func TestStageRepo_CreateAndGet_RoundTrip(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	sent := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	stage := testutil.NewTestStage(appID, domain.StageAssignment,
		testutil.WithOrder(1),
		testutil.WithTitle("Take-home"),
		testutil.WithData(&domain.AssignmentData{
			Title:       "Build a rate limiter",
			Description: "Token bucket, tests included",
			SentAt:      &sent,
		}),
	)
	require.NoError(t, repo.Create(ctx, stage))

	got, err := repo.GetByID(ctx, stage.ID)
	require.NoError(t, err)
	assert.Equal(t, stage.ID, got.ID)
	assert.Equal(t, appID, got.ApplicationID)
	assert.Equal(t, domain.StageAssignment, got.Type)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, 1, got.Order)
	assert.Equal(t, "Take-home", got.Title)
	assert.True(t, got.VisibleToCandidate)
	assert.Nil(t, got.CompletedAt)

	data, ok := got.Data.(*domain.AssignmentData)
	require.True(t, ok, "expected *AssignmentData, got %T", got.Data)
	assert.Equal(t, "Build a rate limiter", data.Title)
	require.NotNil(t, data.SentAt)
	assert.Equal(t, sent, *data.SentAt)
}

func TestStageRepo_Create_DuplicateID(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	stage := testutil.NewTestStage(appID, domain.StageAIInterview, testutil.WithOrder(1))
	require.NoError(t, repo.Create(ctx, stage))

	dup := testutil.NewTestStage(appID, domain.StageUnderReview, testutil.WithOrder(2))
	dup.ID = stage.ID
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestStageRepo_GetByID_NotFound(t *testing.T) {
	repo, _, _ := setupStageRepo(t)
	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStageRepo_ListByApplication_SortedByOrder(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	// Insert out of order.
	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageOffer, testutil.WithOrder(2))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageSubmitApplication, testutil.WithOrder(0))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageAIInterview, testutil.WithOrder(1))))

	stages, err := repo.ListByApplication(ctx, appID)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{stages[0].Order, stages[1].Order, stages[2].Order})
	assert.Equal(t, domain.StageSubmitApplication, stages[0].Type)
}

func TestStageRepo_ListByTypeAndStatus(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageSubmitApplication,
		testutil.WithOrder(0), testutil.WithStatus(domain.StatusCompleted))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageLiveInterview, testutil.WithOrder(1))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageLiveInterview, testutil.WithOrder(2))))

	byType, err := repo.ListByType(ctx, appID, domain.StageLiveInterview)
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	byStatus, err := repo.ListByStatus(ctx, appID, domain.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, domain.StageSubmitApplication, byStatus[0].Type)
}

func TestStageRepo_ListVisible_RoleProjection(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageSubmitApplication, testutil.WithOrder(0))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageUnderReview,
		testutil.WithOrder(1), testutil.WithHiddenFromCandidate())))
	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageOffer, testutil.WithOrder(2))))

	candidate, err := repo.ListVisible(ctx, appID, domain.RoleCandidate)
	require.NoError(t, err)
	require.Len(t, candidate, 2)
	assert.Equal(t, domain.StageSubmitApplication, candidate[0].Type)
	assert.Equal(t, domain.StageOffer, candidate[1].Type)

	recruiter, err := repo.ListVisible(ctx, appID, domain.RoleRecruiter)
	require.NoError(t, err)
	assert.Len(t, recruiter, 3)
}

func TestStageRepo_FindActiveStage(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	active, err := repo.FindActiveStage(ctx, appID)
	require.NoError(t, err)
	assert.Nil(t, active, "no stages yet")

	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageSubmitApplication,
		testutil.WithOrder(0), testutil.WithStatus(domain.StatusCompleted))))
	stage := testutil.NewTestStage(appID, domain.StageAIInterview,
		testutil.WithOrder(1), testutil.WithStatus(domain.StatusAwaitingCandidate))
	require.NoError(t, repo.Create(ctx, stage))

	active, err = repo.FindActiveStage(ctx, appID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, stage.ID, active.ID)
}

func TestStageRepo_UpdateStatus_StampsCompletedAtOnlyOnCompleted(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	stage := testutil.NewTestStage(appID, domain.StageAIInterview, testutil.WithOrder(1))
	require.NoError(t, repo.Create(ctx, stage))

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateStatus(ctx, stage.ID, domain.StatusInProgress, now))

	got, err := repo.GetByID(ctx, stage.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, now, got.UpdatedAt)

	later := now.Add(time.Hour)
	require.NoError(t, repo.UpdateStatus(ctx, stage.ID, domain.StatusCompleted, later))

	got, err = repo.GetByID(ctx, stage.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, later, *got.CompletedAt)
}

func TestStageRepo_UpdateStatus_NotFound(t *testing.T) {
	repo, _, _ := setupStageRepo(t)
	err := repo.UpdateStatus(context.Background(), "nope", domain.StatusInProgress, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStageRepo_MergeData(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	sent := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	stage := testutil.NewTestStage(appID, domain.StageAssignment,
		testutil.WithOrder(1),
		testutil.WithData(&domain.AssignmentData{Title: "Rate limiter", Description: "4h", SentAt: &sent}),
	)
	require.NoError(t, repo.Create(ctx, stage))

	partial := []byte(`{"answerUrl":"https://github.com/cand/limiter","submittedAt":"2025-06-15T10:00:00Z"}`)
	require.NoError(t, repo.MergeData(ctx, stage.ID, partial, time.Now().UTC()))

	got, err := repo.GetByID(ctx, stage.ID)
	require.NoError(t, err)
	data := got.Data.(*domain.AssignmentData)
	assert.Equal(t, "https://github.com/cand/limiter", data.AnswerURL)
	require.NotNil(t, data.SubmittedAt)
	// Fields omitted from the partial payload persist.
	assert.Equal(t, "Rate limiter", data.Title)
	require.NotNil(t, data.SentAt)
	assert.Equal(t, sent, *data.SentAt)
}

func TestStageRepo_MergeData_NotFound(t *testing.T) {
	repo, _, _ := setupStageRepo(t)
	err := repo.MergeData(context.Background(), "nope", []byte(`{}`), time.Now().UTC())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStageRepo_UpdateMeta(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	stage := testutil.NewTestStage(appID, domain.StageUnderReview, testutil.WithOrder(1))
	require.NoError(t, repo.Create(ctx, stage))

	title := "Hiring Committee Review"
	hidden := false
	require.NoError(t, repo.UpdateMeta(ctx, stage.ID, &title, &hidden, time.Now().UTC()))

	got, err := repo.GetByID(ctx, stage.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.False(t, got.VisibleToCandidate)

	// Nil fields leave the current value alone.
	require.NoError(t, repo.UpdateMeta(ctx, stage.ID, nil, nil, time.Now().UTC()))
	got, err = repo.GetByID(ctx, stage.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
}

func TestStageRepo_CountByTypeAndMaxOrder(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	max, err := repo.MaxOrder(ctx, appID)
	require.NoError(t, err)
	assert.Equal(t, -1, max, "no stages yet")

	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageSubmitApplication, testutil.WithOrder(0))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageAssignment, testutil.WithOrder(1))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestStage(appID, domain.StageAssignment, testutil.WithOrder(2))))

	count, err := repo.CountByType(ctx, appID, domain.StageAssignment)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	max, err = repo.MaxOrder(ctx, appID)
	require.NoError(t, err)
	assert.Equal(t, 2, max)
}

func TestStageRepo_ReplaceOrders(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	a := testutil.NewTestStage(appID, domain.StageSubmitApplication, testutil.WithOrder(0))
	b := testutil.NewTestStage(appID, domain.StageAssignment, testutil.WithOrder(5))
	c := testutil.NewTestStage(appID, domain.StageOffer, testutil.WithOrder(9))
	for _, s := range []*domain.ApplicationStage{a, b, c} {
		require.NoError(t, repo.Create(ctx, s))
	}

	b.Order = 1
	c.Order = 2
	require.NoError(t, repo.ReplaceOrders(ctx, []*domain.ApplicationStage{a, b, c}, time.Now().UTC()))

	stages, err := repo.ListByApplication(ctx, appID)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{stages[0].Order, stages[1].Order, stages[2].Order})
}

func TestStageRepo_Delete(t *testing.T) {
	repo, _, appID := setupStageRepo(t)
	ctx := context.Background()

	stage := testutil.NewTestStage(appID, domain.StageAssignment, testutil.WithOrder(1))
	require.NoError(t, repo.Create(ctx, stage))
	require.NoError(t, repo.Delete(ctx, stage.ID))

	_, err := repo.GetByID(ctx, stage.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, stage.ID), ErrNotFound)
}
