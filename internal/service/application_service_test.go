package service

import (
	"context"
	"testing"

	"github.com/dkoval/hirepath/internal/domain"
	"github.com/dkoval/hirepath/internal/repository"
	"github.com/dkoval/hirepath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApplications(t *testing.T) (ApplicationService, *repository.SQLiteStageRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	stageRepo := repository.NewSQLiteStageRepo(database)
	appRepo := repository.NewSQLiteApplicationRepo(database)
	return NewApplicationService(appRepo, testutil.NewTestUoW(database), nil), stageRepo
}

func TestApplicationCreate_SeedsCompletedSubmission(t *testing.T) {
	svc, stageRepo := setupApplications(t)
	ctx := context.Background()

	app := testutil.NewTestApplication(testutil.WithJobTitle("Platform Engineer"))
	require.NoError(t, svc.Create(ctx, app, "cand-1"))

	stages, err := stageRepo.ListByApplication(ctx, app.ID)
	require.NoError(t, err)
	require.Len(t, stages, 1)

	submission := stages[0]
	assert.Equal(t, domain.StageSubmitApplication, submission.Type)
	assert.Equal(t, 0, submission.Order)
	assert.Equal(t, domain.StatusCompleted, submission.Status)
	assert.Equal(t, "cand-1", submission.CreatedBy)
	require.NotNil(t, submission.CompletedAt)

	data, ok := submission.Data.(*domain.SubmitApplicationData)
	require.True(t, ok)
	assert.NotNil(t, data.SubmittedAt)
}

func TestApplicationCreate_AssignsID(t *testing.T) {
	svc, _ := setupApplications(t)

	app := &domain.Application{CandidateID: "cand-1", JobTitle: "SRE"}
	require.NoError(t, svc.Create(context.Background(), app, "cand-1"))
	assert.NotEmpty(t, app.ID)

	got, err := svc.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, "SRE", got.JobTitle)
}

func TestApplicationCreate_DuplicateID(t *testing.T) {
	svc, _ := setupApplications(t)
	ctx := context.Background()

	app := testutil.NewTestApplication()
	require.NoError(t, svc.Create(ctx, app, "cand-1"))

	dup := testutil.NewTestApplication()
	dup.ID = app.ID
	err := svc.Create(ctx, dup, "cand-2")
	assert.ErrorIs(t, err, repository.ErrDuplicateID)
}

func TestApplicationList(t *testing.T) {
	svc, _ := setupApplications(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, testutil.NewTestApplication(), "cand-1"))
	require.NoError(t, svc.Create(ctx, testutil.NewTestApplication(), "cand-2"))

	apps, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}
