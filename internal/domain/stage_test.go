package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageStatus_IsTerminal(t *testing.T) {
	cases := []struct {
		status   StageStatus
		terminal bool
	}{
		{StatusPending, false},
		{StatusAwaitingCandidate, false},
		{StatusAwaitingRecruiter, false},
		{StatusInProgress, false},
		{StatusCompleted, true},
		{StatusSkipped, true},
	}
	for _, tc := range cases {
		s := &ApplicationStage{Status: tc.status}
		assert.Equal(t, tc.terminal, s.IsTerminal(), "status=%s", tc.status)
	}
}

func TestStageStatus_IsActive(t *testing.T) {
	assert.True(t, StatusInProgress.IsActive())
	assert.True(t, StatusAwaitingCandidate.IsActive())
	assert.True(t, StatusAwaitingRecruiter.IsActive())
	assert.False(t, StatusPending.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusSkipped.IsActive())
}

func TestStageType_IsTerminal(t *testing.T) {
	assert.True(t, StageOfferAccepted.IsTerminal())
	assert.True(t, StageDisqualified.IsTerminal())
	assert.False(t, StageOffer.IsTerminal())
	assert.False(t, StageSubmitApplication.IsTerminal())
}

func TestParseStageType(t *testing.T) {
	st, err := ParseStageType("live_interview")
	assert.NoError(t, err)
	assert.Equal(t, StageLiveInterview, st)

	_, err = ParseStageType("phone_screen")
	assert.Error(t, err)
}

func TestParseStageStatus(t *testing.T) {
	st, err := ParseStageStatus("awaiting_recruiter")
	assert.NoError(t, err)
	assert.Equal(t, StatusAwaitingRecruiter, st)

	_, err = ParseStageStatus("paused")
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("candidate")
	assert.NoError(t, err)
	assert.Equal(t, RoleCandidate, r)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestDisplayTitle(t *testing.T) {
	s := &ApplicationStage{Type: StageLiveInterview}
	assert.Equal(t, "Live Interview", s.DisplayTitle())

	s.Title = "Final Round with CTO"
	assert.Equal(t, "Final Round with CTO", s.DisplayTitle())
}
