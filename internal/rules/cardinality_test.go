package rules

import (
	"testing"

	"github.com/dkoval/hirepath/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagesOf(types ...domain.StageType) []*domain.ApplicationStage {
	stages := make([]*domain.ApplicationStage, len(types))
	for i, t := range types {
		stages[i] = &domain.ApplicationStage{
			ID:     string(t),
			Type:   t,
			Order:  i,
			Status: domain.StatusCompleted,
		}
	}
	return stages
}

func TestCheckCardinality_WithinCap(t *testing.T) {
	existing := stagesOf(domain.StageSubmitApplication, domain.StageAssignment, domain.StageAssignment)
	assert.NoError(t, CheckCardinality(existing, domain.StageAssignment), "third assignment is within the cap")
}

func TestCheckCardinality_Exceeded(t *testing.T) {
	existing := stagesOf(domain.StageSubmitApplication, domain.StageAssignment,
		domain.StageAssignment, domain.StageAssignment)
	err := CheckCardinality(existing, domain.StageAssignment)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCardinalityExceeded)
}

func TestCheckCardinality_SingletonTypes(t *testing.T) {
	for _, st := range []domain.StageType{
		domain.StageSubmitApplication, domain.StageAIInterview, domain.StageUnderReview,
		domain.StageOffer, domain.StageOfferAccepted, domain.StageDisqualified,
	} {
		err := CheckCardinality(stagesOf(st), st)
		assert.ErrorIs(t, err, domain.ErrCardinalityExceeded, "type=%s", st)
	}
}

func TestCheckUniqueSingleton(t *testing.T) {
	existing := stagesOf(domain.StageSubmitApplication)

	err := CheckUniqueSingleton(existing, domain.StageSubmitApplication)
	assert.ErrorIs(t, err, domain.ErrDuplicateSingleton)

	// Non-singleton types pass regardless of count.
	assert.NoError(t, CheckUniqueSingleton(existing, domain.StageAssignment))
	assert.NoError(t, CheckUniqueSingleton(existing, domain.StageOfferAccepted))
}

func TestCheckTerminalExclusivity_CompletedTerminalEndsPipeline(t *testing.T) {
	existing := stagesOf(domain.StageSubmitApplication, domain.StageDisqualified)

	err := CheckTerminalExclusivity(existing, domain.StageAssignment)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTerminalStageExists)
}

func TestCheckTerminalExclusivity_ConflictingTerminals(t *testing.T) {
	// Terminal present but not yet completed: anything non-terminal may be
	// proposed, but the opposite terminal may not.
	existing := stagesOf(domain.StageSubmitApplication, domain.StageDisqualified)
	existing[1].Status = domain.StatusPending

	assert.NoError(t, CheckTerminalExclusivity(existing, domain.StageAssignment))

	err := CheckTerminalExclusivity(existing, domain.StageOfferAccepted)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflictingTerminal)
}

func TestCheckTerminalExclusivity_NoTerminals(t *testing.T) {
	existing := stagesOf(domain.StageSubmitApplication, domain.StageLiveInterview)
	assert.NoError(t, CheckTerminalExclusivity(existing, domain.StageOffer))
	assert.NoError(t, CheckTerminalExclusivity(existing, domain.StageDisqualified))
}
