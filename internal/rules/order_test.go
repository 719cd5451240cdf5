package rules

import (
	"testing"

	"github.com/dkoval/hirepath/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOrder(t *testing.T) {
	assert.Equal(t, 0, NextOrder(nil))

	stages := stagesOf(domain.StageSubmitApplication, domain.StageAIInterview)
	assert.Equal(t, 2, NextOrder(stages))

	// Gaps do not matter, only the max.
	stages[1].Order = 7
	assert.Equal(t, 8, NextOrder(stages))
}

func TestNormalize_ReassignsDenseOrders(t *testing.T) {
	stages := stagesOf(domain.StageSubmitApplication, domain.StageAssignment, domain.StageOffer)
	stages[0].Order = 0
	stages[1].Order = 4
	stages[2].Order = 9

	normalized := Normalize(stages)
	require.Len(t, normalized, 3)
	assert.Equal(t, domain.StageSubmitApplication, normalized[0].Type)
	for i, s := range normalized {
		assert.Equal(t, i, s.Order)
	}
}

func TestValidateOrder_OK(t *testing.T) {
	assert.NoError(t, ValidateOrder(nil))
	assert.NoError(t, ValidateOrder(stagesOf(
		domain.StageSubmitApplication, domain.StageAIInterview, domain.StageOffer)))
}

func TestValidateOrder_FirstMustBeSubmission(t *testing.T) {
	stages := stagesOf(domain.StageAIInterview, domain.StageOffer)
	err := ValidateOrder(stages)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	assert.Contains(t, err.Error(), "submit_application")
}

func TestValidateOrder_DuplicateOrders(t *testing.T) {
	stages := stagesOf(domain.StageSubmitApplication, domain.StageAIInterview)
	stages[1].Order = 0

	err := ValidateOrder(stages)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
}

func TestValidateOrder_CompletedTerminalMustBeLast(t *testing.T) {
	stages := stagesOf(domain.StageSubmitApplication, domain.StageDisqualified, domain.StageAssignment)
	err := ValidateOrder(stages)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	assert.Contains(t, err.Error(), "terminal")
}

func TestValidateOrder_AccumulatesViolations(t *testing.T) {
	stages := stagesOf(domain.StageAIInterview, domain.StageDisqualified, domain.StageAssignment)
	stages[0].Order = 3 // not 0, wrong first type, terminal not last

	err := ValidateOrder(stages)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first stage is")
	assert.Contains(t, err.Error(), "expected 0")
	assert.Contains(t, err.Error(), "not last")
}
