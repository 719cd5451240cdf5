package rules

import (
	"fmt"

	"github.com/dkoval/hirepath/internal/domain"
)

// typeCaps is the maximum number of stages of each type one application may
// carry. Assignments and live interviews may recur; everything else is a
// singleton.
var typeCaps = map[domain.StageType]int{
	domain.StageSubmitApplication: 1,
	domain.StageAIInterview:       1,
	domain.StageUnderReview:       1,
	domain.StageAssignment:        3,
	domain.StageLiveInterview:     3,
	domain.StageOffer:             1,
	domain.StageOfferAccepted:     1,
	domain.StageDisqualified:      1,
}

// singletonTypes are the types for which a duplicate is reported as a
// singleton violation, independent of the cap count.
var singletonTypes = map[domain.StageType]bool{
	domain.StageSubmitApplication: true,
	domain.StageOfferAccepted:     true,
	domain.StageDisqualified:      true,
}

// TypeCap returns the instance cap for a stage type.
func TypeCap(t domain.StageType) int {
	return typeCaps[t]
}

// CheckCardinality fails when adding one more stage of newType would exceed
// its per-application cap.
func CheckCardinality(existing []*domain.ApplicationStage, newType domain.StageType) error {
	count := 0
	for _, s := range existing {
		if s.Type == newType {
			count++
		}
	}
	if max := typeCaps[newType]; count+1 > max {
		return fmt.Errorf("application already has %d %s stage(s), cap is %d: %w",
			count, newType, max, domain.ErrCardinalityExceeded)
	}
	return nil
}

// CheckUniqueSingleton fails when newType is a singleton type and an
// instance already exists.
func CheckUniqueSingleton(existing []*domain.ApplicationStage, newType domain.StageType) error {
	if !singletonTypes[newType] {
		return nil
	}
	for _, s := range existing {
		if s.Type == newType {
			return fmt.Errorf("stage type %s already present: %w",
				newType, domain.ErrDuplicateSingleton)
		}
	}
	return nil
}

// CheckTerminalExclusivity fails when the pipeline has already ended with a
// completed terminal stage, or when adding one terminal type while the
// other is present.
func CheckTerminalExclusivity(existing []*domain.ApplicationStage, newType domain.StageType) error {
	for _, s := range existing {
		if s.Type.IsTerminal() && s.Status == domain.StatusCompleted {
			return fmt.Errorf("pipeline ended with completed %s stage: %w",
				s.Type, domain.ErrTerminalStageExists)
		}
	}
	if !newType.IsTerminal() {
		return nil
	}
	for _, s := range existing {
		if s.Type.IsTerminal() && s.Type != newType {
			return fmt.Errorf("cannot add %s while %s exists: %w",
				newType, s.Type, domain.ErrConflictingTerminal)
		}
	}
	return nil
}
