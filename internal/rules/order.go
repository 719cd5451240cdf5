package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dkoval/hirepath/internal/domain"
)

// NextOrder returns the order value for a stage appended after the existing
// set: max(order)+1, or 0 when the application has no stages yet.
func NextOrder(existing []*domain.ApplicationStage) int {
	next := 0
	for _, s := range existing {
		if s.Order >= next {
			next = s.Order + 1
		}
	}
	return next
}

// Normalize sorts the stages by their current order and reassigns dense
// order values 0..n-1. It is an explicit maintenance operation for
// repairing gapped or duplicated orders, never part of the regular write
// path. The input slice is modified in place and returned sorted.
func Normalize(stages []*domain.ApplicationStage) []*domain.ApplicationStage {
	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].Order < stages[j].Order
	})
	for i, s := range stages {
		s.Order = i
	}
	return stages
}

// ValidateOrder checks the ordering invariants over a full stage set: the
// earliest-order stage is the submission at order 0, orders strictly
// increase, and a completed terminal stage (if any) comes last. Every
// violation found is reported.
func ValidateOrder(stages []*domain.ApplicationStage) error {
	if len(stages) == 0 {
		return nil
	}

	sorted := make([]*domain.ApplicationStage, len(stages))
	copy(sorted, stages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	var violations []error
	if sorted[0].Type != domain.StageSubmitApplication {
		violations = append(violations,
			fmt.Errorf("first stage is %s, expected %s", sorted[0].Type, domain.StageSubmitApplication))
	}
	if sorted[0].Order != 0 {
		violations = append(violations,
			fmt.Errorf("first stage has order %d, expected 0", sorted[0].Order))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Order <= sorted[i-1].Order {
			violations = append(violations,
				fmt.Errorf("stage %s order %d does not increase after %d",
					sorted[i].ID, sorted[i].Order, sorted[i-1].Order))
		}
	}
	for i, s := range sorted {
		if s.Type.IsTerminal() && s.Status == domain.StatusCompleted && i != len(sorted)-1 {
			violations = append(violations,
				fmt.Errorf("completed terminal stage %s is not last", s.ID))
		}
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidOrder, errors.Join(violations...))
	}
	return nil
}
