// Package rules holds the pure decision logic of the stage pipeline: which
// stage types may follow which, which status changes are legal, per-type
// cardinality caps, required-field completeness, and order invariants. The
// tables are compile-time constants; nothing in this package touches storage.
package rules

import (
	"fmt"

	"github.com/dkoval/hirepath/internal/domain"
)

// typeSuccessors lists every allowed (current type → next type) progression.
// Terminal types are absent from the map: they have no successors. Only
// live_interview may repeat itself consecutively, modeling multiple rounds;
// a repeated assignment goes through under_review first.
var typeSuccessors = map[domain.StageType][]domain.StageType{
	domain.StageSubmitApplication: {
		domain.StageAIInterview, domain.StageUnderReview, domain.StageAssignment,
		domain.StageLiveInterview, domain.StageDisqualified,
	},
	domain.StageAIInterview: {
		domain.StageUnderReview, domain.StageAssignment, domain.StageLiveInterview,
		domain.StageOffer, domain.StageDisqualified,
	},
	domain.StageUnderReview: {
		domain.StageAIInterview, domain.StageAssignment, domain.StageLiveInterview,
		domain.StageOffer, domain.StageDisqualified,
	},
	domain.StageAssignment: {
		domain.StageUnderReview, domain.StageLiveInterview,
		domain.StageOffer, domain.StageDisqualified,
	},
	domain.StageLiveInterview: {
		domain.StageLiveInterview, domain.StageUnderReview, domain.StageAssignment,
		domain.StageOffer, domain.StageDisqualified,
	},
	domain.StageOffer: {
		domain.StageOfferAccepted, domain.StageDisqualified,
	},
}

// statusSuccessors lists every allowed (current status → next status) change
// for a single stage instance. Terminal statuses are absent from the map.
var statusSuccessors = map[domain.StageStatus][]domain.StageStatus{
	domain.StatusPending: {
		domain.StatusInProgress, domain.StatusAwaitingCandidate,
		domain.StatusAwaitingRecruiter, domain.StatusSkipped,
	},
	domain.StatusInProgress: {
		domain.StatusAwaitingCandidate, domain.StatusAwaitingRecruiter,
		domain.StatusCompleted, domain.StatusSkipped,
	},
	domain.StatusAwaitingCandidate: {
		domain.StatusInProgress, domain.StatusCompleted, domain.StatusSkipped,
	},
	domain.StatusAwaitingRecruiter: {
		domain.StatusInProgress, domain.StatusCompleted, domain.StatusSkipped,
	},
}

// CanFollow reports whether a stage of type next may be appended after a
// stage of type current.
func CanFollow(current, next domain.StageType) bool {
	for _, t := range typeSuccessors[current] {
		if t == next {
			return true
		}
	}
	return false
}

// CanAddNextStage decides whether a stage of type next may be appended after
// the given current last stage of the chain. The current stage must be
// closed (completed or skipped) and the progression must be in the
// adjacency table.
func CanAddNextStage(current *domain.ApplicationStage, next domain.StageType) error {
	if !current.Status.IsTerminal() {
		return fmt.Errorf("stage %s (%s) is still %s: %w",
			current.ID, current.Type, current.Status, domain.ErrStageNotComplete)
	}
	if !CanFollow(current.Type, next) {
		return fmt.Errorf("%s may not follow %s: %w",
			next, current.Type, domain.ErrIllegalTransition)
	}
	return nil
}

// CanChangeStatus decides whether a stage may move to newStatus.
func CanChangeStatus(stage *domain.ApplicationStage, newStatus domain.StageStatus) error {
	if stage.Status.IsTerminal() {
		return fmt.Errorf("stage %s is %s: %w", stage.ID, stage.Status, domain.ErrTerminalStage)
	}
	for _, s := range statusSuccessors[stage.Status] {
		if s == newStatus {
			return nil
		}
	}
	return fmt.Errorf("status %s may not follow %s: %w",
		newStatus, stage.Status, domain.ErrIllegalTransition)
}
