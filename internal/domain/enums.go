package domain

import "fmt"

type StageType string

const (
	StageSubmitApplication StageType = "submit_application"
	StageAIInterview       StageType = "ai_interview"
	StageUnderReview       StageType = "under_review"
	StageAssignment        StageType = "assignment"
	StageLiveInterview     StageType = "live_interview"
	StageOffer             StageType = "offer"
	StageOfferAccepted     StageType = "offer_accepted"
	StageDisqualified      StageType = "disqualified"
)

// AllStageTypes lists every stage type in rough pipeline order.
var AllStageTypes = []StageType{
	StageSubmitApplication,
	StageAIInterview,
	StageUnderReview,
	StageAssignment,
	StageLiveInterview,
	StageOffer,
	StageOfferAccepted,
	StageDisqualified,
}

// ParseStageType converts a raw string to a StageType, returning an error
// for unknown values.
func ParseStageType(s string) (StageType, error) {
	st := StageType(s)
	switch st {
	case StageSubmitApplication, StageAIInterview, StageUnderReview, StageAssignment,
		StageLiveInterview, StageOffer, StageOfferAccepted, StageDisqualified:
		return st, nil
	}
	return "", fmt.Errorf("unknown stage type %q", s)
}

// IsTerminal reports whether the stage type ends the pipeline for its
// application.
func (t StageType) IsTerminal() bool {
	return t == StageOfferAccepted || t == StageDisqualified
}

type StageStatus string

const (
	StatusPending           StageStatus = "pending"
	StatusAwaitingCandidate StageStatus = "awaiting_candidate"
	StatusAwaitingRecruiter StageStatus = "awaiting_recruiter"
	StatusInProgress        StageStatus = "in_progress"
	StatusCompleted         StageStatus = "completed"
	StatusSkipped           StageStatus = "skipped"
)

// ParseStageStatus converts a raw string to a StageStatus, returning an
// error for unknown values.
func ParseStageStatus(s string) (StageStatus, error) {
	st := StageStatus(s)
	switch st {
	case StatusPending, StatusAwaitingCandidate, StatusAwaitingRecruiter,
		StatusInProgress, StatusCompleted, StatusSkipped:
		return st, nil
	}
	return "", fmt.Errorf("unknown stage status %q", s)
}

// IsTerminal reports whether the status allows no further status change.
func (s StageStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// IsActive reports whether the status marks the stage as the one currently
// being worked, by either side.
func (s StageStatus) IsActive() bool {
	return s == StatusInProgress || s == StatusAwaitingCandidate || s == StatusAwaitingRecruiter
}

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// ParseRole converts a raw string to a Role, returning an error for unknown
// values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleCandidate, RoleRecruiter:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type OfferResponse string

const (
	OfferAccepted OfferResponse = "accepted"
	OfferRejected OfferResponse = "rejected"
)
