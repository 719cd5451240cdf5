package domain

import "time"

// ApplicationStage is one timeline entry in an application's recruitment
// pipeline. Type and ApplicationID are immutable after creation; Data must
// always carry the variant matching Type.
type ApplicationStage struct {
	ID                 string
	ApplicationID      string
	Type               StageType
	Order              int
	Status             StageStatus
	Title              string // optional display override
	VisibleToCandidate bool
	Data               StageData

	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// IsTerminal reports whether this stage instance allows no further status
// change.
func (s *ApplicationStage) IsTerminal() bool {
	return s.Status.IsTerminal()
}

// IsActive reports whether this stage is the one currently being worked.
func (s *ApplicationStage) IsActive() bool {
	return s.Status.IsActive()
}

// DisplayTitle returns the title override when set, else a human-readable
// form of the stage type.
func (s *ApplicationStage) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return defaultTitles[s.Type]
}

var defaultTitles = map[StageType]string{
	StageSubmitApplication: "Application Submitted",
	StageAIInterview:       "AI Interview",
	StageUnderReview:       "Under Review",
	StageAssignment:        "Take-Home Assignment",
	StageLiveInterview:     "Live Interview",
	StageOffer:             "Offer",
	StageOfferAccepted:     "Offer Accepted",
	StageDisqualified:      "Disqualified",
}
