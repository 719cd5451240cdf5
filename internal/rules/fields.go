package rules

import (
	"fmt"
	"strings"

	"github.com/dkoval/hirepath/internal/domain"
)

// ValidateStageCommon checks the fields every stage must carry regardless of
// type or status, and that the payload variant matches the stage's type.
// All violations are collected before reporting.
func ValidateStageCommon(s *domain.ApplicationStage) error {
	var missing []string
	if s.ID == "" {
		missing = append(missing, "id")
	}
	if s.ApplicationID == "" {
		missing = append(missing, "applicationId")
	}
	if s.Type == "" {
		missing = append(missing, "type")
	}
	if s.Status == "" {
		missing = append(missing, "status")
	}
	if s.CreatedBy == "" {
		missing = append(missing, "createdBy")
	}
	if s.Data == nil {
		missing = append(missing, "data")
	}
	if len(missing) > 0 {
		return fmt.Errorf("stage is missing %s: %w",
			strings.Join(missing, ", "), domain.ErrMissingCommonField)
	}
	if s.Data.StageType() != s.Type {
		return fmt.Errorf("data type %q does not match stage type %q: %w",
			s.Data.StageType(), s.Type, domain.ErrTypeMismatch)
	}
	return nil
}

// ValidateCompleteness checks that the type-specific required fields are
// present, as a precondition for marking the stage completed. Every missing
// field is reported, not just the first.
func ValidateCompleteness(s *domain.ApplicationStage) error {
	missing := missingCompletionFields(s.Data)
	if len(missing) > 0 {
		return fmt.Errorf("%s stage cannot complete without %s: %w",
			s.Type, strings.Join(missing, ", "), domain.ErrMissingFields)
	}
	return nil
}

func missingCompletionFields(data domain.StageData) []string {
	var missing []string
	switch d := data.(type) {
	case *domain.SubmitApplicationData:
		if d.SubmittedAt == nil {
			missing = append(missing, "submittedAt")
		}
	case *domain.AIInterviewData:
		if d.InterviewCompletedAt == nil {
			missing = append(missing, "interviewCompletedAt")
		}
		if d.InterviewScore == nil {
			missing = append(missing, "interviewScore")
		}
	case *domain.UnderReviewData:
		// No required fields; review is a recruiter-side pause.
	case *domain.AssignmentData:
		if d.Title == "" {
			missing = append(missing, "title")
		}
		if d.Description == "" {
			missing = append(missing, "description")
		}
		if d.SentAt == nil {
			missing = append(missing, "sentAt")
		}
		if d.SubmittedAt == nil {
			missing = append(missing, "submittedAt")
		}
		if d.AnswerURL == "" {
			missing = append(missing, "answerUrl")
		}
	case *domain.LiveInterviewData:
		if d.ScheduledTime == nil && len(d.AvailableSlots) == 0 {
			missing = append(missing, "scheduledTime or availableSlots")
		}
		if d.CompletedAt == nil {
			missing = append(missing, "completedAt")
		}
		if d.DurationMinutes == nil {
			missing = append(missing, "durationMinutes")
		}
	case *domain.OfferData:
		if d.SentAt == nil {
			missing = append(missing, "sentAt")
		}
		if d.OfferLetterURL == "" {
			missing = append(missing, "offerLetterUrl")
		}
		if d.Response != domain.OfferAccepted && d.Response != domain.OfferRejected {
			missing = append(missing, "response")
		}
		if d.RespondedAt == nil {
			missing = append(missing, "respondedAt")
		}
	case *domain.OfferAcceptedData:
		if d.AcceptedAt == nil {
			missing = append(missing, "acceptedAt")
		}
		if d.StartDate == nil {
			missing = append(missing, "startDate")
		}
	case *domain.DisqualifiedData:
		if d.DisqualifiedAt == nil {
			missing = append(missing, "disqualifiedAt")
		}
		if d.Reason == "" {
			missing = append(missing, "reason")
		}
		if d.DisqualifiedBy == "" {
			missing = append(missing, "disqualifiedBy")
		}
		if d.AtStageType == "" {
			missing = append(missing, "atStageType")
		}
	}
	return missing
}
