package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// StageData is the type-specific payload attached to a stage. Exactly one
// variant exists per StageType; the variant is resolved from the "type" tag
// when decoding the flat JSON object stored at rest.
type StageData interface {
	StageType() StageType
}

type SubmitApplicationData struct {
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ResumeURL   string     `json:"resumeUrl,omitempty"`
	CoverLetter string     `json:"coverLetter,omitempty"`
}

func (*SubmitApplicationData) StageType() StageType { return StageSubmitApplication }

type AIInterviewData struct {
	InterviewCompletedAt *time.Time `json:"interviewCompletedAt,omitempty"`
	InterviewScore       *float64   `json:"interviewScore,omitempty"`
	TranscriptURL        string     `json:"transcriptUrl,omitempty"`
}

func (*AIInterviewData) StageType() StageType { return StageAIInterview }

type UnderReviewData struct {
	Note       string `json:"note,omitempty"`
	ReviewedBy string `json:"reviewedBy,omitempty"`
}

func (*UnderReviewData) StageType() StageType { return StageUnderReview }

type AssignmentData struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	AnswerURL   string     `json:"answerUrl,omitempty"`
}

func (*AssignmentData) StageType() StageType { return StageAssignment }

type LiveInterviewData struct {
	ScheduledTime   *time.Time  `json:"scheduledTime,omitempty"`
	AvailableSlots  []time.Time `json:"availableSlots,omitempty"`
	MeetingURL      string      `json:"meetingUrl,omitempty"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty"`
	DurationMinutes *int        `json:"durationMinutes,omitempty"`
}

func (*LiveInterviewData) StageType() StageType { return StageLiveInterview }

type OfferData struct {
	SentAt         *time.Time    `json:"sentAt,omitempty"`
	OfferLetterURL string        `json:"offerLetterUrl,omitempty"`
	Response       OfferResponse `json:"response,omitempty"`
	RespondedAt    *time.Time    `json:"respondedAt,omitempty"`
}

func (*OfferData) StageType() StageType { return StageOffer }

type OfferAcceptedData struct {
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	StartDate  *time.Time `json:"startDate,omitempty"`
}

func (*OfferAcceptedData) StageType() StageType { return StageOfferAccepted }

type DisqualifiedData struct {
	DisqualifiedAt *time.Time `json:"disqualifiedAt,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	DisqualifiedBy string     `json:"disqualifiedBy,omitempty"`
	AtStageType    StageType  `json:"atStageType,omitempty"`
}

func (*DisqualifiedData) StageType() StageType { return StageDisqualified }

// NewStageData returns the empty payload variant for the given stage type.
func NewStageData(t StageType) (StageData, error) {
	switch t {
	case StageSubmitApplication:
		return &SubmitApplicationData{}, nil
	case StageAIInterview:
		return &AIInterviewData{}, nil
	case StageUnderReview:
		return &UnderReviewData{}, nil
	case StageAssignment:
		return &AssignmentData{}, nil
	case StageLiveInterview:
		return &LiveInterviewData{}, nil
	case StageOffer:
		return &OfferData{}, nil
	case StageOfferAccepted:
		return &OfferAcceptedData{}, nil
	case StageDisqualified:
		return &DisqualifiedData{}, nil
	}
	return nil, fmt.Errorf("unknown stage type %q", t)
}

// MarshalStageData encodes a payload as a flat JSON object carrying a "type"
// discriminator alongside the variant's own fields.
func MarshalStageData(d StageData) ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshaling stage data: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("flattening stage data: %w", err)
	}
	tag, err := json.Marshal(string(d.StageType()))
	if err != nil {
		return nil, fmt.Errorf("marshaling stage data type tag: %w", err)
	}
	fields["type"] = tag
	return json.Marshal(fields)
}

// UnmarshalStageData decodes a flat JSON object into the payload variant
// selected by its "type" tag.
func UnmarshalStageData(raw []byte) (StageData, error) {
	var tag struct {
		Type StageType `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("reading stage data type tag: %w", err)
	}
	d, err := NewStageData(tag.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("decoding %s stage data: %w", tag.Type, err)
	}
	return d, nil
}

// MergeStageData applies a partial JSON payload on top of an existing one:
// fields present in partial override, fields omitted persist. The existing
// value is not modified. A "type" tag in partial, if present, must match the
// existing payload's type.
func MergeStageData(d StageData, partial []byte) (StageData, error) {
	var tag struct {
		Type *StageType `json:"type"`
	}
	if err := json.Unmarshal(partial, &tag); err != nil {
		return nil, fmt.Errorf("reading partial stage data: %w", err)
	}
	if tag.Type != nil && *tag.Type != d.StageType() {
		return nil, fmt.Errorf("partial data type %q does not match stage data type %q: %w",
			*tag.Type, d.StageType(), ErrTypeMismatch)
	}

	// Round-trip the existing payload to get an independent copy, then let
	// json.Unmarshal overlay only the fields partial actually carries.
	full, err := MarshalStageData(d)
	if err != nil {
		return nil, err
	}
	merged, err := UnmarshalStageData(full)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(partial, merged); err != nil {
		return nil, fmt.Errorf("merging %s stage data: %w", d.StageType(), err)
	}
	return merged, nil
}
