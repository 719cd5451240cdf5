package domain

import "time"

// Application is the owning aggregate for a stage timeline. The pipeline
// core only needs identity and ownership; richer candidate/job data lives
// outside this system.
type Application struct {
	ID          string
	CandidateID string
	JobTitle    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
