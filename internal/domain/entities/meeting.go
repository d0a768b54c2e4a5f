package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the processing status of an imported meeting
type MeetingStatus string

const (
	MeetingStatusQueued     MeetingStatus = "queued"     // Waiting for an ingestion worker
	MeetingStatusProcessing MeetingStatus = "processing" // Being transcribed/extracted
	MeetingStatusCompleted  MeetingStatus = "completed"  // Transcript and task drafts persisted
	MeetingStatusFailed     MeetingStatus = "failed"     // Run failed; failure_reason set
)

// IsTerminal reports whether no further transition is allowed
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCompleted || s == MeetingStatusFailed
}

// CanTransitionTo reports whether the state machine allows moving to next.
// Queued only moves to Processing; Processing only to Completed or Failed.
// There is no reset transition: re-importing the same recording creates a new
// Meeting instead of rewinding an existing one.
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	switch s {
	case MeetingStatusQueued:
		return next == MeetingStatusProcessing
	case MeetingStatusProcessing:
		return next == MeetingStatusCompleted || next == MeetingStatusFailed
	default:
		return false
	}
}

// Meeting represents one ingested recording and its processing run
type Meeting struct {
	ID               uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title            string        `json:"title" gorm:"type:varchar(255);not null"`
	StartedAt        *time.Time    `json:"started_at,omitempty" gorm:"type:timestamp"`
	AudioURL         string        `json:"audio_url" gorm:"type:text;not null"` // opaque blob reference, storage owns the bytes
	OriginalFilename *string       `json:"original_filename,omitempty" gorm:"type:varchar(512)"`
	Status           MeetingStatus `json:"status" gorm:"type:varchar(50);not null;index;default:'queued'"`
	Transcript       *string       `json:"transcript,omitempty" gorm:"type:text"`
	FailureReason    *string       `json:"failure_reason,omitempty" gorm:"type:text"`

	ProcessingStartedAt *time.Time `json:"processing_started_at,omitempty" gorm:"type:timestamp"`
	CompletedAt         *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`

	Tasks []Task `json:"-" gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewMeeting creates a meeting in the Queued state
func NewMeeting(title string, startedAt *time.Time, audioURL string) *Meeting {
	return &Meeting{
		ID:        uuid.New(),
		Title:     title,
		StartedAt: startedAt,
		AudioURL:  audioURL,
		Status:    MeetingStatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// MarkCompleted records the transcript and flips the run to Completed.
// Persistence must write this together with the task rows in one transaction.
func (m *Meeting) MarkCompleted(transcript string) {
	now := time.Now()
	m.Status = MeetingStatusCompleted
	m.Transcript = &transcript
	m.CompletedAt = &now
	m.UpdatedAt = now
}

// MarkFailed flips the run to Failed with a human-readable reason
func (m *Meeting) MarkFailed(reason string) {
	now := time.Now()
	m.Status = MeetingStatusFailed
	m.FailureReason = &reason
	m.CompletedAt = &now
	m.UpdatedAt = now
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}
