package meeting

import (
	"time"

	"github.com/google/uuid"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
)

// Response is the client-facing meeting shape
type Response struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	AudioURL         string     `json:"audio_url"`
	OriginalFilename *string    `json:"original_filename,omitempty"`
	Status           string     `json:"status"`
	Transcript       *string    `json:"transcript,omitempty"`
	FailureReason    *string    `json:"failure_reason,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// FromEntity maps a meeting entity to its response shape
func FromEntity(m *entities.Meeting) Response {
	return Response{
		ID:               m.ID,
		Title:            m.Title,
		StartedAt:        m.StartedAt,
		AudioURL:         m.AudioURL,
		OriginalFilename: m.OriginalFilename,
		Status:           string(m.Status),
		Transcript:       m.Transcript,
		FailureReason:    m.FailureReason,
		CompletedAt:      m.CompletedAt,
		CreatedAt:        m.CreatedAt,
	}
}

// FromEntities maps a meeting list
func FromEntities(meetings []entities.Meeting) []Response {
	out := make([]Response, 0, len(meetings))
	for i := range meetings {
		out = append(out, FromEntity(&meetings[i]))
	}
	return out
}
