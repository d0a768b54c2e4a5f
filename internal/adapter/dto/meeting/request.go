package meeting

import "time"

// ImportRequest registers an already-stored recording for processing
type ImportRequest struct {
	Title            string     `json:"title" validate:"required,min=1,max=255"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	AudioURL         string     `json:"audio_url" validate:"required"`
	OriginalFilename *string    `json:"original_filename,omitempty"`
}
