package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is a known speaker identity. Rows are written by the external
// voice-sync job; the core only reads them to pre-assign tasks whose speaker
// matched a known voice and to resolve Jira assignees at push time.
type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DisplayName    string    `json:"display_name" gorm:"type:varchar(255);not null;uniqueIndex"`
	VoiceSampleURL *string   `json:"voice_sample_url,omitempty" gorm:"type:text"`
	JiraAccountID  *string   `json:"jira_account_id,omitempty" gorm:"type:varchar(255)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// HasVoiceSample reports whether a diarized speaker slot can be matched to
// this person.
func (u *User) HasVoiceSample() bool {
	return u.VoiceSampleURL != nil && *u.VoiceSampleURL != ""
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
