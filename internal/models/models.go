package models

import (
	"time"
)

// UserDocument is the profile document of one user, keyed by the identity
// provider's user id. Data holds the schemaless document as JSON text.
type UserDocument struct {
	ClerkID   string    `gorm:"primaryKey;size:128" json:"clerk_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Data string `gorm:"type:text;not null" json:"-"`
}

// Learning is a roadmap document nested under a user.
type Learning struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ClerkID   string    `gorm:"primaryKey;size:128" json:"clerk_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Data string `gorm:"type:text;not null" json:"-"`
}

// ResumeDraft is the persisted state of a user's resume builder.
type ResumeDraft struct {
	ClerkID   string    `gorm:"primaryKey;size:128" json:"clerk_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	State string `gorm:"type:text;not null" json:"-"`
}

// ResumeUpload records a resume file a user sent during onboarding.
type ResumeUpload struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ClerkID   string    `gorm:"index;size:128;not null" json:"clerk_id"`
	CreatedAt time.Time `json:"created_at"`

	OriginalFilename string `json:"original_filename"`
	Mime             string `json:"mime"`
	SizeBytes        int64  `json:"size_bytes"`
	StorageProvider  string `json:"storage_provider"`
	ObjectKey        string `json:"object_key,omitempty"`
	StorageURL       string `json:"storage_url,omitempty"`
	// Status is "stored", "skipped" (no object store) or "failed".
	Status        string `gorm:"default:'stored'" json:"status"`
	ExtractedText string `gorm:"type:text" json:"-"`
	TextLength    int    `json:"text_length"`
}

// All lists every model for migrations.
func All() []any {
	return []any{&UserDocument{}, &Learning{}, &ResumeDraft{}, &ResumeUpload{}}
}
