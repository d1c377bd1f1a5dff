package profile

import (
	"time"

	"github.com/aidul23/agent-mem/pkg/kernel"
)

// UserProfile records whether a user agreed to long-term memory
type UserProfile struct {
	UserID      kernel.UserID `db:"user_id" json:"user_id"`
	AllowMemory bool          `db:"allow_memory" json:"allow_memory"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// NewUserProfile creates a profile without memory consent
func NewUserProfile(userID kernel.UserID) *UserProfile {
	now := time.Now().UTC()
	return &UserProfile{
		UserID:      userID,
		AllowMemory: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *UserProfile) SetConsent(allow bool) {
	p.AllowMemory = allow
	p.UpdatedAt = time.Now().UTC()
}
