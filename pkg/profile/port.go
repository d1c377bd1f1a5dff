package profile

import (
	"context"

	"github.com/aidul23/agent-mem/pkg/kernel"
)

// Repository persists user profiles. FindByID returns ErrProfileNotFound for unknown users.
type Repository interface {
	FindByID(ctx context.Context, id kernel.UserID) (*UserProfile, error)
	Save(ctx context.Context, p UserProfile) error
	Ping(ctx context.Context) error
}
