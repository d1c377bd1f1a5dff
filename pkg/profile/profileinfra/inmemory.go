package profileinfra

import (
	"context"
	"sync"

	"github.com/aidul23/agent-mem/pkg/kernel"
	"github.com/aidul23/agent-mem/pkg/profile"
)

// InMemoryProfileRepository keeps profiles for the life of the process
type InMemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[kernel.UserID]profile.UserProfile
}

func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{
		profiles: make(map[kernel.UserID]profile.UserProfile),
	}
}

var _ profile.Repository = (*InMemoryProfileRepository)(nil)

func (r *InMemoryProfileRepository) FindByID(_ context.Context, id kernel.UserID) (*profile.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, profile.ErrProfileNotFound().WithDetail("user_id", id.String())
	}
	return &p, nil
}

func (r *InMemoryProfileRepository) Save(_ context.Context, p profile.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = p
	return nil
}

func (r *InMemoryProfileRepository) Ping(context.Context) error {
	return nil
}
