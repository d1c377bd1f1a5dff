package profilesrv

import (
	"context"

	"github.com/aidul23/agent-mem/pkg/errx"
	"github.com/aidul23/agent-mem/pkg/kernel"
	"github.com/aidul23/agent-mem/pkg/logx"
	"github.com/aidul23/agent-mem/pkg/profile"
)

// ProfileService manages memory consent
type ProfileService struct {
	repo profile.Repository
}

func NewProfileService(repo profile.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetOrCreate returns the user's profile, creating one without consent on
// first sight. A blank id means the default user.
func (s *ProfileService) GetOrCreate(ctx context.Context, rawUserID string) (*profile.UserProfile, error) {
	userID := kernel.NewUserID(rawUserID)

	p, err := s.repo.FindByID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if e, ok := errx.As(err); !ok || e.Code != string(profile.CodeProfileNotFound) {
		return nil, err
	}

	p = profile.NewUserProfile(userID)
	if err := s.repo.Save(ctx, *p); err != nil {
		return nil, err
	}
	logx.WithField("user_id", userID.String()).Debug("Created user profile")
	return p, nil
}

func (s *ProfileService) SetConsent(ctx context.Context, rawUserID string, allow bool) (*profile.UserProfile, error) {
	p, err := s.GetOrCreate(ctx, rawUserID)
	if err != nil {
		return nil, err
	}

	p.SetConsent(allow)
	if err := s.repo.Save(ctx, *p); err != nil {
		return nil, err
	}

	logx.WithFields(logx.Fields{"user_id": p.UserID.String(), "allow_memory": allow}).Info("Updated memory consent")
	return p, nil
}

// Ping checks the underlying store
func (s *ProfileService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
