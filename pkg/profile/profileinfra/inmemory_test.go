package profileinfra

import (
	"context"
	"testing"

	"github.com/aidul23/agent-mem/pkg/errx"
	"github.com/aidul23/agent-mem/pkg/kernel"
	"github.com/aidul23/agent-mem/pkg/profile"
)

func TestInMemoryProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryProfileRepository()

	if _, err := repo.FindByID(ctx, "nobody"); !errx.IsType(err, errx.TypeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	p := profile.NewUserProfile("u1")
	p.SetConsent(true)
	if err := repo.Save(ctx, *p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.FindByID(ctx, "u1")
	if err != nil || !got.AllowMemory {
		t.Fatalf("find: %+v %v", got, err)
	}

	// returned profiles are copies
	got.AllowMemory = false
	again, _ := repo.FindByID(ctx, "u1")
	if !again.AllowMemory {
		t.Error("mutating a returned profile must not change the store")
	}
}

func TestProfileKey(t *testing.T) {
	if got := profileKey(kernel.UserID("alice")); got != "profile:alice" {
		t.Errorf("got %s", got)
	}
}
