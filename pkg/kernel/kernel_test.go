package kernel

import "testing"

func TestNewUserID(t *testing.T) {
	if got := NewUserID("  "); got != DefaultUserID {
		t.Errorf("blank id should fall back to default, got %q", got)
	}
	if got := NewUserID(" alice "); got != "alice" {
		t.Errorf("expected trimmed id, got %q", got)
	}
}

func TestAuthContextScopes(t *testing.T) {
	ac := &AuthContext{UserID: "u1", Scopes: []string{"memory:write"}}
	if !ac.IsValid() {
		t.Fatal("context with a user id should be valid")
	}
	if !ac.HasScope("memory:write") || ac.HasScope("memory:admin") {
		t.Error("scope matching is wrong")
	}

	admin := &AuthContext{UserID: "root", Scopes: []string{"*"}}
	if !admin.HasScope("anything") {
		t.Error("wildcard scope should match everything")
	}
}
