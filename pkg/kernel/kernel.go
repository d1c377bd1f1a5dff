package kernel

import "strings"

// UserID identifies an end user of the chat service
type UserID string

// DefaultUserID is used when a request carries no user id
const DefaultUserID UserID = "default"

// NewUserID normalizes a raw user id, falling back to DefaultUserID
func NewUserID(raw string) UserID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultUserID
	}
	return UserID(raw)
}

func (id UserID) String() string {
	return string(id)
}

// CompanyID identifies the company whose knowledge banks are served
type CompanyID string

func NewCompanyID(raw string) CompanyID {
	return CompanyID(strings.TrimSpace(raw))
}

func (id CompanyID) String() string {
	return string(id)
}

// AuthContext is what the auth middleware stores in request locals
type AuthContext struct {
	UserID    UserID
	CompanyID CompanyID
	Email     string
	Scopes    []string
}

func (a *AuthContext) IsValid() bool {
	return a.UserID != ""
}

func (a *AuthContext) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope || s == "*" {
			return true
		}
	}
	return false
}
