package services

import (
	"strings"

	"github.com/google/uuid"
)

// Actor is the identity behind a request. A nil *Actor is an anonymous
// visitor.
type Actor struct {
	UserID   uuid.UUID
	Username string
	IsStaff  bool
}

func (a *Actor) Authenticated() bool {
	return a != nil && a.UserID != uuid.Nil
}

func (a *Actor) Staff() bool {
	return a.Authenticated() && a.IsStaff
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
