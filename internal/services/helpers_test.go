package services

import (
	"testing"
	"time"

	"github.com/aaditya996/City-Issue-Tracker/internal/dto"
	"github.com/aaditya996/City-Issue-Tracker/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, username string, staff bool) *models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		IsStaff:  staff,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func actorFor(u *models.User) *Actor {
	return &Actor{UserID: u.ID, Username: u.Username, IsStaff: u.IsStaff}
}

// steppedClock returns increasing timestamps one minute apart.
func steppedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func reportIssue(t *testing.T, svc *IssueService, reporter *Actor, title, description string) *models.Issue {
	t.Helper()
	issue, err := svc.Create(reporter, &dto.CreateIssueRequest{
		Title:       title,
		Description: description,
		Category:    string(models.CategoryRoads),
	})
	require.NoError(t, err)
	return issue
}
