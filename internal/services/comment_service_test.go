package services

import (
	"testing"
	"time"

	"github.com/aaditya996/City-Issue-Tracker/internal/dto"
	"github.com/aaditya996/City-Issue-Tracker/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentAndListNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	issues := NewIssueService(db)
	comments := NewCommentService(db, issues)
	comments.now = steppedClock(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	asha := actorFor(createUser(t, db, "asha", false))
	ravi := actorFor(createUser(t, db, "ravi", false))
	issue := reportIssue(t, issues, asha, "Blocked drain", "Water logging")

	first, err := comments.Add(issue.ID, ravi, &dto.CreateCommentRequest{Text: " Same on my street "})
	require.NoError(t, err)
	assert.Equal(t, "Same on my street", first.Text)
	assert.Equal(t, ravi.UserID, first.UserID)

	second, err := comments.Add(issue.ID, asha, &dto.CreateCommentRequest{Text: "Still not fixed"})
	require.NoError(t, err)

	thread, err := comments.ListForIssue(issue.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, second.ID, thread[0].ID)
	assert.Equal(t, first.ID, thread[1].ID)
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	db := testutil.NewDB(t)
	issues := NewIssueService(db)
	comments := NewCommentService(db, issues)
	asha := actorFor(createUser(t, db, "asha", false))
	issue := reportIssue(t, issues, asha, "Blocked drain", "Water logging")

	_, err := comments.Add(issue.ID, asha, &dto.CreateCommentRequest{Text: "   "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "This field is required.", verr.Fields["text"])

	thread, err := comments.ListForIssue(issue.ID)
	require.NoError(t, err)
	assert.Empty(t, thread)
}

func TestAddCommentUnknownIssue(t *testing.T) {
	db := testutil.NewDB(t)
	comments := NewCommentService(db, NewIssueService(db))
	asha := actorFor(createUser(t, db, "asha", false))

	_, err := comments.Add(uuid.New(), asha, &dto.CreateCommentRequest{Text: "hello"})
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestAddCommentRequiresAuthor(t *testing.T) {
	db := testutil.NewDB(t)
	comments := NewCommentService(db, NewIssueService(db))

	_, err := comments.Add(uuid.New(), nil, &dto.CreateCommentRequest{Text: "hello"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
