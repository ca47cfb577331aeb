package realtime

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vaidiasri/linear-backend/internal/domain"
)

func TestEvent_MarshalFlattens(t *testing.T) {
	issue := &domain.Issue{
		ID:         uuid.New(),
		Identifier: "ISS-1A2B3C4D",
		Title:      "Broken login",
		Status:     "in_progress",
	}

	data, err := json.Marshal(IssueCreated(issue))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "ISSUE_CREATED", decoded["event"])
	assert.Equal(t, issue.ID.String(), decoded["issue_id"])
	assert.Equal(t, "ISS-1A2B3C4D", decoded["identifier"])
	assert.Equal(t, "Broken login", decoded["title"])
	assert.Equal(t, "in_progress", decoded["status"])
}

func TestEvent_Constructors(t *testing.T) {
	issueID := uuid.New()
	event := IssueDeleted(issueID, "Old bug")
	assert.Equal(t, EventIssueDeleted, event.Kind)
	assert.Equal(t, issueID.String(), event.Fields["issue_id"])
	assert.Equal(t, "Old bug", event.Fields["title"])

	project := &domain.Project{ID: uuid.New(), Name: "Backend"}
	assert.Equal(t, EventProjectUpdated, ProjectUpdated(project).Kind)
	assert.Equal(t, "Backend", ProjectUpdated(project).Fields["name"])

	comment := &domain.Comment{ID: uuid.New(), IssueID: issueID, Body: "LGTM"}
	event = CommentCreated(comment)
	assert.Equal(t, EventCommentCreated, event.Kind)
	assert.Equal(t, issueID.String(), event.Fields["issue_id"])
	assert.Equal(t, "LGTM", event.Fields["body"])

	event = CommentDeleted(comment.ID, issueID)
	assert.Equal(t, EventCommentDeleted, event.Kind)
	assert.Equal(t, comment.ID.String(), event.Fields["comment_id"])
}
