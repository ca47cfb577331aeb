package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
	"github.com/Vaidiasri/linear-backend/internal/realtime"
)

type commentFixture struct {
	svc       *CommentService
	issues    *fakeIssueRepo
	users     *fakeUserRepo
	publisher *recordingPublisher
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		issues:    newFakeIssueRepo(),
		users:     newFakeUserRepo(),
		publisher: &recordingPublisher{},
	}
	f.svc = NewCommentService(newFakeCommentRepo(), f.issues, f.publisher)
	return f
}

func (f *commentFixture) issue(teamID *uuid.UUID) *domain.Issue {
	issue := &domain.Issue{Title: "Host issue", Status: "todo", TeamID: teamID, CreatorID: uuid.New()}
	_ = f.issues.Create(context.Background(), issue)
	return issue
}

func TestCommentService_CreatePublishesToIssueTeam(t *testing.T) {
	f := newCommentFixture()
	teamID := uuid.New()
	issue := f.issue(&teamID)
	author := f.users.add(&domain.User{Role: domain.RoleMember})

	comment, err := f.svc.Create(context.Background(), author, issue.ID, "looks good")
	require.NoError(t, err)
	assert.Equal(t, author.ID, comment.AuthorID)

	events := f.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, teamID, events[0].teamID)
	assert.Equal(t, realtime.EventCommentCreated, events[0].event.Kind)
}

func TestCommentService_CreateOnMissingIssue(t *testing.T) {
	f := newCommentFixture()
	author := f.users.add(&domain.User{Role: domain.RoleMember})

	_, err := f.svc.Create(context.Background(), author, uuid.New(), "orphan")
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeNotFound, errType(t, err))
}

func TestCommentService_DeleteAuthorOnly(t *testing.T) {
	f := newCommentFixture()
	issue := f.issue(nil)
	author := f.users.add(&domain.User{Role: domain.RoleMember})
	stranger := f.users.add(&domain.User{Role: domain.RoleMember})
	admin := f.users.add(&domain.User{Role: domain.RoleAdmin})

	comment, err := f.svc.Create(context.Background(), author, issue.ID, "mine")
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), stranger, comment.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeForbidden, errType(t, err))

	// Admins may delete anyone's comment.
	require.NoError(t, f.svc.Delete(context.Background(), admin, comment.ID))

	events := f.publisher.published()
	require.Len(t, events, 2)
	assert.Equal(t, realtime.EventCommentDeleted, events[1].event.Kind)
}
