package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
	"github.com/Vaidiasri/linear-backend/internal/realtime"
)

// CommentService manages issue comments and publishes comment events to the
// parent issue's team.
type CommentService struct {
	comments domain.CommentRepository
	issues   domain.IssueRepository
	events   EventPublisher
}

func NewCommentService(comments domain.CommentRepository, issues domain.IssueRepository, events EventPublisher) *CommentService {
	return &CommentService{comments: comments, issues: issues, events: events}
}

func (s *CommentService) issueTeam(ctx context.Context, issueID uuid.UUID) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if errors.Is(err, domain.ErrIssueNotFound) {
		return nil, apperrors.NotFoundError("issue not found")
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to load issue", err)
	}
	return issue, nil
}

func (s *CommentService) Create(ctx context.Context, current *domain.User, issueID uuid.UUID, body string) (*domain.Comment, error) {
	issue, err := s.issueTeam(ctx, issueID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Body:     body,
		IssueID:  issueID,
		AuthorID: current.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.InternalError("failed to create comment", err)
	}

	s.events.Publish(eventTeam(issue.TeamID), realtime.CommentCreated(comment))
	return comment, nil
}

func (s *CommentService) ListByIssue(ctx context.Context, issueID uuid.UUID, skip, limit int) ([]domain.Comment, error) {
	if _, err := s.issueTeam(ctx, issueID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByIssue(ctx, issueID, skip, limit)
	if err != nil {
		return nil, apperrors.InternalError("failed to list comments", err)
	}
	return comments, nil
}

// Delete removes a comment. Only the author or an admin may delete.
func (s *CommentService) Delete(ctx context.Context, current *domain.User, id uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, id)
	if errors.Is(err, domain.ErrCommentNotFound) {
		return apperrors.NotFoundError("comment not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to load comment", err)
	}
	if comment.AuthorID != current.ID && current.Role != domain.RoleAdmin {
		return apperrors.ForbiddenError("not allowed to delete this comment")
	}

	issue, err := s.issueTeam(ctx, comment.IssueID)
	if err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCommentNotFound) {
			return apperrors.NotFoundError("comment not found")
		}
		return apperrors.InternalError("failed to delete comment", err)
	}

	s.events.Publish(eventTeam(issue.TeamID), realtime.CommentDeleted(comment.ID, comment.IssueID))
	return nil
}
