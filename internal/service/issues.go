package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/domain"
	apperrors "github.com/Vaidiasri/linear-backend/internal/errors"
	"github.com/Vaidiasri/linear-backend/internal/policy"
	"github.com/Vaidiasri/linear-backend/internal/realtime"
)

// issueStatuses are the allowed workflow states.
var issueStatuses = map[string]bool{
	"backlog":     true,
	"todo":        true,
	"in_progress": true,
	"done":        true,
	"cancelled":   true,
}

// IssueService manages issues, their activity log, and the issue events
// broadcast to the issue's team.
type IssueService struct {
	issues     domain.IssueRepository
	activities domain.ActivityRepository
	users      domain.UserRepository
	teams      domain.TeamRepository
	projects   domain.ProjectRepository
	events     EventPublisher
}

func NewIssueService(
	issues domain.IssueRepository,
	activities domain.ActivityRepository,
	users domain.UserRepository,
	teams domain.TeamRepository,
	projects domain.ProjectRepository,
	events EventPublisher,
) *IssueService {
	return &IssueService{
		issues:     issues,
		activities: activities,
		users:      users,
		teams:      teams,
		projects:   projects,
		events:     events,
	}
}

type CreateIssueInput struct {
	Title       string
	Description string
	Status      string
	Priority    int
	TeamID      *uuid.UUID
	ProjectID   *uuid.UUID
	AssigneeID  *uuid.UUID
	ParentID    *uuid.UUID
}

// UpdateIssueInput carries a partial update. Nil fields are left unchanged.
type UpdateIssueInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *int
	TeamID      *uuid.UUID
	ProjectID   *uuid.UUID
	AssigneeID  *uuid.UUID
	ParentID    *uuid.UUID
}

// newIdentifier derives a short human-readable issue key from a fresh UUID.
func newIdentifier() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "ISS-" + strings.ToUpper(raw[:8])
}

func (s *IssueService) validateRefs(ctx context.Context, teamID, projectID, assigneeID, parentID *uuid.UUID) error {
	if teamID != nil {
		if _, err := s.teams.GetByID(ctx, *teamID); err != nil {
			if errors.Is(err, domain.ErrTeamNotFound) {
				return apperrors.NotFoundError("team not found")
			}
			return apperrors.InternalError("failed to load team", err)
		}
	}
	if projectID != nil {
		if _, err := s.projects.GetByID(ctx, *projectID); err != nil {
			if errors.Is(err, domain.ErrProjectNotFound) {
				return apperrors.NotFoundError("project not found")
			}
			return apperrors.InternalError("failed to load project", err)
		}
	}
	if assigneeID != nil {
		if _, err := s.users.GetByID(ctx, *assigneeID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return apperrors.NotFoundError("assignee not found")
			}
			return apperrors.InternalError("failed to load assignee", err)
		}
	}
	if parentID != nil {
		if _, err := s.issues.GetByID(ctx, *parentID); err != nil {
			if errors.Is(err, domain.ErrIssueNotFound) {
				return apperrors.NotFoundError("parent issue not found")
			}
			return apperrors.InternalError("failed to load parent issue", err)
		}
	}
	return nil
}

func (s *IssueService) Create(ctx context.Context, current *domain.User, input CreateIssueInput) (*domain.Issue, error) {
	if !policy.Can(current, "issue:create", &policy.Resource{TeamID: input.TeamID}) {
		return nil, apperrors.ForbiddenError("not allowed to create this issue")
	}
	if input.Status == "" {
		input.Status = "backlog"
	}
	if !issueStatuses[input.Status] {
		return nil, apperrors.ValidationError("unknown issue status")
	}
	if err := s.validateRefs(ctx, input.TeamID, input.ProjectID, input.AssigneeID, input.ParentID); err != nil {
		return nil, err
	}

	issue := &domain.Issue{
		Identifier:  newIdentifier(),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		TeamID:      input.TeamID,
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
		CreatorID:   current.ID,
		ParentID:    input.ParentID,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, apperrors.InternalError("failed to create issue", err)
	}

	s.logActivity(ctx, issue.ID, current.ID, "created", "", issue.Title)
	s.events.Publish(eventTeam(issue.TeamID), realtime.IssueCreated(issue))
	return issue, nil
}

func (s *IssueService) Get(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, id)
	if errors.Is(err, domain.ErrIssueNotFound) {
		return nil, apperrors.NotFoundError("issue not found")
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to load issue", err)
	}
	return issue, nil
}

// List returns the current user's issues, newest first.
func (s *IssueService) List(ctx context.Context, current *domain.User, filters domain.IssueFilters, skip, limit int) ([]domain.Issue, error) {
	issues, err := s.issues.List(ctx, current.ID, filters, skip, limit)
	if err != nil {
		return nil, apperrors.InternalError("failed to list issues", err)
	}
	return issues, nil
}

func (s *IssueService) Search(ctx context.Context, query string, skip, limit int) ([]domain.Issue, error) {
	issues, err := s.issues.Search(ctx, query, skip, limit)
	if err != nil {
		return nil, apperrors.InternalError("failed to search issues", err)
	}
	return issues, nil
}

func (s *IssueService) Stats(ctx context.Context, current *domain.User) (*domain.IssueStats, error) {
	stats, err := s.issues.Stats(ctx, current.ID)
	if err != nil {
		return nil, apperrors.InternalError("failed to load issue stats", err)
	}
	return stats, nil
}

func (s *IssueService) Update(ctx context.Context, current *domain.User, id uuid.UUID, input UpdateIssueInput) (*domain.Issue, error) {
	issue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.Can(current, "issue:update", policy.IssueResource(issue)) {
		return nil, apperrors.ForbiddenError("not allowed to update this issue")
	}
	if input.Status != nil && !issueStatuses[*input.Status] {
		return nil, apperrors.ValidationError("unknown issue status")
	}
	if err := s.validateRefs(ctx, input.TeamID, input.ProjectID, input.AssigneeID, input.ParentID); err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != issue.Title {
		s.logActivity(ctx, issue.ID, current.ID, "title", issue.Title, *input.Title)
		issue.Title = *input.Title
	}
	if input.Description != nil {
		issue.Description = *input.Description
	}
	if input.Status != nil && *input.Status != issue.Status {
		s.logActivity(ctx, issue.ID, current.ID, "status", issue.Status, *input.Status)
		issue.Status = *input.Status
	}
	if input.Priority != nil && *input.Priority != issue.Priority {
		s.logActivity(ctx, issue.ID, current.ID, "priority",
			strconv.Itoa(issue.Priority), strconv.Itoa(*input.Priority))
		issue.Priority = *input.Priority
	}
	if input.AssigneeID != nil && (issue.AssigneeID == nil || *input.AssigneeID != *issue.AssigneeID) {
		s.logActivity(ctx, issue.ID, current.ID, "assignee_id",
			stringOrNone(issue.AssigneeID), input.AssigneeID.String())
		issue.AssigneeID = input.AssigneeID
	}
	if input.TeamID != nil {
		issue.TeamID = input.TeamID
	}
	if input.ProjectID != nil {
		issue.ProjectID = input.ProjectID
	}
	if input.ParentID != nil {
		issue.ParentID = input.ParentID
	}

	if err := s.issues.Update(ctx, issue); err != nil {
		if errors.Is(err, domain.ErrIssueNotFound) {
			return nil, apperrors.NotFoundError("issue not found")
		}
		return nil, apperrors.InternalError("failed to update issue", err)
	}

	s.events.Publish(eventTeam(issue.TeamID), realtime.IssueUpdated(issue))
	return issue, nil
}

func (s *IssueService) Delete(ctx context.Context, current *domain.User, id uuid.UUID) error {
	issue, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.Can(current, "issue:delete", policy.IssueResource(issue)) {
		return apperrors.ForbiddenError("not allowed to delete this issue")
	}

	if err := s.issues.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrIssueNotFound) {
			return apperrors.NotFoundError("issue not found")
		}
		return apperrors.InternalError("failed to delete issue", err)
	}

	s.events.Publish(eventTeam(issue.TeamID), realtime.IssueDeleted(issue.ID, issue.Title))
	return nil
}

// ExportCSV streams the current user's issues as CSV to w.
func (s *IssueService) ExportCSV(ctx context.Context, current *domain.User, filters domain.IssueFilters, w io.Writer) error {
	issues, err := s.issues.ListAll(ctx, current.ID, filters)
	if err != nil {
		return apperrors.InternalError("failed to load issues for export", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"identifier", "title", "status", "priority", "team_id", "assignee_id", "created_at"}); err != nil {
		return apperrors.InternalError("failed to write export header", err)
	}
	for i := range issues {
		issue := &issues[i]
		record := []string{
			issue.Identifier,
			issue.Title,
			issue.Status,
			strconv.Itoa(issue.Priority),
			stringOrNone(issue.TeamID),
			stringOrNone(issue.AssigneeID),
			issue.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(record); err != nil {
			return apperrors.InternalError("failed to write export row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.InternalError("failed to flush export", err)
	}
	return nil
}

// Activities returns the audit trail of an issue, newest first.
func (s *IssueService) Activities(ctx context.Context, id uuid.UUID, skip, limit int) ([]domain.Activity, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	activities, err := s.activities.ListByIssue(ctx, id, skip, limit)
	if err != nil {
		return nil, apperrors.InternalError("failed to list activities", err)
	}
	return activities, nil
}

// logActivity records one attribute change. Audit failures are logged but do
// not fail the request.
func (s *IssueService) logActivity(ctx context.Context, issueID, userID uuid.UUID, attribute, oldValue, newValue string) {
	activity := &domain.Activity{
		IssueID:   issueID,
		UserID:    userID,
		Attribute: attribute,
		OldValue:  oldValue,
		NewValue:  newValue,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		slog.Error("failed to record activity",
			"issue_id", issueID, "attribute", attribute, "error", err)
	}
}
