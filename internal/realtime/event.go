package realtime

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Vaidiasri/linear-backend/internal/domain"
)

// EventKind tags the payload so clients can route updates without inspecting
// entity fields.
type EventKind string

const (
	EventIssueCreated   EventKind = "ISSUE_CREATED"
	EventIssueUpdated   EventKind = "ISSUE_UPDATED"
	EventIssueDeleted   EventKind = "ISSUE_DELETED"
	EventProjectCreated EventKind = "PROJECT_CREATED"
	EventProjectUpdated EventKind = "PROJECT_UPDATED"
	EventProjectDeleted EventKind = "PROJECT_DELETED"
	EventCommentCreated EventKind = "COMMENT_CREATED"
	EventCommentDeleted EventKind = "COMMENT_DELETED"
)

// Event is an immutable broadcast payload. It serializes to a flat object
// {"event": KIND, "<entity>_id": ..., ...} and is marshaled exactly once per
// broadcast, so every recipient receives identical bytes.
type Event struct {
	Kind   EventKind
	Fields map[string]any
}

func (e Event) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		out[k] = v
	}
	out["event"] = string(e.Kind)
	return json.Marshal(out)
}

func issueEvent(kind EventKind, issue *domain.Issue) Event {
	return Event{
		Kind: kind,
		Fields: map[string]any{
			"issue_id":   issue.ID.String(),
			"identifier": issue.Identifier,
			"title":      issue.Title,
			"status":     issue.Status,
		},
	}
}

func IssueCreated(issue *domain.Issue) Event { return issueEvent(EventIssueCreated, issue) }
func IssueUpdated(issue *domain.Issue) Event { return issueEvent(EventIssueUpdated, issue) }

// IssueDeleted carries only the id and title: the row is already gone.
func IssueDeleted(id uuid.UUID, title string) Event {
	return Event{
		Kind: EventIssueDeleted,
		Fields: map[string]any{
			"issue_id": id.String(),
			"title":    title,
		},
	}
}

func projectEvent(kind EventKind, project *domain.Project) Event {
	return Event{
		Kind: kind,
		Fields: map[string]any{
			"project_id": project.ID.String(),
			"name":       project.Name,
		},
	}
}

func ProjectCreated(project *domain.Project) Event { return projectEvent(EventProjectCreated, project) }
func ProjectUpdated(project *domain.Project) Event { return projectEvent(EventProjectUpdated, project) }

func ProjectDeleted(id uuid.UUID, name string) Event {
	return Event{
		Kind: EventProjectDeleted,
		Fields: map[string]any{
			"project_id": id.String(),
			"name":       name,
		},
	}
}

func CommentCreated(comment *domain.Comment) Event {
	return Event{
		Kind: EventCommentCreated,
		Fields: map[string]any{
			"comment_id": comment.ID.String(),
			"issue_id":   comment.IssueID.String(),
			"body":       comment.Body,
		},
	}
}

func CommentDeleted(id, issueID uuid.UUID) Event {
	return Event{
		Kind: EventCommentDeleted,
		Fields: map[string]any{
			"comment_id": id.String(),
			"issue_id":   issueID.String(),
		},
	}
}
