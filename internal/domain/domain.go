package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Model types ---

// Role is the access level of a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTeamLead Role = "team_lead"
	RoleMember   Role = "member"
)

type User struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	FullName       string     `db:"full_name" json:"full_name"`
	HashedPassword string     `db:"hashed_password" json:"-"`
	Role           Role       `db:"role" json:"role"`
	TeamID         *uuid.UUID `db:"team_id" json:"team_id"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

type Team struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Project struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	TeamID      *uuid.UUID `db:"team_id" json:"team_id"`
	LeadID      *uuid.UUID `db:"lead_id" json:"lead_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type Issue struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Identifier  string     `db:"identifier" json:"identifier"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Status      string     `db:"status" json:"status"`
	Priority    int        `db:"priority" json:"priority"`
	TeamID      *uuid.UUID `db:"team_id" json:"team_id"`
	ProjectID   *uuid.UUID `db:"project_id" json:"project_id"`
	AssigneeID  *uuid.UUID `db:"assignee_id" json:"assignee_id"`
	CreatorID   uuid.UUID  `db:"creator_id" json:"creator_id"`
	ParentID    *uuid.UUID `db:"parent_id" json:"parent_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type Comment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Body      string    `db:"body" json:"body"`
	IssueID   uuid.UUID `db:"issue_id" json:"issue_id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Activity is one audit log entry for an issue: a single attribute change.
type Activity struct {
	ID        uuid.UUID `db:"id" json:"id"`
	IssueID   uuid.UUID `db:"issue_id" json:"issue_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Attribute string    `db:"attribute" json:"attribute"`
	OldValue  string    `db:"old_value" json:"old_value"`
	NewValue  string    `db:"new_value" json:"new_value"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// --- Query types ---

// IssueFilters narrows issue listings. Nil/empty fields are ignored.
type IssueFilters struct {
	Status     string
	Priority   *int
	TeamID     *uuid.UUID
	ProjectID  *uuid.UUID
	AssigneeID *uuid.UUID
	Search     string
}

// IssueStats aggregates issue counts for dashboards.
type IssueStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[int]int    `json:"by_priority"`
}

// --- Repository interfaces ---

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, skip, limit int) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	List(ctx context.Context, skip, limit int) ([]Team, error)
	Update(ctx context.Context, team *Team) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context, skip, limit int) ([]Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IssueRepository interface {
	Create(ctx context.Context, issue *Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (*Issue, error)
	List(ctx context.Context, creatorID uuid.UUID, filters IssueFilters, skip, limit int) ([]Issue, error)
	ListAll(ctx context.Context, creatorID uuid.UUID, filters IssueFilters) ([]Issue, error)
	Search(ctx context.Context, query string, skip, limit int) ([]Issue, error)
	Stats(ctx context.Context, creatorID uuid.UUID) (*IssueStats, error)
	Update(ctx context.Context, issue *Issue) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByIssue(ctx context.Context, issueID uuid.UUID, skip, limit int) ([]Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	ListByIssue(ctx context.Context, issueID uuid.UUID, skip, limit int) ([]Activity, error)
}
