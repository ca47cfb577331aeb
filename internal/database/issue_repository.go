package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vaidiasri/linear-backend/internal/domain"
)

const issueColumns = `id, identifier, title, description, status, priority, team_id, project_id, assignee_id, creator_id, parent_id, created_at`

// IssueRepo implements domain.IssueRepository backed by PostgreSQL.
type IssueRepo struct {
	pool *pgxpool.Pool
}

func NewIssueRepo(pool *pgxpool.Pool) *IssueRepo {
	return &IssueRepo{pool: pool}
}

func scanIssue(row pgx.Row) (*domain.Issue, error) {
	var issue domain.Issue
	err := row.Scan(
		&issue.ID, &issue.Identifier, &issue.Title, &issue.Description,
		&issue.Status, &issue.Priority, &issue.TeamID, &issue.ProjectID,
		&issue.AssigneeID, &issue.CreatorID, &issue.ParentID, &issue.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func scanIssues(rows pgx.Rows) ([]domain.Issue, error) {
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		var issue domain.Issue
		if err := rows.Scan(
			&issue.ID, &issue.Identifier, &issue.Title, &issue.Description,
			&issue.Status, &issue.Priority, &issue.TeamID, &issue.ProjectID,
			&issue.AssigneeID, &issue.CreatorID, &issue.ParentID, &issue.CreatedAt,
		); err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

func (r *IssueRepo) Create(ctx context.Context, issue *domain.Issue) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO issues (identifier, title, description, status, priority, team_id, project_id, assignee_id, creator_id, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, issue.Identifier, issue.Title, issue.Description, issue.Status, issue.Priority,
		issue.TeamID, issue.ProjectID, issue.AssigneeID, issue.CreatorID, issue.ParentID).
		Scan(&issue.ID, &issue.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}
	return nil
}

func (r *IssueRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	return scanIssue(r.pool.QueryRow(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE id = $1`, id))
}

// filterClause builds the WHERE tail for creator-scoped listings.
// Returns the SQL fragment and its positional arguments, starting at $2
// (creator id is always $1).
func filterClause(filters domain.IssueFilters) (string, []any) {
	var clauses []string
	var args []any
	next := func() string { return "$" + strconv.Itoa(len(args)+2) }

	if filters.Status != "" {
		clauses = append(clauses, "status = "+next())
		args = append(args, filters.Status)
	}
	if filters.Priority != nil {
		clauses = append(clauses, "priority = "+next())
		args = append(args, *filters.Priority)
	}
	if filters.TeamID != nil {
		clauses = append(clauses, "team_id = "+next())
		args = append(args, *filters.TeamID)
	}
	if filters.ProjectID != nil {
		clauses = append(clauses, "project_id = "+next())
		args = append(args, *filters.ProjectID)
	}
	if filters.AssigneeID != nil {
		clauses = append(clauses, "assignee_id = "+next())
		args = append(args, *filters.AssigneeID)
	}
	if filters.Search != "" {
		clauses = append(clauses, "(title ILIKE "+next()+" OR description ILIKE "+next()+")")
		pattern := "%" + filters.Search + "%"
		args = append(args, pattern, pattern)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

func (r *IssueRepo) List(ctx context.Context, creatorID uuid.UUID, filters domain.IssueFilters, skip, limit int) ([]domain.Issue, error) {
	clause, args := filterClause(filters)
	query := `SELECT ` + issueColumns + ` FROM issues WHERE creator_id = $1` + clause +
		` ORDER BY created_at DESC OFFSET $` + strconv.Itoa(len(args)+2) +
		` LIMIT $` + strconv.Itoa(len(args)+3)

	queryArgs := append([]any{creatorID}, args...)
	queryArgs = append(queryArgs, skip, limit)

	rows, err := r.pool.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return scanIssues(rows)
}

// ListAll returns every matching issue without pagination, for CSV export.
func (r *IssueRepo) ListAll(ctx context.Context, creatorID uuid.UUID, filters domain.IssueFilters) ([]domain.Issue, error) {
	clause, args := filterClause(filters)
	query := `SELECT ` + issueColumns + ` FROM issues WHERE creator_id = $1` + clause +
		` ORDER BY created_at DESC`

	queryArgs := append([]any{creatorID}, args...)

	rows, err := r.pool.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues for export: %w", err)
	}
	return scanIssues(rows)
}

// Search matches title, description, and identifier across all issues.
func (r *IssueRepo) Search(ctx context.Context, query string, skip, limit int) ([]domain.Issue, error) {
	pattern := "%" + query + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT `+issueColumns+` FROM issues
		WHERE title ILIKE $1 OR description ILIKE $1 OR identifier ILIKE $1
		ORDER BY created_at DESC OFFSET $2 LIMIT $3
	`, pattern, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}
	return scanIssues(rows)
}

func (r *IssueRepo) Stats(ctx context.Context, creatorID uuid.UUID) (*domain.IssueStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, priority, COUNT(*) FROM issues
		WHERE creator_id = $1
		GROUP BY status, priority
	`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load issue stats: %w", err)
	}
	defer rows.Close()

	stats := &domain.IssueStats{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[int]int),
	}
	for rows.Next() {
		var status string
		var priority, count int
		if err := rows.Scan(&status, &priority, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		stats.ByStatus[status] += count
		stats.ByPriority[priority] += count
	}
	return stats, rows.Err()
}

func (r *IssueRepo) Update(ctx context.Context, issue *domain.Issue) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE issues
		SET title = $1, description = $2, status = $3, priority = $4,
		    team_id = $5, project_id = $6, assignee_id = $7, parent_id = $8
		WHERE id = $9
	`, issue.Title, issue.Description, issue.Status, issue.Priority,
		issue.TeamID, issue.ProjectID, issue.AssigneeID, issue.ParentID, issue.ID)
	if err != nil {
		return fmt.Errorf("failed to update issue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (r *IssueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}
