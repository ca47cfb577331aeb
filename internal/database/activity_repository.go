package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vaidiasri/linear-backend/internal/domain"
)

// ActivityRepo implements domain.ActivityRepository backed by PostgreSQL.
type ActivityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

func (r *ActivityRepo) Create(ctx context.Context, activity *domain.Activity) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO activities (issue_id, user_id, attribute, old_value, new_value)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, activity.IssueID, activity.UserID, activity.Attribute, activity.OldValue, activity.NewValue).
		Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) ListByIssue(ctx context.Context, issueID uuid.UUID, skip, limit int) ([]domain.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, issue_id, user_id, attribute, old_value, new_value, created_at FROM activities
		WHERE issue_id = $1
		ORDER BY created_at DESC OFFSET $2 LIMIT $3
	`, issueID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(
			&activity.ID, &activity.IssueID, &activity.UserID,
			&activity.Attribute, &activity.OldValue, &activity.NewValue, &activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}
