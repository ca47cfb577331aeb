package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vaidiasri/linear-backend/internal/domain"
)

// TeamRepo implements domain.TeamRepository backed by PostgreSQL.
type TeamRepo struct {
	pool *pgxpool.Pool
}

func NewTeamRepo(pool *pgxpool.Pool) *TeamRepo {
	return &TeamRepo{pool: pool}
}

func (r *TeamRepo) Create(ctx context.Context, team *domain.Team) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO teams (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, team.Name, team.Description).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *TeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM teams WHERE id = $1`, id).
		Scan(&team.ID, &team.Name, &team.Description, &team.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepo) List(ctx context.Context, skip, limit int) ([]domain.Team, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, created_at FROM teams ORDER BY created_at DESC OFFSET $1 LIMIT $2`,
		skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Description, &team.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *TeamRepo) Update(ctx context.Context, team *domain.Team) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE teams SET name = $1, description = $2 WHERE id = $3`,
		team.Name, team.Description, team.ID)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}
