package storage

import (
	"context"
	"errors"
	"fmt"

	"doodleparty/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (pgr *PostgresRepo) Close() {
	pgr.pool.Close()
}

func wrapDatabaseError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
}

func (pgr *PostgresRepo) SaveResult(ctx context.Context, result domain.DrawingResult) error {
	breakdown := result.Breakdown
	if breakdown == nil {
		breakdown = map[string]int{}
	}

	_, err := pgr.pool.Exec(ctx, `
		INSERT INTO drawing_results
			(id, room_id, prompt, difficulty, score, feedback, breakdown, player_count, fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		result.Id, result.RoomId, result.Prompt, string(result.Difficulty), result.Score,
		result.Feedback, breakdown, result.PlayerCount, result.Fallback, result.CreatedAt,
	)
	if err != nil {
		return wrapDatabaseError(err)
	}
	return nil
}

// RecentResults lists the newest results first.
func (pgr *PostgresRepo) RecentResults(ctx context.Context, limit int) ([]domain.DrawingResult, error) {
	rows, err := pgr.pool.Query(ctx, `
		SELECT id, room_id, prompt, difficulty, score, feedback, breakdown, player_count, fallback, created_at
		FROM drawing_results
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DrawingResult, error) {
		var r domain.DrawingResult
		var difficulty string
		err := row.Scan(&r.Id, &r.RoomId, &r.Prompt, &difficulty, &r.Score, &r.Feedback,
			&r.Breakdown, &r.PlayerCount, &r.Fallback, &r.CreatedAt)
		r.Difficulty = domain.Difficulty(difficulty)
		return r, err
	})
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	return results, nil
}

// GetResult fetches one result by id.
func (pgr *PostgresRepo) GetResult(ctx context.Context, id string) (domain.DrawingResult, error) {
	r := domain.DrawingResult{Id: id}
	var difficulty string

	row := pgr.pool.QueryRow(ctx, `
		SELECT room_id, prompt, difficulty, score, feedback, breakdown, player_count, fallback, created_at
		FROM drawing_results WHERE id = $1`, id)
	err := row.Scan(&r.RoomId, &r.Prompt, &difficulty, &r.Score, &r.Feedback,
		&r.Breakdown, &r.PlayerCount, &r.Fallback, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DrawingResult{}, domain.ErrResultNotFound
		}
		return domain.DrawingResult{}, wrapDatabaseError(err)
	}
	r.Difficulty = domain.Difficulty(difficulty)
	return r, nil
}
