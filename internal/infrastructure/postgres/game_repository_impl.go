package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/domain/repository"
)

type GameRepository struct {
	pool *pgxpool.Pool
}

func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{pool: pool}
}

func (r *GameRepository) GetProgress(userID string) (*entity.GameProgress, error) {
	ctx := context.Background()
	p := &entity.GameProgress{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, level, current_score, highest_score, enemies_defeated,
		       chests_collected, time_played, completed, save_data, created_at, updated_at
		FROM game_progress
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&p.ID, &p.UserID, &p.Level, &p.CurrentScore, &p.HighestScore,
		&p.EnemiesDefeated, &p.ChestsCollected, &p.TimePlayed, &p.Completed,
		&p.SaveData, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrProgressNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *GameRepository) CreateProgress(p *entity.GameProgress) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO game_progress
			(user_id, level, current_score, highest_score, enemies_defeated,
			 chests_collected, time_played, completed, save_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Level, p.CurrentScore, p.HighestScore, p.EnemiesDefeated,
		p.ChestsCollected, p.TimePlayed, p.Completed, p.SaveData)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *GameRepository) UpdateProgress(p *entity.GameProgress) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE game_progress
		SET level = $1, current_score = $2, highest_score = $3, enemies_defeated = $4,
		    chests_collected = $5, time_played = $6, completed = $7, save_data = $8,
		    updated_at = $9
		WHERE user_id = $10
	`, p.Level, p.CurrentScore, p.HighestScore, p.EnemiesDefeated, p.ChestsCollected,
		p.TimePlayed, p.Completed, p.SaveData, p.UpdatedAt, p.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrProgressNotFound
	}
	return nil
}

func (r *GameRepository) CreateScore(s *entity.GameScore) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO game_scores
			(user_id, score, level, enemies_defeated, chests_collected, time_taken)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, s.UserID, s.Score, s.Level, s.EnemiesDefeated, s.ChestsCollected, s.TimeTaken)

	return row.Scan(&s.ID, &s.CreatedAt)
}

const scoreColumns = `id, user_id, score, level, enemies_defeated, chests_collected, time_taken, created_at`

func (r *GameRepository) ListScoresByUser(userID string) ([]*entity.GameScore, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+scoreColumns+` FROM game_scores
		WHERE user_id = $1
		ORDER BY score DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScores(rows)
}

func (r *GameRepository) TopScores(limit int) ([]*entity.GameScore, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+scoreColumns+` FROM game_scores
		ORDER BY score DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScores(rows)
}

func collectScores(rows pgx.Rows) ([]*entity.GameScore, error) {
	var out []*entity.GameScore
	for rows.Next() {
		s := &entity.GameScore{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Score, &s.Level, &s.EnemiesDefeated,
			&s.ChestsCollected, &s.TimeTaken, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

var _ repository.GameRepository = (*GameRepository)(nil)
