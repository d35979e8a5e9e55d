package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/domain/repository"
)

type LearningPathRepository struct {
	pool *pgxpool.Pool
}

func NewLearningPathRepository(pool *pgxpool.Pool) *LearningPathRepository {
	return &LearningPathRepository{pool: pool}
}

const pathColumns = `id, user_id, topic, subtopic, priority, score, completed, notes, created_at, updated_at`

func scanPath(row pgx.Row) (*entity.LearningPath, error) {
	p := &entity.LearningPath{}
	var topic, priority string
	if err := row.Scan(&p.ID, &p.UserID, &topic, &p.Subtopic, &priority, &p.Score,
		&p.Completed, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrPathNotFound
		}
		return nil, err
	}
	p.Topic = entity.Topic(topic)
	p.Priority = entity.Priority(priority)
	return p, nil
}

func (r *LearningPathRepository) Create(p *entity.LearningPath) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_learn_path (user_id, topic, subtopic, priority, score, completed, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.UserID, string(p.Topic), p.Subtopic, string(p.Priority), p.Score, p.Completed, p.Notes)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *LearningPathRepository) GetByID(id string) (*entity.LearningPath, error) {
	ctx := context.Background()
	return scanPath(r.pool.QueryRow(ctx, `
		SELECT `+pathColumns+` FROM user_learn_path WHERE id = $1
	`, id))
}

func (r *LearningPathRepository) FindByUserTopicSubtopic(userID string, topic entity.Topic, subtopic string) (*entity.LearningPath, error) {
	ctx := context.Background()
	return scanPath(r.pool.QueryRow(ctx, `
		SELECT `+pathColumns+` FROM user_learn_path
		WHERE user_id = $1 AND topic = $2 AND subtopic = $3
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, string(topic), subtopic))
}

func (r *LearningPathRepository) Update(p *entity.LearningPath) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE user_learn_path
		SET priority = $1, score = $2, completed = $3, notes = $4, updated_at = $5
		WHERE id = $6
	`, string(p.Priority), p.Score, p.Completed, p.Notes, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrPathNotFound
	}
	return nil
}

func (r *LearningPathRepository) ListByUser(userID string) ([]*entity.LearningPath, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+pathColumns+` FROM user_learn_path
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.LearningPath
	for rows.Next() {
		p, err := scanPath(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.LearningPathRepository = (*LearningPathRepository)(nil)
