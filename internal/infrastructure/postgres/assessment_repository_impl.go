package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/domain/repository"
)

type AssessmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

const sessionColumns = `id, session_id, user_id, topic, start_time, end_time,
	total_score, total_questions, completed, created_at, updated_at`

func scanSession(row pgx.Row) (*entity.AssessmentSession, error) {
	s := &entity.AssessmentSession{}
	if err := row.Scan(&s.ID, &s.SessionID, &s.UserID, &s.Topic, &s.StartTime, &s.EndTime,
		&s.TotalScore, &s.TotalQuestions, &s.Completed, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *AssessmentRepository) CreateSession(s *entity.AssessmentSession) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO assessment_sessions (session_id, user_id, topic, start_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, s.SessionID, s.UserID, s.Topic, s.StartTime)

	return row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *AssessmentRepository) GetSession(sessionID string) (*entity.AssessmentSession, error) {
	ctx := context.Background()
	return scanSession(r.pool.QueryRow(ctx, `
		SELECT `+sessionColumns+` FROM assessment_sessions WHERE session_id = $1
	`, sessionID))
}

func (r *AssessmentRepository) UpdateSession(s *entity.AssessmentSession) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE assessment_sessions
		SET end_time = $1, total_score = $2, total_questions = $3, completed = $4, updated_at = $5
		WHERE session_id = $6
	`, s.EndTime, s.TotalScore, s.TotalQuestions, s.Completed, s.UpdatedAt, s.SessionID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrSessionNotFound
	}
	return nil
}

func (r *AssessmentRepository) ListSessionsByUser(userID string) ([]*entity.AssessmentSession, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+` FROM assessment_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.AssessmentSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *AssessmentRepository) CreateResult(res *entity.AssessmentResult) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO assessment_results
			(session_id, question_id, user_answer, correct_answer, is_correct, topic, subcategory, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, res.SessionID, res.QuestionID, res.UserAnswer, res.CorrectAnswer,
		res.IsCorrect, res.Topic, res.Subcategory, res.Timestamp)

	return row.Scan(&res.ID, &res.CreatedAt)
}

func (r *AssessmentRepository) ListResultsByUser(userID string) ([]*entity.AssessmentResult, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT ar.id, ar.session_id, ar.question_id, ar.user_answer, ar.correct_answer,
		       ar.is_correct, ar.topic, ar.subcategory, ar.ts, ar.created_at
		FROM assessment_results ar
		JOIN assessment_sessions s ON s.session_id = ar.session_id
		WHERE s.user_id = $1
		ORDER BY ar.ts
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.AssessmentResult
	for rows.Next() {
		res := &entity.AssessmentResult{}
		if err := rows.Scan(&res.ID, &res.SessionID, &res.QuestionID, &res.UserAnswer,
			&res.CorrectAnswer, &res.IsCorrect, &res.Topic, &res.Subcategory,
			&res.Timestamp, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

var _ repository.AssessmentRepository = (*AssessmentRepository)(nil)
