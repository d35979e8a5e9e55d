package repository

import "github.com/2phishy/phishy-backend/internal/domain/entity"

// AssessmentRepository persists quiz sessions and their per-question results.
// Sessions are addressed by their public SessionID, not the row id.
type AssessmentRepository interface {
	CreateSession(s *entity.AssessmentSession) error
	GetSession(sessionID string) (*entity.AssessmentSession, error)
	UpdateSession(s *entity.AssessmentSession) error
	ListSessionsByUser(userID string) ([]*entity.AssessmentSession, error)
	CreateResult(r *entity.AssessmentResult) error
	// ListResultsByUser returns results across all of the user's sessions,
	// joined through the session table.
	ListResultsByUser(userID string) ([]*entity.AssessmentResult, error)
}
