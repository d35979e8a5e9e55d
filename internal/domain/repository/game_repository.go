package repository

import "github.com/2phishy/phishy-backend/internal/domain/entity"

// GameRepository persists the per-user save state and leaderboard scores.
type GameRepository interface {
	GetProgress(userID string) (*entity.GameProgress, error)
	CreateProgress(p *entity.GameProgress) error
	UpdateProgress(p *entity.GameProgress) error
	CreateScore(s *entity.GameScore) error
	ListScoresByUser(userID string) ([]*entity.GameScore, error)
	TopScores(limit int) ([]*entity.GameScore, error)
}
