package application

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/domain/repository"
)

// GameService handles per-user save state and the leaderboard.
type GameService struct {
	Repo   repository.GameRepository
	Logger *logrus.Logger

	now func() time.Time
}

func NewGameService(repo repository.GameRepository, logger *logrus.Logger) *GameService {
	return &GameService{Repo: repo, Logger: logger, now: time.Now}
}

// GameProgressPatch enumerates the mutable fields of a progress record.
// Nil means "leave unchanged".
type GameProgressPatch struct {
	Level           *int
	CurrentScore    *int
	HighestScore    *int
	EnemiesDefeated *int
	ChestsCollected *int
	TimePlayed      *float64
	Completed       *bool
	SaveData        *string
}

func (p GameProgressPatch) apply(g *entity.GameProgress) {
	if p.Level != nil {
		g.Level = *p.Level
	}
	if p.CurrentScore != nil {
		g.CurrentScore = *p.CurrentScore
	}
	if p.HighestScore != nil {
		g.HighestScore = *p.HighestScore
	}
	if p.EnemiesDefeated != nil {
		g.EnemiesDefeated = *p.EnemiesDefeated
	}
	if p.ChestsCollected != nil {
		g.ChestsCollected = *p.ChestsCollected
	}
	if p.TimePlayed != nil {
		g.TimePlayed = *p.TimePlayed
	}
	if p.Completed != nil {
		g.Completed = *p.Completed
	}
	if p.SaveData != nil {
		g.SaveData = *p.SaveData
	}
}

// SaveProgress creates the user's progress row on first call and patches it
// afterwards. One row per user.
func (s *GameService) SaveProgress(userID string, patch GameProgressPatch) (*entity.GameProgress, error) {
	existing, err := s.Repo.GetProgress(userID)
	if err == nil {
		patch.apply(existing)
		existing.UpdatedAt = s.now().UTC()
		if err := s.Repo.UpdateProgress(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if err != entity.ErrProgressNotFound {
		return nil, err
	}

	fresh := &entity.GameProgress{UserID: userID, Level: 1}
	patch.apply(fresh)
	if err := s.Repo.CreateProgress(fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// GetProgress returns the user's save state or ErrProgressNotFound.
func (s *GameService) GetProgress(userID string) (*entity.GameProgress, error) {
	return s.Repo.GetProgress(userID)
}

// UpdateProgress patches an existing progress row; missing row is an error.
func (s *GameService) UpdateProgress(userID string, patch GameProgressPatch) (*entity.GameProgress, error) {
	p, err := s.Repo.GetProgress(userID)
	if err != nil {
		return nil, err
	}
	patch.apply(p)
	p.UpdatedAt = s.now().UTC()
	if err := s.Repo.UpdateProgress(p); err != nil {
		return nil, err
	}
	return p, nil
}

type RecordScoreInput struct {
	Score           int
	Level           int
	EnemiesDefeated int
	ChestsCollected int
	TimeTaken       float64
}

// RecordScore appends a finished run to the leaderboard.
func (s *GameService) RecordScore(userID string, in RecordScoreInput) (*entity.GameScore, error) {
	score := &entity.GameScore{
		UserID:          userID,
		Score:           in.Score,
		Level:           in.Level,
		EnemiesDefeated: in.EnemiesDefeated,
		ChestsCollected: in.ChestsCollected,
		TimeTaken:       in.TimeTaken,
	}
	if err := s.Repo.CreateScore(score); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "score": in.Score}).Info("game score recorded")
	return score, nil
}

// MyScores lists the user's scores, best first.
func (s *GameService) MyScores(userID string) ([]*entity.GameScore, error) {
	return s.Repo.ListScoresByUser(userID)
}

// TopScores returns the global leaderboard. Limit defaults to 10, capped at 100.
func (s *GameService) TopScores(limit int) ([]*entity.GameScore, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.Repo.TopScores(limit)
}
