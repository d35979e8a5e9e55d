package application

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/domain/repository"
)

// LearningPathService owns the learning-path engine: score-derived priorities
// and the lifecycle of per-(user, topic, subtopic) entries.
type LearningPathService struct {
	Repo   repository.LearningPathRepository
	Policy Policy
	Logger *logrus.Logger

	// Upsert controls what happens when a (user, topic, subtopic) tuple is
	// scored again: false appends a new row (score history), true updates
	// the existing entry in place.
	Upsert bool

	now func() time.Time
}

func NewLearningPathService(repo repository.LearningPathRepository, logger *logrus.Logger, upsert bool) *LearningPathService {
	return &LearningPathService{Repo: repo, Logger: logger, Upsert: upsert, now: time.Now}
}

type CreateLearningPathInput struct {
	Topic    entity.Topic
	Subtopic string
	Score    float64
	Notes    string
}

// Create derives the priority from the score and stores a new entry with
// completion not-started. In upsert mode an existing entry for the same
// tuple is rescored instead of duplicated.
func (s *LearningPathService) Create(userID string, in CreateLearningPathInput) (*entity.LearningPath, error) {
	if !in.Topic.Valid() {
		return nil, entity.ErrInvalidTopic
	}
	priority, err := entity.PriorityForScore(in.Score)
	if err != nil {
		return nil, err
	}

	if s.Upsert {
		existing, err := s.Repo.FindByUserTopicSubtopic(userID, in.Topic, in.Subtopic)
		if err == nil {
			existing.Score = in.Score
			existing.Priority = priority
			if in.Notes != "" {
				existing.Notes = in.Notes
			}
			existing.UpdatedAt = s.now().UTC()
			if err := s.Repo.Update(existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
		if err != entity.ErrPathNotFound {
			return nil, err
		}
	}

	p := &entity.LearningPath{
		UserID:    userID,
		Topic:     in.Topic,
		Subtopic:  in.Subtopic,
		Priority:  priority,
		Score:     in.Score,
		Completed: entity.CompletionNotStarted,
		Notes:     in.Notes,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"topic":    in.Topic,
		"subtopic": in.Subtopic,
		"priority": priority,
	}).Info("learning path created")
	return p, nil
}

// UpdateScore rescores an entry and recomputes its priority through the same
// step function used at creation.
func (s *LearningPathService) UpdateScore(pathID string, newScore float64) (*entity.LearningPath, error) {
	priority, err := entity.PriorityForScore(newScore)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.GetByID(pathID)
	if err != nil {
		return nil, err
	}
	p.Score = newScore
	p.Priority = priority
	p.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// MarkCompleted sets the completion ordinal to completed. Score and priority
// are untouched and the call is idempotent: no transition guard.
func (s *LearningPathService) MarkCompleted(pathID string) (*entity.LearningPath, error) {
	p, err := s.Repo.GetByID(pathID)
	if err != nil {
		return nil, err
	}
	p.Completed = entity.CompletionCompleted
	p.UpdatedAt = s.now().UTC()
	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListForUser returns the target user's entries, gated by the viewing policy.
func (s *LearningPathService) ListForUser(actor *entity.User, targetUserID string) ([]*entity.LearningPath, error) {
	if err := s.Policy.CanViewUser(actor, targetUserID); err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(targetUserID)
}
