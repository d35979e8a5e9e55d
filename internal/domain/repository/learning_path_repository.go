package repository

import "github.com/2phishy/phishy-backend/internal/domain/entity"

// LearningPathRepository persists per-user learning path entries.
type LearningPathRepository interface {
	Create(p *entity.LearningPath) error
	GetByID(id string) (*entity.LearningPath, error)
	// FindByUserTopicSubtopic returns the existing entry for the tuple, or
	// entity.ErrPathNotFound. Used only when upsert mode is enabled.
	FindByUserTopicSubtopic(userID string, topic entity.Topic, subtopic string) (*entity.LearningPath, error)
	Update(p *entity.LearningPath) error
	ListByUser(userID string) ([]*entity.LearningPath, error)
}
