package application

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/internal/domain/repository"
)

// AssessmentService manages quiz session lifecycle and aggregate statistics.
// A session is Open from StartSession until EndSession; nothing transitions
// out of Closed. Multiple Open sessions per user/topic are allowed.
type AssessmentService struct {
	Repo   repository.AssessmentRepository
	Policy Policy
	Logger *logrus.Logger

	now func() time.Time
}

func NewAssessmentService(repo repository.AssessmentRepository, logger *logrus.Logger) *AssessmentService {
	return &AssessmentService{Repo: repo, Logger: logger, now: time.Now}
}

// StartSession opens a new session for the user on the given topic.
func (s *AssessmentService) StartSession(userID, topic string, startTime time.Time) (*entity.AssessmentSession, error) {
	sess := &entity.AssessmentSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Topic:     topic,
		StartTime: startTime,
	}
	if err := s.Repo.CreateSession(sess); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"session_id": sess.SessionID,
		"topic":      topic,
	}).Info("assessment session started")
	return sess, nil
}

type SubmitResultInput struct {
	QuestionID    string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
	Topic         string
	Subcategory   string
	Timestamp     time.Time
}

// SubmitResult appends one answered question to the session. The session must
// exist and belong to the submitting user; its Open/Closed state is not
// checked, matching the recorder's lenient contract.
func (s *AssessmentService) SubmitResult(userID, sessionID string, in SubmitResultInput) (*entity.AssessmentResult, error) {
	sess, err := s.Repo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, entity.ErrSessionNotFound
	}

	res := &entity.AssessmentResult{
		SessionID:     sessionID,
		QuestionID:    in.QuestionID,
		UserAnswer:    in.UserAnswer,
		CorrectAnswer: in.CorrectAnswer,
		IsCorrect:     in.IsCorrect,
		Topic:         in.Topic,
		Subcategory:   in.Subcategory,
		Timestamp:     in.Timestamp,
	}
	if err := s.Repo.CreateResult(res); err != nil {
		return nil, err
	}
	return res, nil
}

// EndSession closes the session and freezes its aggregates.
func (s *AssessmentService) EndSession(userID, sessionID string, endTime time.Time, totalScore, totalQuestions int) (*entity.AssessmentSession, error) {
	sess, err := s.Repo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, entity.ErrSessionNotFound
	}

	sess.EndTime = &endTime
	sess.TotalScore = totalScore
	sess.TotalQuestions = totalQuestions
	sess.Completed = true
	sess.UpdatedAt = s.now().UTC()
	if err := s.Repo.UpdateSession(sess); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"session_id": sessionID,
		"score":      totalScore,
	}).Info("assessment session ended")
	return sess, nil
}

// History returns the target user's sessions newest-first, policy-gated.
func (s *AssessmentService) History(actor *entity.User, targetUserID string) ([]*entity.AssessmentSession, error) {
	if err := s.Policy.CanViewUser(actor, targetUserID); err != nil {
		return nil, err
	}
	return s.Repo.ListSessionsByUser(targetUserID)
}

// Stats aggregates the target user's completed sessions. Correct answers are
// counted across results of all sessions, not just completed ones.
func (s *AssessmentService) Stats(actor *entity.User, targetUserID string) (*entity.AssessmentStats, error) {
	if err := s.Policy.CanViewUser(actor, targetUserID); err != nil {
		return nil, err
	}

	sessions, err := s.Repo.ListSessionsByUser(targetUserID)
	if err != nil {
		return nil, err
	}

	stats := &entity.AssessmentStats{TopicsComplete: []string{}}
	totalScore := 0
	topics := map[string]bool{}
	for _, sess := range sessions {
		if !sess.Completed {
			continue
		}
		stats.TotalSessions++
		totalScore += sess.TotalScore
		stats.TotalQuestions += sess.TotalQuestions
		if !topics[sess.Topic] {
			topics[sess.Topic] = true
			stats.TopicsComplete = append(stats.TopicsComplete, sess.Topic)
		}
	}
	if stats.TotalSessions > 0 {
		avg := float64(totalScore) / float64(stats.TotalSessions)
		stats.AverageScore = math.Round(avg*100) / 100
	}

	results, err := s.Repo.ListResultsByUser(targetUserID)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.IsCorrect {
			stats.CorrectAnswers++
		}
	}
	return stats, nil
}
