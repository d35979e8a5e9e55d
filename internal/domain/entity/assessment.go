package entity

import "time"

// AssessmentSession is a bounded quiz-taking interval. A session is Open from
// StartSession until EndSession closes it; aggregates are frozen at close and
// the session never reopens.
type AssessmentSession struct {
	ID             string
	SessionID      string // public identifier carried by clients
	UserID         string
	Topic          string
	StartTime      time.Time
	EndTime        *time.Time
	TotalScore     int
	TotalQuestions int
	Completed      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AssessmentResult records one answered question within a session. Append-only.
type AssessmentResult struct {
	ID            string
	SessionID     string
	QuestionID    string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
	Topic         string
	Subcategory   string
	Timestamp     time.Time
	CreatedAt     time.Time
}

// AssessmentStats aggregates a user's completed sessions. CorrectAnswers is
// counted over results of all sessions, completed or not.
type AssessmentStats struct {
	TotalSessions  int      `json:"total_sessions"`
	AverageScore   float64  `json:"average_score"`
	TotalQuestions int      `json:"total_questions"`
	CorrectAnswers int      `json:"correct_answers"`
	TopicsComplete []string `json:"topics_completed"`
}
