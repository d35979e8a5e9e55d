package entity

import "time"

// Topic is one of the phishing-awareness curriculum areas.
type Topic string

const (
	TopicSafeBrowsing      Topic = "Safe Browsing Practices"
	TopicPasswordSecurity  Topic = "Password Security"
	TopicMalware           Topic = "Malware"
	TopicSocialEngineering Topic = "Social Engineering"
	TopicIncidentResponse  Topic = "Incident Response"
)

func (t Topic) Valid() bool {
	switch t {
	case TopicSafeBrowsing, TopicPasswordSecurity, TopicMalware,
		TopicSocialEngineering, TopicIncidentResponse:
		return true
	}
	return false
}

func ParseTopic(s string) (Topic, error) {
	t := Topic(s)
	if !t.Valid() {
		return "", ErrInvalidTopic
	}
	return t, nil
}

// Priority tells how urgently a subtopic needs review. It is always derived
// from the entry's score via PriorityForScore, never set independently.
type Priority string

const (
	PriorityHigh     Priority = "high"
	PriorityModerate Priority = "moderate"
	PriorityLow      Priority = "low"
)

// Completion states for a learning path entry.
const (
	CompletionNotStarted = 0
	CompletionInProgress = 1
	CompletionCompleted  = 2
)

// PriorityForScore maps a normalized quiz score onto a priority tier:
//
//	[0, 0.45]    -> high
//	(0.45, 0.85] -> moderate
//	(0.85, 1]    -> low
//
// Scores outside [0, 1] are a contract violation, not clamped.
func PriorityForScore(score float64) (Priority, error) {
	if score < 0 || score > 1 {
		return "", ErrScoreOutOfRange
	}
	switch {
	case score <= 0.45:
		return PriorityHigh, nil
	case score <= 0.85:
		return PriorityModerate, nil
	default:
		return PriorityLow, nil
	}
}

// LearningPath tracks one (user, topic, subtopic) tuple with a score-derived
// priority and a completion ordinal.
type LearningPath struct {
	ID        string
	UserID    string
	Topic     Topic
	Subtopic  string
	Priority  Priority
	Score     float64
	Completed int
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
