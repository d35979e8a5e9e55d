package entity

import "time"

// GameProgress is the single mutable save state per user.
type GameProgress struct {
	ID              string
	UserID          string
	Level           int
	CurrentScore    int
	HighestScore    int
	EnemiesDefeated int
	ChestsCollected int
	TimePlayed      float64 // seconds
	Completed       bool
	SaveData        string // opaque JSON blob owned by the game client
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// GameScore is one finished run on the leaderboard. Append-only.
type GameScore struct {
	ID              string
	UserID          string
	Score           int
	Level           int
	EnemiesDefeated int
	ChestsCollected int
	TimeTaken       float64 // seconds
	CreatedAt       time.Time
}
