package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("user already exists with this email")
var ErrProfaneName = errors.New("name contains inappropriate language")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrAuthFailure = errors.New("authentication failed")
var ErrScoresUnavailable = errors.New("could not retrieve scores")

// User is the persistent account record. Records are immutable after
// creation except for deletion; puntuacion only feeds the leaderboard.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Score     float64   `json:"puntuacion" gorm:"column:puntuacion"`
	Role      string    `json:"rol" gorm:"column:rol;size:50"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the GORM table name for User.
func (User) TableName() string {
	return "users"
}

// ScoreEntry is a single leaderboard row.
type ScoreEntry struct {
	Name  string  `json:"name"`
	Score float64 `json:"puntuacion" gorm:"column:puntuacion"`
}
