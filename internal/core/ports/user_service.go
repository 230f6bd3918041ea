package ports

import (
	"context"

	"github.com/alvearium/accounts-api/internal/core/domain"
)

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	Name  string
	Email string
	Score float64
	Role  string
}

// LoginResult is the token pair issued on a successful login.
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Message      string `json:"message"`
}

// RefreshResult is the re-minted token pair returned by a refresh cycle.
type RefreshResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Status       int    `json:"status"`
	Message      string `json:"message"`
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	DeleteByID(ctx context.Context, id uint) error
	TopScores(ctx context.Context) ([]domain.ScoreEntry, error)
}

// ProfanityFilter screens free-text input against a static wordlist. It is a
// best-effort heuristic, not a security boundary.
type ProfanityFilter interface {
	IsProfane(text string) bool
}

// ScoreCache is an optional read-through cache for the leaderboard. A miss is
// reported via the bool, not an error; errors mean the cache itself failed.
type ScoreCache interface {
	Get(ctx context.Context) ([]domain.ScoreEntry, bool, error)
	Set(ctx context.Context, entries []domain.ScoreEntry) error
}
