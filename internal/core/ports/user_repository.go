package ports

import (
	"context"

	"github.com/alvearium/accounts-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user records.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, user *domain.User) error
	FindAll(ctx context.Context) ([]*domain.User, error)
	// TopScores returns at most n entries ordered by puntuacion descending,
	// ties broken by ascending id.
	TopScores(ctx context.Context, n int) ([]domain.ScoreEntry, error)
}
