package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/alvearium/accounts-api/internal/api/metrics"
	"github.com/alvearium/accounts-api/internal/core/domain"
	"github.com/alvearium/accounts-api/internal/core/ports"
)

const (
	accessTokenTTL = 30 * time.Minute
	// A refresh token issued at login lives 1h; one re-minted during a
	// refresh cycle lives 12h. The asymmetry is inherited behaviour and
	// kept on purpose.
	loginRefreshTTL = time.Hour
	renewRefreshTTL = 12 * time.Hour

	leaderboardSize = 10

	loginMessage   = "Login Successful/Completa tu registro"
	refreshMessage = "Refresh token successfully"
)

// UserService orchestrates registration, login, token refresh, lookups,
// deletion and the leaderboard against the repository, profanity filter and
// token service.
type UserService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	filter ports.ProfanityFilter
	cache  ports.ScoreCache // optional, may be nil
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, tokens ports.TokenService, filter ports.ProfanityFilter, cache ports.ScoreCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, filter: filter, cache: cache, logger: logger}
}

// Register creates a new user. The email-existence check and the insert are
// two separate operations; the unique index on email is the backstop for
// concurrent registrations racing on the same address.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		metrics.RegistrationsRejectedTotal.WithLabelValues("duplicate_email").Inc()
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if s.filter.IsProfane(input.Name) {
		metrics.RegistrationsRejectedTotal.WithLabelValues("profane_name").Inc()
		return nil, domain.ErrProfaneName
	}

	user := &domain.User{
		Name:  input.Name,
		Email: input.Email,
		Score: input.Score,
		Role:  input.Role,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.RegistrationsRejectedTotal.WithLabelValues("duplicate_email").Inc()
			return nil, domain.ErrEmailTaken
		}
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Uint("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login issues an access/refresh token pair for an existing email. There is
// no credential check beyond the email lookup; this mirrors the product's
// weak authentication model.
func (s *UserService) Login(ctx context.Context, email string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	claims := ports.TokenClaims{UserID: user.ID, Email: user.Email}

	accessToken, err := s.tokens.IssueAccessToken(claims, accessTokenTTL)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to sign access token")
		return nil, domain.ErrAuthFailure
	}

	refreshToken, err := s.tokens.IssueRefreshToken(claims, loginRefreshTTL)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to sign refresh token")
		return nil, domain.ErrAuthFailure
	}

	metrics.LoginsTotal.Inc()
	return &ports.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Message:      loginMessage,
	}, nil
}

// Refresh verifies a refresh token and re-mints both token classes from its
// decoded claims.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*ports.RefreshResult, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrAuthFailure
	}

	accessToken, err := s.tokens.IssueAccessToken(*claims, accessTokenTTL)
	if err != nil {
		return nil, domain.ErrAuthFailure
	}

	newRefreshToken, err := s.tokens.IssueRefreshToken(*claims, renewRefreshTTL)
	if err != nil {
		return nil, domain.ErrAuthFailure
	}

	metrics.TokenRefreshesTotal.WithLabelValues("ok").Inc()
	return &ports.RefreshResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		Status:       http.StatusOK,
		Message:      refreshMessage,
	}, nil
}

// ListUsers returns every user record, unfiltered and unpaginated.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) DeleteByID(ctx context.Context, id uint) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, user); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info().Uint("user_id", id).Msg("user deleted")
	return nil
}

// TopScores returns up to 10 leaderboard entries ordered by puntuacion
// descending. A cache failure never fails the request; the repository stays
// the source of truth.
func (s *UserService) TopScores(ctx context.Context) ([]domain.ScoreEntry, error) {
	if s.cache != nil {
		entries, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("score cache read failed")
		} else if ok {
			metrics.LeaderboardCacheTotal.WithLabelValues("hit").Inc()
			return entries, nil
		} else {
			metrics.LeaderboardCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	entries, err := s.repo.TopScores(ctx, leaderboardSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve scores")
		return nil, domain.ErrScoresUnavailable
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			s.logger.Warn().Err(err).Msg("score cache write failed")
		}
	}

	return entries, nil
}
