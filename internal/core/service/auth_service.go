package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/posyandu/lansia-health/internal/core/domain"
	"github.com/posyandu/lansia-health/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo        ports.AuthRepository
	credentials *CredentialStore
	tokens      *TokenService
	limiter     *RateLimiter
	tokenTTL    time.Duration
	logger      zerolog.Logger
}

func NewAuthService(
	repo ports.AuthRepository,
	credentials *CredentialStore,
	tokens *TokenService,
	limiter *RateLimiter,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:        repo,
		credentials: credentials,
		tokens:      tokens,
		limiter:     limiter,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password, fullName, role string) (*domain.User, error) {
	if username == "" || password == "" || role == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role != domain.RoleAdmin && role != domain.RoleKader {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.credentials.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("role", role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a session token. The rate-limit
// check runs before the credential verdict so that an exhausted window fails
// with ErrRateLimited regardless of whether the password was right. Unknown
// user, wrong password and inactive account all collapse into
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password, clientAddr string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	userID := ""
	if user != nil {
		userID = user.ID
	}
	if !s.limiter.Allow(ctx, LimitKey(clientAddr, userID)) {
		s.logger.Warn().Str("username", username).Str("client_addr", clientAddr).Msg("login rate limited")
		return "", nil, domain.ErrRateLimited
	}

	if user == nil || !s.credentials.Verify(password, user.PasswordHash) || !user.Active {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", username).Str("role", user.Role).Msg("login succeeded")
	return token, user, nil
}
