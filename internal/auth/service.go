package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/user"
)

type UserGetter interface {
	GetByEmail(email string) (*user.User, error)
}

type Service struct {
	users  UserGetter
	tokens TokenGenerator
	logger *slog.Logger
}

func NewService(users UserGetter, tokens TokenGenerator, logger *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Authenticate validates credentials and returns a token pair.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	u, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: unknown email", "email", dto.Email)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: bad password", "user_id", u.ID)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if !u.IsActive {
		s.logger.Warn("login rejected: inactive account", "user_id", u.ID)
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokens(u.Principal())
}

// RefreshTokens validates a refresh token and returns a new token pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	return s.issueTokens(claims.Principal())
}

func (s *Service) PrincipalFromAccessToken(tokenString string) (internal.Principal, error) {
	claims, err := s.tokens.ValidateAccessToken(tokenString)
	if err != nil {
		return internal.Principal{}, err
	}
	return claims.Principal(), nil
}

func (s *Service) issueTokens(p internal.Principal) (AuthTokens, error) {
	accessToken, err := s.tokens.GenerateAccessToken(p)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign access token", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(p)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign refresh token", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
