package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"travel-api/internal/domain"
	"travel-api/internal/repository"
)

// ErrInvalidCredentials cubre identificador desconocido, contraseña incorrecta
// y tokens irresolubles: el cliente nunca distingue entre los tres casos.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService resuelve credenciales o bearer tokens en identidades verificadas.
type AuthService struct {
	logger *zap.Logger
	users  repository.UserRepository
	tokens *TokenService
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// AuthenticateCredentials valida un par (identificador, contraseña) y emite tokens.
// El identificador no está tipado: se intenta email y después teléfono, ambos
// por igualdad exacta.
func (s *AuthService) AuthenticateCredentials(ctx context.Context, identifier, password string) (domain.User, TokenGrant, error) {
	if s.users == nil || s.tokens == nil {
		return domain.User{}, TokenGrant{}, errors.New("auth service not configured")
	}

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return domain.User{}, TokenGrant{}, ErrInvalidCredentials
	}

	user, err := s.lookupIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, TokenGrant{}, ErrInvalidCredentials
		}
		return domain.User{}, TokenGrant{}, err
	}
	if user.HashedPassword == "" || !VerifyPassword(password, user.HashedPassword) {
		return domain.User{}, TokenGrant{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return domain.User{}, TokenGrant{}, err
	}
	user.LastLoginDate = &now

	grant, err := s.tokens.Grant(user.ID)
	if err != nil {
		return domain.User{}, TokenGrant{}, err
	}

	if s.logger != nil {
		s.logger.Info("login", zap.Int64("user_id", user.ID))
	}
	return user, grant, nil
}

// ResolveAccessToken valida un access token y carga la identidad del sub.
// Un usuario borrado después de emitir el token se trata igual que un token malo.
func (s *AuthService) ResolveAccessToken(ctx context.Context, token string) (domain.User, error) {
	if s.users == nil || s.tokens == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	claims, err := s.tokens.ParseAccess(token)
	if err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	userID, err := claims.UserID()
	if err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *AuthService) lookupIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	return s.users.GetByPhone(ctx, identifier)
}
