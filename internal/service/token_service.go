package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService emite y valida tokens JWT firmados con HS256.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// Claims viaja dentro del token: sub numérico serializado, iat, exp y scope.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenGrant es el payload completo que devuelve POST /token.
type TokenGrant struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scope        string    `json:"scope"`
	IssuedAt     time.Time `json:"issued_at"`
	UserID       int64     `json:"user_id"`
}

const (
	ScopeAccess  = "access"
	ScopeRefresh = "refresh"
)

var (
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 300 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Grant emite el par access+refresh para un usuario autenticado.
func (s *TokenService) Grant(userID int64) (TokenGrant, error) {
	if len(s.secret) == 0 {
		return TokenGrant{}, ErrTokenInvalid
	}
	now := time.Now().UTC()
	access, err := s.sign(userID, now, s.accessTTL, ScopeAccess)
	if err != nil {
		return TokenGrant{}, err
	}
	refresh, err := s.sign(userID, now, s.refreshTTL, ScopeRefresh)
	if err != nil {
		return TokenGrant{}, err
	}
	return TokenGrant{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		ExpiresAt:    now.Add(s.accessTTL),
		Scope:        "",
		IssuedAt:     now,
		UserID:       userID,
	}, nil
}

// RefreshGrant cambia un refresh token válido por un par nuevo.
// La verificación es stateless: no hay tabla de revocación.
func (s *TokenService) RefreshGrant(refreshToken string) (TokenGrant, error) {
	claims, err := s.ParseRefresh(refreshToken)
	if err != nil {
		return TokenGrant{}, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return TokenGrant{}, ErrTokenMalformed
	}
	return s.Grant(userID)
}

// ParseAccess valida firma, expiración y scope "access".
func (s *TokenService) ParseAccess(tokenString string) (Claims, error) {
	return s.parseScoped(tokenString, ScopeAccess)
}

// ParseRefresh valida firma, expiración y scope "refresh".
func (s *TokenService) ParseRefresh(tokenString string) (Claims, error) {
	return s.parseScoped(tokenString, ScopeRefresh)
}

// UserID decodifica el claim sub como id numérico.
func (c Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Subject), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrTokenMalformed
	}
	return id, nil
}

func (s *TokenService) sign(userID int64, now time.Time, ttl time.Duration, scope string) (string, error) {
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if scope == ScopeRefresh {
		claims.ID = uuid.NewString()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) parseScoped(tokenString, scope string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrTokenMalformed
	}
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrTokenMalformed
		default:
			return Claims{}, ErrTokenInvalid
		}
	}
	if _, err := claims.UserID(); err != nil {
		return Claims{}, ErrTokenMalformed
	}
	if claims.Scope != scope {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}
