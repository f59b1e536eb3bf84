package service

import (
	"errors"
	"pokerclock/internal/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles host authentication
type AuthService struct {
	hostUsername string
	hostPassword string
	jwtSecret    []byte
	tokenTTL     time.Duration
}

// NewAuthService creates a new auth service. A zero ttl issues tokens that
// never expire.
func NewAuthService(username, password, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		hostUsername: username,
		hostPassword: password,
		jwtSecret:    []byte(secret),
		tokenTTL:     ttl,
	}
}

// Login validates credentials and returns a signed host token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.hostUsername || password != s.hostPassword {
		return nil, ErrInvalidCredentials
	}

	// Stable per username so structures and tables survive a new login
	hostID := "host_" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(username)).String()[:8]

	now := time.Now()
	claims := &model.HostClaims{
		HostID: hostID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:  tokenString,
		HostID: hostID,
	}, nil
}

// ValidateHostToken validates a host JWT and returns claims
func (s *AuthService) ValidateHostToken(tokenString string) (*model.HostClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.HostClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.HostClaims)
	if !ok || !token.Valid || claims.HostID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
