package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"matchly/config"
	"matchly/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "matchly"

// AuthService issues and verifies the bearer tokens handed out at login.
type AuthService struct {
	secret []byte
	ttl    time.Duration
	log    logger.Logger
	now    func() time.Time
}

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(config config.Config) *AuthService {
	return &AuthService{
		secret: []byte(config.JWTSecret),
		ttl:    time.Duration(config.JWTTTLHours) * time.Hour,
		log:    logger.New("AuthService"),
		now:    time.Now,
	}
}

func (as *AuthService) IssueToken(ctx context.Context, userID int) (IssuedToken, error) {
	log := as.log.TraceFromContext(ctx).Function("IssueToken")

	now := as.now()
	expiresAt := now.Add(as.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.secret)
	if err != nil {
		return IssuedToken{}, log.Err("failed to sign token", err, "userID", userID)
	}

	return IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// ValidateToken returns the user id carried by a token. Any failure is
// reported as types.ErrAuthentication.
func (as *AuthService) ValidateToken(ctx context.Context, tokenString string) (int, error) {
	log := as.log.TraceFromContext(ctx).Function("ValidateToken")

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			return as.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(as.now),
	)
	if err != nil || !token.Valid {
		log.Debug("token rejected", "error", err)
		return 0, types.ErrAuthentication
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		log.Debug("token subject is not a user id", "subject", claims.Subject)
		return 0, types.ErrAuthentication
	}

	return userID, nil
}

func (as *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (as *AuthService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
