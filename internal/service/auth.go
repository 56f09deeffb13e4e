package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

const defaultTokenTTL = 24 * time.Hour

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

type AuthService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewAuthService(secretKey string) *AuthService {
	return &AuthService{
		secretKey: []byte(secretKey),
		ttl:       defaultTokenTTL,
		now:       time.Now,
	}
}

// GenerateToken signs a session token carrying the user's id and email.
func (that *AuthService) GenerateToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{}
	claims["sub"] = user.ID
	claims["email"] = user.Email
	claims["exp"] = that.now().Add(that.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(that.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ParseToken verifies a token produced by GenerateToken and returns its user.
func (that *AuthService) ParseToken(tokenString string) (*entity.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, token.Header["alg"])
		}

		return that.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperror.ErrUnauthorized)
	}

	userID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil, fmt.Errorf("%w: token has no subject", apperror.ErrUnauthorized)
	}

	return &entity.User{ID: userID, Email: email}, nil
}
