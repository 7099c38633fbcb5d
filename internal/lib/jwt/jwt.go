package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	ErrTokenExpired       = errors.New("token expired")
)

// NewToken signs an HS256 access token for user. The returned id is the
// jti claim and is what the token store keeps for revocation.
func NewToken(user models.User, secret string, duration time.Duration) (token string, id string, err error) {
	id = uuid.NewString()
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   user.ID.String(),
		"email": user.Email,
		"jti":   id,
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	})

	token, err = t.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return token, id, nil
}

// Parse verifies the signature and expiry of token and returns its claims.
func Parse(token, secret string) (models.TokenMeta, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.TokenMeta{}, ErrTokenExpired
		}
		return models.TokenMeta{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return models.TokenMeta{}, ErrInvalidTokenClaims
	}

	rawID, _ := claims["uid"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return models.TokenMeta{}, ErrInvalidTokenClaims
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return models.TokenMeta{}, ErrInvalidTokenClaims
	}

	email, _ := claims["email"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return models.TokenMeta{}, ErrInvalidTokenClaims
	}

	return models.TokenMeta{
		UserID:    userID,
		Email:     email,
		TokenID:   tokenID,
		ExpiresAt: exp.Time,
	}, nil
}
