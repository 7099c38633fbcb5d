package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/jwt"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExist          = errors.New("user already exist")
	ErrInvalidToken       = errors.New("invalid token")
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.3 --name=UserSaver|UserProvider|TokenStore
type UserSaver interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
}

type UserProvider interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

type TokenStore interface {
	SaveToken(ctx context.Context, userID, tokenID string, exp time.Duration) error
	TokenExists(ctx context.Context, userID, tokenID string) (bool, error)
	DeleteToken(ctx context.Context, userID, tokenID string) error
}

type Auth struct {
	log         *slog.Logger
	usrSaver    UserSaver
	usrProvider UserProvider
	tokens      TokenStore
	secret      string
	tokenTTL    time.Duration
}

func New(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	tokens TokenStore,
	secret string,
	tokenTTL time.Duration,
) *Auth {
	return &Auth{
		log:         log,
		usrSaver:    userSaver,
		usrProvider: userProvider,
		tokens:      tokens,
		secret:      secret,
		tokenTTL:    tokenTTL,
	}
}

// Login checks the password and issues an access token that stays valid
// until it expires or Logout revokes it.
func (a *Auth) Login(ctx context.Context, email, password string) (string, models.User, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login user")

	user, err := a.usrProvider.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))

			return "", models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))

		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return "", models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, tokenID, err := jwt.NewToken(user, a.secret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := a.tokens.SaveToken(ctx, user.ID.String(), tokenID, a.tokenTTL); err != nil {
		log.Error("failed to store token", sl.Err(err))

		return "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully")

	return token, user, nil
}

// Logout revokes token. Tokens that are already invalid are ignored.
func (a *Auth) Logout(ctx context.Context, token string) error {
	const op = "auth.Logout"

	meta, err := jwt.Parse(token, a.secret)
	if err != nil {
		return nil
	}

	if err := a.tokens.DeleteToken(ctx, meta.UserID.String(), meta.TokenID); err != nil {
		a.log.Error("failed to revoke token", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ParseToken verifies token and checks that it has not been revoked.
func (a *Auth) ParseToken(ctx context.Context, token string) (models.TokenMeta, error) {
	const op = "auth.ParseToken"

	meta, err := jwt.Parse(token, a.secret)
	if err != nil {
		return models.TokenMeta{}, fmt.Errorf("%s: %w: %v", op, ErrInvalidToken, err)
	}

	ok, err := a.tokens.TokenExists(ctx, meta.UserID.String(), meta.TokenID)
	if err != nil {
		return models.TokenMeta{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return models.TokenMeta{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return meta, nil
}

// GetSession resolves a user id carried by a cookie or token. It returns
// nil, nil when the user no longer exists.
func (a *Auth) GetSession(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	const op = "auth.GetSession"

	if userID == uuid.Nil {
		return nil, nil
	}

	user, err := a.usrProvider.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Session{User: user}, nil
}

// SessionFromToken combines ParseToken and GetSession.
func (a *Auth) SessionFromToken(ctx context.Context, token string) (*models.Session, error) {
	meta, err := a.ParseToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return a.GetSession(ctx, meta.UserID)
}

func (a *Auth) RegisterNewUser(ctx context.Context, name, email, pass string) (uuid.UUID, error) {
	const op = "auth.RegisterNewUser"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("register user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.usrSaver.SaveUser(ctx, models.User{
		Name:     name,
		Email:    normalizeEmail(email),
		Password: passHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exist", sl.Err(err))

			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExist)
		}

		log.Error("failed to save user", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered")

	return id, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
