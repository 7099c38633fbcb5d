package jwt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/jwt"
)

func TestNewTokenAndParse(t *testing.T) {
	user := models.User{ID: uuid.New(), Email: "admin@example.com"}

	token, id, err := jwt.NewToken(user, "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	meta, err := jwt.Parse(token, "secret")
	require.NoError(t, err)

	assert.Equal(t, user.ID, meta.UserID)
	assert.Equal(t, user.Email, meta.Email)
	assert.Equal(t, id, meta.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), meta.ExpiresAt, 5*time.Second)
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := jwt.NewToken(models.User{ID: uuid.New()}, "secret", time.Hour)
	require.NoError(t, err)

	_, err = jwt.Parse(token, "other")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	token, _, err := jwt.NewToken(models.User{ID: uuid.New()}, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = jwt.Parse(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_Garbage(t *testing.T) {
	_, err := jwt.Parse("not-a-token", "secret")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
