package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeyaddeeb/zeyaddeeb/internal/config"
	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/handlers/slogdiscard"
	"github.com/zeyaddeeb/zeyaddeeb/internal/repository"
	"github.com/zeyaddeeb/zeyaddeeb/internal/repository/memory"
	"github.com/zeyaddeeb/zeyaddeeb/internal/services/auth"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage/cache"
)

func memoryConfig(adminIDs ...string) *config.Config {
	cfg := &config.Config{Env: "local"}
	cfg.Storage.Driver = config.StorageDriverMemory
	cfg.Session.Secret = "session"
	cfg.Auth.TokenSecret = "token"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.AdminIDs = adminIDs
	cfg.Cache.TTL = time.Minute
	cfg.HTTP.Port = "0"
	return cfg
}

func TestOpenStores_Memory(t *testing.T) {
	stores, err := OpenStores(context.Background(), slogdiscard.NewDiscardLogger(), memoryConfig())
	require.NoError(t, err)
	defer stores.Close()

	assert.IsType(t, &memory.Store{}, stores.Posts)
	assert.IsType(t, &repository.CacheTokenRepo{}, stores.Tokens)
	assert.IsType(t, &cache.Memory{}, stores.Cache)
	assert.NoError(t, stores.HealthCheck(context.Background()))
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "sqlite"

	_, err := OpenStores(context.Background(), slogdiscard.NewDiscardLogger(), cfg)
	assert.Error(t, err)
}

func TestNewServices_AdminPolicyFromConfig(t *testing.T) {
	ctx := context.Background()
	log := slogdiscard.NewDiscardLogger()

	stores, err := OpenStores(ctx, log, memoryConfig())
	require.NoError(t, err)

	adminID, err := stores.Users.SaveUser(ctx, models.User{Name: "Admin", Email: "admin@example.com"})
	require.NoError(t, err)

	services, err := NewServices(log, memoryConfig(adminID.String()), stores)
	require.NoError(t, err)

	admin := &models.Session{User: models.User{ID: adminID}}
	stranger := &models.Session{User: models.User{ID: uuid.New()}}
	in := models.PostInput{Title: "Hello", Content: "World"}

	_, err = services.Posts.CreatePost(ctx, stranger, in)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = services.Posts.CreatePost(ctx, admin, in)
	assert.NoError(t, err)

	_, err = NewServices(log, memoryConfig("not-a-uuid"), stores)
	assert.Error(t, err)
}

func TestNew_Memory(t *testing.T) {
	a, err := New(context.Background(), slogdiscard.NewDiscardLogger(), memoryConfig())
	require.NoError(t, err)

	assert.NotNil(t, a.HTTPServer)
	assert.NotNil(t, a.Services.Content)
	assert.NoError(t, a.Stores.Close())
}
