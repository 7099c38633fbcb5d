package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpapp "github.com/zeyaddeeb/zeyaddeeb/internal/app/http"
	"github.com/zeyaddeeb/zeyaddeeb/internal/config"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/markdown"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/validation"
	"github.com/zeyaddeeb/zeyaddeeb/internal/repository"
	"github.com/zeyaddeeb/zeyaddeeb/internal/repository/memory"
	"github.com/zeyaddeeb/zeyaddeeb/internal/services/auth"
	collection "github.com/zeyaddeeb/zeyaddeeb/internal/services/collection_service"
	content "github.com/zeyaddeeb/zeyaddeeb/internal/services/content_service"
	posts "github.com/zeyaddeeb/zeyaddeeb/internal/services/post_service"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage/cache"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage/postgresql"
	redisapp "github.com/zeyaddeeb/zeyaddeeb/internal/storage/redis"
	httprouters "github.com/zeyaddeeb/zeyaddeeb/internal/transport/http"
)

// Stores holds the backends selected by the config.
type Stores struct {
	Users      repository.UserRepository
	Posts      repository.PostRepository
	Collection repository.CollectionRepository
	Tokens     repository.TokenRepository
	Cache      cache.Cache

	health  []func(ctx context.Context) error
	closers []func() error
}

// HealthCheck pings every networked backend.
func (s *Stores) HealthCheck(ctx context.Context) error {
	for _, check := range s.health {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// OpenStores connects the content store, token store and taxonomy cache.
func OpenStores(ctx context.Context, log *slog.Logger, cfg *config.Config) (*Stores, error) {
	const op = "app.OpenStores"

	s := &Stores{}

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pg, err := postgresql.New(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.closers = append(s.closers, func() error { pg.Stop(); return nil })
		s.health = append(s.health, pg.HealthCheck)

		if cfg.Storage.AutoMigrate {
			if err := pg.Migrate(ctx); err != nil {
				_ = s.Close()
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			log.Info("database migrated")
		}

		repo := repository.NewRepository(pg.Pool())
		s.Users, s.Posts, s.Collection = repo.Users, repo.Posts, repo.Collection
	case config.StorageDriverMemory:
		store := memory.New()
		s.Users, s.Posts, s.Collection = store, store, store
		log.Warn("using in-memory storage, content is lost on restart")
	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Storage.Driver)
	}

	if cfg.Redis.RedisAddr != "" {
		client := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		s.closers = append(s.closers, client.Close)
		s.health = append(s.health, client.HealthCheck)

		if err := client.HealthCheck(ctx); err != nil {
			log.Warn("redis is not reachable yet", sl.Err(err))
		}

		s.Tokens = repository.NewRedisTokenRepo(client)
		s.Cache = cache.NewRedis(client, cfg.Cache.TTL)
	} else {
		s.Tokens = repository.NewCacheTokenRepo()
		s.Cache = cache.NewMemory(cfg.Cache.TTL)
	}

	return s, nil
}

// Services are the application services built on top of the stores.
type Services struct {
	Auth       *auth.Auth
	Content    *content.ContentService
	Posts      *posts.PostService
	Collection *collection.CollectionService
	Markdown   *markdown.Renderer
}

func NewServices(log *slog.Logger, cfg *config.Config, s *Stores) (*Services, error) {
	const op = "app.NewServices"

	adminIDs, err := cfg.Auth.AdminUUIDs()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(adminIDs) == 0 {
		log.Warn("no admin ids configured, every write will be forbidden")
	}

	policy := auth.NewAdminPolicy(adminIDs...)
	validate := validation.New()
	md := markdown.New()

	contentSvc := content.NewContentService(log, s.Posts, s.Collection, s.Cache)

	return &Services{
		Auth:       auth.New(log, s.Users, s.Users, s.Tokens, cfg.Auth.TokenSecret, cfg.Auth.TokenTTL),
		Content:    contentSvc,
		Posts:      posts.NewPostService(log, s.Posts, policy, validate, md),
		Collection: collection.NewCollectionService(log, s.Collection, policy, validate, contentSvc),
		Markdown:   md,
	}, nil
}

type App struct {
	HTTPServer *httpapp.Server
	Stores     *Stores
	Services   *Services
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	stores, err := OpenStores(ctx, log, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	services, err := NewServices(log, cfg, stores)
	if err != nil {
		_ = stores.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	routers := httprouters.NewRouter(log,
		services.Content,
		services.Posts,
		services.Collection,
		services.Auth,
		httprouters.Options{
			BaseURL:        cfg.Site.BaseURL,
			RequestTimeout: cfg.HTTP.RequestTimeout,
			Markdown:       services.Markdown,
			HealthCheck:    stores.HealthCheck,
		},
	)

	server := httpapp.New(log, cfg.HTTP, cfg.Session, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		Stores:     stores,
		Services:   services,
	}, nil
}

// Stop shuts the server down and then releases the stores.
func (a *App) Stop() error {
	return errors.Join(a.HTTPServer.Stop(), a.Stores.Close())
}
