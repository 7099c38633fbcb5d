package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/zeyaddeeb/zeyaddeeb/internal/config"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/validation"
	appmiddleware "github.com/zeyaddeeb/zeyaddeeb/internal/middleware"
	httprouters "github.com/zeyaddeeb/zeyaddeeb/internal/transport/http"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	cfg     config.HTTPConfig
}

func New(
	log *slog.Logger,
	cfg config.HTTPConfig,
	sessCfg config.SessionConfig,
	routers *httprouters.Routers,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = &CustomValidator{validator: validation.New()}

	cookies := sessions.NewCookieStore([]byte(sessCfg.Secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessCfg.MaxAge,
		Secure:   sessCfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowOrigins(cfg.AllowOrigins),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: len(cfg.AllowOrigins) > 0,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, sl.Err(v.Error))
			}

			log.Info("request", attrs...)

			return nil
		},
	}))

	e.Use(appmiddleware.PrometheusMetrics)
	e.Use(session.Middleware(cookies))
	e.Use(routers.SessionLoader)

	mux := http.NewServeMux()
	if cfg.Debug {
		if err := statsviz.Register(mux); err != nil {
			log.Warn("statsviz not registered", sl.Err(err))
		}
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		cfg:     cfg,
	}
}

func allowOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Handler exposes the configured echo instance, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info("starting http server", slog.String("op", op), slog.String("addr", s.cfg.Address()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	srv := &http.Server{
		Addr:         s.cfg.Address(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	if err := s.e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefully: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/healthz", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.e.GET("/sitemap.xml", s.routers.Sitemap)
	s.e.GET("/robots.txt", s.routers.Robots)
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	if s.cfg.Debug {
		debug := s.e.Group("/debug")
		{
			debug.GET("/statsviz/", echo.WrapHandler(s.m))
			debug.GET("/statsviz/*", echo.WrapHandler(s.m))
		}
	}

	api := s.e.Group("/api/v1")
	{
		postsGroup := api.Group("/posts")
		{
			postsGroup.GET("", s.routers.ListPosts)
			postsGroup.GET("/:slug", s.routers.GetPost)
			postsGroup.GET("/:slug/related", s.routers.GetRelatedPosts)
		}

		collectionGroup := api.Group("/collection")
		{
			collectionGroup.GET("", s.routers.ListCollection)
			collectionGroup.GET("/featured", s.routers.FeaturedCollection)
			collectionGroup.GET("/types", s.routers.CollectionTypes)
			collectionGroup.GET("/tags", s.routers.CollectionTags)
			collectionGroup.GET("/:slug", s.routers.GetCollectionItem)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", s.routers.Login)
			authGroup.POST("/logout", s.routers.Logout)
			authGroup.GET("/session", s.routers.GetSession)
		}

		adminGroup := api.Group("/admin")
		{
			adminGroup.GET("/posts", s.routers.AdminListPosts)
			adminGroup.POST("/posts", s.routers.CreatePost)
			adminGroup.GET("/posts/:id", s.routers.AdminGetPost)
			adminGroup.PUT("/posts/:id", s.routers.UpdatePost)
			adminGroup.DELETE("/posts/:id", s.routers.DeletePost)

			adminGroup.GET("/collection", s.routers.AdminListCollection)
			adminGroup.POST("/collection", s.routers.CreateCollectionItem)
			adminGroup.GET("/collection/:id", s.routers.AdminGetCollectionItem)
			adminGroup.PUT("/collection/:id", s.routers.UpdateCollectionItem)
			adminGroup.DELETE("/collection/:id", s.routers.DeleteCollectionItem)
		}
	}
}
