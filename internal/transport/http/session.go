package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/logger/sl"
	"github.com/zeyaddeeb/zeyaddeeb/internal/services/auth"
	"github.com/zeyaddeeb/zeyaddeeb/internal/transport/http/dto"
	"github.com/zeyaddeeb/zeyaddeeb/internal/transport/http/dto/request"
	"github.com/zeyaddeeb/zeyaddeeb/internal/transport/http/dto/response"
)

const (
	SessionName       = "session"
	sessionUserKey    = "user_id"
	contextSessionKey = "auth_session"
)

// SessionLoader resolves the caller from a bearer token or the cookie
// session and stores it on the context. Requests without valid
// credentials continue anonymously.
func (r *Routers) SessionLoader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "http.routers.SessionLoader"

		ctx := c.Request().Context()

		var (
			sess *models.Session
			err  error
		)

		if token, ok := bearerToken(c); ok {
			sess, err = r.AuthService.SessionFromToken(ctx, token)
		} else if userID, ok := cookieUserID(c); ok {
			sess, err = r.AuthService.GetSession(ctx, userID)
		}

		if err != nil {
			r.log.Debug("ignoring credentials", slog.String("op", op), sl.Err(err))
			sess = nil
		}
		if sess != nil {
			c.Set(contextSessionKey, sess)
		}

		return next(c)
	}
}

func currentSession(c echo.Context) *models.Session {
	sess, _ := c.Get(contextSessionKey).(*models.Session)
	return sess
}

func bearerToken(c echo.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

func cookieUserID(c echo.Context) (uuid.UUID, bool) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return uuid.Nil, false
	}

	raw, ok := sess.Values[sessionUserKey].(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// Login godoc
// @Summary Sign in
// @Description Checks the admin credentials, starts a cookie session and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=dto.LoginResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	ctx, cancel := r.requestContext(c)
	defer cancel()

	token, user, err := r.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}
		return r.writeError(c, log, err, resource{})
	}

	meta, err := r.AuthService.ParseToken(ctx, token)
	if err != nil {
		return r.writeError(c, log, err, resource{})
	}

	if sess, err := session.Get(SessionName, c); err == nil {
		sess.Values[sessionUserKey] = user.ID.String()
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			log.Warn("failed to save cookie session", sl.Err(err))
		}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   meta.ExpiresAt,
		User:        dto.NewUserResponse(user),
	}))
}

// Logout godoc
// @Summary Sign out
// @Description Revokes the bearer token, if any, and clears the cookie session.
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(
		slog.String("op", op),
	)

	if token, ok := bearerToken(c); ok {
		ctx, cancel := r.requestContext(c)
		defer cancel()

		if err := r.AuthService.Logout(ctx, token); err != nil {
			return r.writeError(c, log, err, resource{})
		}
	}

	if sess, err := session.Get(SessionName, c); err == nil {
		delete(sess.Values, sessionUserKey)
		sess.Options.MaxAge = -1
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			log.Warn("failed to clear cookie session", sl.Err(err))
		}
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "signed out"})
}

// GetSession godoc
// @Summary Current session
// @Description Returns the signed-in user, or null data for anonymous callers.
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response{data=dto.SessionResponse}
// @Router /api/v1/auth/session [get]
func (r *Routers) GetSession(c echo.Context) error {
	sess := currentSession(c)
	if sess == nil {
		return c.JSON(http.StatusOK, response.SuccessResponse(nil))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.SessionResponse{
		User: dto.NewUserResponse(sess.User),
	}))
}
