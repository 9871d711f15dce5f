package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"escolta/internal/lib/logger/sl"
	"escolta/internal/services/auth"
	"escolta/internal/transport/http/dto/request"
	"escolta/internal/transport/http/dto/response"
)

// Login godoc
// @Summary Authenticate admin user
// @Description Verifies the password against the stored bcrypt hash and returns a JWT pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=models.TokenPair}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/auth/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		log.Warn("invalid request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	pair, err := r.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return r.writeError(c, err)
	}

	sess, _ := session.Get("session", c)
	sess.Values["user_id"] = pair.UserID.String()
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Warn("failed to save session", sl.Err(err))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(pair))
}

// Register godoc
// @Summary Register admin user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Account data"
// @Success 201 {object} response.Response{data=object{user_id=string}}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/auth/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(slog.String("op", op))

	var req request.RegisterRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		log.Warn("invalid request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	userID, err := r.AuthService.RegisterNewUser(c.Request().Context(), req.Name, req.Email, req.Password, req.IsAdmin)
	if err != nil {
		if errors.Is(err, auth.ErrUserExist) {
			log.Warn("user already exists", slog.String("email", req.Email))
			return c.JSON(http.StatusConflict, response.ErrUserAlreadyExists)
		}

		log.Error("registration failed", sl.Err(err))
		return r.writeError(c, err)
	}

	log.Info("user registered", slog.String("user_id", userID.String()))

	return c.JSON(http.StatusCreated, response.SuccessResponse(map[string]uuid.UUID{
		"user_id": userID,
	}))
}

// Refresh godoc
// @Summary Rotate token pair
// @Description Exchanges a stored refresh token for a fresh pair. The presented token is invalidated.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response{data=models.TokenPair}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/auth/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	var req request.RefreshRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	pair, err := r.AuthService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		r.log.Info("refresh rejected", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(pair))
}

// Logout godoc
// @Summary Log out
// @Description Revokes every refresh token of the user.
// @Tags auth
// @Param user_id path string true "User UUID" format(uuid)
// @Success 200 {object} response.Response
// @Security ApiKeyAuth
// @Router /api/auth/logout/{user_id} [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "invalid user UUID"))
	}

	if err := r.AuthService.Logout(c.Request().Context(), userID); err != nil {
		r.log.Error("logout failed", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	sess, _ := session.Get("session", c)
	sess.Options.MaxAge = -1
	_ = sess.Save(c.Request(), c.Response())

	return c.JSON(http.StatusOK, response.MessageResponse("logged out"))
}

// IsAdminPermission godoc
// @Summary Check admin status
// @Tags auth
// @Produce json
// @Param user_id path string true "User UUID" format(uuid)
// @Success 200 {object} map[string]bool
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/auth/users/{user_id}/is-admin [get]
func (r *Routers) IsAdminPermission(c echo.Context) error {
	const op = "http.routers.IsAdminPermission"

	log := r.log.With(slog.String("op", op))

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "invalid user UUID"))
	}

	isAdmin, err := r.AuthService.IsAdmin(c.Request().Context(), userID)
	if err != nil {
		log.Error("failed to check admin status", sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{
		"is_admin": isAdmin,
	})
}

// RequestPasswordReset godoc
// @Summary Request a password reset mail
// @Description Always answers 200, an unknown email is not revealed.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.PasswordResetRequest true "Account email"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /api/auth/password-reset [post]
func (r *Routers) RequestPasswordReset(c echo.Context) error {
	const op = "http.routers.RequestPasswordReset"

	var req request.PasswordResetRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.AuthService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		r.log.Error("password reset request failed", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("if the account exists, a reset mail was sent"))
}

// CompletePasswordReset godoc
// @Summary Complete a password reset
// @Description Consumes the one-time code from the reset mail and sets the new password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.PasswordResetComplete true "Reset code and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /api/auth/password-reset/complete [post]
func (r *Routers) CompletePasswordReset(c echo.Context) error {
	const op = "http.routers.CompletePasswordReset"

	var req request.PasswordResetComplete
	if err := r.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.AuthService.CompletePasswordReset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		r.log.Warn("password reset rejected", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("password updated"))
}
