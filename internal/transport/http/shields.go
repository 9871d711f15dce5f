package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"escolta/internal/lib/logger/sl"
	"escolta/internal/transport/http/dto"
	"escolta/internal/transport/http/dto/response"
)

// ListShields godoc
// @Summary List shields
// @Description Returns every shield in creation order.
// @Tags shields
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Shield}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/admin/shields [get]
func (r *Routers) ListShields(c echo.Context) error {
	const op = "http.routers.ListShields"

	shields, err := r.ShieldService.List(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list shields", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(shields))
}

// GetShield godoc
// @Summary Get shield
// @Tags shields
// @Produce json
// @Param id path string true "Shield UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.Shield}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/shields/{id} [get]
func (r *Routers) GetShield(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	shield, err := r.ShieldService.GetByID(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(shield))
}

// CreateShield godoc
// @Summary Create shield from multipart form
// @Description Creates a shield with an optional image file. When isMainShield is set, the flag is cleared on every other shield in the same transaction.
// @Tags shields
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param symbolism formData string false "Symbolism text"
// @Param isMainShield formData boolean false "Main shield flag"
// @Param image formData file false "Image file (max 10MB)"
// @Success 201 {object} response.Response{data=models.Shield}
// @Failure 400 {object} response.ErrorResponse
// @Failure 413 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/shields [post]
func (r *Routers) CreateShield(c echo.Context) error {
	const op = "http.routers.CreateShield"

	log := r.log.With(slog.String("op", op))

	var req dto.CreateShieldRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		log.Warn("invalid request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	shield, err := r.ShieldService.Create(c.Request().Context(), req, formFile(c, "image"))
	if err != nil {
		log.Error("failed to create shield", sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(shield))
}

// CreateShieldWithURL godoc
// @Summary Create shield from an already uploaded object URL
// @Description JSON variant of shield creation. The imageUrl must point into the configured bucket, any other URL is rejected.
// @Tags shields
// @Accept json
// @Produce json
// @Param request body dto.CreateShieldRequest true "Shield data"
// @Success 201 {object} response.Response{data=models.Shield}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/shields/with-url [post]
func (r *Routers) CreateShieldWithURL(c echo.Context) error {
	const op = "http.routers.CreateShieldWithURL"

	log := r.log.With(slog.String("op", op))

	var req dto.CreateShieldRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		log.Warn("invalid request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	shield, err := r.ShieldService.Create(c.Request().Context(), req, nil)
	if err != nil {
		log.Error("failed to create shield", sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(shield))
}

// UpdateShield godoc
// @Summary Update shield
// @Description Partial update. A new image file or bucket URL replaces the old object, which is removed afterwards.
// @Tags shields
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Shield UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.Shield}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/shields/{id} [put]
func (r *Routers) UpdateShield(c echo.Context) error {
	const op = "http.routers.UpdateShield"

	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	var req dto.UpdateShieldRequest
	if err := c.Bind(&req); err != nil {
		r.log.Warn("invalid request", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	shield, err := r.ShieldService.Update(c.Request().Context(), id, req, formFile(c, "image"))
	if err != nil {
		r.log.Error("failed to update shield", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(shield))
}

// DeleteShield godoc
// @Summary Delete shield
// @Description Removes the row, then deletes the stored image best-effort.
// @Tags shields
// @Param id path string true "Shield UUID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/shields/{id} [delete]
func (r *Routers) DeleteShield(c echo.Context) error {
	const op = "http.routers.DeleteShield"

	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	if err := r.ShieldService.Delete(c.Request().Context(), id); err != nil {
		r.log.Error("failed to delete shield", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SetMainShield godoc
// @Summary Mark shield as the main one
// @Description Atomically clears the flag on all other shields and sets it on the given one.
// @Tags shields
// @Param id path string true "Shield UUID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/shields/{id}/set-main [put]
func (r *Routers) SetMainShield(c echo.Context) error {
	const op = "http.routers.SetMainShield"

	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	if err := r.ShieldService.SetMain(c.Request().Context(), id); err != nil {
		r.log.Error("failed to set main shield", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("main shield updated"))
}

// ListShieldValues godoc
// @Summary List shield values
// @Tags shield-values
// @Produce json
// @Success 200 {object} response.Response{data=[]models.ShieldValue}
// @Router /api/admin/shield-values [get]
func (r *Routers) ListShieldValues(c echo.Context) error {
	const op = "http.routers.ListShieldValues"

	values, err := r.ShieldService.ListValues(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list shield values", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(values))
}

// CreateShieldValue godoc
// @Summary Create shield value
// @Tags shield-values
// @Accept json
// @Produce json
// @Param request body dto.CreateShieldValueRequest true "Value data"
// @Success 201 {object} response.Response{data=models.ShieldValue}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/shield-values [post]
func (r *Routers) CreateShieldValue(c echo.Context) error {
	const op = "http.routers.CreateShieldValue"

	var req dto.CreateShieldValueRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		r.log.Warn("invalid request", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	value, err := r.ShieldService.CreateValue(c.Request().Context(), req)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(value))
}

// GetShieldValue godoc
// @Summary Get shield value
// @Tags shield-values
// @Produce json
// @Param id path string true "Value UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.ShieldValue}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/shield-values/{id} [get]
func (r *Routers) GetShieldValue(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	value, err := r.ShieldService.GetValue(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(value))
}

// UpdateShieldValue godoc
// @Summary Update shield value
// @Tags shield-values
// @Accept json
// @Produce json
// @Param id path string true "Value UUID" format(uuid)
// @Param request body dto.UpdateShieldValueRequest true "Fields to change"
// @Success 200 {object} response.Response{data=models.ShieldValue}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/shield-values/{id} [put]
func (r *Routers) UpdateShieldValue(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	var req dto.UpdateShieldValueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	value, err := r.ShieldService.UpdateValue(c.Request().Context(), id, req)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(value))
}

// DeleteShieldValue godoc
// @Summary Delete shield value
// @Tags shield-values
// @Param id path string true "Value UUID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/shield-values/{id} [delete]
func (r *Routers) DeleteShieldValue(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	if err := r.ShieldService.DeleteValue(c.Request().Context(), id); err != nil {
		return r.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderShieldValues godoc
// @Summary Reorder shield values
// @Description Applies the given display orders one row at a time. A partial failure leaves already updated rows in place.
// @Tags shield-values
// @Accept json
// @Produce json
// @Param request body dto.ReorderRequest true "Ordered id/displayOrder pairs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/shield-values/reorder [post]
func (r *Routers) ReorderShieldValues(c echo.Context) error {
	const op = "http.routers.ReorderShieldValues"

	var req dto.ReorderRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		r.log.Warn("invalid request", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.ShieldService.ReorderValues(c.Request().Context(), req.Items); err != nil {
		r.log.Error("failed to reorder shield values", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("order updated"))
}

// PublicShields returns the shields for the public site, no auth.
func (r *Routers) PublicShields(c echo.Context) error {
	shields, err := r.ShieldService.List(c.Request().Context())
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(shields))
}

func (r *Routers) PublicShieldValues(c echo.Context) error {
	values, err := r.ShieldService.ListValues(c.Request().Context())
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(values))
}
