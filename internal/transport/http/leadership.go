package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"escolta/internal/lib/logger/sl"
	"escolta/internal/transport/http/dto"
	"escolta/internal/transport/http/dto/response"
)

// ListLeadership godoc
// @Summary List leadership periods
// @Tags leadership
// @Produce json
// @Success 200 {object} response.Response{data=[]models.LeadershipPeriod}
// @Router /api/admin/leadership [get]
func (r *Routers) ListLeadership(c echo.Context) error {
	const op = "http.routers.ListLeadership"

	periods, err := r.LeadershipService.List(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list leadership periods", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(periods))
}

// GetLeadership godoc
// @Summary Get leadership period
// @Tags leadership
// @Produce json
// @Param id path string true "Period UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.LeadershipPeriod}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/leadership/{id} [get]
func (r *Routers) GetLeadership(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	period, err := r.LeadershipService.GetByID(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(period))
}

// CreateLeadership godoc
// @Summary Create leadership period
// @Description Multipart form with an optional photo, or JSON with an imageUrl pointing into the bucket.
// @Tags leadership
// @Accept multipart/form-data
// @Produce json
// @Param year formData integer true "Year"
// @Param jefatura formData string true "Jefatura name"
// @Param secondName formData string false "Second in command"
// @Param image formData file false "Photo (max 10MB)"
// @Success 201 {object} response.Response{data=models.LeadershipPeriod}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/leadership [post]
func (r *Routers) CreateLeadership(c echo.Context) error {
	const op = "http.routers.CreateLeadership"

	log := r.log.With(slog.String("op", op))

	var req dto.CreateLeadershipRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		log.Warn("invalid request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	period, err := r.LeadershipService.Create(c.Request().Context(), req, formFile(c, "image"))
	if err != nil {
		log.Error("failed to create leadership period", sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(period))
}

// UpdateLeadership godoc
// @Summary Update leadership period
// @Tags leadership
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Period UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.LeadershipPeriod}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/leadership/{id} [put]
func (r *Routers) UpdateLeadership(c echo.Context) error {
	const op = "http.routers.UpdateLeadership"

	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	var req dto.UpdateLeadershipRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	period, err := r.LeadershipService.Update(c.Request().Context(), id, req, formFile(c, "image"))
	if err != nil {
		r.log.Error("failed to update leadership period", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(period))
}

// DeleteLeadership godoc
// @Summary Delete leadership period
// @Tags leadership
// @Param id path string true "Period UUID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/leadership/{id} [delete]
func (r *Routers) DeleteLeadership(c echo.Context) error {
	const op = "http.routers.DeleteLeadership"

	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	if err := r.LeadershipService.Delete(c.Request().Context(), id); err != nil {
		r.log.Error("failed to delete leadership period", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderLeadership godoc
// @Summary Reorder leadership periods
// @Tags leadership
// @Accept json
// @Produce json
// @Param request body dto.ReorderRequest true "Ordered id/displayOrder pairs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/leadership/reorder [post]
func (r *Routers) ReorderLeadership(c echo.Context) error {
	const op = "http.routers.ReorderLeadership"

	var req dto.ReorderRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		r.log.Warn("invalid request", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.LeadershipService.Reorder(c.Request().Context(), req.Items); err != nil {
		r.log.Error("failed to reorder leadership periods", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("order updated"))
}

func (r *Routers) PublicLeadership(c echo.Context) error {
	periods, err := r.LeadershipService.List(c.Request().Context())
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(periods))
}
