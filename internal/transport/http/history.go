package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"escolta/internal/lib/logger/sl"
	"escolta/internal/transport/http/dto"
	"escolta/internal/transport/http/dto/response"
)

// ListMilestones godoc
// @Summary List historical milestones
// @Tags history
// @Produce json
// @Success 200 {object} response.Response{data=[]models.HistoricalMilestone}
// @Router /api/admin/history/milestones [get]
func (r *Routers) ListMilestones(c echo.Context) error {
	const op = "http.routers.ListMilestones"

	milestones, err := r.HistoryService.ListMilestones(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list milestones", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(milestones))
}

// CreateMilestone godoc
// @Summary Create historical milestone
// @Description The icon name must be one of the fixed set the site can render.
// @Tags history
// @Accept json
// @Produce json
// @Param request body dto.CreateMilestoneRequest true "Milestone data"
// @Success 201 {object} response.Response{data=models.HistoricalMilestone}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/history/milestones [post]
func (r *Routers) CreateMilestone(c echo.Context) error {
	const op = "http.routers.CreateMilestone"

	var req dto.CreateMilestoneRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		r.log.Warn("invalid request", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	milestone, err := r.HistoryService.CreateMilestone(c.Request().Context(), req)
	if err != nil {
		r.log.Error("failed to create milestone", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(milestone))
}

// GetMilestone godoc
// @Summary Get historical milestone
// @Tags history
// @Produce json
// @Param id path string true "Milestone UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.HistoricalMilestone}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/history/milestones/{id} [get]
func (r *Routers) GetMilestone(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	milestone, err := r.HistoryService.GetMilestone(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(milestone))
}

// UpdateMilestone godoc
// @Summary Update historical milestone
// @Tags history
// @Accept json
// @Produce json
// @Param id path string true "Milestone UUID" format(uuid)
// @Param request body dto.UpdateMilestoneRequest true "Fields to change"
// @Success 200 {object} response.Response{data=models.HistoricalMilestone}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/history/milestones/{id} [put]
func (r *Routers) UpdateMilestone(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	var req dto.UpdateMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	milestone, err := r.HistoryService.UpdateMilestone(c.Request().Context(), id, req)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(milestone))
}

// DeleteMilestone godoc
// @Summary Delete historical milestone
// @Tags history
// @Param id path string true "Milestone UUID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/history/milestones/{id} [delete]
func (r *Routers) DeleteMilestone(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	if err := r.HistoryService.DeleteMilestone(c.Request().Context(), id); err != nil {
		return r.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderMilestones godoc
// @Summary Reorder historical milestones
// @Tags history
// @Accept json
// @Produce json
// @Param request body dto.ReorderRequest true "Ordered id/displayOrder pairs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/history/milestones/reorder [post]
func (r *Routers) ReorderMilestones(c echo.Context) error {
	const op = "http.routers.ReorderMilestones"

	var req dto.ReorderRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		r.log.Warn("invalid request", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.HistoryService.ReorderMilestones(c.Request().Context(), req.Items); err != nil {
		r.log.Error("failed to reorder milestones", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("order updated"))
}

// ListHistoricalImages godoc
// @Summary List historical images
// @Tags history
// @Produce json
// @Success 200 {object} response.Response{data=[]models.HistoricalImage}
// @Router /api/admin/history/images [get]
func (r *Routers) ListHistoricalImages(c echo.Context) error {
	const op = "http.routers.ListHistoricalImages"

	images, err := r.HistoryService.ListImages(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list historical images", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(images))
}

// CreateHistoricalImage godoc
// @Summary Create historical image
// @Description Multipart form with the photo, or JSON with an imageUrl pointing into the bucket.
// @Tags history
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param image formData file true "Photo (max 10MB)"
// @Success 201 {object} response.Response{data=models.HistoricalImage}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/history/images [post]
func (r *Routers) CreateHistoricalImage(c echo.Context) error {
	const op = "http.routers.CreateHistoricalImage"

	log := r.log.With(slog.String("op", op))

	var req dto.CreateHistoricalImageRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		log.Warn("invalid request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	img, err := r.HistoryService.CreateImage(c.Request().Context(), req, formFile(c, "image"))
	if err != nil {
		log.Error("failed to create historical image", sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(img))
}

// GetHistoricalImage godoc
// @Summary Get historical image
// @Tags history
// @Produce json
// @Param id path string true "Image UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.HistoricalImage}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/history/images/{id} [get]
func (r *Routers) GetHistoricalImage(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	img, err := r.HistoryService.GetImage(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(img))
}

// UpdateHistoricalImage godoc
// @Summary Update historical image
// @Tags history
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Image UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.HistoricalImage}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/history/images/{id} [put]
func (r *Routers) UpdateHistoricalImage(c echo.Context) error {
	const op = "http.routers.UpdateHistoricalImage"

	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	var req dto.UpdateHistoricalImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	img, err := r.HistoryService.UpdateImage(c.Request().Context(), id, req, formFile(c, "image"))
	if err != nil {
		r.log.Error("failed to update historical image", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(img))
}

// DeleteHistoricalImage godoc
// @Summary Delete historical image
// @Tags history
// @Param id path string true "Image UUID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/history/images/{id} [delete]
func (r *Routers) DeleteHistoricalImage(c echo.Context) error {
	const op = "http.routers.DeleteHistoricalImage"

	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	if err := r.HistoryService.DeleteImage(c.Request().Context(), id); err != nil {
		r.log.Error("failed to delete historical image", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderHistoricalImages godoc
// @Summary Reorder historical images
// @Tags history
// @Accept json
// @Produce json
// @Param request body dto.ReorderRequest true "Ordered id/displayOrder pairs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/history/images/reorder [post]
func (r *Routers) ReorderHistoricalImages(c echo.Context) error {
	const op = "http.routers.ReorderHistoricalImages"

	var req dto.ReorderRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		r.log.Warn("invalid request", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.HistoryService.ReorderImages(c.Request().Context(), req.Items); err != nil {
		r.log.Error("failed to reorder historical images", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("order updated"))
}

func (r *Routers) PublicMilestones(c echo.Context) error {
	milestones, err := r.HistoryService.ListMilestones(c.Request().Context())
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(milestones))
}

func (r *Routers) PublicHistoricalImages(c echo.Context) error {
	images, err := r.HistoryService.ListImages(c.Request().Context())
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(images))
}
