package http

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"escolta/internal/lib/logger/sl"
	"escolta/internal/transport/http/dto"
	"escolta/internal/transport/http/dto/response"
)

// ListGalleryCategories godoc
// @Summary List gallery categories
// @Tags gallery
// @Produce json
// @Success 200 {object} response.Response{data=[]models.GalleryCategory}
// @Router /api/admin/gallery/categories [get]
func (r *Routers) ListGalleryCategories(c echo.Context) error {
	const op = "http.routers.ListGalleryCategories"

	cats, err := r.GalleryService.ListCategories(c.Request().Context())
	if err != nil {
		r.log.Error("failed to list categories", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(cats))
}

// CreateGalleryCategory godoc
// @Summary Create gallery category
// @Description The slug must be unique, a duplicate is answered with 409.
// @Tags gallery
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} response.Response{data=models.GalleryCategory}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/gallery/categories [post]
func (r *Routers) CreateGalleryCategory(c echo.Context) error {
	const op = "http.routers.CreateGalleryCategory"

	var req dto.CreateCategoryRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		r.log.Warn("invalid request", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	cat, err := r.GalleryService.CreateCategory(c.Request().Context(), req)
	if err != nil {
		r.log.Error("failed to create category", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(cat))
}

// GetGalleryCategory godoc
// @Summary Get gallery category
// @Tags gallery
// @Produce json
// @Param id path string true "Category UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.GalleryCategory}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/gallery/categories/{id} [get]
func (r *Routers) GetGalleryCategory(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	cat, err := r.GalleryService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(cat))
}

// UpdateGalleryCategory godoc
// @Summary Update gallery category
// @Tags gallery
// @Accept json
// @Produce json
// @Param id path string true "Category UUID" format(uuid)
// @Param request body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} response.Response{data=models.GalleryCategory}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/gallery/categories/{id} [put]
func (r *Routers) UpdateGalleryCategory(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	cat, err := r.GalleryService.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(cat))
}

// DeleteGalleryCategory godoc
// @Summary Delete gallery category
// @Description Cascades to the items of the category, their stored objects are removed best-effort afterwards.
// @Tags gallery
// @Param id path string true "Category UUID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/gallery/categories/{id} [delete]
func (r *Routers) DeleteGalleryCategory(c echo.Context) error {
	const op = "http.routers.DeleteGalleryCategory"

	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	if err := r.GalleryService.DeleteCategory(c.Request().Context(), id); err != nil {
		r.log.Error("failed to delete category", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListGalleryItems godoc
// @Summary List gallery items
// @Description Optionally filtered by ?category=<uuid>. Ordered by display order.
// @Tags gallery
// @Produce json
// @Param category query string false "Category UUID" format(uuid)
// @Success 200 {object} response.Response{data=[]models.GalleryItem}
// @Router /api/admin/gallery/items [get]
func (r *Routers) ListGalleryItems(c echo.Context) error {
	const op = "http.routers.ListGalleryItems"

	ctx := c.Request().Context()

	if catStr := c.QueryParam("category"); catStr != "" {
		catID, err := uuid.Parse(catStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", "invalid category UUID"))
		}

		items, err := r.GalleryService.ListItemsByCategory(ctx, catID)
		if err != nil {
			r.log.Error("failed to list items", slog.String("op", op), sl.Err(err))
			return r.writeError(c, err)
		}

		return c.JSON(http.StatusOK, response.SuccessResponse(items))
	}

	items, err := r.GalleryService.ListItems(ctx)
	if err != nil {
		r.log.Error("failed to list items", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(items))
}

// GetGalleryItem godoc
// @Summary Get gallery item
// @Tags gallery
// @Produce json
// @Param id path string true "Item UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.GalleryItem}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/admin/gallery/items/{id} [get]
func (r *Routers) GetGalleryItem(c echo.Context) error {
	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	item, err := r.GalleryService.GetItem(c.Request().Context(), id)
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

// CreateGalleryItem godoc
// @Summary Create gallery item from multipart form
// @Description Uploads the image, generates a 400x400 thumbnail and stores both keys with the row.
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param categoryId formData string false "Category UUID" format(uuid)
// @Param year formData integer false "Year"
// @Param image formData file true "Image file (max 10MB)"
// @Success 201 {object} response.Response{data=models.GalleryItem}
// @Failure 400 {object} response.ErrorResponse
// @Failure 413 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/gallery/items [post]
func (r *Routers) CreateGalleryItem(c echo.Context) error {
	const op = "http.routers.CreateGalleryItem"

	log := r.log.With(slog.String("op", op))

	var req dto.CreateGalleryItemRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		log.Warn("invalid request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	item, err := r.GalleryService.CreateItem(c.Request().Context(), req, formFile(c, "image"))
	if err != nil {
		log.Error("failed to create gallery item", sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(item))
}

// CreateGalleryItemWithURL godoc
// @Summary Create gallery item from already uploaded object URLs
// @Description JSON variant, imageUrl and thumbnailUrl must point into the configured bucket.
// @Tags gallery
// @Accept json
// @Produce json
// @Param request body dto.CreateGalleryItemRequest true "Item data"
// @Success 201 {object} response.Response{data=models.GalleryItem}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/gallery/items/with-url [post]
func (r *Routers) CreateGalleryItemWithURL(c echo.Context) error {
	const op = "http.routers.CreateGalleryItemWithURL"

	var req dto.CreateGalleryItemRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		r.log.Warn("invalid request", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	item, err := r.GalleryService.CreateItem(c.Request().Context(), req, nil)
	if err != nil {
		r.log.Error("failed to create gallery item", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(item))
}

// UpdateGalleryItem godoc
// @Summary Update gallery item
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Item UUID" format(uuid)
// @Success 200 {object} response.Response{data=models.GalleryItem}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/gallery/items/{id} [put]
func (r *Routers) UpdateGalleryItem(c echo.Context) error {
	const op = "http.routers.UpdateGalleryItem"

	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	var req dto.UpdateGalleryItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	item, err := r.GalleryService.UpdateItem(c.Request().Context(), id, req, formFile(c, "image"))
	if err != nil {
		r.log.Error("failed to update gallery item", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

// DeleteGalleryItem godoc
// @Summary Delete gallery item
// @Description Removes the row first, then deletes the image and the thumbnail best-effort.
// @Tags gallery
// @Param id path string true "Item UUID" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/gallery/items/{id} [delete]
func (r *Routers) DeleteGalleryItem(c echo.Context) error {
	const op = "http.routers.DeleteGalleryItem"

	id, ok := r.parseID(c)
	if !ok {
		return nil
	}

	if err := r.GalleryService.DeleteItem(c.Request().Context(), id); err != nil {
		r.log.Error("failed to delete gallery item", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderGalleryItems godoc
// @Summary Reorder gallery items
// @Tags gallery
// @Accept json
// @Produce json
// @Param request body dto.ReorderRequest true "Ordered id/displayOrder pairs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/gallery/items/reorder [post]
func (r *Routers) ReorderGalleryItems(c echo.Context) error {
	const op = "http.routers.ReorderGalleryItems"

	var req dto.ReorderRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		r.log.Warn("invalid request", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.GalleryService.ReorderItems(c.Request().Context(), req.Items); err != nil {
		r.log.Error("failed to reorder gallery items", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.MessageResponse("order updated"))
}

// PublicGallery serves categories and items to the public site.
func (r *Routers) PublicGalleryCategories(c echo.Context) error {
	cats, err := r.GalleryService.ListCategories(c.Request().Context())
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(cats))
}

func (r *Routers) PublicGalleryItems(c echo.Context) error {
	return r.ListGalleryItems(c)
}
