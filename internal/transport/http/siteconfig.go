package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"escolta/internal/lib/logger/sl"
	"escolta/internal/transport/http/dto"
	"escolta/internal/transport/http/dto/response"
)

// GetSiteConfig godoc
// @Summary Get site configuration
// @Description Returns the singleton config row. An empty table yields a zero-value config, never an error.
// @Tags site-config
// @Produce json
// @Success 200 {object} response.Response{data=models.SiteConfig}
// @Router /api/admin/site-config [get]
func (r *Routers) GetSiteConfig(c echo.Context) error {
	const op = "http.routers.GetSiteConfig"

	cfg, err := r.SiteConfigService.Get(c.Request().Context())
	if err != nil {
		r.log.Error("failed to get site config", slog.String("op", op), sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(cfg))
}

// UpdateSiteConfig godoc
// @Summary Update site configuration
// @Description Partial update of the singleton row. Logo and favicon files replace the stored objects.
// @Tags site-config
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file false "Logo image"
// @Param favicon formData file false "Favicon image"
// @Success 200 {object} response.Response{data=models.SiteConfig}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/site-config [put]
func (r *Routers) UpdateSiteConfig(c echo.Context) error {
	const op = "http.routers.UpdateSiteConfig"

	log := r.log.With(slog.String("op", op))

	var req dto.UpdateSiteConfigRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		log.Warn("invalid request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	cfg, err := r.SiteConfigService.Update(c.Request().Context(), req, formFile(c, "logo"), formFile(c, "favicon"))
	if err != nil {
		log.Error("failed to update site config", sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(cfg))
}

func (r *Routers) PublicSiteConfig(c echo.Context) error {
	cfg, err := r.SiteConfigService.Get(c.Request().Context())
	if err != nil {
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(cfg))
}
