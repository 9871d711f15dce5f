package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"escolta/internal/lib/logger/sl"
	"escolta/internal/transport/http/dto"
	"escolta/internal/transport/http/dto/response"
)

// PresignedUploadURL godoc
// @Summary Issue a presigned upload URL
// @Description Returns a short-lived PUT URL so the admin panel can upload directly to object storage. The key is generated server-side, scoped to the requested folder.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body dto.PresignedURLRequest true "File type and target folder"
// @Success 200 {object} response.Response{data=dto.PresignedUpload}
// @Failure 400 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/uploads/presigned-url [post]
func (r *Routers) PresignedUploadURL(c echo.Context) error {
	const op = "http.routers.PresignedUploadURL"

	log := r.log.With(slog.String("op", op))

	var req dto.PresignedURLRequest
	if err := r.bindAndValidate(c, &req); err != nil {
		log.Warn("invalid request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	upload, err := r.UploadService.IssuePresignedUpload(c.Request().Context(), req.FileType, req.Folder)
	if err != nil {
		log.Error("failed to issue presigned upload", sl.Err(err))
		return r.writeError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(upload))
}
