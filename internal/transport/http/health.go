package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"escolta/internal/lib/logger/sl"
	"escolta/internal/transport/http/dto/response"
)

// Health godoc
// @Summary Health check
// @Description Pings the database. 503 when the pool is unreachable.
// @Tags health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /api/health [get]
func (r *Routers) Health(c echo.Context) error {
	const op = "http.routers.Health"

	if err := r.DB.HealthCheck(c.Request().Context()); err != nil {
		r.log.Error("health check failed", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusServiceUnavailable, response.ErrorResponseWithDetails("unhealthy", "database is unreachable"))
	}

	return c.JSON(http.StatusOK, response.MessageResponse("ok"))
}
