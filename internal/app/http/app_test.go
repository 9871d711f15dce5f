package httpapp

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"escolta/internal/config"
	httprouters "escolta/internal/transport/http"
)

// The admin surface is uniform: every non-singleton resource exposes
// list, get-by-id, create, update and delete. This pins the route table
// so a resource cannot silently lose one of them.
func TestBuildRouters_AdminSurface(t *testing.T) {
	s := New(slog.Default(), config.HTTPConfig{
		Port:       "8080",
		SessionKey: "test-session-key",
		JWTSecret:  "test-secret",
	}, httprouters.NewRouter(slog.Default(), nil, nil, nil, nil, nil, nil, nil, nil))

	s.BuildRouters()

	registered := make(map[string]bool)
	for _, route := range s.e.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	want := []string{
		"GET /api/admin/shields",
		"GET /api/admin/shields/:id",
		"PUT /api/admin/shields/:id/set-main",
		"GET /api/admin/shield-values/:id",
		"PUT /api/admin/shield-values/:id",
		"GET /api/admin/gallery/categories/:id",
		"PUT /api/admin/gallery/categories/:id",
		"GET /api/admin/gallery/items/:id",
		"GET /api/admin/leadership/:id",
		"GET /api/admin/history/milestones/:id",
		"PUT /api/admin/history/milestones/:id",
		"GET /api/admin/history/images/:id",
		"PUT /api/admin/history/images/:id",
		"GET /api/admin/site-config",
		"POST /api/uploads/presigned-url",
		"GET /api/public/shields",
		"GET /api/health",
	}
	for _, r := range want {
		assert.True(t, registered[r], "route %q not registered", r)
	}
}
