package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"escolta/internal/config"
	appmw "escolta/internal/middleware"
	httprouters "escolta/internal/transport/http"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
	token   string
}

func New(log *slog.Logger, cfg config.HTTPConfig, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.SessionKey))))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     strings.Split(cfg.AllowOrigins, ","),
		AllowMethods:     []string{echo.GET, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
		AllowCredentials: true,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("12M"))
	e.Use(appmw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		host:    cfg.Host,
		port:    cfg.Port,
		token:   cfg.JWTSecret,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

// adminOnlyMiddleware gates the admin CRUD surface on a session whose
// user carries the admin flag.
func (s *Server) adminOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get("session", c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session required"})
		}

		userID, ok := sess.Values["user_id"].(string)
		if !ok || userID == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		}

		parsedUUID, err := uuid.Parse(userID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user ID format"})
		}

		isAdmin, err := s.routers.AuthService.IsAdmin(c.Request().Context(), parsedUUID)
		if err != nil || !isAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
		}

		return next(c)
	}
}

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api")
	{
		api.GET("/health", s.routers.Health)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", s.routers.Login)
			authGroup.POST("/refresh", s.routers.Refresh)
			authGroup.POST("/password-reset", s.routers.RequestPasswordReset)
			authGroup.POST("/password-reset/complete", s.routers.CompletePasswordReset)
			authGroup.POST("/register", s.routers.Register, s.adminOnlyMiddleware)
			authGroup.POST("/logout/:user_id", s.routers.Logout, s.adminOnlyMiddleware)

			jwtGroup := authGroup.Group("/users")
			jwtGroup.Use(echojwt.WithConfig(echojwt.Config{
				SigningKey: []byte(s.token),
			}))
			{
				jwtGroup.GET("/:user_id/is-admin", s.routers.IsAdminPermission)
			}
		}

		public := api.Group("/public")
		{
			public.GET("/shields", s.routers.PublicShields)
			public.GET("/shield-values", s.routers.PublicShieldValues)
			public.GET("/gallery/categories", s.routers.PublicGalleryCategories)
			public.GET("/gallery/items", s.routers.PublicGalleryItems)
			public.GET("/leadership", s.routers.PublicLeadership)
			public.GET("/history/milestones", s.routers.PublicMilestones)
			public.GET("/history/images", s.routers.PublicHistoricalImages)
			public.GET("/site-config", s.routers.PublicSiteConfig)
		}

		uploads := api.Group("/uploads", s.adminOnlyMiddleware)
		{
			uploads.POST("/presigned-url", s.routers.PresignedUploadURL)
		}

		admin := api.Group("/admin", s.adminOnlyMiddleware)
		{
			shields := admin.Group("/shields")
			{
				shields.GET("", s.routers.ListShields)
				shields.POST("", s.routers.CreateShield)
				shields.POST("/with-url", s.routers.CreateShieldWithURL)
				shields.GET("/:id", s.routers.GetShield)
				shields.PUT("/:id", s.routers.UpdateShield)
				shields.DELETE("/:id", s.routers.DeleteShield)
				shields.PUT("/:id/set-main", s.routers.SetMainShield)
			}

			values := admin.Group("/shield-values")
			{
				values.GET("", s.routers.ListShieldValues)
				values.POST("", s.routers.CreateShieldValue)
				values.POST("/reorder", s.routers.ReorderShieldValues)
				values.GET("/:id", s.routers.GetShieldValue)
				values.PUT("/:id", s.routers.UpdateShieldValue)
				values.DELETE("/:id", s.routers.DeleteShieldValue)
			}

			gallery := admin.Group("/gallery")
			{
				gallery.GET("/categories", s.routers.ListGalleryCategories)
				gallery.POST("/categories", s.routers.CreateGalleryCategory)
				gallery.GET("/categories/:id", s.routers.GetGalleryCategory)
				gallery.PUT("/categories/:id", s.routers.UpdateGalleryCategory)
				gallery.DELETE("/categories/:id", s.routers.DeleteGalleryCategory)

				gallery.GET("/items", s.routers.ListGalleryItems)
				gallery.POST("/items", s.routers.CreateGalleryItem)
				gallery.POST("/items/with-url", s.routers.CreateGalleryItemWithURL)
				gallery.POST("/items/reorder", s.routers.ReorderGalleryItems)
				gallery.GET("/items/:id", s.routers.GetGalleryItem)
				gallery.PUT("/items/:id", s.routers.UpdateGalleryItem)
				gallery.DELETE("/items/:id", s.routers.DeleteGalleryItem)
			}

			leadership := admin.Group("/leadership")
			{
				leadership.GET("", s.routers.ListLeadership)
				leadership.POST("", s.routers.CreateLeadership)
				leadership.POST("/reorder", s.routers.ReorderLeadership)
				leadership.GET("/:id", s.routers.GetLeadership)
				leadership.PUT("/:id", s.routers.UpdateLeadership)
				leadership.DELETE("/:id", s.routers.DeleteLeadership)
			}

			history := admin.Group("/history")
			{
				history.GET("/milestones", s.routers.ListMilestones)
				history.POST("/milestones", s.routers.CreateMilestone)
				history.POST("/milestones/reorder", s.routers.ReorderMilestones)
				history.GET("/milestones/:id", s.routers.GetMilestone)
				history.PUT("/milestones/:id", s.routers.UpdateMilestone)
				history.DELETE("/milestones/:id", s.routers.DeleteMilestone)

				history.GET("/images", s.routers.ListHistoricalImages)
				history.POST("/images", s.routers.CreateHistoricalImage)
				history.POST("/images/reorder", s.routers.ReorderHistoricalImages)
				history.GET("/images/:id", s.routers.GetHistoricalImage)
				history.PUT("/images/:id", s.routers.UpdateHistoricalImage)
				history.DELETE("/images/:id", s.routers.DeleteHistoricalImage)
			}

			admin.GET("/site-config", s.routers.GetSiteConfig)
			admin.PUT("/site-config", s.routers.UpdateSiteConfig)
		}
	}
}
