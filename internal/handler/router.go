package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-booking-api/internal/handler/api"
	resdto "clinic-booking-api/internal/handler/dto/response"
	"clinic-booking-api/internal/handler/middleware"
	"clinic-booking-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	serviceHandler *api.ServiceHandler,
	notificationHandler *api.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	setupMiddleware(engine, cfg, rateLimiter)
	setupRoutes(engine, cfg, authHandler, bookingHandler, serviceHandler, notificationHandler, authMiddleware, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, rateLimiter *middleware.RateLimiter) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
	engine.Use(rateLimiter.General())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	serviceHandler *api.ServiceHandler,
	notificationHandler *api.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	apiGroup := engine.Group("/api")
	{
		apiGroup.GET("/health", healthCheck(cfg.Server))

		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login, Mw: []gin.HandlerFunc{rateLimiter.Auth()}},
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/verify", Handler: authHandler.Verify},
			})
		}

		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create, Mw: []gin.HandlerFunc{rateLimiter.Booking()}},
				{Method: http.MethodGet, Path: "/history/:phone", Handler: bookingHandler.History},
				{Method: http.MethodGet, Path: "/check/:id", Handler: bookingHandler.Check},
				{Method: http.MethodPut, Path: "/:id/reschedule", Handler: bookingHandler.Reschedule},
			})

			admin := bookings.Group("")
			admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPut, Path: "/:id/status", Handler: bookingHandler.UpdateStatus},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.Delete},
			})
		}

		services := apiGroup.Group("/services")
		{
			addRoutes(services, []route{
				{Method: http.MethodGet, Path: "", Handler: serviceHandler.Catalog},
				{Method: http.MethodGet, Path: "/category/:categoryId", Handler: serviceHandler.ByCategory},
				{Method: http.MethodGet, Path: "/:id", Handler: serviceHandler.Get},
			})

			managed := services.Group("")
			managed.Use(authMiddleware.RequireAuth())
			addRoutes(managed, []route{
				{Method: http.MethodPost, Path: "", Handler: serviceHandler.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: serviceHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: serviceHandler.Delete},
			})
		}

		notifications := apiGroup.Group("/notifications")
		{
			addRoutes(notifications, []route{
				{Method: http.MethodGet, Path: "/phone/:phone", Handler: notificationHandler.List},
				{Method: http.MethodGet, Path: "/phone/:phone/unread-count", Handler: notificationHandler.UnreadCount},
				{Method: http.MethodPost, Path: "", Handler: notificationHandler.Create},
				{Method: http.MethodPut, Path: "/:id/read", Handler: notificationHandler.MarkRead},
				{Method: http.MethodPut, Path: "/phone/:phone/read-all", Handler: notificationHandler.MarkAllRead},
				{Method: http.MethodDelete, Path: "/:id", Handler: notificationHandler.Delete},
			})
		}
	}

	engine.NoRoute(notFound)
}

func healthCheck(cfg config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resdto.Envelope{
			Success: true,
			Message: "OK",
			Data: resdto.HealthResponse{
				Status:      "healthy",
				Timestamp:   time.Now().UTC(),
				Environment: cfg.Env,
				Version:     cfg.Version,
			},
		})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, resdto.Envelope{
		Success: false,
		Message: "Endpoint tidak ditemukan.",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		handlers = append(handlers, r.Mw...)
		handlers = append(handlers, r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}
