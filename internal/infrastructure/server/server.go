package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/taskmaster/tasklist/docs"
	httpHandlers "github.com/taskmaster/tasklist/internal/adapters/http"
	"github.com/taskmaster/tasklist/internal/app"
	"github.com/taskmaster/tasklist/internal/infrastructure/config"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	app    *app.App
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, a *app.App, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: a.Validator}

	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = customErrorHandler(appLogger, cfg.App.Debug || cfg.App.IsDevelopment())

	todoHandler := httpHandlers.NewTodoHandler(a.TodoService, appLogger)
	vocabularyHandler := httpHandlers.NewVocabularyHandler(a.TodoService, appLogger)
	preferencesHandler := httpHandlers.NewPreferencesHandler(a.TodoService, appLogger)
	themeHandler := httpHandlers.NewThemeHandler(a.ThemeService, appLogger)
	viewHandler := httpHandlers.NewViewHandler(a.TodoService, a.ThemeService, cfg.App.Version, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger.WithComponent("server"),
		app:    a,
	}

	server.setupMiddleware()

	if cfg.Metrics.Enabled && a.Metrics != nil {
		server.setupMetrics()
	}

	server.setupRoutes(todoHandler, vocabularyHandler, preferencesHandler, themeHandler, viewHandler)

	return server, nil
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			log := s.logger.WithRequestID(values.RequestID)
			if values.Error != nil {
				log.WithError(values.Error).Errorw("HTTP request failed",
					"method", values.Method,
					"uri", values.URI,
					"status", values.Status,
				)
				return nil
			}
			log.LogHTTPRequest(
				values.Method,
				values.URI,
				values.UserAgent,
				values.RemoteIP,
				values.Status,
				float64(values.Latency.Nanoseconds())/1000000,
			)
			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	if s.config.Security.RateLimitRequests > 0 {
		window := s.config.Security.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{
					Rate:      rate.Limit(float64(s.config.Security.RateLimitRequests) / window.Seconds()),
					Burst:     s.config.Security.RateLimitRequests,
					ExpiresIn: window,
				},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, ports.ErrorResponse{Message: "rate limit exceeded"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.JSON(http.StatusTooManyRequests, ports.ErrorResponse{Message: "rate limit exceeded"})
			},
		}))
	}

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		Skipper: func(c echo.Context) bool {
			// the swagger UI loads inline scripts
			return strings.HasPrefix(c.Request().URL.Path, "/swagger")
		},
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: s.config.Server.WriteTimeout,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(
	todoHandler *httpHandlers.TodoHandler,
	vocabularyHandler *httpHandlers.VocabularyHandler,
	preferencesHandler *httpHandlers.PreferencesHandler,
	themeHandler *httpHandlers.ThemeHandler,
	viewHandler *httpHandlers.ViewHandler,
) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	gate := s.readyGate()
	identity := s.identityMiddleware()

	// API v1 routes
	v1 := s.echo.Group("/api/v1", gate, identity)

	todos := v1.Group("/todos")
	todos.GET("", todoHandler.ListTodos)
	todos.POST("", todoHandler.CreateTodo)
	todos.GET("/query", todoHandler.QueryTodos)
	todos.GET("/:id", todoHandler.GetTodo)
	todos.PUT("/:id", todoHandler.UpdateTodo)
	todos.DELETE("/:id", todoHandler.DeleteTodo)
	todos.POST("/:id/toggle", todoHandler.ToggleStatus)
	todos.POST("/:id/subtasks", todoHandler.AddSubtask)
	todos.POST("/:id/subtasks/:subtaskId/toggle", todoHandler.ToggleSubtask)
	todos.POST("/:id/comments", todoHandler.AddComment)
	todos.POST("/:id/assign", todoHandler.Assign)
	todos.DELETE("/:id/assign/:userId", todoHandler.Unassign)
	todos.PUT("/:id/reminder", todoHandler.SetReminder)

	v1.GET("/categories", vocabularyHandler.ListCategories)
	v1.POST("/categories", vocabularyHandler.AddCategory)
	v1.GET("/labels", vocabularyHandler.ListLabels)
	v1.POST("/labels", vocabularyHandler.AddLabel)

	prefs := v1.Group("/preferences")
	prefs.GET("/filters", preferencesHandler.GetFilters)
	prefs.PUT("/filters", preferencesHandler.SetFilters)
	prefs.GET("/sort", preferencesHandler.GetSort)
	prefs.PUT("/sort", preferencesHandler.SetSort)
	prefs.GET("/search", preferencesHandler.GetSearch)
	prefs.PUT("/search", preferencesHandler.SetSearch)

	v1.GET("/theme", themeHandler.GetTheme)
	v1.POST("/theme/toggle", themeHandler.ToggleTheme)

	v1.Any("/*", func(c echo.Context) error {
		return echo.ErrNotFound
	})

	// Views
	s.echo.GET("/", viewHandler.Home, gate, identity)
	s.echo.GET("/task-master", viewHandler.Home, gate, identity)
	s.echo.GET("/todos", viewHandler.List, gate, identity)
	s.echo.GET("/add-todo", viewHandler.AddTodoForm, gate, identity)
	s.echo.POST("/add-todo", viewHandler.SubmitTodo, gate, identity)
	s.echo.GET("/about", viewHandler.About, gate, identity)

	// Any other path lands on the home page
	s.echo.Any("/*", viewHandler.RedirectHome)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	m := s.app.Metrics

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			m.RequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			m.RequestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	storageCheck := map[string]interface{}{
		"driver": s.config.Storage.Driver,
		"status": "ok",
	}
	if checker, ok := s.app.Storage.(ports.HealthChecker); ok {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := checker.Ping(ctx); err != nil {
			status = "error"
			storageCheck["status"] = "error"
			storageCheck["error"] = err.Error()
		}
	}
	if reporter, ok := s.app.Storage.(ports.ConnectionReporter); ok {
		storageCheck["connections"] = reporter.ConnectionInfo()
	}
	checks["storage"] = storageCheck

	checks["state"] = map[string]interface{}{
		"rehydrated": s.app.Persistor.Ready(),
		"todos":      s.app.TodoStore.Len(),
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if !s.app.Persistor.Ready() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "state_not_rehydrated",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)

	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders errors as ErrorResponse. In development the
// cause of internal errors is included in the details.
func customErrorHandler(logger *logger.Logger, debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = ports.ErrorResponse{Message: fmt.Sprint(he.Message)}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = ports.ErrorResponse{Message: "validation failed", Details: e.Error()}
		} else {
			resp := ports.ErrorResponse{Message: http.StatusText(code)}
			if debug {
				resp.Details = err.Error()
			}
			msg = resp
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
