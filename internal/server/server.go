package server

import (
	"ctchen222/Recipe-Box/internal/api/controller"
	"ctchen222/Recipe-Box/internal/api/middleware"
	"ctchen222/Recipe-Box/internal/api/response"
	"ctchen222/Recipe-Box/internal/session"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// Server owns the gin engine and its routes.
type Server struct {
	engine *gin.Engine
}

// Options carries everything the routes depend on.
type Options struct {
	Logger           *slog.Logger
	Sessions         *session.Manager
	Cookie           middleware.CookieOptions
	UserController   *controller.UserController
	RecipeController *controller.RecipeController
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), traceRequest(), middleware.RequestLogger(logger))
	engine.NoRoute(func(c *gin.Context) {
		response.ErrorResponse(c, http.StatusNotFound, response.KindNotFound, "route not found")
	})

	s := &Server{engine: engine}
	s.registerHandlers(opts)
	return s
}

func (s *Server) registerHandlers(opts Options) {
	s.engine.GET("/healthz", func(c *gin.Context) {
		response.SuccessResponse(c, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/", middleware.Session(opts.Sessions, opts.Cookie))
	{
		api.POST("/signup", opts.UserController.Signup)
		api.POST("/login", opts.UserController.Login)
		api.DELETE("/logout", opts.UserController.Logout)
		api.GET("/check-session", opts.UserController.CheckSession)
		api.DELETE("/users/me", opts.UserController.DeleteAccount)

		api.GET("/recipes", opts.RecipeController.List)
		api.POST("/recipes", opts.RecipeController.Create)
		api.DELETE("/recipes/:id", opts.RecipeController.Delete)
	}
}

// Engine exposes the handler for http.Server and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// traceRequest opens a server span per request, continuing any trace the
// caller propagated.
func traceRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route, trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
			))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}
