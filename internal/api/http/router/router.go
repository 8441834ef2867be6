package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dtroode/userdir/internal/api/http/handler"
	"github.com/dtroode/userdir/internal/api/http/middleware"
	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/model"
	"github.com/dtroode/userdir/internal/service"
)

const operationName = "user-directory"

// Router builds the HTTP handler tree for the user directory.
type Router struct {
	authService    *service.Auth
	userService    *service.User
	contextManager model.ContextManager
	development    bool
	logger         *logger.Logger
}

// New creates a new Router instance. In development mode error responses
// include the error chain.
func New(
	authService *service.Auth,
	userService *service.User,
	contextManager model.ContextManager,
	development bool,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		contextManager: contextManager,
		development:    development,
		logger:         logger,
	}
}

// Register mounts all routes and middleware and returns the root handler.
func (r *Router) Register() http.Handler {
	errors := handler.NewErrorTranslator(r.development, r.logger)
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, errors, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(logging.Handle)
	mux.Use(middleware.NewRecover(errors, r.logger).Handle)

	r.registerHealthRoutes(mux)
	r.registerAuthRoutes(mux, errors)
	r.registerUserRoutes(mux, errors, authenticate)

	return otelhttp.NewHandler(mux, operationName)
}

func (r *Router) registerHealthRoutes(mux chi.Router) {
	healthHandler := handler.NewHealth(r.userService, r.logger)
	mux.Get("/healthz", healthHandler.Check)
}

func (r *Router) registerAuthRoutes(mux chi.Router, errors *handler.ErrorTranslator) {
	authHandler := handler.NewAuth(r.authService, errors, r.logger)
	mux.Post("/auth/login", authHandler.Login)
}

func (r *Router) registerUserRoutes(mux chi.Router, errors *handler.ErrorTranslator, authenticate *middleware.Authenticate) {
	userHandler := handler.NewUser(r.userService, r.contextManager, errors, r.logger)

	mux.Route("/users", func(users chi.Router) {
		users.Use(authenticate.Handle)

		users.Post("/", userHandler.Create)
		users.Get("/", userHandler.List)
		users.Get("/{id}", userHandler.Get)
		users.Put("/{id}", userHandler.Update)
		users.Delete("/{id}", userHandler.Delete)
	})
}
