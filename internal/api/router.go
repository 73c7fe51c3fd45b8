package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ecxhq/identity-be/internal/api/handlers"
	"github.com/ecxhq/identity-be/internal/auth"
	"github.com/ecxhq/identity-be/internal/services"
	"github.com/ecxhq/identity-be/internal/store"
	"github.com/ecxhq/identity-be/internal/websocket"
)

// Deps carries everything the router wires into handlers and middleware.
type Deps struct {
	Hub            *websocket.Hub
	Accounts       store.AccountStore
	AccountService services.AccountServiceProvider
	EventService   services.EventServiceProvider
	LogService     services.LogServiceProvider
	Tokens         *auth.TokenIssuer
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(deps.LogService))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(deps.AccountService)
	eventHandler := handlers.NewEventHandler(deps.EventService)
	logHandler := handlers.NewLogHandler(deps.LogService)
	statusHandler := handlers.NewStatusHandler()
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/signup", accountHandler.Register)
		r.Post("/login", accountHandler.Login)

		r.Get("/logs", logHandler.GetAll)
		r.Get("/events", eventHandler.GetRecent)
		r.Get("/status", statusHandler.Get)

		// WebSocket live event feed
		r.Get("/ws", wsHandler.Serve)

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountHandler.GetAll)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(auth.RequireAccount(deps.Accounts, deps.Tokens))
				r.Get("/", accountHandler.Get)
				r.Put("/", accountHandler.Update)
				r.Delete("/", accountHandler.Delete)
			})
		})
	})

	return r
}
