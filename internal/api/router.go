package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/lifetrack/lifetrack-be/internal/api/handlers"
	"github.com/lifetrack/lifetrack-be/internal/auth"
	"github.com/lifetrack/lifetrack-be/internal/monitoring"
	"github.com/lifetrack/lifetrack-be/internal/services"
	"github.com/lifetrack/lifetrack-be/internal/storage"
	"github.com/lifetrack/lifetrack-be/internal/websocket"
)

// RouterDeps carries everything the router wires into handlers.
type RouterDeps struct {
	Tokens         *auth.TokenManager
	UserService    services.UserServiceProvider
	TaskService    services.TaskServiceProvider
	KanbanService  services.KanbanServiceProvider
	HealthService  services.HealthServiceProvider
	EventService   services.EventServiceProvider
	Storage        *storage.Client // nil disables the storage routes
	Hub            *websocket.Hub
	Stats          *monitoring.StatUpdater
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.UserService, deps.Tokens)
	taskHandler := handlers.NewTaskHandler(deps.TaskService)
	kanbanHandler := handlers.NewKanbanHandler(deps.KanbanService)
	healthHandler := handlers.NewHealthHandler(deps.HealthService)
	eventHandler := handlers.NewEventHandler(deps.EventService)
	statusHandler := handlers.NewStatusHandler(deps.Stats)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	requireAuth := deps.Tokens.Middleware()

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/create-user/", userHandler.Create)
		r.Post("/login/", userHandler.Login)

		// Everything below requires a bearer token
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/verify-token/", userHandler.VerifyToken)

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", taskHandler.Create)
				r.Get("/", taskHandler.GetAll)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.Get)
					r.Patch("/", taskHandler.Update)
					r.Delete("/", taskHandler.Delete)
				})
			})

			r.Route("/kanban", func(r chi.Router) {
				r.Post("/", kanbanHandler.CreateColumn)
				r.Get("/", kanbanHandler.GetColumns)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", kanbanHandler.GetColumn)
					r.Patch("/", kanbanHandler.UpdateColumn)
					r.Delete("/", kanbanHandler.DeleteColumn)

					r.Route("/tasks", func(r chi.Router) {
						r.Post("/", kanbanHandler.CreateCard)
						r.Get("/", kanbanHandler.GetCards)
						r.Route("/{taskId}", func(r chi.Router) {
							r.Patch("/", kanbanHandler.UpdateCard)
							r.Delete("/", kanbanHandler.DeleteCard)
						})
					})
				})
			})

			r.Route("/health", func(r chi.Router) {
				r.Route("/activity", func(r chi.Router) {
					r.Post("/", healthHandler.CreateActivity)
					r.Get("/", healthHandler.GetActivities)
					r.Route("/{id}", func(r chi.Router) {
						r.Delete("/", healthHandler.DeleteActivity)
					})
				})
				r.Route("/glucose", func(r chi.Router) {
					r.Post("/", healthHandler.CreateGlucose)
					r.Get("/", healthHandler.GetGlucose)
					r.Route("/{id}", func(r chi.Router) {
						r.Delete("/", healthHandler.DeleteGlucose)
					})
				})
				r.Route("/food", func(r chi.Router) {
					r.Post("/", healthHandler.CreateFood)
					r.Get("/", healthHandler.GetFood)
					r.Route("/{id}", func(r chi.Router) {
						r.Delete("/", healthHandler.DeleteFood)
					})
				})
			})

			if deps.Storage != nil {
				storageHandler := handlers.NewStorageHandler(deps.Storage, deps.EventService)
				r.Route("/storage", func(r chi.Router) {
					r.Get("/get-bucket/{userId}", storageHandler.GetBucket)
					r.Post("/upload-file/{userId}", storageHandler.UploadFile)
					r.Get("/get-files/{userId}", storageHandler.GetFiles)
					r.Delete("/delete-file/{userId}/{filename}", storageHandler.DeleteFile)
					r.Get("/download-file/{userId}/{filename}", storageHandler.DownloadFile)
					r.Get("/signed-url/{userId}/{filename}", storageHandler.SignedURL)
				})
			} else {
				log.Warn().Msg("Storage endpoint not configured; file routes disabled")
			}

			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventHandler.GetRecent)
				r.Get("/ws", wsHandler.Serve)
			})

			r.Get("/status/", statusHandler.Get)
		})
	})

	return r
}
