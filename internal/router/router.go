// file: internal/router/router.go
package router

import (
	"net/http"

	"dsavault/internal/cache"
	"dsavault/internal/config"
	"dsavault/internal/database"
	"dsavault/internal/handlers/api/v1/auth"
	"dsavault/internal/handlers/api/v1/badges"
	"dsavault/internal/handlers/api/v1/dashboard"
	"dsavault/internal/handlers/api/v1/export"
	"dsavault/internal/handlers/api/v1/leaderboard"
	"dsavault/internal/handlers/api/v1/problems"
	"dsavault/internal/handlers/api/v1/users"
	"dsavault/internal/middleware"
	"dsavault/internal/response"
	"dsavault/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// New assembles the full HTTP handler: route table, middleware chain and CORS
func New(
	cfg *config.Config,
	sc *services.ServiceCollection,
	db *database.Manager,
	c cache.Cache,
	logger *zap.Logger,
) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.StructuredLogger(logger))

	r.HandleFunc("/health", healthHandler(db, c)).Methods(http.MethodGet)
	if !cfg.IsProduction() {
		r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	authController := auth.NewAuthController(sc.AuthService, logger)
	api.HandleFunc("/auth/register", authController.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authController.Login).Methods(http.MethodPost)

	leaderboardController := leaderboard.NewLeaderboardController(sc.LeaderboardService, logger)
	api.HandleFunc("/leaderboard", leaderboardController.Get).Methods(http.MethodGet)

	// Authenticated routes
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth(sc.AuthService, logger))

	problemsController := problems.NewProblemsController(sc.ProblemService, logger)
	protected.HandleFunc("/problems", problemsController.Create).Methods(http.MethodPost)
	protected.HandleFunc("/problems", problemsController.List).Methods(http.MethodGet)
	protected.HandleFunc("/problems/{id:[0-9]+}", problemsController.Get).Methods(http.MethodGet)
	protected.HandleFunc("/problems/{id:[0-9]+}", problemsController.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/problems/{id:[0-9]+}/analyze", problemsController.Analyze).Methods(http.MethodPost)

	badgesController := badges.NewBadgesController(sc.BadgeService, logger)
	protected.HandleFunc("/badges", badgesController.List).Methods(http.MethodGet)
	protected.HandleFunc("/badges/earned", badgesController.Earned).Methods(http.MethodGet)
	protected.HandleFunc("/badges/trigger", badgesController.Trigger).Methods(http.MethodPost)
	protected.HandleFunc("/badges/stats", badgesController.Stats).Methods(http.MethodGet)

	dashboardController := dashboard.NewDashboardController(sc.DashboardService, logger)
	protected.HandleFunc("/dashboard/summary", dashboardController.Summary).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/topics", dashboardController.Topics).Methods(http.MethodGet)

	usersController := users.NewUsersController(sc.UserService, logger)
	protected.HandleFunc("/users/me", usersController.Me).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/reminders", usersController.SetReminders).Methods(http.MethodPut)

	exportController := export.NewExportController(sc.ExportService, logger)
	protected.HandleFunc("/export/csv", exportController.CSV).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderXRequestID},
		AllowCredentials: true,
	})
	return corsHandler.Handler(r)
}

func healthHandler(db *database.Manager, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbHealth := db.Health(r.Context())

		cacheStatus := "healthy"
		if err := c.Health(r.Context()); err != nil {
			cacheStatus = "unhealthy"
		}

		status := http.StatusOK
		if dbHealth.Status == database.StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}

		response.WriteJSON(r.Context(), w, status, map[string]interface{}{
			"database": dbHealth,
			"cache":    cacheStatus,
		})
	}
}
