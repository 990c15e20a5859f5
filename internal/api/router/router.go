package router

import (
	"net/http"
	"strings"

	"autoshop/internal/api/handler"
	"autoshop/internal/api/middleware"
	"autoshop/internal/api/util"
	"autoshop/internal/auth"
	"autoshop/internal/core/service"
)

func NewRouter(
	authService service.AuthService,
	vehicleService service.VehicleService,
	recordService service.RecordService,
	tokens *auth.TokenManager,
) http.Handler {
	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	serviceHandler := handler.NewServiceHandler(recordService)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// Create router
	mux := http.NewServeMux()

	// Middleware chains: every route gets CORS + logging, protected
	// routes add authentication, admin routes stack the role gate on
	// top of that.
	public := func(h http.Handler) http.Handler {
		return middleware.CORSMiddleware(middleware.LoggingMiddleware(h))
	}
	protected := func(h http.Handler) http.Handler {
		return public(authMiddleware.Authenticate(h))
	}
	adminOnly := func(h http.Handler) http.Handler {
		return public(authMiddleware.Authenticate(authMiddleware.RequireAdmin(h)))
	}

	// Health check endpoint
	mux.Handle("/health", public(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})))

	// Auth routes
	mux.Handle("/api/auth/register", public(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			util.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		authHandler.Register(w, r)
	})))

	mux.Handle("/api/auth/login", public(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			util.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		authHandler.Login(w, r)
	})))

	// Vehicle routes with method handling
	mux.Handle("/api/vehicles", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			vehicleHandler.Create(w, r)
		case http.MethodGet:
			vehicleHandler.List(w, r)
		default:
			util.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})))

	// Prefix route for /api/vehicles/{id}
	mux.Handle("/api/vehicles/", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			util.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		vehicleHandler.Delete(w, r)
	})))

	// Service routes: booking and listing are available to every
	// authenticated user, per-record mutations are admin-only.
	mux.Handle("/api/services", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			serviceHandler.Book(w, r)
		case http.MethodGet:
			serviceHandler.List(w, r)
		default:
			util.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})))

	// Prefix route for /api/services/{id} and /api/services/{id}/status
	mux.Handle("/api/services/", adminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/status"):
			serviceHandler.UpdateStatus(w, r)
		case r.Method == http.MethodPut:
			serviceHandler.UpdateDetails(w, r)
		case r.Method == http.MethodDelete:
			serviceHandler.Delete(w, r)
		default:
			util.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})))

	return mux
}
