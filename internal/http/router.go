package http

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/advisory-cms/internal/auth"
	"github.com/redmonkez12/advisory-cms/internal/blog"
	"github.com/redmonkez12/advisory-cms/internal/config"
	"github.com/redmonkez12/advisory-cms/internal/contact"
	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
	"github.com/redmonkez12/advisory-cms/internal/metrics"
	"github.com/redmonkez12/advisory-cms/internal/offering"
	"github.com/redmonkez12/advisory-cms/internal/pagecontent"
	"github.com/redmonkez12/advisory-cms/internal/settings"
	"github.com/redmonkez12/advisory-cms/internal/upload"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

// Pinger reports database reachability for the server details endpoint
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers groups the feature handlers mounted by the router
type Handlers struct {
	Auth        *auth.Handler
	Users       *user.Handler
	Services    *offering.Handler
	Blog        *blog.Handler
	Content     *pagecontent.Handler
	Settings    *settings.Handler
	Contact     *contact.Handler
	Upload      *upload.Handler
	RateLimit   func(purpose string) func(http.Handler) http.Handler
	AuthMW      *auth.Middleware
	Metrics     *metrics.Metrics
	DB          Pinger
	ServerStart time.Time
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	r.Use(SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(Recoverer(cfg.Server.IsDevelopment()))
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware)
	}
	r.Use(middleware.Compress(5))

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleNotFound)

	r.Get("/", handleDetails(cfg, h.DB, h.ServerStart))
	r.Get("/health", handleHealth)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	// Frontends are configured with or without the /api prefix
	r.Route("/api", func(r chi.Router) { mountAPI(r, h) })
	mountAPI(r, h)

	return r
}

func mountAPI(r chi.Router, h Handlers) {
	authn := h.AuthMW.Authenticate
	admin := h.AuthMW.RequireAdmin
	superAdmin := h.AuthMW.RequireSuperAdmin

	r.Route("/auth", func(r chi.Router) {
		r.Post("/setup", h.Auth.Setup)
		r.Get("/setup-status", h.Auth.SetupStatus)
		r.With(h.RateLimit("login")).Post("/login", h.Auth.Login)
		r.With(h.RateLimit("forgot-password")).Post("/forgot-password", h.Auth.ForgotPassword)
		r.Post("/reset-password", h.Auth.ResetPassword)
		r.With(authn).Get("/me", h.Auth.Me)
	})

	r.Route("/invitation", func(r chi.Router) {
		r.With(authn, superAdmin).Post("/invite", h.Auth.Invite)
		r.Get("/verify/{token}", h.Auth.VerifyInvitation)
		r.Post("/setup/{token}", h.Auth.SetupPassword)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authn, superAdmin)
		r.Get("/", h.Users.List)
		r.Post("/", h.Users.Create)
		r.Put("/{id}", h.Users.Update)
		r.Delete("/{id}", h.Users.Delete)
	})

	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.Services.List)
		r.Get("/{slug}", h.Services.Get)
		r.Group(func(r chi.Router) {
			r.Use(authn, admin)
			r.Post("/", h.Services.Create)
			r.Put("/{id}", h.Services.Update)
			r.Delete("/{id}", h.Services.Delete)
		})
	})

	r.Route("/blog", func(r chi.Router) {
		r.With(h.AuthMW.OptionalAuthenticate).Get("/", h.Blog.List)
		r.With(h.AuthMW.OptionalAuthenticate).Get("/{id}", h.Blog.Get)
		r.Group(func(r chi.Router) {
			r.Use(authn, admin)
			r.Post("/", h.Blog.Create)
			r.Put("/{id}", h.Blog.Update)
			r.Delete("/{id}", h.Blog.Delete)
		})
	})

	r.Route("/content", func(r chi.Router) {
		r.Get("/{page}", h.Content.Get)
		r.Group(func(r chi.Router) {
			r.Use(authn, admin)
			r.Put("/{page}", h.Content.Replace)
			r.Post("/{page}/sections", h.Content.AddSection)
			r.Put("/{page}/sections/{sectionId}", h.Content.UpdateSection)
			r.Delete("/{page}/sections/{sectionId}", h.Content.DeleteSection)
		})
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.Settings.Get)
		r.With(authn, admin).Put("/", h.Settings.Update)
	})

	r.Route("/contact", func(r chi.Router) {
		r.With(h.RateLimit("contact")).Post("/", h.Contact.Submit)
		r.Group(func(r chi.Router) {
			r.Use(authn, admin)
			r.Get("/inbox", h.Contact.Inbox)
			r.Get("/stats", h.Contact.Stats)
			r.Put("/{id}", h.Contact.Update)
			r.Delete("/{id}", h.Contact.Delete)
		})
	})

	r.With(authn, admin).Post("/upload", h.Upload.Upload)
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} httputil.Envelope
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.RespondJSON(w, map[string]any{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

func configured(ok bool) string {
	if ok {
		return "Configured"
	}
	return "Not Configured"
}

// handleDetails describes the running server
// @Summary      Server details
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       / [get]
func handleDetails(cfg *config.Config, db Pinger, started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		database := "PostgreSQL (connected)"
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				database = "PostgreSQL (unreachable)"
			}
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		httputil.RespondJSON(w, map[string]any{
			"success":   true,
			"message":   "89tcapl Backend Server",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"details": map[string]any{
				"uptime":      fmt.Sprintf("%d seconds", int(time.Since(started).Seconds())),
				"environment": cfg.Server.Env,
				"port":        cfg.Server.Port,
				"frontendUrl": cfg.Server.FrontendURL,
				"platform":    runtime.GOOS,
				"goVersion":   runtime.Version(),
				"memory": map[string]string{
					"heapAlloc": fmt.Sprintf("%d MB", mem.HeapAlloc>>20),
					"sys":       fmt.Sprintf("%d MB", mem.Sys>>20),
				},
				"configuration": map[string]string{
					"database":     database,
					"emailService": configured(cfg.Email.Configured()),
					"storage":      configured(cfg.Storage.Configured()),
				},
			},
		}, http.StatusOK)
	}
}
