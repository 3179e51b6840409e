package http

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
)

// SecurityHeaders adds security-related headers to all responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Swagger UI needs scripts, styles, and images to render
		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		} else {
			w.Header().Set("Content-Security-Policy", "default-src 'none'")
		}

		next.ServeHTTP(w, r)
	})
}

// Recoverer turns a panic into a 500 envelope. The stack trace is included
// in the body only when exposeStack is set.
func Recoverer(exposeStack bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				stack := string(debug.Stack())
				logging.GetLoggerFromContext(r.Context()).Error("panic recovered",
					"panic", rec,
					"stack", stack,
				)

				env := httputil.Envelope{Message: "Internal server error", Code: httputil.CodeInternalError}
				if exposeStack {
					env.Stack = stack
				}
				httputil.RespondJSON(w, env, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	httputil.RespondErrorWithCode(w, "Route not found", httputil.CodeRouteNotFound, http.StatusNotFound)
}
