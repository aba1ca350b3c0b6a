package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CORSPolicy lists the browser origins allowed to call the slot API. The API is
// anonymous, so credentials are never allowed.
type CORSPolicy struct {
	AllowedOrigins []string // "*" allows any origin
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         time.Duration
}

// DefaultCORSPolicy allows the given origins to call the read-only slot API.
func DefaultCORSPolicy(origins []string) CORSPolicy {
	return CORSPolicy{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader, "Traceparent", "Tracestate"},
		MaxAge:         10 * time.Minute,
	}
}

// WithCORS answers preflights and decorates responses for allowed origins. With no
// allowed origins it is a no-op.
func WithCORS(cfg CORSPolicy) Middleware {
	origins := map[string]bool{}
	anyOrigin := false
	for _, o := range cfg.AllowedOrigins {
		o = strings.ToLower(strings.TrimSpace(o))
		switch o {
		case "":
		case "*":
			anyOrigin = true
		default:
			origins[o] = true
		}
	}
	if !anyOrigin && len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	preflight := http.Header{}
	if v := strings.Join(cfg.AllowedMethods, ", "); v != "" {
		preflight.Set("Access-Control-Allow-Methods", v)
	}
	if v := strings.Join(cfg.AllowedHeaders, ", "); v != "" {
		preflight.Set("Access-Control-Allow-Headers", v)
	}
	if secs := int(cfg.MaxAge.Seconds()); secs > 0 {
		preflight.Set("Access-Control-Max-Age", strconv.Itoa(secs))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()
			h.Add("Vary", "Origin")
			if origin == "" || !(anyOrigin || origins[strings.ToLower(origin)]) {
				next.ServeHTTP(w, r)
				return
			}

			if anyOrigin {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			h.Set("Access-Control-Expose-Headers", RequestIDHeader)

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				for k, v := range preflight {
					h[k] = v
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
