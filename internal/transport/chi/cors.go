package chi

import "net/http"

// Headers set on every response so browser clients on any origin can call the façade.
const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "Origin, X-Requested-With, Content-Type, Accept"
)

// CORSMiddleware adds the permissive CORS headers to every response.
func CORSMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			next.ServeHTTP(w, r)
		})
	}
}
