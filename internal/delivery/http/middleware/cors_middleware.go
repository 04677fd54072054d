package middleware

import "net/http"

// CORSMiddleware answers preflight requests and stamps the allowed origin on
// every response. The patient portal and the live board run on a different
// origin than the API, so this is required in every deployment.
type CORSMiddleware struct {
	allowedOrigin string
}

// NewCORSMiddleware builds the middleware for the given origin. An empty
// origin allows everything, which is the local development setup.
func NewCORSMiddleware(allowedOrigin string) *CORSMiddleware {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return &CORSMiddleware{allowedOrigin: allowedOrigin}
}

func (r *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", r.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}
