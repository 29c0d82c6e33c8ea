package http

import (
	"context"
	"net/http"

	"github.com/elbatin/JustzMatbaa/pkg/httputil"
)

// SessionHeader identifies the shopper. The storefront generates a session id
// per browser and sends it on every cart and checkout call.
const SessionHeader = "X-Session-ID"

type sessionKeyType string

const sessionKey sessionKeyType = "session"

// RequireSession rejects requests that do not carry a shopper session header
// and stores the session id in context for the handlers.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "MISSING_SESSION",
					Message: "the " + SessionHeader + " header is required",
				},
			})
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the shopper session id set by RequireSession.
func SessionFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey).(string); ok {
		return id
	}
	return ""
}
