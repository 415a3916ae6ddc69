package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// accessTokenCookie is the cookie carrying the signed viewer-identity claim.
const accessTokenCookie = "accessToken"

// Identity resolves the optional viewer identity from a bearer token or the
// access-token cookie. An absent, malformed or badly signed token yields an
// anonymous request, never an error: read endpoints serve anonymous viewers,
// and mutation endpoints enforce authentication with RequireViewer.
func Identity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if viewerID, ok := resolveViewer(r, secret); ok {
				ctx := context.WithValue(r.Context(), viewerIDKey, viewerID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireViewer rejects anonymous requests with 401. It must run after
// Identity in the chain.
func RequireViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ViewerID(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"statusCode": http.StatusUnauthorized,
				"message":    "authentication required",
				"success":    false,
				"errors":     []string{"missing or invalid credentials"},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ViewerID retrieves the authenticated viewer id from context. ok is false
// for anonymous requests.
func ViewerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(viewerIDKey).(uuid.UUID)
	return id, ok
}

func resolveViewer(r *http.Request, secret []byte) (uuid.UUID, bool) {
	raw := extractToken(r)
	if raw == "" {
		return uuid.Nil, false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, false
	}

	viewerID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, false
	}

	return viewerID, true
}

func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
