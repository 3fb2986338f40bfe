package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"citizengate/pkg/requestcontext"
)

// DefaultUserID is the sentinel owner used when a request carries no identity.
// It mirrors the kiosk deployment where a shared terminal serves walk-ins.
const DefaultUserID = "default"

// ResolveUser determines the acting user for a request. Priority:
//  1. a valid bearer token's "sub" claim (HMAC-signed, key from config)
//  2. the user_id query parameter
//  3. DefaultUserID
//
// An invalid or expired token is rejected rather than downgraded so a client
// that believes it is authenticated never silently acts as the default user.
func ResolveUser(signingKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := DefaultUserID
			if q := strings.TrimSpace(r.URL.Query().Get("user_id")); q != "" {
				userID = q
			}

			const bearerPrefix = "Bearer "
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, bearerPrefix) && signingKey != "" {
				sub, err := subjectFromToken(strings.TrimPrefix(auth, bearerPrefix), signingKey)
				if err != nil {
					logger.WarnContext(r.Context(), "bearer token rejected",
						"request_id", requestcontext.RequestID(r.Context()),
						"error", err,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"invalid bearer token"}`))
					return
				}
				userID = sub
			}

			ctx := requestcontext.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func subjectFromToken(tokenString, signingKey string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(signingKey), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return sub, nil
}
