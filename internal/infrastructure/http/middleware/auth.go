package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/response"
)

type subjectKey struct{}

// SubjectFromContext returns the token subject stored by Authenticate
func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey{}).(string)
	return subject
}

// Authenticate rejects requests without a valid HS256 bearer token.
func Authenticate(secret []byte, logger *slog.Logger) func(next http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || tokenString == "" {
				response.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			var claims jwt.RegisteredClaims
			token, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil || !token.Valid {
				logger.WarnContext(r.Context(), "Rejected bearer token",
					slog.String("error", errString(err)),
				)
				response.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AllowAll is used when authentication is disabled
func AllowAll(next http.Handler) http.Handler {
	return next
}

func errString(err error) string {
	if err == nil {
		return "invalid token"
	}
	return err.Error()
}
