package middleware

import (
	"net/http"
	"strings"

	"wordaday-backend/pkg/auth"
	"wordaday-backend/pkg/common"
	apperrors "wordaday-backend/pkg/errors"

	"go.uber.org/zap"
)

// Authenticate validates requests and attaches the user context. Two paths
// are accepted: a request API Gateway already authorized (identity headers
// set by the Lambda adapter) and a bearer token validated locally. A nil
// validator disables the local path.
func Authenticate(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := gatewayUser(r); user != nil {
				next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), user)))
				return
			}

			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "Missing authentication token")
				return
			}
			if validator == nil {
				respondUnauthorized(w, "Token validation not configured")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("Invalid token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				switch err {
				case auth.ErrExpiredToken:
					respondUnauthorized(w, "Token has expired")
				case auth.ErrInvalidSignature:
					respondUnauthorized(w, "Invalid token signature")
				default:
					respondUnauthorized(w, "Invalid token")
				}
				return
			}

			user := &auth.UserContext{
				UserID: claims.UserID,
				Email:  claims.Email,
				Roles:  claims.Roles,
			}
			next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), user)))
		})
	}
}

// gatewayUser reads the identity headers the Lambda adapter sets after API
// Gateway's JWT authorizer has run, or nil when absent.
func gatewayUser(r *http.Request) *auth.UserContext {
	if r.Header.Get("X-API-Gateway-Authorized") != "true" {
		return nil
	}
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		return nil
	}

	roles := []string{"authenticated"}
	if raw := r.Header.Get("X-User-Roles"); raw != "" {
		roles = strings.Split(raw, ",")
	}
	return &auth.UserContext{
		UserID: userID,
		Email:  r.Header.Get("X-User-Email"),
		Roles:  roles,
	}
}

// extractToken pulls the bearer token from the Authorization header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return authHeader
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	common.RespondError(w, http.StatusUnauthorized, string(apperrors.ErrorTypeUnauthorized), message)
}
