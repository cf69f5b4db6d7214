package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/medikart/backoffice/internal/backoffice/repository"
)

type contextKey string

const (
	// StaffIDKey is the key for the staff id in the request context
	StaffIDKey contextKey = "staffID"
	// StaffRoleKey is the key for the staff role in the request context
	StaffRoleKey contextKey = "staffRole"
	// Authentication-related constants
	jwtExpirationTime = 24 * time.Hour
	authCookieName    = "auth_token"
	bearerSchema      = "Bearer "
)

// JWTConfig contains configuration for JWT authentication
type JWTConfig struct {
	SecretKey string
	Repo      repository.Repository
}

// JWTClaims represents JWT claims
type JWTClaims struct {
	StaffID int64  `json:"staff_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for a staff member
func GenerateToken(staffID int64, role, secretKey string) (string, error) {
	claims := JWTClaims{
		StaffID: staffID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(jwtExpirationTime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// AuthMiddleware creates middleware that checks if the caller is authenticated
func AuthMiddleware(jwtConfig *JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header or cookie
			tokenString := extractToken(r)
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Parse token
			token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(jwtConfig.SecretKey), nil
			})

			if err != nil || !token.Valid {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Extract staff id from claims
			claims, ok := token.Claims.(*JWTClaims)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Verify that the staff member exists in the database
			ctx := r.Context()
			staff, err := jwtConfig.Repo.GetStaffByID(ctx, claims.StaffID)
			if err != nil || staff == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Add staff identity to request context
			ctx = context.WithValue(ctx, StaffIDKey, claims.StaffID)
			ctx = context.WithValue(ctx, StaffRoleKey, staff.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose role is not admin. Must run after
// AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetStaffRole(r.Context())
		if !ok || role != models.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractToken extracts JWT token from Authorization header or cookie
func extractToken(r *http.Request) string {
	// Try from Authorization header first
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, bearerSchema) {
		return strings.TrimPrefix(authHeader, bearerSchema)
	}

	// Try from cookie
	cookie, err := r.Cookie(authCookieName)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// SetAuthCookie sets authentication cookie
func SetAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(jwtExpirationTime.Seconds()),
	})
}

// GetStaffID extracts the staff id from the request context
func GetStaffID(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(StaffIDKey).(int64)
	return staffID, ok
}

// GetStaffRole extracts the staff role from the request context
func GetStaffRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(StaffRoleKey).(string)
	return role, ok
}
