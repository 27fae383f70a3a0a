package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"fooddash/internal/models"
	"fooddash/internal/web"
)

type contextKey string

const (
	// UserIDKey carries the authenticated user's id through request context
	UserIDKey contextKey = "user_id"
	// UserRoleKey carries the authenticated user's role through request context
	UserRoleKey contextKey = "user_role"
)

// Claims defines the JWT payload for authenticated sessions
type Claims struct {
	UserID int             `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates session tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer with the given secret and lifetime
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate signs a new token for the given user
func (t *TokenIssuer) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a bearer token string
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < 8 || header[:7] != "Bearer " {
		return ""
	}
	return header[7:]
}

// Authenticate requires a valid bearer token and stores the user identity in context
func (t *TokenIssuer) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			web.RespondError(w, http.StatusUnauthorized, "Missing or malformed token", "")
			return
		}

		claims, err := t.Validate(tokenString)
		if err != nil {
			web.RespondError(w, http.StatusUnauthorized, "Invalid token", "")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin requires an authenticated admin account
func (t *TokenIssuer) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return t.Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if UserRoleFromContext(r.Context()) != models.RoleAdmin {
			web.RespondError(w, http.StatusForbidden, "Admin access required", "")
			return
		}
		next(w, r, ps)
	})
}

// OptionalAuth attaches the user identity when a valid token is present
// and proceeds regardless of token state
func (t *TokenIssuer) OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if tokenString := bearerToken(r); tokenString != "" {
			if claims, err := t.Validate(tokenString); err == nil {
				ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
				ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
				r = r.WithContext(ctx)
			}
		}
		next(w, r, ps)
	}
}

// UserIDFromContext returns the authenticated user id, or 0 when anonymous
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(UserIDKey).(int); ok {
		return id
	}
	return 0
}

// UserRoleFromContext returns the authenticated user role, or empty when anonymous
func UserRoleFromContext(ctx context.Context) models.UserRole {
	if role, ok := ctx.Value(UserRoleKey).(models.UserRole); ok {
		return role
	}
	return ""
}
