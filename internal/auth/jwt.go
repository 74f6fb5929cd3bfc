package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid when no explicit TTL is
// configured. There is no refresh or revocation path; a leaked token is good
// until it expires.
const DefaultTTL = 15 * time.Minute

var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers bad signatures and malformed payloads.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrMissingToken means the request carried no bearer token at all.
	ErrMissingToken = errors.New("missing auth token")
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type contextKey string

const userIDKey = contextKey("userID")

// TokenManager signs and validates access tokens with a single symmetric
// key. Construct it from config at startup and pass it to the router.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager. A zero ttl means DefaultTTL.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a new signed token for a user ID, expiring after the
// configured TTL.
func (tm *TokenManager) Issue(userID int64) (string, error) {
	return tm.IssueWithTTL(userID, tm.ttl)
}

// IssueWithTTL creates a signed token with an explicit lifetime.
func (tm *TokenManager) IssueWithTTL(userID int64, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate parses and verifies a token string, returning its claims.
// Expired tokens are reported distinctly from malformed or tampered ones.
func (tm *TokenManager) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Middleware protects routes. It requires an "Authorization: Bearer <token>"
// header; requests failing validation are rejected before any handler runs.
func (tm *TokenManager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := BearerToken(r)
			if err != nil {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}

			claims, err := tm.Validate(tokenStr)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					http.Error(w, "Token expired", http.StatusUnauthorized)
				} else {
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from a request's Authorization header.
func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMissingToken
	}
	return parts[1], nil
}

// UserID returns the authenticated user's ID from a request context.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID returns a context carrying an authenticated user ID. Intended
// for tests that call handlers directly.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}
