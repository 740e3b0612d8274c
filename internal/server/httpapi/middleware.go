package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Adam9898/pw-manager-backend/internal/logging"
	"github.com/Adam9898/pw-manager-backend/internal/server/models"
)

// RefreshTokenHeader carries the re-issued session token back to the client
// on every request that presented a valid one, so an active session keeps
// sliding instead of expiring mid-use.
const RefreshTokenHeader = "X-Refresh-Token"

// subjectKey is the gin context key under which AuthGuard stores the
// resolved account.
const subjectKey = "auth.subject"

// TokenManager issues and verifies session tokens.
type TokenManager interface {
	Issue(userID string) (string, error)
	Verify(tokenString string) (string, error)
}

// SubjectResolver resolves a verified token subject to an account.
type SubjectResolver interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// CurrentUser returns the account AuthGuard resolved for this request.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(subjectKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Missing or malformed headers return an error, never a panic.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New("authorization header is not a bearer token")
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}

// AuthGuard rejects any request that does not carry a valid session token
// for an existing account. All failure modes share one response, a 401 with
// a generic body, so a caller cannot tell a bad token from a deleted
// account. On success the resolved account is stored in the request context
// and a fresh token is set on the refresh header.
func AuthGuard(tokens TokenManager, subjects SubjectResolver, logger logging.Logger) gin.HandlerFunc {
	logger = logger.With("module", "auth_guard")

	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			unauthorized(c)
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := subjects.GetByID(c.Request.Context(), userID)
		if err != nil {
			logger.Debug(c.Request.Context(), "token subject not resolvable", "user_id", userID, "error", err)
			unauthorized(c)
			return
		}

		if fresh, err := tokens.Issue(user.ID); err == nil {
			c.Header(RefreshTokenHeader, fresh)
		} else {
			logger.Warn(c.Request.Context(), "token refresh failed", "user_id", user.ID, "error", err)
		}

		c.Set(subjectKey, user)
		c.Next()
	}
}

// JWTRefresher runs on the public routes. A request without a token passes
// through untouched; a request with a valid token gets a fresh one on the
// refresh header; an invalid token is ignored. It never rejects.
func JWTRefresher(tokens TokenManager, logger logging.Logger) gin.HandlerFunc {
	logger = logger.With("module", "jwt_refresher")

	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.Next()
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			logger.Debug(c.Request.Context(), "refresh skipped", "error", err)
			c.Next()
			return
		}

		if fresh, err := tokens.Issue(userID); err == nil {
			c.Header(RefreshTokenHeader, fresh)
		} else {
			logger.Warn(c.Request.Context(), "token refresh failed", "user_id", userID, "error", err)
		}
		c.Next()
	}
}

// RequireRole forwards the request only when the resolved account holds the
// role. It must run after AuthGuard. A missing role gets the same 401 as a
// missing token.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.HasRole(role) {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
