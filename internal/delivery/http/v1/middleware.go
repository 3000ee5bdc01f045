package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thenamakop/taskboard/internal/models"
)

const (
	userIDCtxKey       = "user_id"
	sessionTokenCtxKey = "session_token"
)

const (
	tokenCookie = "token"
	loginPage   = "/login.html"
)

// HandleAuthMiddleware guards API routes. The token comes from the
// Authorization header; failure is a structured 401.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		abort(c, newUnauthorizedError("authorization required"))
		return
	}

	session, err := h.resolveSession(c, token)
	if err != nil {
		abort(c, newUnauthorizedError("invalid or expired session"))
		return
	}

	c.Set(userIDCtxKey, session.UserID)
	c.Set(sessionTokenCtxKey, session.Token)
	c.Next()
}

// HandlePageMiddleware guards HTML views. The token comes from the
// Authorization header or the token cookie; failure is a redirect to
// the login page, never an error body.
func (h *handlerImpl) HandlePageMiddleware(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		token, _ = c.Cookie(tokenCookie)
	}
	if token == "" {
		c.Redirect(http.StatusFound, loginPage)
		c.Abort()
		return
	}

	session, err := h.resolveSession(c, token)
	if err != nil {
		c.Redirect(http.StatusFound, loginPage)
		c.Abort()
		return
	}

	c.Set(userIDCtxKey, session.UserID)
	c.Set(sessionTokenCtxKey, session.Token)
	c.Next()
}

// resolveSession is the single token-resolution step shared by both
// gates; only the failure action differs between them.
func (h *handlerImpl) resolveSession(c *gin.Context, token string) (*models.Session, error) {
	session, err := h.sessions.Resolve(c, token)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to resolve session")
		return nil, err
	}
	return session, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func getStringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}
