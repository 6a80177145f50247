package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the cookie carrying the signed session token.
	SessionCookie = "session"

	ctxUserIDKey = "userID"
)

// publicPaths are reachable without a session.
var publicPaths = map[string]struct{}{
	"/":       {},
	"/signin": {},
	"/signup": {},
}

// TokenVerifier resolves a session token to a user id.
type TokenVerifier func(token string) (string, error)

// Decision is the outcome of the session gate for a single request.
type Decision struct {
	Allow       bool
	UserID      string
	RedirectURL string
}

// Decide gates one request: API paths and the public set pass untouched,
// anything else needs a verifiable token or gets sent to sign-in with the
// original path preserved. Pure function, no side effects.
func Decide(path, token string, verify TokenVerifier) Decision {
	if strings.HasPrefix(path, "/api/") {
		// API operations enforce their own authorization
		return Decision{Allow: true}
	}
	if _, ok := publicPaths[path]; ok {
		return Decision{Allow: true}
	}

	if token != "" && verify != nil {
		if userID, err := verify(token); err == nil {
			return Decision{Allow: true, UserID: userID}
		}
	}

	return Decision{RedirectURL: "/signin?callbackUrl=" + url.QueryEscape(path)}
}

// SessionGate adapts Decide into gin middleware, attaching the decoded user
// id to the request context when a page request carries a valid session.
func SessionGate(verify TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)

		decision := Decide(c.Request.URL.Path, token, verify)
		if !decision.Allow {
			c.Redirect(http.StatusFound, decision.RedirectURL)
			c.Abort()
			return
		}
		if decision.UserID != "" {
			c.Set(ctxUserIDKey, decision.UserID)
		}
		c.Next()
	}
}
