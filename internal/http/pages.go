package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Placeholder pages standing in for the web UI. Everything except the
// public set sits behind the session gate; the product and profile content
// is illustrative mock data with no persistence behind it.
func registerPages(router *gin.Engine) {
	pages := map[string]struct {
		title string
		body  string
	}{
		"/":          {"Shopfront", "Welcome. <a href=\"/signin\">Sign in</a> or <a href=\"/signup\">create an account</a>."},
		"/signin":    {"Sign in", "POST /api/rpc/auth.login with your email and password."},
		"/signup":    {"Sign up", "POST /api/signup with name, email and password."},
		"/dashboard": {"Dashboard", "Your orders, interests and profile live here."},
		"/interests": {"Interests", "Pick the categories you care about via /api/rpc/categories.list."},
		"/products":  {"Products", "Mock catalog: Aurora Lamp, Driftwood Desk, Cedar Notebook."},
		"/profile":   {"Profile", "Mock profile page."},
	}

	for path, page := range pages {
		page := page
		router.GET(path, func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(renderPage(page.title, page.body)))
		})
	}
}

func renderPage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body><h1>%s</h1><p>%s</p></body>
</html>
`, title, title, body)
}
