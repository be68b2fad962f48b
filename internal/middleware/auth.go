package middleware

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// SessionName is the cookie name carrying the admin session.
	SessionName = "fadistore_session"

	sessionAdminIDKey = "admin_id"

	// AdminIDContextKey is where RequireAdmin places the authenticated admin
	// id on the echo context. Handlers read it with AdminIDFromContext
	// instead of touching the session again.
	AdminIDContextKey = "admin_id"
)

// RequireAdmin guards admin pages. Requests without a valid session are
// redirected to the login page.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(SessionName, c)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin")
		}

		adminID, ok := sess.Values[sessionAdminIDKey].(int64)
		if !ok || adminID == 0 {
			return c.Redirect(http.StatusSeeOther, "/admin")
		}

		c.Set(AdminIDContextKey, adminID)
		return next(c)
	}
}

// AdminIDFromContext returns the admin id RequireAdmin bound to the request,
// or 0 when the request is unauthenticated.
func AdminIDFromContext(c echo.Context) int64 {
	adminID, ok := c.Get(AdminIDContextKey).(int64)
	if !ok {
		return 0
	}
	return adminID
}

// SetAdminSession binds the admin id into the cookie session after a
// successful login.
func SetAdminSession(c echo.Context, adminID int64) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}

	sess.Values[sessionAdminIDKey] = adminID
	return sess.Save(c.Request(), c.Response())
}

// ClearAdminSession destroys the session on logout.
func ClearAdminSession(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}

	sess.Values = make(map[interface{}]interface{})
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// IsAuthenticated reports whether the request carries a valid admin session.
// Used by the login page to bounce already-authenticated admins to the
// dashboard.
func IsAuthenticated(c echo.Context) bool {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return false
	}

	adminID, ok := sess.Values[sessionAdminIDKey].(int64)
	return ok && adminID != 0
}

// AddFlash queues a one-shot message for the next rendered page.
func AddFlash(c echo.Context, category, message string) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return
	}

	sess.AddFlash(message, category)
	sess.Save(c.Request(), c.Response())
}

// TakeFlashes drains queued messages of one category.
func TakeFlashes(c echo.Context, category string) []string {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return nil
	}

	raw := sess.Flashes(category)
	if len(raw) > 0 {
		sess.Save(c.Request(), c.Response())
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
