package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEcho() *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))

	e.POST("/login", func(c echo.Context) error {
		if err := SetAdminSession(c, 7); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/admin/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, "admin")
	}, RequireAdmin)
	e.GET("/whoami", func(c echo.Context) error {
		return c.JSON(http.StatusOK, AdminIDFromContext(c))
	}, RequireAdmin)
	e.GET("/logout", func(c echo.Context) error {
		if err := ClearAdminSession(c); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})

	return e
}

func login(t *testing.T, e *echo.Echo) []*http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestRequireAdminRedirectsAnonymous(t *testing.T) {
	e := setupEcho()

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestRequireAdminAllowsAuthenticatedSession(t *testing.T) {
	e := setupEcho()
	cookies := login(t, e)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())
}

func TestRequireAdminBindsAdminIDToContext(t *testing.T) {
	e := setupEcho()
	cookies := login(t, e)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7\n", rec.Body.String())
}

func TestClearAdminSessionLogsOut(t *testing.T) {
	e := setupEcho()
	cookies := login(t, e)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The dropped cookie must no longer authenticate.
	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
