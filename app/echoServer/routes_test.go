package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"rentaldesk/app/echoServer/jwtx"
	jwtutil "rentaldesk/util/jwt"
)

const testSecret = "test-secret"

func callProtected(t *testing.T, auth string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := authMiddleware(testSecret)(func(c echo.Context) error {
		id, err := jwtx.UserIDFromContext(c)
		require.NoError(t, err)
		email, err := jwtx.EmailFromContext(c)
		require.NoError(t, err)
		return c.JSON(http.StatusOK, echo.Map{"id": id, "email": email})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestAuthMiddleware_AccessTokenPassesWithClaims(t *testing.T) {
	p, err := jwtutil.IssuePair(testSecret, 42, "a@b.com", time.Hour, time.Hour)
	require.NoError(t, err)

	rec := callProtected(t, "Bearer "+p.Access)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":42`)
	require.Contains(t, rec.Body.String(), `"email":"a@b.com"`)
}

func TestAuthMiddleware_RejectsRefreshAsAccess(t *testing.T) {
	p, err := jwtutil.IssuePair(testSecret, 42, "a@b.com", time.Hour, time.Hour)
	require.NoError(t, err)

	rec := callProtected(t, "Bearer "+p.Refresh)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	rec := callProtected(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Authentication credentials were not provided.")
}
