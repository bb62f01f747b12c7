package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// The auth middleware stores the verified claims map under "user"
// (see echoServer.authMiddleware).

func claims(c echo.Context) (map[string]any, error) {
	m, ok := c.Get("user").(map[string]any)
	if !ok || m == nil {
		return nil, errors.New("no auth claims in context")
	}
	return m, nil
}

func UserIDFromContext(c echo.Context) (int64, error) {
	m, err := claims(c)
	if err != nil {
		return 0, err
	}
	if f, ok := m["sub"].(float64); ok {
		return int64(f), nil
	}
	return 0, errors.New("sub missing in claims")
}

func EmailFromContext(c echo.Context) (string, error) {
	m, err := claims(c)
	if err != nil {
		return "", err
	}
	if s, ok := m["email"].(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("email missing in claims")
}
