package echoServer

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"rentaldesk/app/echoServer/controller/analytics"
	"rentaldesk/app/echoServer/controller/auth"
	"rentaldesk/app/echoServer/controller/catalog"
	"rentaldesk/app/echoServer/controller/rental"
	"rentaldesk/app/echoServer/controller/student"
	jwtutil "rentaldesk/util/jwt"
)

type C struct {
	Auth      *auth.Controller
	Student   *student.Controller
	Catalog   *catalog.Controller
	Rental    *rental.Controller
	Analytics *analytics.Controller
	JWTSecret string
}

// Register wires the /api surface. Paths, methods, and trailing slashes are
// part of the published contract and must not change.
func Register(e *echo.Echo, c C) {
	api := e.Group("/api")

	// Public
	api.POST("/register/", c.Auth.Register)
	api.POST("/login/", c.Auth.Login)
	api.GET("/books/search/", c.Catalog.Search)

	// Authenticated
	priv := api.Group("", authMiddleware(c.JWTSecret))

	priv.POST("/students/add/", c.Student.Add)
	priv.GET("/student/list/", c.Student.List)

	priv.POST("/rentals/create/", c.Rental.Create)
	priv.GET("/rentals/list/", c.Rental.ListAll)
	priv.GET("/rentals/student/:id/", c.Rental.ByStudent)
	priv.POST("/rentals/extend/:id/", c.Rental.Extend)
	priv.PUT("/rentals/return/:id/", c.Rental.Return)

	priv.GET("/analytics/", c.Analytics.Overview)
	priv.GET("/recommendations/:student_id/", c.Analytics.Recommendations)
}

// authMiddleware validates bearer tokens through util/jwt, so refresh tokens
// presented as access tokens are rejected at the door. The claims map lands
// under the "user" context key for jwtx to read.
func authMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			return jwtutil.ParseAuth(auth, secret)
		},
		ErrorHandler: func(ec echo.Context, err error) error {
			return ec.JSON(http.StatusUnauthorized, echo.Map{"detail": "Authentication credentials were not provided."})
		},
	})
}
