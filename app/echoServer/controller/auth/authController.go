package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"rentaldesk/model"
	authsvc "rentaldesk/service/auth"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new user
// @Summary      Register user
// @Description  Register with username/email/password, returns a JWT pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "email/username already taken or invalid"
// @Failure      500  {object}  map[string]any
// @Router       /api/register/ [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email, username, and password are required."})
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email, username, and password are required."})
	}

	u, tokens, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrEmailTaken:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is already registered."})
		case authsvc.ErrUsernameTaken:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username already taken."})
		case authsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email, username, and password are required."})
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("register failed", "err", err, "req_id", rid, "path", c.Path())
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Something went wrong while registering. Please try again later."})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully!",
		"user": echo.Map{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
		},
		"tokens": tokens,
	})
}

// Login
// @Summary      Login
// @Description  Login with email + password, returns a JWT pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any "wrong password"
// @Failure      404  {object}  map[string]any "unknown email"
// @Router       /api/login/ [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required."})
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required."})
	}

	u, tokens, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidCreds:
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid password."})
		case authsvc.ErrNoAccount:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No account found with this email."})
		case authsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required."})
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("login failed", "err", err, "req_id", rid, "path", c.Path())
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Something went wrong during login. Please try again."})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful!",
		"user": echo.Map{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
		},
		"tokens": tokens,
	})
}
