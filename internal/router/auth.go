package router

import (
	"errors"
	"net/http"

	"github.com/DjordjeVuckovic/newsroom/internal/apperr"
	"github.com/DjordjeVuckovic/newsroom/internal/auth"
	"github.com/DjordjeVuckovic/newsroom/internal/dto"
	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	e       *echo.Echo
	session *auth.Session
}

func NewAuthRouter(e *echo.Echo, session *auth.Session) *AuthRouter {
	return &AuthRouter{
		e:       e,
		session: session,
	}
}

func (r *AuthRouter) Bind() {
	g := r.e.Group("/auth")
	g.POST("/login", r.loginHandler)
	g.POST("/register", r.registerHandler)
	g.POST("/logout", r.logoutHandler)
	g.POST("/forgot-password", r.forgotPasswordHandler)
	g.POST("/reset-password", r.resetPasswordHandler)
	g.GET("/me", r.meHandler)
}

func (r *AuthRouter) loginHandler(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid login body", err)
	}

	user, err := r.session.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return passThrough(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (r *AuthRouter) registerHandler(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid register body", err)
	}

	user, err := r.session.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return passThrough(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (r *AuthRouter) logoutHandler(c echo.Context) error {
	if err := r.session.Logout(); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *AuthRouter) forgotPasswordHandler(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	resp, err := r.session.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return passThrough(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (r *AuthRouter) resetPasswordHandler(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	if err := r.session.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return passThrough(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successful"})
}

func (r *AuthRouter) meHandler(c echo.Context) error {
	user := r.session.CurrentUser()
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}
	return c.JSON(http.StatusOK, user)
}

// passThrough keeps the backend's client errors (bad credentials, taken
// email) visible instead of turning them into a gateway error.
func passThrough(err error) error {
	var re *apperr.RemoteError
	if errors.As(err, &re) && re.Status >= 400 && re.Status < 500 {
		msg := re.Body
		if msg == "" {
			msg = http.StatusText(re.Status)
		}
		return echo.NewHTTPError(re.Status, msg)
	}
	return err
}
