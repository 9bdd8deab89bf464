package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agrisight/pkg/auth/controller"
	"agrisight/pkg/middleware"
)

type authCtrl struct{}

func NewAuthController() controller.AuthController { return &authCtrl{} }

// Login remembers the given uid in the identity cookie. Identity itself is
// issued elsewhere; this only binds a browser to it.
func (h *authCtrl) Login(c echo.Context) error {
	uid := strings.TrimSpace(c.QueryParam("uid"))
	if uid == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "uid is required"})
	}
	c.SetCookie(&http.Cookie{Name: middleware.UserCookie, Value: uid, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid := middleware.UserID(c)
	return c.JSON(http.StatusOK, map[string]any{"uid": uid, "anonymous": uid == "" || uid == middleware.LocalUser})
}
