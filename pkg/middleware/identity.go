package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	UserHeader = "X-User-Id"
	UserCookie = "AGRI_UID"
	// LocalUser owns the store when identity is not enforced.
	LocalUser = "local"

	uidKey = "uid"
)

// Identity resolves the caller from the X-User-Id header, then the AGRI_UID
// cookie, then the uid query param. A uid given as query param is remembered
// in the cookie. Callers with none of them become anonymous, which may be
// empty. Nothing is rejected here.
func Identity(anonymous string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := strings.TrimSpace(c.Request().Header.Get(UserHeader))
			if uid == "" {
				if ck, err := c.Cookie(UserCookie); err == nil {
					uid = strings.TrimSpace(ck.Value)
				}
			}
			if uid == "" {
				if q := strings.TrimSpace(c.QueryParam("uid")); q != "" {
					c.SetCookie(&http.Cookie{Name: UserCookie, Value: q, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
					uid = q
				}
			}
			if uid == "" {
				uid = anonymous
			}
			if uid != "" {
				c.Set(uidKey, uid)
			}
			return next(c)
		}
	}
}

// AnonymousAs is what Identity should fall back to: LocalUser unless
// identity is enforced.
func AnonymousAs(enforce bool) string {
	if enforce {
		return ""
	}
	return LocalUser
}

// RequireUser guards the store endpoints.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if UserID(c) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "user identity required"})
			}
			return next(c)
		}
	}
}

// UserID is empty for unidentified callers when identity is enforced.
func UserID(c echo.Context) string {
	uid, _ := c.Get(uidKey).(string)
	return uid
}
