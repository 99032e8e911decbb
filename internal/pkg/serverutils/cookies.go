package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SetAuthCookies stores both tokens as httpOnly cookies.
func SetAuthCookies(ctx *fiber.Ctx, access, refresh string, accessTTL, refreshTTL time.Duration, secure bool) {
	now := time.Now()
	ctx.Cookie(authCookie(AccessTokenCookie, access, now.Add(accessTTL), secure))
	ctx.Cookie(authCookie(RefreshTokenCookie, refresh, now.Add(refreshTTL), secure))
}

func ClearAuthCookies(ctx *fiber.Ctx, secure bool) {
	expired := time.Unix(0, 0)
	ctx.Cookie(authCookie(AccessTokenCookie, "", expired, secure))
	ctx.Cookie(authCookie(RefreshTokenCookie, "", expired, secure))
}

func authCookie(name, value string, expires time.Time, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
