package controller

import (
	"time"

	"smartnotes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// CookieSettings controls the auth cookies set on login, refresh and
// Google sign-in.
type CookieSettings struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secure     bool
}

func (s CookieSettings) set(ctx *fiber.Ctx, access, refresh string) {
	serverutils.SetAuthCookies(ctx, access, refresh, s.AccessTTL, s.RefreshTTL, s.Secure)
}

func (s CookieSettings) clear(ctx *fiber.Ctx) {
	serverutils.ClearAuthCookies(ctx, s.Secure)
}
