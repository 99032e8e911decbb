package controller

import (
	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/pkg/serverutils"
	"smartnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	GoogleLogin(ctx *fiber.Ctx) error
	GoogleCallback(ctx *fiber.Ctx) error
	GoogleToken(ctx *fiber.Ctx) error
}

type oauthController struct {
	service   service.IOAuthService
	cookies   CookieSettings
	clientURL string
}

// NewOAuthController redirects the browser to clientURL after a successful
// callback; with an empty clientURL the session is returned as JSON.
func NewOAuthController(service service.IOAuthService, cookies CookieSettings, clientURL string) IOAuthController {
	return &oauthController{service: service, cookies: cookies, clientURL: clientURL}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/google")
	h.Get("", c.GoogleLogin)
	h.Get("/callback", c.GoogleCallback)
	h.Post("/token", c.GoogleToken)
}

func (c *oauthController) GoogleLogin(ctx *fiber.Ctx) error {
	return ctx.Redirect(c.service.GoogleLoginURL(), fiber.StatusTemporaryRedirect)
}

func (c *oauthController) GoogleCallback(ctx *fiber.Ctx) error {
	res, err := c.service.HandleGoogleCallback(ctx.UserContext(), ctx.Query("code"), ctx.Query("state"))
	if err != nil {
		return err
	}

	c.cookies.set(ctx, res.AccessToken, res.RefreshToken)
	if c.clientURL != "" {
		return ctx.Redirect(c.clientURL, fiber.StatusTemporaryRedirect)
	}
	return ctx.JSON(serverutils.SuccessResponse("Signed in with Google", res))
}

func (c *oauthController) GoogleToken(ctx *fiber.Ctx) error {
	var req dto.GoogleTokenRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.LoginWithGoogleIdToken(ctx.UserContext(), req.IdToken)
	if err != nil {
		return err
	}
	c.cookies.set(ctx, res.AccessToken, res.RefreshToken)
	return ctx.JSON(serverutils.SuccessResponse("Signed in with Google", res))
}
