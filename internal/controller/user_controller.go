package controller

import (
	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/pkg/serverutils"
	"smartnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	RefreshToken(ctx *fiber.Ctx) error
	CurrentUser(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	UpdateAccount(ctx *fiber.Ctx) error
}

type userController struct {
	authService service.IAuthService
	userService service.IUserService
	auth        fiber.Handler
	cookies     CookieSettings
}

func NewUserController(
	authService service.IAuthService,
	userService service.IUserService,
	auth fiber.Handler,
	cookies CookieSettings,
) IUserController {
	return &userController{
		authService: authService,
		userService: userService,
		auth:        auth,
		cookies:     cookies,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Post("/refresh-token", c.RefreshToken)
	h.Post("/logout", c.auth, c.Logout)
	h.Get("/current-user", c.auth, c.CurrentUser)
	h.Post("/change-password", c.auth, c.ChangePassword)
	h.Patch("/update-account", c.auth, c.UpdateAccount)
}

func (c *userController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("User registered successfully", res))
}

func (c *userController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	c.cookies.set(ctx, res.AccessToken, res.RefreshToken)
	return ctx.JSON(serverutils.SuccessResponse("User logged in successfully", res))
}

func (c *userController) Logout(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	if err := c.authService.Logout(ctx.UserContext(), userId); err != nil {
		return err
	}
	c.cookies.clear(ctx)
	return ctx.JSON(serverutils.SuccessResponse[any]("User logged out", nil))
}

// RefreshToken reads the token from the refreshToken cookie, falling back
// to the request body.
func (c *userController) RefreshToken(ctx *fiber.Ctx) error {
	raw := ctx.Cookies(serverutils.RefreshTokenCookie)
	if raw == "" {
		var req dto.RefreshTokenRequest
		if err := serverutils.ParseBody(ctx, &req); err != nil {
			return err
		}
		raw = req.RefreshToken
	}

	res, err := c.authService.RefreshToken(ctx.UserContext(), raw)
	if err != nil {
		return err
	}
	c.cookies.set(ctx, res.AccessToken, res.RefreshToken)
	return ctx.JSON(serverutils.SuccessResponse("Access token refreshed", res))
}

func (c *userController) CurrentUser(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.CurrentUser(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Current user fetched", res))
}

func (c *userController) ChangePassword(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.userService.ChangePassword(ctx.UserContext(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Password changed successfully", nil))
}

func (c *userController) UpdateAccount(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateAccountRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.UpdateAccount(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Account details updated", res))
}
