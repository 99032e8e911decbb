package controller

import (
	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/pkg/serverutils"
	"smartnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INotebookController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type notebookController struct {
	service service.INotebookService
	auth    fiber.Handler
}

func NewNotebookController(service service.INotebookService, auth fiber.Handler) INotebookController {
	return &notebookController{service: service, auth: auth}
}

func (c *notebookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notebooks")
	h.Use(c.auth)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Patch("/:id", c.Rename)
	h.Delete("/:id", c.Delete)
}

func (c *notebookController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNotebookRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Notebook created", res))
}

func (c *notebookController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notebooks fetched", res))
}

func (c *notebookController) Rename(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	notebookId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RenameNotebookRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Rename(ctx.UserContext(), userId, notebookId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notebook renamed", res))
}

func (c *notebookController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	notebookId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Delete(ctx.UserContext(), userId, notebookId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notebook deleted", res))
}
