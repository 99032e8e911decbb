package controller

import (
	"context"
	"fmt"

	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/serverutils"
	"smartnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const audioField = "audio"

type noteActionFunc func(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	BulkDelete(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Embed(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
	Retag(ctx *fiber.Ctx) error
	TranscribeSummarize(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService    service.INoteService
	noteAIService  service.INoteAIService
	auth           fiber.Handler
	maxUploadBytes int
}

func NewNoteController(
	noteService service.INoteService,
	noteAIService service.INoteAIService,
	auth fiber.Handler,
	maxUploadBytes int,
) INoteController {
	return &noteController{
		noteService:    noteService,
		noteAIService:  noteAIService,
		auth:           auth,
		maxUploadBytes: maxUploadBytes,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Use(c.auth)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Delete("", c.BulkDelete)
	h.Get("/search", c.Search)
	h.Post("/transcribe-summarize", c.TranscribeSummarize)
	h.Post("/:id/embed", c.Embed)
	h.Post("/:id/summarize", c.Summarize)
	h.Post("/:id/retag", c.Retag)
	h.Patch("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Note created", res))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	req := dto.NewListNotesRequest(ctx.Query("page"), ctx.Query("limit"), ctx.Query("notebookId"))
	res, err := c.noteService.List(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notes fetched", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	noteId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.UserContext(), userId, noteId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note updated", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	noteId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), userId, noteId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Note deleted", nil))
}

func (c *noteController) BulkDelete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.BulkDeleteNotesRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.noteService.BulkDelete(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notes deleted", res))
}

func (c *noteController) Search(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteAIService.Search(ctx.UserContext(), userId, ctx.Query("query"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Search completed", res))
}

func (c *noteController) Embed(ctx *fiber.Ctx) error {
	return c.noteAction(ctx, "Note embedded", c.noteAIService.Embed)
}

func (c *noteController) Summarize(ctx *fiber.Ctx) error {
	return c.noteAction(ctx, "Note summarized", c.noteAIService.Summarize)
}

func (c *noteController) Retag(ctx *fiber.Ctx) error {
	return c.noteAction(ctx, "Note retagged", c.noteAIService.Retag)
}

func (c *noteController) noteAction(ctx *fiber.Ctx, message string, action noteActionFunc) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	noteId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := action(ctx.UserContext(), userId, noteId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *noteController) TranscribeSummarize(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile(audioField)
	if err != nil {
		return apperror.Validation("audio file is required")
	}
	if file.Size == 0 {
		return apperror.Validation("audio file is empty")
	}
	if c.maxUploadBytes > 0 && file.Size > int64(c.maxUploadBytes) {
		return apperror.Validation(fmt.Sprintf("audio file exceeds %d bytes", c.maxUploadBytes))
	}

	audio, err := file.Open()
	if err != nil {
		return apperror.Validation("audio file could not be read")
	}
	defer audio.Close()

	res, err := c.noteAIService.TranscribeAndSummarize(ctx.UserContext(), audio, file.Filename)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Audio summarized", res))
}
