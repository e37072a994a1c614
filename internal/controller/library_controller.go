package controller

import (
	"booknest-be/internal/dto"
	"booknest-be/internal/entity"
	"booknest-be/internal/pkg/serverutils"
	"booknest-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILibraryController interface {
	RegisterRoutes(r fiber.Router)
	Load(ctx *fiber.Ctx) error
	LoadCached(ctx *fiber.Ctx) error
	Upsert(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	SetVisibility(ctx *fiber.Ctx) error
	ToggleRead(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type libraryController struct {
	libraryService service.ILibraryService
}

func NewLibraryController(libraryService service.ILibraryService) ILibraryController {
	return &libraryController{
		libraryService: libraryService,
	}
}

func (c *libraryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/library/v1")
	h.Get("cached/:memberId", c.LoadCached)
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Load)
	h.Get("stats", c.Stats)
	h.Post("books", c.Upsert)
	h.Put("books/:bookId", c.Update)
	h.Put("books/:bookId/visibility", c.SetVisibility)
	h.Put("books/:bookId/read", c.ToggleRead)
	h.Delete("books/:bookId", c.Delete)
}

func memberIdOf(ctx *fiber.Ctx) uuid.UUID {
	raw, _ := serverutils.MemberIdFromLocals(ctx)
	id, _ := uuid.Parse(raw)
	return id
}

// Load returns the merged shelf, filtered by the optional query controls.
func (c *libraryController) Load(ctx *fiber.Ctx) error {
	view, err := c.libraryService.Load(ctx.Context(), memberIdOf(ctx))
	if err != nil {
		return err
	}

	filter := dto.LibraryFilter{
		Query:    ctx.Query("q"),
		Read:     ctx.Query("read", "all"),
		Category: ctx.Query("category", "all"),
		SortBy:   ctx.Query("sort", "title"),
	}
	view.Entries = c.libraryService.Filter(view.Entries, filter)
	return ctx.JSON(serverutils.SuccessResponse("Success load library", view))
}

// LoadCached serves the member's offline snapshot. The route skips auth so
// a client with an expired token can still render its last known shelf.
func (c *libraryController) LoadCached(ctx *fiber.Ctx) error {
	memberId, err := uuid.Parse(ctx.Params("memberId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid member id")
	}
	view := c.libraryService.LoadCached(ctx.Context(), memberId)
	return ctx.JSON(serverutils.SuccessResponse("Success load cached library", view))
}

func (c *libraryController) Upsert(ctx *fiber.Ctx) error {
	var req dto.UpsertBookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	entry, err := c.libraryService.Upsert(ctx.Context(), memberIdOf(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success save book", entry))
}

func (c *libraryController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateBookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := c.libraryService.Update(ctx.Context(), memberIdOf(ctx), ctx.Params("bookId"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update book", nil))
}

func (c *libraryController) SetVisibility(ctx *fiber.Ctx) error {
	var req dto.SetVisibilityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	err := c.libraryService.SetVisibility(ctx.Context(), memberIdOf(ctx), ctx.Params("bookId"), entity.Visibility(req.Visibility))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set visibility", nil))
}

func (c *libraryController) ToggleRead(ctx *fiber.Ctx) error {
	read, err := c.libraryService.ToggleRead(ctx.Context(), memberIdOf(ctx), ctx.Params("bookId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success toggle read", fiber.Map{"read": read}))
}

func (c *libraryController) Delete(ctx *fiber.Ctx) error {
	err := c.libraryService.Delete(ctx.Context(), memberIdOf(ctx), ctx.Params("bookId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete book", nil))
}

func (c *libraryController) Stats(ctx *fiber.Ctx) error {
	stats, err := c.libraryService.Stats(ctx.Context(), memberIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success load stats", stats))
}
