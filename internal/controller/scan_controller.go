package controller

import (
	"booknest-be/internal/dto"
	"booknest-be/internal/pkg/serverutils"
	"booknest-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IScanController exposes the REST fallback for clients that cannot hold a
// websocket open. The stream endpoint lives in the server wiring.
type IScanController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Frame(ctx *fiber.Ctx) error
	Manual(ctx *fiber.Ctx) error
	Confirm(ctx *fiber.Ctx) error
	Abandon(ctx *fiber.Ctx) error
	Stop(ctx *fiber.Ctx) error
}

type scanController struct {
	scanService service.IScanService
}

func NewScanController(scanService service.IScanService) IScanController {
	return &scanController{
		scanService: scanService,
	}
}

func (c *scanController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/scan/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("sessions", c.Start)
	h.Post("sessions/:sessionId/frames", c.Frame)
	h.Post("sessions/:sessionId/manual", c.Manual)
	h.Post("sessions/:sessionId/confirm", c.Confirm)
	h.Post("sessions/:sessionId/abandon", c.Abandon)
	h.Delete("sessions/:sessionId", c.Stop)
}

func (c *scanController) Start(ctx *fiber.Ctx) error {
	raw, _ := serverutils.MemberIdFromLocals(ctx)
	memberId, _ := uuid.Parse(raw)

	res, err := c.scanService.StartSession(ctx.Context(), memberId)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success start scan session", res))
}

func (c *scanController) Frame(ctx *fiber.Ctx) error {
	var req dto.ObserveFrameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	event, err := c.scanService.ObserveFrame(ctx.Context(), ctx.Params("sessionId"), req.Code)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Frame observed", event))
}

func (c *scanController) Manual(ctx *fiber.Ctx) error {
	var req dto.ManualIsbnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	event, err := c.scanService.ManualIsbn(ctx.Context(), ctx.Params("sessionId"), req.Isbn)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Manual code resolved", event))
}

func (c *scanController) Confirm(ctx *fiber.Ctx) error {
	var req dto.ConfirmScanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	event, err := c.scanService.Confirm(ctx.Context(), ctx.Params("sessionId"), req.Read, req.Visibility)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save scanned book", event))
}

func (c *scanController) Abandon(ctx *fiber.Ctx) error {
	if err := c.scanService.Abandon(ctx.Context(), ctx.Params("sessionId")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Scan abandoned", nil))
}

func (c *scanController) Stop(ctx *fiber.Ctx) error {
	if err := c.scanService.StopSession(ctx.Context(), ctx.Params("sessionId")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Scan session stopped", nil))
}
