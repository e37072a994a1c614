package controller

import (
	"booknest-be/internal/dto"
	"booknest-be/internal/pkg/serverutils"
	"booknest-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVaultController interface {
	RegisterRoutes(r fiber.Router)
	Ensure(ctx *fiber.Ctx) error
}

type vaultController struct {
	vaultService service.IVaultService
}

func NewVaultController(vaultService service.IVaultService) IVaultController {
	return &vaultController{
		vaultService: vaultService,
	}
}

func (c *vaultController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/vault/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("ensure", c.Ensure)
}

// Ensure resolves the caller to a vault: reuse, join via invite, or create.
func (c *vaultController) Ensure(ctx *fiber.Ctx) error {
	memberIdStr, _ := serverutils.MemberIdFromLocals(ctx)
	memberId, _ := uuid.Parse(memberIdStr)

	var req dto.EnsureVaultRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	displayName := ctx.Query("display_name")
	res, err := c.vaultService.EnsureVault(ctx.Context(), memberId, displayName, req.JoinVaultId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success ensure vault", res))
}
