package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/delfood/owner-service/internal/api/dto"
	"github.com/delfood/owner-service/internal/auth"
	"github.com/delfood/owner-service/internal/domain"
	"github.com/delfood/owner-service/internal/service"
	apperrors "github.com/delfood/owner-service/pkg/util"
)

// MenuGroupsHandler exposes menu-group catalog endpoints.
type MenuGroupsHandler struct {
	menuGroups *service.MenuGroupService
}

// NewMenuGroupsHandler constructs handler.
func NewMenuGroupsHandler(menuGroupService *service.MenuGroupService) *MenuGroupsHandler {
	return &MenuGroupsHandler{menuGroups: menuGroupService}
}

// Create handles POST /menu-groups. Gated.
func (h *MenuGroupsHandler) Create(c *fiber.Ctx) error {
	ownerID, ok := auth.OwnerIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	var req dto.CreateMenuGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	group, err := h.menuGroups.Create(c.UserContext(), ownerID, &domain.MenuGroup{
		ShopID:   req.ShopID,
		Name:     req.Name,
		Content:  req.Content,
		Priority: req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"menu_group": group})
}

// ListByShop handles GET /shops/:shopId/menu-groups.
func (h *MenuGroupsHandler) ListByShop(c *fiber.Ctx) error {
	shopID, err := strconv.ParseInt(c.Params("shopId"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid shop id")
	}

	groups, err := h.menuGroups.ListByShop(c.UserContext(), shopID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"menu_groups": groups})
}

// Update handles PATCH /menu-groups/:id. Gated.
func (h *MenuGroupsHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid menu group id")
	}

	var req dto.UpdateMenuGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.menuGroups.UpdateNameAndContent(c.UserContext(), id, req.Name, req.Content); err != nil {
		return err
	}
	return c.JSON(dto.ResultResponse{Result: "SUCCESS"})
}

// Delete handles DELETE /menu-groups/:id. Gated; soft delete.
func (h *MenuGroupsHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid menu group id")
	}

	if err := h.menuGroups.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.ResultResponse{Result: "SUCCESS"})
}
