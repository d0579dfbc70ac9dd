package handler

import (
	"github.com/adnane-lakhmaisse/OptiStock/internal/service"
	"github.com/gofiber/fiber/v2"
)

type AssociationHandler struct {
	service service.AssociationService
}

func NewAssociationHandler(s service.AssociationService) *AssociationHandler {
	return &AssociationHandler{service: s}
}

// Sync lazily creates the association on the first authenticated
// request that carries a display name
func (h *AssociationHandler) Sync(c *fiber.Ctx) error {
	email := getUserEmail(c)
	name := getUserName(c)

	if err := h.service.EnsureAssociation(email, name); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Association synced"})
}

func (h *AssociationHandler) Me(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.service)
	if association == nil {
		return err
	}
	return c.JSON(association)
}
