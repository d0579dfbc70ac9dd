package handler

import (
	"github.com/adnane-lakhmaisse/OptiStock/internal/service"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service     service.CatalogService
	assocService service.AssociationService
}

func NewCategoryHandler(s service.CatalogService, a service.AssociationService) *CategoryHandler {
	return &CategoryHandler{service: s, assocService: a}
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.service.CreateCategory(association.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": category})
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	categoryID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.service.UpdateCategory(association.ID, categoryID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category updated", "data": category})
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	categoryID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if err := h.service.DeleteCategory(association.ID, categoryID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	categories, err := h.service.GetAllCategories(association.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}
