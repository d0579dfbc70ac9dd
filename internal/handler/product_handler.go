package handler

import (
	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"github.com/adnane-lakhmaisse/OptiStock/internal/service"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service      service.CatalogService
	assocService service.AssociationService
}

func NewProductHandler(s service.CatalogService, a service.AssociationService) *ProductHandler {
	return &ProductHandler{service: s, assocService: a}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(association.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(association.ID, productID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct returns the removed product's image path so the client
// can release the stored image afterwards
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.DeleteProduct(association.ID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted", "image_url": product.ImageURL})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(association.ID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product.ToResponse())
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	products, err := h.service.GetAllProducts(association.ID)
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]model.ProductResponse, len(products))
	for i := range products {
		responses[i] = products[i].ToResponse()
	}
	return c.JSON(responses)
}
