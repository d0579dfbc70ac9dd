package handler

import (
	"github.com/adnane-lakhmaisse/OptiStock/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ReplenishRequest adds quantity to one product's stock
type ReplenishRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// DonationRequest is the give-away cart: an ordered list of items
// deducted all-or-nothing
type DonationRequest struct {
	Items []service.DeductItem `json:"items"`
}

type LedgerHandler struct {
	service      service.LedgerService
	assocService service.AssociationService
}

func NewLedgerHandler(s service.LedgerService, a service.AssociationService) *LedgerHandler {
	return &LedgerHandler{service: s, assocService: a}
}

func (h *LedgerHandler) Replenish(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	var req ReplenishRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.Replenish(association.ID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock replenished", "data": product})
}

// Donate commits the cart through the ledger engine. The response is
// always {success:...}; a failed batch leaves every quantity and the
// ledger untouched.
func (h *LedgerHandler) Donate(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	var req DonationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON", "success": false})
	}

	if err := h.service.DeductBatch(association.ID, req.Items); err != nil {
		// Surface the engine's failure reason unmodified
		return respondDonationError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Donation confirmed"})
}
