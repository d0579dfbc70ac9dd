package handler

import (
	"errors"

	"github.com/adnane-lakhmaisse/OptiStock/internal/apperr"
	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"github.com/adnane-lakhmaisse/OptiStock/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper untuk ambil identity dari JWT context (set by auth middleware)
func getUserEmail(c *fiber.Ctx) string {
	email := c.Locals("user_email")
	if email == nil {
		return ""
	}
	return email.(string)
}

func getUserName(c *fiber.Ctx) string {
	name := c.Locals("user_name")
	if name == nil {
		return ""
	}
	return name.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// resolveAssociation maps the authenticated email to its association
// exactly once per request; services receive the resolved id
func resolveAssociation(c *fiber.Ctx, svc service.AssociationService) (*model.Association, error) {
	association, err := svc.GetByEmail(getUserEmail(c))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, c.Status(404).JSON(fiber.Map{"error": "Association not found for this email"})
		}
		return nil, respondError(c, err)
	}
	return association, nil
}

// respondError maps typed domain failures onto HTTP statuses
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *apperr.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(409).JSON(fiber.Map{
			"error":   stockErr.Error(),
			"code":    "INSUFFICIENT_STOCK",
			"details": stockErr,
		})
	}

	var domainErr *apperr.DomainError
	if errors.As(err, &domainErr) {
		status := 400
		switch domainErr.Code {
		case apperr.ErrNotFound.Code:
			status = 404
		case apperr.ErrAlreadyExists.Code:
			status = 409
		case apperr.ErrStoreFailure.Code:
			status = 500
		}
		return c.Status(status).JSON(fiber.Map{"error": domainErr.Message, "code": domainErr.Code})
	}

	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}

// respondDonationError keeps the donation endpoint's
// {success, message} contract while reusing the status mapping
func respondDonationError(c *fiber.Ctx, err error) error {
	var stockErr *apperr.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"message": stockErr.Error(),
			"code":    "INSUFFICIENT_STOCK",
			"details": stockErr,
		})
	}

	var domainErr *apperr.DomainError
	if errors.As(err, &domainErr) {
		status := 400
		switch domainErr.Code {
		case apperr.ErrNotFound.Code:
			status = 404
		case apperr.ErrStoreFailure.Code:
			status = 500
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "message": domainErr.Message, "code": domainErr.Code})
	}

	return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
}
