package handler

import (
	"strconv"
	"time"

	"github.com/adnane-lakhmaisse/OptiStock/internal/repository"
	"github.com/adnane-lakhmaisse/OptiStock/internal/service"
	"github.com/gofiber/fiber/v2"
)

type HistoryHandler struct {
	service      service.HistoryService
	assocService service.AssociationService
}

func NewHistoryHandler(s service.HistoryService, a service.AssociationService) *HistoryHandler {
	return &HistoryHandler{service: s, assocService: a}
}

// GetTransactions lists the ledger newest first
// Query params: product_id, start_date, end_date (YYYY-MM-DD)
func (h *HistoryHandler) GetTransactions(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	var filter repository.TransactionFilter
	if raw := c.Query("product_id"); raw != "" {
		productID, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		filter.ProductID = productID
	}
	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start date, use YYYY-MM-DD"})
		}
		filter.StartDate = start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end date, use YYYY-MM-DD"})
		}
		// Inclusive end of day
		filter.EndDate = end.Add(24*time.Hour - time.Nanosecond)
	}

	transactions, err := h.service.GetTransactions(association.ID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

// GetStockMovement returns per-day IN/OUT sums for charts
// Query params: days (default 7)
func (h *HistoryHandler) GetStockMovement(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetStockMovement(association.ID, days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *HistoryHandler) GetDashboardStats(c *fiber.Ctx) error {
	association, err := resolveAssociation(c, h.assocService)
	if association == nil {
		return err
	}

	stats, err := h.service.GetDashboardStats(association.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
