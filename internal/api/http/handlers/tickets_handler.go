package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/travel-support-desk/internal/api/dto"
	"github.com/spec-kit/travel-support-desk/internal/service"
	"github.com/spec-kit/travel-support-desk/internal/validation"
)

// TicketsHandler serves the JSON ticket API.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	req, err := validation.DecodeCreate(c.Body())
	if err != nil {
		return err
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  dto.NewTicketResponse(ticket),
		"message": "Ticket submitted successfully!",
	})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tickets": dto.NewTicketResponses(tickets)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ticket": dto.NewTicketResponse(ticket)})
}

// UpdateStatus PATCH /tickets/:id.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	req, err := validation.DecodeStatus(c.Body())
	if err != nil {
		return err
	}
	ticket, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req, "api")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  dto.NewTicketResponse(ticket),
		"message": "Ticket status updated successfully!",
	})
}
