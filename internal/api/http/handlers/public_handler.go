package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/travel-support-desk/internal/api/dto"
	"github.com/spec-kit/travel-support-desk/internal/domain"
	"github.com/spec-kit/travel-support-desk/internal/service"
	"github.com/spec-kit/travel-support-desk/internal/validation"
	"github.com/spec-kit/travel-support-desk/internal/web"
	apperrors "github.com/spec-kit/travel-support-desk/pkg/util/errorutil"
)

// PublicHandler serves the customer-facing pages.
type PublicHandler struct {
	service *service.TicketService
	logger  *zap.Logger
}

// NewPublicHandler constructs handler.
func NewPublicHandler(ticketService *service.TicketService, logger *zap.Logger) *PublicHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicHandler{service: ticketService, logger: logger}
}

// Home GET /.
func (h *PublicHandler) Home(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{"Title": "Home"}, web.Layout)
}

// SubmitForm GET /submit.
func (h *PublicHandler) SubmitForm(c *fiber.Ctx) error {
	return h.renderForm(c, fiber.StatusOK, fiber.Map{})
}

// Submit POST /submit.
func (h *PublicHandler) Submit(c *fiber.Ctx) error {
	var form dto.TicketSubmissionForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderForm(c, fiber.StatusBadRequest, fiber.Map{
			"Form":   form,
			"Errors": fieldMessages(validation.MalformedBody()),
		})
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), validation.CreateTicketInput{
		Name:        form.Name,
		Email:       form.Email,
		Reference:   form.Reference,
		Category:    form.Category,
		Description: form.Description,
	})
	if err != nil {
		if apperrors.IsValidation(err) {
			return h.renderForm(c, fiber.StatusBadRequest, fiber.Map{
				"Form":   form,
				"Errors": fieldMessages(err),
			})
		}
		h.logger.Error("ticket submission failed", zap.Error(err))
		return h.renderForm(c, fiber.StatusInternalServerError, fiber.Map{
			"Form":  form,
			"Error": "Something went wrong. Please try again.",
		})
	}

	return h.renderForm(c, fiber.StatusOK, fiber.Map{
		"Success":  "Ticket submitted successfully!",
		"TicketID": ticket.ID,
	})
}

func (h *PublicHandler) renderForm(c *fiber.Ctx, status int, data fiber.Map) error {
	data["Title"] = "Submit a ticket"
	data["Categories"] = domain.TicketCategories
	if _, ok := data["Form"]; !ok {
		data["Form"] = dto.TicketSubmissionForm{}
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	return c.Status(status).Render("submit", data, web.Layout)
}

// fieldMessages indexes validation failures by field for the templates.
func fieldMessages(err error) map[string]string {
	out := map[string]string{}
	if de := apperrors.ToDomainError(err); de != nil {
		for _, f := range de.Fields {
			out[f.Field] = f.Message
		}
	}
	return out
}
