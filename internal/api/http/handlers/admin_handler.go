package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/travel-support-desk/internal/api/dto"
	"github.com/spec-kit/travel-support-desk/internal/auth"
	"github.com/spec-kit/travel-support-desk/internal/dashboard"
	"github.com/spec-kit/travel-support-desk/internal/domain"
	"github.com/spec-kit/travel-support-desk/internal/service"
	"github.com/spec-kit/travel-support-desk/internal/web"
	apperrors "github.com/spec-kit/travel-support-desk/pkg/util/errorutil"
)

const (
	dashboardPath = "/admin"
	loginPath     = "/admin/login"

	flashUpdated      = "Ticket status updated successfully!"
	flashUpdateFailed = "Failed to update ticket status"
)

// AdminHandler serves the login flow and the ticket dashboard.
type AdminHandler struct {
	tickets      *service.TicketService
	auth         *service.AuthService
	secureCookie bool
	logger       *zap.Logger
	now          func() time.Time
}

// AdminHandlerConfig bundles collaborators for the admin pages.
type AdminHandlerConfig struct {
	Tickets      *service.TicketService
	Auth         *service.AuthService
	SecureCookie bool
	Logger       *zap.Logger
	Now          func() time.Time
}

// NewAdminHandler constructs handler.
func NewAdminHandler(cfg AdminHandlerConfig) *AdminHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AdminHandler{
		tickets:      cfg.Tickets,
		auth:         cfg.Auth,
		secureCookie: cfg.SecureCookie,
		logger:       logger,
		now:          now,
	}
}

// LoginPage GET /admin/login.
func (h *AdminHandler) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Title": "Admin login"}, web.Layout)
}

// Login POST /admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var form dto.AdminLoginForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("login", fiber.Map{
			"Title": "Admin login",
			"Error": "Invalid login request",
		}, web.Layout)
	}

	_, token, exp, err := h.auth.Login(c.UserContext(), form.Username, form.Password)
	if err != nil {
		status := apperrors.ToDomainError(err).HTTPStatus
		message := "Invalid username or password"
		if status >= fiber.StatusInternalServerError {
			h.logger.Error("admin login failed", zap.Error(err))
			message = "Login is unavailable. Please try again."
		}
		return c.Status(status).Render("login", fiber.Map{
			"Title":    "Admin login",
			"Error":    message,
			"Username": form.Username,
		}, web.Layout)
	}

	auth.SetSessionCookie(c, token, exp, h.secureCookie)
	return c.Redirect(dashboardPath, fiber.StatusSeeOther)
}

// Logout POST /admin/logout.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c)
	return c.Redirect(loginPath, fiber.StatusSeeOther)
}

// Dashboard GET /admin.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	var q dto.DashboardQuery
	_ = c.QueryParser(&q)
	filter := dashboard.Filter{Search: q.Search, Status: q.Status, Category: q.Category}

	status := fiber.StatusOK
	var loadErr string
	tickets, err := h.tickets.ListTickets(c.UserContext())
	if err != nil {
		h.logger.Error("dashboard load failed", zap.Error(err))
		status = fiber.StatusInternalServerError
		loadErr = "Failed to load tickets"
	}

	view := dashboard.NewView(tickets, filter)
	return c.Status(status).Render("admin", fiber.Map{
		"Title":        "Dashboard",
		"Admin":        h.adminName(c),
		"Filter":       view.Filter(),
		"FilterActive": view.Filter().Active(),
		"Statuses":     domain.TicketStatuses,
		"Categories":   domain.TicketCategories,
		"Flash":        q.Flash,
		"FlashError":   q.Flash == flashUpdateFailed,
		"Error":        loadErr,
		"Summary":      view.Summary(h.now()),
		"Tickets":      view.Visible(),
	}, web.Layout)
}

// TicketDetail GET /admin/tickets/:id.
func (h *AdminHandler) TicketDetail(c *fiber.Ctx) error {
	ticket, err := h.tickets.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).Render("ticket", fiber.Map{
			"Title": "Ticket",
			"Error": de.Message,
		}, web.Layout)
	}
	return c.Render("ticket", fiber.Map{
		"Title":  "Ticket " + ticket.Reference,
		"Ticket": ticket,
	}, web.Layout)
}

// ToggleStatus POST /admin/tickets/:id/toggle.
func (h *AdminHandler) ToggleStatus(c *fiber.Ctx) error {
	filter := dashboard.Filter{
		Search:   c.FormValue("search"),
		Status:   c.FormValue("status"),
		Category: c.FormValue("category"),
	}
	q := filter.Query()

	if _, err := h.tickets.ToggleStatus(c.UserContext(), c.Params("id"), h.adminName(c)); err != nil {
		h.logger.Warn("ticket toggle failed", zap.String("ticket_id", c.Params("id")), zap.Error(err))
		q.Set("flash", flashUpdateFailed)
	} else {
		q.Set("flash", flashUpdated)
	}
	return c.Redirect(dashboardURL(q), fiber.StatusSeeOther)
}

func (h *AdminHandler) adminName(c *fiber.Ctx) string {
	if admin, ok := auth.AdminFromContext(c); ok {
		return admin.Username
	}
	return ""
}

func dashboardURL(q url.Values) string {
	if len(q) == 0 {
		return dashboardPath
	}
	return dashboardPath + "?" + q.Encode()
}
