// Package web bundles the server-rendered pages.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"

	"github.com/spec-kit/travel-support-desk/internal/domain"
)

// Layout wraps every page.
const Layout = "layouts/main"

//go:embed templates
var templates embed.FS

// NewEngine builds the fiber view engine over the embedded templates.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("toggleLabel", ToggleLabel)
	engine.AddFunc("formatTime", FormatTime)
	engine.AddFunc("isResolved", func(s domain.TicketStatus) bool { return s == domain.TicketStatusResolved })
	return engine, nil
}

// ToggleLabel names the action that flips a ticket out of status s.
func ToggleLabel(s domain.TicketStatus) string {
	if s == domain.TicketStatusResolved {
		return "Mark Pending"
	}
	return "Mark Resolved"
}

// FormatTime renders a timestamp for the dashboard.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
