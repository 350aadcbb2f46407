package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mihaimyh/qondesk/pkg/qondesk"
	"github.com/mihaimyh/qondesk/pkg/sidebar"
)

// Mailbox is a helpdesk inbox offered on the settings form.
type Mailbox struct {
	ID   int
	Name string
}

// MailboxLister returns the host's mailboxes for the allow-list checkboxes.
type MailboxLister func(ctx context.Context) ([]Mailbox, error)

// Config holds configuration for the HTTP handler.
type Config struct {
	// Store is the host option store (required).
	Store qondesk.OptionStore

	// Sidebar builds the conversation-view sidebar (required).
	Sidebar *sidebar.Builder

	// Mailboxes lists the host's mailboxes for the settings form (optional;
	// without it the form renders no allow-list checkboxes).
	Mailboxes MailboxLister

	// RequireAdmin wraps the settings endpoints with the host's
	// administrator authorization (optional). The module performs no
	// authentication of its own.
	RequireAdmin func(http.Handler) http.Handler

	// SettingsPath is the settings page path and save redirect target.
	// Default: "/settings"
	SettingsPath string

	// SavePath is the settings form submission path.
	// Default: "/settings/save"
	SavePath string

	// SidebarPath serves the rendered sidebar fragment.
	// Default: "/sidebar"
	SidebarPath string

	// Logger is optional structured logging. Defaults to no-op.
	Logger qondesk.Logger
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Store == nil {
		return fmt.Errorf("option store is required")
	}
	if c.Sidebar == nil {
		return fmt.Errorf("sidebar builder is required")
	}
	return nil
}

// NewHandler creates a new HTTP handler with the given configuration.
func NewHandler(config Config) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if config.SettingsPath == "" {
		config.SettingsPath = "/settings"
	}
	if config.SavePath == "" {
		config.SavePath = "/settings/save"
	}
	if config.SidebarPath == "" {
		config.SidebarPath = "/sidebar"
	}
	if config.Logger == nil {
		config.Logger = &qondesk.NoopLogger{}
	}

	return &Handler{config: config}, nil
}
