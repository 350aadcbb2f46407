// Package sidebar assembles the conversation-view sidebar: it gates on the
// saved settings and mailbox allow-list, runs the customer lookup and builds
// the dashboard deep link.
package sidebar

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/mihaimyh/qondesk/pkg/customer"
	"github.com/mihaimyh/qondesk/pkg/qondesk"
)

// DashboardBaseURL is the Qonversion dashboard used for deep links.
const DashboardBaseURL = "https://dash.qonversion.io"

// CustomerLookup resolves an email to a normalized summary (nil = no data).
type CustomerLookup interface {
	GetCustomerData(ctx context.Context, email string) *customer.Summary
}

// Renderer renders a named template with the given data.
// The host can inject its own templating; HTMLRenderer is the default.
type Renderer interface {
	Render(w io.Writer, name string, data interface{}) error
}

// ViewData is everything the sidebar template needs.
type ViewData struct {
	CustomerEmail string

	// Customer is nil when Qonversion has no record for the email; the
	// template then shows "Subscription Status: None".
	Customer *customer.Summary

	// DashboardURL links to the customer detail page when a user id was
	// resolved, else to the customer search page.
	DashboardURL string
}

// Config holds builder configuration.
type Config struct {
	// Store is the host option store the settings are read from (required).
	Store qondesk.OptionStore

	// Lookup resolves customer data (required).
	Lookup CustomerLookup

	// Renderer renders the sidebar. Defaults to HTMLRenderer.
	Renderer Renderer

	// Logger is optional structured logging. Defaults to no-op.
	Logger qondesk.Logger

	// Metrics is optional operation tracking. Defaults to no-op.
	Metrics qondesk.Metrics
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Store == nil {
		return fmt.Errorf("option store is required")
	}
	if c.Lookup == nil {
		return fmt.Errorf("customer lookup is required")
	}
	return nil
}

// Builder builds and renders the sidebar for a conversation view.
type Builder struct {
	store    qondesk.OptionStore
	lookup   CustomerLookup
	renderer Renderer
	logger   qondesk.Logger
	metrics  qondesk.Metrics
}

// NewBuilder creates a new sidebar builder.
func NewBuilder(config Config) (*Builder, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	renderer := config.Renderer
	if renderer == nil {
		renderer = NewHTMLRenderer()
	}
	logger := config.Logger
	if logger == nil {
		logger = &qondesk.NoopLogger{}
	}
	metrics := config.Metrics
	if metrics == nil {
		metrics = &qondesk.NoopMetrics{}
	}

	return &Builder{
		store:    config.Store,
		lookup:   config.Lookup,
		renderer: renderer,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// Build runs the gate and the lookup for one conversation view.
//
// It returns (nil, nil) when the sidebar should not show: credentials are
// missing or the mailbox allow-list excludes the mailbox. A ViewData with a
// nil Customer still renders ("Subscription Status: None").
func (b *Builder) Build(ctx context.Context, email string, mailboxID int) (*ViewData, error) {
	settings, err := qondesk.LoadSettings(ctx, b.store)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if !settings.Configured() {
		b.metrics.RecordSidebarRender("skipped_unconfigured")
		return nil, nil
	}
	if !settings.MailboxAllowed(mailboxID) {
		b.metrics.RecordSidebarRender("skipped_mailbox")
		return nil, nil
	}

	summary := b.lookup.GetCustomerData(ctx, email)

	userID := ""
	if summary != nil {
		userID = summary.QonversionUserID
	}

	b.metrics.RecordSidebarRender("rendered")
	return &ViewData{
		CustomerEmail: email,
		Customer:      summary,
		DashboardURL:  DashboardURL(settings, userID),
	}, nil
}

// RenderHTML builds the sidebar and writes the rendered fragment to w.
// Nothing is written when the gate skipped the sidebar.
func (b *Builder) RenderHTML(ctx context.Context, w io.Writer, email string, mailboxID int) error {
	data, err := b.Build(ctx, email, mailboxID)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	return b.renderer.Render(w, TemplateName, data)
}

// DashboardURL builds the Qonversion dashboard deep link: the customer
// detail page when a user id was resolved, else the customer search page
// scoped to the project and environment.
func DashboardURL(settings *qondesk.Settings, userID string) string {
	env := settings.Environment
	if !env.Valid() {
		env = qondesk.EnvProduction
	}

	if userID != "" {
		return fmt.Sprintf("%s/customers/details/%s?project=%s&page=1&environment=%s",
			DashboardBaseURL, url.PathEscape(userID), url.QueryEscape(settings.ProjectID), env)
	}
	return fmt.Sprintf("%s/customers?project=%s&environment=%s",
		DashboardBaseURL, url.QueryEscape(settings.ProjectID), env)
}
