// Package web provides the inbound HTTP surface of the integration: the
// settings form, the settings save endpoint and the sidebar fragment
// endpoint. Framework bindings (chi, gin, echo, fiber, gorilla) live in the
// examples; everything here is plain net/http.
package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/mihaimyh/qondesk/pkg/qondesk"
)

// Handler provides the HTTP endpoints of the integration.
type Handler struct {
	config Config
}

// Routes returns a handler with all endpoints mounted. The settings
// endpoints are wrapped with RequireAdmin when configured; the sidebar
// fragment endpoint is left to the host's agent-session middleware.
func (h *Handler) Routes() http.Handler {
	admin := h.config.RequireAdmin
	if admin == nil {
		admin = func(next http.Handler) http.Handler { return next }
	}

	mux := http.NewServeMux()
	mux.Handle(h.config.SettingsPath, admin(http.HandlerFunc(h.Settings)))
	mux.Handle(h.config.SavePath, admin(http.HandlerFunc(h.SaveSettings)))
	mux.Handle(h.config.SidebarPath, http.HandlerFunc(h.Sidebar))
	return mux
}

// Settings renders the settings form.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	settings, err := qondesk.LoadSettings(ctx, h.config.Store)
	if err != nil {
		h.config.Logger.Error("failed to load settings",
			qondesk.Field{Key: "error", Value: err.Error()},
		)
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	var mailboxes []Mailbox
	if h.config.Mailboxes != nil {
		mailboxes, err = h.config.Mailboxes(ctx)
		if err != nil {
			// The form still works without checkboxes.
			h.config.Logger.Warn("failed to list mailboxes",
				qondesk.Field{Key: "error", Value: err.Error()},
			)
			mailboxes = nil
		}
	}

	selected := make(map[int]bool, len(settings.Mailboxes))
	for _, id := range settings.Mailboxes {
		selected[id] = true
	}

	data := settingsForm{
		Settings:  settings,
		Mailboxes: mailboxes,
		Selected:  selected,
		SavePath:  h.config.SavePath,
		Saved:     r.URL.Query().Get("saved") == "1",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := settingsTemplate.Execute(w, data); err != nil {
		h.config.Logger.Error("failed to render settings form",
			qondesk.Field{Key: "error", Value: err.Error()},
		)
	}
}

// SaveSettings persists the submitted settings and redirects back to the
// settings page. Mailbox values arrive as strings and are coerced to ints;
// the persisted shape is a JSON array of integers.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	environment := qondesk.Environment(r.PostForm.Get("environment"))
	if !environment.Valid() {
		environment = qondesk.EnvProduction
	}

	settings := &qondesk.Settings{
		ProjectKey:  r.PostForm.Get("project_key"),
		ProjectID:   r.PostForm.Get("project_id"),
		Environment: environment,
		Mailboxes:   qondesk.ParseMailboxIDs(r.PostForm["mailboxes"]),
	}

	if err := qondesk.SaveSettings(r.Context(), h.config.Store, settings); err != nil {
		h.config.Logger.Error("failed to save settings",
			qondesk.Field{Key: "error", Value: err.Error()},
		)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	h.config.Logger.Info("qonversion settings saved",
		qondesk.Field{Key: "project_id", Value: settings.ProjectID},
		qondesk.Field{Key: "mailboxes", Value: settings.Mailboxes},
	)

	http.Redirect(w, r, h.config.SettingsPath+"?saved=1", http.StatusSeeOther)
}

// Sidebar renders the conversation-view sidebar fragment for the given
// customer email and mailbox. It answers 204 when the gate (missing
// credentials or mailbox allow-list) suppressed the sidebar, so the host can
// embed the endpoint without special-casing configuration state.
func (h *Handler) Sidebar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	mailboxID := 0
	if raw := r.URL.Query().Get("mailbox_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid mailbox_id", http.StatusBadRequest)
			return
		}
		mailboxID = id
	}

	var buf bytes.Buffer
	if err := h.config.Sidebar.RenderHTML(r.Context(), &buf, email, mailboxID); err != nil {
		h.config.Logger.Error("failed to build sidebar",
			qondesk.Field{Key: "email", Value: email},
			qondesk.Field{Key: "error", Value: err.Error()},
		)
		http.Error(w, "failed to build sidebar", http.StatusInternalServerError)
		return
	}

	// Nothing written means the gate suppressed the sidebar.
	if buf.Len() == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
