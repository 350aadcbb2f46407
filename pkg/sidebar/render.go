package sidebar

import (
	"fmt"
	"html/template"
	"io"
)

// TemplateName is the template the builder renders by default.
const TemplateName = "sidebar"

// sidebarTemplate mirrors the helpdesk sidebar block markup.
const sidebarTemplate = `<div class="sidebar-block qonversion-block">
    <div class="sidebar-block-header">
        <h3>Qonversion Profile</h3>
    </div>
    <div class="sidebar-block-body">
{{- if not .Customer }}
        <div class="qonv-field">
            <div class="qonv-label">Subscription Status</div>
            <div class="qonv-value text-muted">None</div>
        </div>
{{- else }}
        <div class="qonv-field">
            <div class="qonv-label">Subscription Status</div>
            <div class="qonv-value">
{{- if eq .Customer.SubscriptionStatus "Active" }}
                <span class="label label-success">Active</span>
{{- else if eq .Customer.SubscriptionStatus "Expired" }}
                <span class="label label-warning">Expired</span>
{{- else }}
                <span class="label label-default">{{ .Customer.SubscriptionStatus }}</span>
{{- end }}
            </div>
        </div>
{{- range .Customer.SubscriptionDetails }}
        <div class="qonv-subscription-detail">
            <div class="text-muted small">
                {{ .ProductID }}
{{- if .ExpiresAtFormatted }}
                <br>Expires: {{ .ExpiresAtFormatted }}
{{- end }}
{{- if .WillRenew }}
                <br>{{ if deref .WillRenew }}Will renew{{ else }}Will not renew{{ end }}
{{- end }}
            </div>
        </div>
{{- end }}
{{- if .Customer.Platform }}
        <div class="qonv-field">
            <div class="qonv-label">Platform</div>
            <div class="qonv-value">{{ .Customer.Platform }}</div>
        </div>
{{- end }}
{{- if .Customer.CustomerSince }}
        <div class="qonv-field">
            <div class="qonv-label">Customer Since</div>
            <div class="qonv-value">{{ .Customer.CustomerSince }}</div>
        </div>
{{- end }}
{{- end }}
        <a href="{{ .DashboardURL }}" target="_blank" class="btn btn-default btn-sm btn-block qonv-dashboard-link">
{{- if and .Customer .Customer.QonversionUserID }}
            View in Qonversion
{{- else }}
            Search in Qonversion
{{- end }}
        </a>
    </div>
</div>
`

// HTMLRenderer is the default html/template based renderer.
type HTMLRenderer struct {
	templates *template.Template
}

// NewHTMLRenderer creates the default renderer with the built-in sidebar
// template.
func NewHTMLRenderer() *HTMLRenderer {
	tmpl := template.New(TemplateName).Funcs(template.FuncMap{
		"deref": func(b *bool) bool { return b != nil && *b },
	})
	return &HTMLRenderer{
		templates: template.Must(tmpl.Parse(sidebarTemplate)),
	}
}

// Render implements the Renderer interface.
func (r *HTMLRenderer) Render(w io.Writer, name string, data interface{}) error {
	tmpl := r.templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("unknown template %q", name)
	}
	return tmpl.Execute(w, data)
}
