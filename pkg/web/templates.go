package web

import (
	"html/template"

	"github.com/mihaimyh/qondesk/pkg/qondesk"
)

// settingsForm is the data the settings template renders.
type settingsForm struct {
	Settings  *qondesk.Settings
	Mailboxes []Mailbox
	Selected  map[int]bool
	SavePath  string
	Saved     bool
}

var settingsTemplate = template.Must(template.New("settings").Funcs(template.FuncMap{
	"selected": func(selected map[int]bool, id int) bool { return selected[id] },
}).Parse(settingsMarkup))

const settingsMarkup = `<div class="qonversion-settings">
{{- if .Saved}}
  <div class="alert alert-success">Settings saved.</div>
{{- end}}
  <form method="POST" action="{{.SavePath}}">
    <div class="form-group">
      <label for="project_key">Project Key</label>
      <input type="password" class="form-control" id="project_key" name="project_key" value="{{.Settings.ProjectKey}}" required>
      <p class="help-block">Secret key from the Qonversion project settings.</p>
    </div>
    <div class="form-group">
      <label for="project_id">Project ID</label>
      <input type="text" class="form-control" id="project_id" name="project_id" value="{{.Settings.ProjectID}}" required>
    </div>
    <div class="form-group">
      <label for="environment">Environment</label>
      <select class="form-control" id="environment" name="environment">
        <option value="0"{{if eq .Settings.Environment "0"}} selected{{end}}>Production</option>
        <option value="1"{{if eq .Settings.Environment "1"}} selected{{end}}>Sandbox</option>
      </select>
    </div>
{{- if .Mailboxes}}
    <div class="form-group">
      <label>Mailboxes</label>
      <p class="help-block">Show the sidebar only in the selected mailboxes. Leave all unchecked to show it everywhere.</p>
{{- range .Mailboxes}}
      <div class="checkbox">
        <label>
          <input type="checkbox" name="mailboxes" value="{{.ID}}"{{if selected $.Selected .ID}} checked{{end}}> {{.Name}}
        </label>
      </div>
{{- end}}
    </div>
{{- end}}
    <button type="submit" class="btn btn-primary">Save</button>
  </form>
</div>
`
