package surface

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Jan2821/Jan-OS/compose"
)

// sanitizer strips any markup from free-text fields before they reach the
// print surface. Module state is user input; the capture engine executes
// whatever the surface contains.
var sanitizer = bluemonday.StrictPolicy()

// clean sanitizes a free-text value and resolves bluemonday's entity
// escaping back to plain runes (the template escapes again on output).
func clean(s string) string {
	out := sanitizer.Sanitize(s)
	out = strings.ReplaceAll(out, "&amp;", "&")
	out = strings.ReplaceAll(out, "&lt;", "<")
	out = strings.ReplaceAll(out, "&gt;", ">")
	out = strings.ReplaceAll(out, "&#34;", `"`)
	out = strings.ReplaceAll(out, "&#39;", "'")
	return out
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"clean": clean,
	"datauri": func(img *compose.Image) template.URL {
		return template.URL(fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Data)))
	},
}).Parse(pageHTML))

// HTML projects the document mounted at id into a self-contained A4 page
// for the capture engine. The second return mirrors Lookup: false means
// nothing is mounted there.
func (r *Registry) HTML(id string) (string, bool) {
	doc, ok := r.Lookup(id)
	if !ok {
		return "", false
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, doc); err != nil {
		// Template and data are both owned by this package; an execute
		// failure is a programming error, not an input condition.
		r.cfg.Logger.Error("surface: project html", "target", id, "error", err)
		return "", false
	}
	return buf.String(), true
}

const pageHTML = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<style>
  @page { size: A4 portrait; margin: 0; }
  body { margin: 0; font-family: Georgia, serif; color: #000; background: #fff; }
  .sheet { width: 210mm; min-height: 297mm; padding: 18mm; box-sizing: border-box; }
  header { border-bottom: 2px solid #000; padding-bottom: 12px; margin-bottom: 24px; }
  header h1 { margin: 0; font-size: 26px; text-transform: uppercase; letter-spacing: 2px; }
  header .sub { font-size: 13px; margin-top: 4px; }
  header .meta { float: right; text-align: right; font-size: 12px; }
  section { margin-bottom: 18px; }
  section h3 { font-size: 13px; text-transform: uppercase; border-bottom: 1px solid #000; padding-bottom: 2px; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  th { text-align: left; border-bottom: 2px solid #000; padding: 6px 4px; }
  td { border-bottom: 1px solid #bbb; padding: 6px 4px; }
  .identity td.label { font-weight: bold; width: 180px; }
  .amount { text-align: center; font-size: 26px; font-weight: bold; border: 2px solid #000; padding: 14px; margin: 18px 0; }
  .empty { text-align: center; font-style: italic; color: #555; }
  .tfoot td { border-bottom: none; font-weight: bold; }
  .placeholder { border: 1px dashed #888; color: #888; text-align: center; padding: 28px; font-size: 11px; text-transform: uppercase; }
  .signatures { display: flex; justify-content: space-between; margin-top: 60px; }
  .signatures div { width: 40%; border-top: 1px solid #000; padding-top: 6px; text-align: center; font-size: 11px; text-transform: uppercase; }
  footer { margin-top: 36px; font-size: 10px; color: #444; border-top: 1px solid #000; padding-top: 8px; }
  img.evidence { width: 100%; filter: grayscale(1) contrast(1.25); border: 1px solid #000; }
</style>
</head>
<body>
<div class="sheet" id="{{.TargetID}}">
<header>
  <div class="meta">
    {{if .Header.Ref}}<p><strong>{{clean .Header.Ref}}</strong></p>{{end}}
    <p>Datum: {{.Header.Date}}</p>
  </div>
  <h1>{{clean .Header.Title}}</h1>
  {{if .Header.Subtitle}}<p class="sub">{{clean .Header.Subtitle}}</p>{{end}}
  {{range .Header.Lines}}<p class="sub">{{clean .}}</p>{{end}}
</header>
{{range .Sections}}
  {{if eq .Kind "identity"}}
  <section>
    {{if .Title}}<h3>{{clean .Title}}</h3>{{end}}
    <table class="identity"><tbody>
    {{range .Fields}}<tr><td class="label">{{clean .Label}}:</td><td>{{clean .Value}}</td></tr>{{end}}
    </tbody></table>
  </section>
  {{else if eq .Kind "text"}}
  <section>
    {{if .Title}}<h3>{{clean .Title}}</h3>{{end}}
    <p>{{clean .Text}}</p>
  </section>
  {{else if eq .Kind "amount"}}
  <section><div class="amount">{{.Text}}</div></section>
  {{else if eq .Kind "table"}}
  <section>
    {{if .Title}}<h3>{{clean .Title}}</h3>{{end}}
    <table>
      <thead><tr>{{range .Table.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
      <tbody>
      {{if .Table.Rows}}
        {{range .Table.Rows}}<tr>{{range .}}<td>{{clean .}}</td>{{end}}</tr>{{end}}
      {{else}}
        <tr><td class="empty" colspan="{{len .Table.Columns}}">{{.Table.EmptyText}}</td></tr>
      {{end}}
      </tbody>
      {{if .Table.Footer}}
      <tfoot>
      {{range .Table.Footer}}<tr class="tfoot"><td>{{clean .Label}}</td><td style="text-align:right">{{clean .Value}}</td></tr>{{end}}
      </tfoot>
      {{end}}
    </table>
  </section>
  {{else if eq .Kind "image"}}
  <section>
    {{if .Image.Data}}
      {{if .Image.Caption}}<h3>{{clean .Image.Caption}}</h3>{{end}}
      <img class="evidence" src="{{datauri .Image}}" alt="Beweisfoto">
    {{else}}
      <div class="placeholder">{{.Image.Placeholder}}</div>
    {{end}}
  </section>
  {{else if eq .Kind "signatures"}}
  <div class="signatures">
    {{range .Signatures}}<div>{{clean .}}</div>{{end}}
  </div>
  {{end}}
{{end}}
{{if .Footer}}<footer>{{clean .Footer}}</footer>{{end}}
</div>
</body>
</html>`
