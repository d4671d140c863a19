package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed assets/style.css
var stylesheet []byte

// StylesheetName is the stylesheet every report page links to.
const StylesheetName = "style.css"

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"destLines": func(dest string) []string { return strings.Split(dest, "-") },
	"bitmap":    func(dir, name string) string { return path.Join(dir, name) },
}).Parse(`<!DOCTYPE html>
<html lang="en">

<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<link rel="stylesheet" href="{{.Stylesheet}}">
	<title>{{.Title}}</title>
</head>

<body>
	<table>
		<thead>
			<tr>
				<th>路綫</th>
				<th>方向</th>
				<th>次序</th>
				<th>顯示</th>
			</tr>
		</thead>
		<tbody>
{{- range .Table.Rows}}
			<tr>
{{- with .Route}}{{if .Visible}}<td class="route"{{if gt .RowSpan 1}} rowspan="{{.RowSpan}}"{{end}}>{{.Value}}</td>{{end}}{{end}}
{{- with .Destination}}{{if .Visible}}<td class="dest"{{if gt .RowSpan 1}} rowspan="{{.RowSpan}}"{{end}}>{{range $i, $line := destLines .Value}}{{if $i}}<br>-{{end}}{{$line}}{{end}}</td>{{end}}{{end}}
{{- with .Sequence}}{{if .Visible}}<td class="seq"{{if gt .RowSpan 1}} rowspan="{{.RowSpan}}"{{end}}>{{.Value}}</td>{{end}}{{end}}
<td class="files">
{{- range .Versions}}<div><h1>{{.Heading}}</h1>
{{- range .Pages}}<div><span><p>Page</p><h2>{{.Number}}</h2></span><span><img src="{{bitmap $.BitmapDir .Filename}}"></span></div>{{end -}}
</div>{{end -}}
</td></tr>
{{- end}}
		</tbody>
	</table>
</body>
`))

type pageData struct {
	Title      string
	Stylesheet string
	BitmapDir  string
	Table      Table
}

// WriteHTML writes t as a standalone page. Images are referenced below bitmapDir.
func WriteHTML(w io.Writer, t Table, timestamp, bitmapDir string) error {
	data := pageData{
		Title:      fmt.Sprintf("%s (%s)", t.Label, timestamp),
		Stylesheet: StylesheetName,
		BitmapDir:  bitmapDir,
		Table:      t,
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", t.Filename, err)
	}
	return nil
}

// WriteHTMLFile writes t to dir/t.Filename.
func WriteHTMLFile(dir string, t Table, timestamp, bitmapDir string) error {
	f, err := os.Create(filepath.Join(dir, t.Filename))
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteHTML(f, t, timestamp, bitmapDir); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteStylesheet writes the default stylesheet into dir unless one already exists.
func WriteStylesheet(dir string) (bool, error) {
	p := filepath.Join(dir, StylesheetName)
	if _, err := os.Stat(p); err == nil {
		return false, nil
	}
	if err := os.WriteFile(p, stylesheet, 0o644); err != nil {
		return false, fmt.Errorf("failed to write stylesheet: %w", err)
	}
	return true, nil
}

// Summary returns the Markdown index linking every report page.
func Summary(tables []Table) string {
	var b strings.Builder
	for _, t := range tables {
		fmt.Fprintf(&b, "- [%s](%s)\n", strings.ToUpper(t.Label), t.Filename)
	}
	return b.String()
}
