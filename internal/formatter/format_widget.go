package formatter

import (
	"bytes"
	"fmt"
	"go-gitissues/internal/domain/types/feedtypes"
	"go-gitissues/lib/e"
	"go-gitissues/pkg/config"
	"html/template"
	"io"
	"regexp"
)

const defaultLabelColor = "ededed"

var hexColor = regexp.MustCompile(`^[0-9a-fA-F]{3,8}$`)

var widgetTemplate = template.Must(template.New("widget").Funcs(template.FuncMap{
	"labelStyle": labelStyle,
}).Parse(`<div class="gitissues">
	<h1>GitHub Issues for {{.Name}}</h1>
	{{- if .State.Warning}}
	<p class="info">{{.State.Warning}}</p>
	{{- end}}
	<table class="issues">
		<tbody>
		{{- range .State.DisplayIssues}}{{if .Title}}
			<tr>
				<td class="number">#{{.Number}} </td>
				<td class="row">
					<a href="{{.URL}}">{{.Title}}</a><br>
					<span class="meta">by {{.User}} {{.Time}}</span>
					{{- range .Labels}}
					<span class="label" style="{{labelStyle .Color}}">{{.Name}}</span>
					{{- end}}
				</td>
				<td><span class="comments">{{.Comments}}</span></td>
			</tr>
		{{- end}}{{end}}
		</tbody>
	</table>
	<p class="info">Last Updated {{.State.LastChecked}}</p>
</div>`))

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta http-equiv="refresh" content="{{.RefreshSeconds}}">
	<title>GitHub Issues for {{.Name}}</title>
	<style>{{.CSS}}</style>
</head>
<body>
{{.Widget}}
</body>
</html>`))

type widgetData struct {
	Name  string
	State feedtypes.FeedState
}

type pageData struct {
	Name           string
	RefreshSeconds int
	CSS            template.CSS
	Widget         template.HTML
}

// RenderWidget writes the widget markup for state. name is the repository name
// shown in the heading.
func RenderWidget(w io.Writer, name string, state feedtypes.FeedState) error {
	if err := widgetTemplate.Execute(w, widgetData{Name: name, State: state}); err != nil {
		return fmt.Errorf("%w: %v", e.ErrRender, err)
	}

	return nil
}

// RenderPage writes a standalone document that positions the widget with style
// and reloads itself every refreshSeconds.
func RenderPage(w io.Writer, name string, state feedtypes.FeedState, style config.Style, refreshSeconds int) error {
	var widget bytes.Buffer
	if err := RenderWidget(&widget, name, state); err != nil {
		return err
	}

	if refreshSeconds < 1 {
		refreshSeconds = 1
	}

	data := pageData{
		Name:           name,
		RefreshSeconds: refreshSeconds,
		CSS:            template.CSS(WidgetCSS(style)),
		Widget:         template.HTML(widget.String()),
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %v", e.ErrRender, err)
	}

	return nil
}

// WidgetCSS returns the stylesheet for the widget. Values come from trusted
// configuration and are not escaped.
func WidgetCSS(style config.Style) string {
	return fmt.Sprintf(`
		body { margin: 0; background: transparent; }
		.gitissues { position: absolute; top: %dpx; left: %dpx; width: %dpx; color: %s; background-color: %s; border-radius: %dpx; padding: %dpx; font-size: %dpx; font-family: %s; }
		.gitissues a { color: inherit; text-decoration: none; }
		.gitissues .issues { border-collapse: separate; }
		.gitissues .row { border-bottom: 1px solid #fff; }
		.gitissues .number { padding-right: 10px; text-align: right; }
		.gitissues .meta { color: rgb(220, 255, 230); }
		.gitissues .comments { text-align: right; background-color: rgb(200, 180, 190); padding: 4px 8px; margin: 2px; display: inline-block; border-radius: 5px; color: #333; }
		.gitissues .label { display: inline-block; margin-left: 4px; padding: 0 4px; border-radius: 3px; color: #333; }
		.gitissues .info { background-color: rgb(240, 240, 240); color: #333; padding: 10px; border-radius: 5px; margin-top: 15px; text-align: center; }
	`,
		style.Top, style.Left, style.Width, style.Color, style.BackgroundColor,
		style.BorderRadius, style.Padding, style.FontSize, style.FontFamily)
}

func labelStyle(color string) template.CSS {
	if !hexColor.MatchString(color) {
		color = defaultLabelColor
	}

	return template.CSS("background-color: #" + color)
}
