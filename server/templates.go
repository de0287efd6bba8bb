package server

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFiles embed.FS

// adminPageData is what templates/admin.html renders. CSRFToken ends up in the csrf-token meta tag that
// the transport client reads through LoadDocument.
type adminPageData struct {
	AppName   string
	CSRFToken string
	UserName  string
}

func parseAdminPage() (*template.Template, error) {
	page, err := template.New("admin.html").
		Funcs(template.FuncMap{"initials": initials}).
		ParseFS(templateFiles, "templates/admin.html")
	if err != nil {
		return nil, fmt.Errorf("[server.parseAdminPage] %w", err)
	}
	return page, nil
}

func initials(name string) string {
	var out []rune
	start := true
	for _, r := range name {
		switch {
		case r == ' ':
			start = true
		case start:
			out = append(out, r)
			start = false
		}
	}
	return string(out)
}
