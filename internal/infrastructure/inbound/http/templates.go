package delivery_http

import (
	"embed"
	"html/template"
	"strings"

	"pinstack-post-page/internal/application/page"
)

//go:embed templates/*.html
var templateFS embed.FS

var functions = template.FuncMap{
	"loadingMessage": func() string { return page.MessageLoading },
	"imageSrc":       imageSrc,
}

// imageSrc lets inline image data URLs through the template URL filter.
func imageSrc(url string) any {
	if strings.HasPrefix(url, "data:image/") {
		return template.URL(url)
	}
	return url
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(functions).ParseFS(templateFS, "templates/*.html")
}
