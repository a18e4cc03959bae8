package templates

import (
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
}

// Load parses every embedded page together with the shared layout blocks.
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "*.html")
}
