package http

import (
	"embed"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/nurpe/booking-wizard/internal/pricing"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// NewTemplates parses the embedded page templates. Dates are rendered in loc.
func NewTemplates(loc *time.Location) (*template.Template, error) {
	return template.New("pages").Funcs(templateFuncs(loc)).ParseFS(templateFS, "templates/*.tmpl")
}

func templateFuncs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"yen":          formatYen,
		"serviceLabel": pricing.ServiceLabel,
		"datetime": func(t time.Time) string {
			return t.In(loc).Format("2006-01-02 15:04")
		},
		"date": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}

func formatYen(amount int) string {
	raw := strconv.Itoa(amount)
	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign, raw = "-", raw[1:]
	}
	var b strings.Builder
	for i, r := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
