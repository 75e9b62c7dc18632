package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-awesome/logging"
	"github.com/pkg/errors"
)

type TemplateOptions struct {
	Path       string
	LeftDelim  string
	RightDelim string
	AutoReload bool
	Filters    template.FuncMap
}

// InitTemplates parses every *.html under opts.Path into the app. Filters are
// merged over DefaultFilters.
func InitTemplates(app *App, opts TemplateOptions) error {
	funcs := DefaultFilters()
	for name, f := range opts.Filters {
		funcs[name] = f
	}
	pattern := filepath.Join(opts.Path, "*.html")
	logging.Info().Str("path", opts.Path).Msg("set templates path")

	load := func() (*template.Template, error) {
		t, err := template.New("").Delims(opts.LeftDelim, opts.RightDelim).Funcs(funcs).ParseGlob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "parse templates %s", pattern)
		}
		return t, nil
	}
	t, err := load()
	if err != nil {
		return err
	}
	app.SetTemplates(t)
	app.loader = load
	app.reload = opts.AutoReload
	return nil
}

func DefaultFilters() template.FuncMap {
	return template.FuncMap{"datetime": Datetime}
}

// Datetime renders a unix timestamp relative to now.
func Datetime(t interface{}) string {
	return datetimeAt(time.Now(), t)
}

func datetimeAt(now time.Time, t interface{}) string {
	secs, ok := toSeconds(t)
	if !ok {
		return fmt.Sprint(t)
	}
	delta := int64(float64(now.UnixNano())/1e9 - secs)
	switch {
	case delta < 60:
		return "1 minute ago"
	case delta < 3600:
		return fmt.Sprintf("%d minutes ago", delta/60)
	case delta < 86400:
		return fmt.Sprintf("%d hours ago", delta/3600)
	case delta < 604800:
		return fmt.Sprintf("%d days ago", delta/86400)
	}
	return time.Unix(int64(secs), 0).Format("2006-01-02")
}

func toSeconds(t interface{}) (float64, bool) {
	switch v := t.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	case time.Time:
		return float64(v.UnixNano()) / 1e9, true
	}
	return 0, false
}
