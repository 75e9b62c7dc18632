package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatetime(t *testing.T) {
	now := time.Date(2020, 5, 20, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) float64 { return float64(now.Add(-d).Unix()) }

	assert.Equal(t, "1 minute ago", datetimeAt(now, at(30*time.Second)))
	assert.Equal(t, "5 minutes ago", datetimeAt(now, at(5*time.Minute)))
	assert.Equal(t, "3 hours ago", datetimeAt(now, at(3*time.Hour+10*time.Minute)))
	assert.Equal(t, "2 days ago", datetimeAt(now, json.Number("1589803200")))
	old := time.Unix(int64(at(30*24*time.Hour)), 0).Format("2006-01-02")
	assert.Equal(t, old, datetimeAt(now, at(30*24*time.Hour)))
	assert.Equal(t, "abc", datetimeAt(now, "abc"))
}

func TestInitTemplates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(`<p>{% .name %}</p>`), 0o644))

	app := newTestApp(t, Get("/", returning(map[string]interface{}{TemplateKey: "index.html", "name": "y"})))
	require.NoError(t, InitTemplates(app, TemplateOptions{Path: dir, LeftDelim: "{%", RightDelim: "%}", AutoReload: true}))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "<p>y</p>", rec.Body.String())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(`<i>{% .name %}</i>`), 0o644))
	rec = serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "<i>y</i>", rec.Body.String())

	assert.Error(t, InitTemplates(New(nil), TemplateOptions{Path: filepath.Join(dir, "missing")}))
}
