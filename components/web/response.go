package web

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/go-awesome/logging"
	"github.com/pkg/errors"
)

const (
	// TemplateKey names the template a map result is rendered with.
	TemplateKey = "__template__"

	redirectPrefix = "redirect:"

	contentTypeOctet = "application/octet-stream"
	contentTypeHTML  = "text/html;charset=utf-8"
	contentTypeJSON  = "application/json;charset=utf-8"
	contentTypeText  = "text/plain;charset=utf-8"
)

// Response is a result that knows how to write itself.
type Response interface {
	Render(c *gin.Context)
}

// HTTPError is an HTTP status with a plain text body.
type HTTPError struct {
	Code int
	Text string
}

func BadRequest(text string) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, Text: text}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Text)
}

func (e *HTTPError) Render(c *gin.Context) {
	c.Data(e.Code, contentTypeText, []byte(e.Text))
}

// Redirect answers with a redirect to Location; Code defaults to 302.
type Redirect struct {
	Location string
	Code     int
}

func (r Redirect) Render(c *gin.Context) {
	code := r.Code
	if code == 0 {
		code = http.StatusFound
	}
	c.Redirect(code, r.Location)
}

// StatusText is a status code with a message body.
type StatusText struct {
	Code    int
	Message interface{}
}

// validStatus reports whether code is a final status. 1xx codes are
// informational and would reach the client as a 200.
func validStatus(code int64) bool {
	return code >= 200 && code < 600
}

// Respond writes handler result r to the client.
func (a *App) Respond(c *gin.Context, r interface{}) {
	logging.Debug().Str("type", fmt.Sprintf("%T", r)).Msg("response")

	switch v := r.(type) {
	case Response:
		v.Render(c)
		return
	case []byte:
		c.Data(http.StatusOK, contentTypeOctet, v)
		return
	case string:
		if strings.HasPrefix(v, redirectPrefix) {
			c.Redirect(http.StatusFound, v[len(redirectPrefix):])
			return
		}
		c.Data(http.StatusOK, contentTypeHTML, []byte(v))
		return
	case StatusText:
		if validStatus(int64(v.Code)) {
			c.Data(v.Code, contentTypeText, []byte(fmt.Sprint(v.Message)))
			return
		}
	case [2]interface{}:
		if code, ok := asInt(v[0]); ok && validStatus(code) {
			c.Data(int(code), contentTypeText, []byte(fmt.Sprint(v[1])))
			return
		}
	}

	if m, ok := asMap(r); ok {
		a.respondMap(c, m)
		return
	}
	if code, ok := asInt(r); ok && validStatus(code) {
		c.Status(int(code))
		c.Writer.WriteHeaderNow()
		return
	}
	c.Data(http.StatusOK, contentTypeText, []byte(fmt.Sprint(r)))
}

func (a *App) respondMap(c *gin.Context, m map[string]interface{}) {
	if name, ok := m[TemplateKey]; ok {
		t, err := a.template()
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.Render(http.StatusOK, render.HTML{Template: t, Name: fmt.Sprint(name), Data: m})
		return
	}
	r := jsonRender{render.PureJSON{Data: m}}
	c.Status(http.StatusOK)
	if err := r.Render(c.Writer); err != nil {
		c.Writer.Header().Del("Content-Type")
		_ = c.Error(errors.Wrap(err, "encode response"))
	}
}

// jsonRender is render.PureJSON (no HTML escaping) with the json content type
// this API always answered with.
type jsonRender struct {
	render.PureJSON
}

func (r jsonRender) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", contentTypeJSON)
}

func (r jsonRender) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	return r.PureJSON.Render(w)
}

// asMap accepts any map keyed by strings (Kwargs, gin.H, orm.Values...).
func asMap(r interface{}) (map[string]interface{}, bool) {
	if r == nil {
		return nil, false
	}
	if m, ok := r.(map[string]interface{}); ok {
		return m, true
	}
	rv := reflect.ValueOf(r)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

func asInt(v interface{}) (int64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<62 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}
