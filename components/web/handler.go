package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-awesome/logging"
	"github.com/pkg/errors"
)

const maxMultipartMemory = 32 << 20

// RequestHandler adapts a HandlerFunc to gin. It extracts the keyword set the
// handler declared, invokes it and hands the result to the response coercion.
type RequestHandler struct {
	app   *App
	route *Route
	desc  *Descriptor
}

func NewRequestHandler(app *App, r *Route) (*RequestHandler, error) {
	d, err := Describe(r.Name, r.Params)
	if err != nil {
		return nil, err
	}
	return &RequestHandler{app: app, route: r, desc: d}, nil
}

func (h *RequestHandler) Handle(c *gin.Context) {
	r, err := h.Call(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.app.Respond(c, r)
}

// Call builds the keyword set and invokes the handler. Client errors are
// returned as an *HTTPError result, not as err.
func (h *RequestHandler) Call(c *gin.Context) (interface{}, error) {
	var kw Kwargs
	d := h.desc
	if d.WantsKeywords() {
		switch c.Request.Method {
		case http.MethodPost:
			params, bad := bodyParams(c)
			if bad != nil {
				return bad, nil
			}
			kw = params
		case http.MethodGet:
			if qs := c.Request.URL.RawQuery; qs != "" {
				kw = queryParams(qs)
			}
		}
	}

	if kw == nil {
		kw = make(Kwargs, len(c.Params))
		for _, p := range c.Params {
			kw[p.Key] = p.Value
		}
	} else {
		if !d.HasVarKeywords && len(d.NamedKeywords) > 0 {
			named := make(Kwargs, len(d.NamedKeywords))
			for _, name := range d.NamedKeywords {
				if v, ok := kw[name]; ok {
					named[name] = v
				}
			}
			kw = named
		}
		for _, p := range c.Params {
			if _, ok := kw[p.Key]; ok {
				logging.Warn().Str("arg", p.Key).Msg("duplicate arg name in named arg and kw args")
			}
			kw[p.Key] = p.Value
		}
	}

	if d.HasRequestArg {
		kw[RequestParam] = c
	}
	for _, name := range d.RequiredKeywords {
		if _, ok := kw[name]; !ok {
			return BadRequest("Missing argument: " + name), nil
		}
	}
	for name, v := range d.defaults {
		if _, ok := kw[name]; !ok {
			kw[name] = v
		}
	}

	logging.Info().Str("handler", h.route.Name).Interface("kwargs", kw.withoutRequest()).Msg("call with args")
	r, err := h.route.Handler(c.Request.Context(), kw)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr.Dict(), nil
		}
		return nil, err
	}
	return r, nil
}

func bodyParams(c *gin.Context) (Kwargs, *HTTPError) {
	ct := c.GetHeader("Content-Type")
	if ct == "" {
		return nil, BadRequest("Missing Content-Type.")
	}
	lower := strings.ToLower(ct)
	switch {
	case strings.HasPrefix(lower, "application/json"):
		var body interface{}
		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return nil, BadRequest("JSON body must be dict object.")
		}
		m, ok := body.(map[string]interface{})
		if !ok {
			return nil, BadRequest("JSON body must be dict object.")
		}
		return Kwargs(m), nil
	case strings.HasPrefix(lower, "application/x-www-form-urlencoded"):
		if err := c.Request.ParseForm(); err != nil {
			return nil, BadRequest("Invalid form body.")
		}
		return firstValues(c.Request.PostForm), nil
	case strings.HasPrefix(lower, "multipart/form-data"):
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, BadRequest("Invalid form body.")
		}
		kw := firstValues(c.Request.MultipartForm.Value)
		for k, files := range c.Request.MultipartForm.File {
			if len(files) > 0 {
				if _, ok := kw[k]; !ok {
					kw[k] = files[0]
				}
			}
		}
		return kw, nil
	}
	return nil, BadRequest("Unsupported Content-Type: " + ct)
}

// queryParams keeps blank values and the first value of repeated keys.
func queryParams(qs string) Kwargs {
	values, err := url.ParseQuery(qs)
	if err != nil {
		logging.Debug().Err(err).Str("query", qs).Msg("malformed query string")
	}
	return firstValues(values)
}

func firstValues(values map[string][]string) Kwargs {
	kw := make(Kwargs, len(values))
	for k, v := range values {
		if len(v) > 0 {
			kw[k] = v[0]
		}
	}
	return kw
}
