package web

import (
	"context"
	"net/http"
	"reflect"
	"runtime"
	"strings"

	"github.com/go-awesome/logging"
	"github.com/pkg/errors"
)

var ErrRouteNotDefined = errors.New("method or route not defined")

// HandlerFunc is an application handler. The keyword set is built by the
// binder from the request.
type HandlerFunc func(ctx context.Context, kw Kwargs) (interface{}, error)

// Route carries the method, path and parameter list of a handler.
type Route struct {
	Method  string
	Path    string
	Name    string
	Handler HandlerFunc
	Params  []Param
}

func Get(path string, fn HandlerFunc, params ...Param) *Route {
	return newRoute(http.MethodGet, path, fn, params)
}

func Post(path string, fn HandlerFunc, params ...Param) *Route {
	return newRoute(http.MethodPost, path, fn, params)
}

func newRoute(method, path string, fn HandlerFunc, params []Param) *Route {
	return &Route{Method: method, Path: path, Name: funcName(fn), Handler: fn, Params: params}
}

func funcName(fn HandlerFunc) string {
	if fn == nil {
		return ""
	}
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func (r *Route) String() string {
	return r.Method + " " + r.Path + " => " + r.Name + "(" + FormatParams(r.Params) + ")"
}

// AddRoute validates r and mounts it on the app.
func AddRoute(app *App, r *Route) error {
	if r == nil || r.Method == "" || r.Path == "" || r.Handler == nil {
		name := ""
		if r != nil {
			name = r.Name
		}
		return errors.Wrapf(ErrRouteNotDefined, "in %q", name)
	}
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		return errors.Wrapf(ErrRouteNotDefined, "unsupported method %s in %s", r.Method, r.Name)
	}
	h, err := NewRequestHandler(app, r)
	if err != nil {
		return err
	}
	app.Handle(r.Method, r.Path, h.Handle)
	logging.Info().Msg("add route " + r.String())
	return nil
}

// AddRoutes mounts every route, stopping at the first invalid one.
func AddRoutes(app *App, routes ...*Route) error {
	for _, r := range routes {
		if err := AddRoute(app, r); err != nil {
			return err
		}
	}
	return nil
}

// AddStatic serves dir under /static/.
func AddStatic(app *App, dir string) {
	app.Static("/static", dir)
	logging.Info().Str("path", dir).Msg("add static /static/")
}
