package web

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, routes ...*Route) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app := New(gin.New())
	app.Use(ErrorBoundary(errClient))
	require.NoError(t, AddRoutes(app, routes...))
	return app
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func echo(ctx context.Context, kw Kwargs) (interface{}, error) {
	return kw.withoutRequest(), nil
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRequiredKeyword(t *testing.T) {
	app := newTestApp(t, Get("/item", echo, KeywordOnly("id")))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/item", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing argument: id", rec.Body.String())

	rec = serve(app, httptest.NewRequest(http.MethodGet, "/item?id=7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"7"}`, rec.Body.String())
}

func TestQueryString(t *testing.T) {
	app := newTestApp(t, Get("/q", echo, VarKeywords("kw")))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/q?a=1&a=2&blank=&b=x%20y", nil))
	assert.JSONEq(t, `{"a":"1","blank":"","b":"x y"}`, rec.Body.String())
}

func TestPathParamsWithoutKeywords(t *testing.T) {
	app := newTestApp(t, Get("/users/:id", echo, Arg("id")))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/users/u1?ignored=1", nil))
	assert.JSONEq(t, `{"id":"u1"}`, rec.Body.String())
}

func TestNamedKeywordsFilterAndPathMerge(t *testing.T) {
	app := newTestApp(t, Post("/users/:id", echo, Arg("id"), KeywordOnly("name")))

	rec := serve(app, postJSON("/users/u1", `{"id":"body","name":"n","extra":true}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"u1","name":"n"}`, rec.Body.String())
}

func TestVarKeywordsKeepsEverything(t *testing.T) {
	app := newTestApp(t, Post("/kw", echo, KeywordOnly("name"), VarKeywords("kw")))

	rec := serve(app, postJSON("/kw", `{"name":"n","count":3,"nested":{"a":[1,2]}}`))
	assert.JSONEq(t, `{"name":"n","count":3,"nested":{"a":[1,2]}}`, rec.Body.String())
}

func TestKeywordDefaults(t *testing.T) {
	app := newTestApp(t, Get("/page", echo, KeywordOnlyDefault("page", "1")))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.JSONEq(t, `{"page":"1"}`, rec.Body.String())
	rec = serve(app, httptest.NewRequest(http.MethodGet, "/page?page=3", nil))
	assert.JSONEq(t, `{"page":"3"}`, rec.Body.String())
}

func TestPostBodyErrors(t *testing.T) {
	app := newTestApp(t, Post("/b", echo, KeywordOnly("name")))

	req := httptest.NewRequest(http.MethodPost, "/b", strings.NewReader(`{"name":"n"}`))
	rec := serve(app, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing Content-Type.", rec.Body.String())

	for _, body := range []string{`[1,2]`, `"name"`, `{broken`, ``} {
		rec = serve(app, postJSON("/b", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "JSON body must be dict object.", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/b", strings.NewReader("name"))
	req.Header.Set("Content-Type", "text/plain")
	rec = serve(app, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unsupported Content-Type: text/plain", rec.Body.String())
}

func TestPostForms(t *testing.T) {
	app := newTestApp(t, Post("/f", echo, VarKeywords("kw")))

	req := httptest.NewRequest(http.MethodPost, "/f", strings.NewReader("name=a&name=b&email=x%40y"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	rec := serve(app, req)
	assert.JSONEq(t, `{"name":"a","email":"x@y"}`, rec.Body.String())

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "m"))
	require.NoError(t, w.Close())
	req = httptest.NewRequest(http.MethodPost, "/f", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec = serve(app, req)
	assert.JSONEq(t, `{"name":"m"}`, rec.Body.String())
}

func TestRequestInjection(t *testing.T) {
	fn := func(ctx context.Context, kw Kwargs) (interface{}, error) {
		c := kw.Request()
		require.NotNil(t, c)
		return c.Request.Method + " " + kw.String("id"), nil
	}
	app := newTestApp(t, Get("/r/:id", fn, Request()))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/r/9", nil))
	assert.Equal(t, "GET 9", rec.Body.String())
}

func TestAPIErrorBecomesDict(t *testing.T) {
	fn := func(ctx context.Context, kw Kwargs) (interface{}, error) {
		return nil, APIValueError("email", "invalid email")
	}
	app := newTestApp(t, Get("/e", fn))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/e", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"error":"value:invalid","data":"email","message":"invalid email"}`, rec.Body.String())
}

type bindTarget struct {
	Name  string `mapstructure:"name" validate:"required"`
	Count int    `mapstructure:"count"`
}

func TestKwargsBind(t *testing.T) {
	var dst bindTarget
	require.NoError(t, Kwargs{"name": "n", "count": "4", RequestParam: &gin.Context{}}.Bind(&dst))
	assert.Equal(t, bindTarget{Name: "n", Count: 4}, dst)

	err := Kwargs{"count": 1}.Bind(&bindTarget{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	assert.Equal(t, "", Kwargs{}.String("missing"))
	assert.Nil(t, Kwargs{}.Request())
}
