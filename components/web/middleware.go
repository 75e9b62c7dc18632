package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-awesome/logging"
	"github.com/go-awesome/utils/validate"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
)

// Logger logs every request and its outcome.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		logging.Info().Msgf("Request: %s %s", c.Request.Method, c.Request.URL.Path)
		c.Next()
		logging.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Response")
	}
}

// Tracing starts a server span per request, joining an incoming trace when the
// headers carry one.
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		tracer := opentracing.GlobalTracer()
		var opts []opentracing.StartSpanOption
		if parent, err := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(c.Request.Header)); err == nil {
			opts = append(opts, ext.RPCServerOption(parent))
		}
		span := tracer.StartSpan(c.Request.Method+" "+c.FullPath(), opts...)
		defer span.Finish()
		ext.HTTPMethod.Set(span, c.Request.Method)
		ext.HTTPUrl.Set(span, c.Request.URL.String())

		c.Request = c.Request.WithContext(opentracing.ContextWithSpan(c.Request.Context(), span))
		c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
		if c.Writer.Status() >= http.StatusInternalServerError {
			ext.Error.Set(span, true)
		}
	}
}

// ErrorBoundary turns errors left by handlers into responses. Errors matching
// one of clientErrors, validation failures and *HTTPError are answered with
// 400 (or the error's own code); anything else is logged and answered with 500.
func ErrorBoundary(clientErrors ...error) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			httpErr.Render(c)
			return
		}
		var fieldErr *validate.FieldError
		if errors.As(err, &fieldErr) {
			BadRequest(fieldErr.Error()).Render(c)
			return
		}
		for _, target := range clientErrors {
			if errors.Is(err, target) {
				BadRequest(err.Error()).Render(c)
				return
			}
		}
		logging.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		(&HTTPError{Code: http.StatusInternalServerError, Text: http.StatusText(http.StatusInternalServerError)}).Render(c)
	}
}
