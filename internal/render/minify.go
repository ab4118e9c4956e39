package render

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const mimeHTML = "text/html"

// MinifyConfig configures the Minify middleware.
type MinifyConfig struct {
	// Skipper bypasses buffering for matching requests, e.g. static files.
	Skipper middleware.Skipper
}

// bufferWriter holds back the response so it can be rewritten.
type bufferWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *bufferWriter) WriteHeader(code int) {
	w.status = code
}

func (w *bufferWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

// Minify strips comments and whitespace from successful HTML responses.
func Minify() echo.MiddlewareFunc {
	return MinifyWithConfig(MinifyConfig{})
}

// MinifyWithConfig returns a Minify middleware with config.
func MinifyWithConfig(config MinifyConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	m := minify.New()
	m.Add(mimeHTML, &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			res := c.Response()
			orig := res.Writer
			bw := &bufferWriter{ResponseWriter: orig}
			res.Writer = bw

			defer func() {
				res.Writer = orig
				if r := recover(); r != nil {
					// buffered output is dropped, the recovering
					// middleware writes its own response
					res.Committed = false
					res.Status = http.StatusOK
					res.Size = 0
					panic(r)
				}
			}()

			err := next(c)
			res.Writer = orig

			if !res.Committed {
				return err
			}

			status := bw.status
			if status == 0 {
				status = http.StatusOK
			}

			body := bw.buf.Bytes()
			if status == http.StatusOK && strings.HasPrefix(orig.Header().Get(echo.HeaderContentType), mimeHTML) {
				// unparsable markup is sent as is
				if minified, errMin := m.Bytes(mimeHTML, body); errMin == nil {
					body = minified
					orig.Header().Del(echo.HeaderContentLength)
				}
			}

			orig.WriteHeader(status)
			if _, errWrite := orig.Write(body); errWrite != nil && err == nil {
				err = errWrite
			}

			return err
		}
	}
}
