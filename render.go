package techpulse

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/techpulse/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
// A nil component renders the bare status text.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	if cmp == nil {
		return c.String(code, http.StatusText(code))
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// view calls fn when the user supplied it. Missing views render as nil.
func view[P any](fn func(views.SiteConfig, P) templ.Component, site views.SiteConfig, page P) templ.Component {
	if fn == nil {
		return nil
	}
	return fn(site, page)
}
