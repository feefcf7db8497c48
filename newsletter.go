package techpulse

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/techpulse/views"
)

// handleNewsletter records a signup in the visitor's session. No address is
// kept server side.
func (a *App) handleNewsletter(c echo.Context) error {
	state := views.Newsletter{CSRFToken: CsrfToken(c)}

	if !a.limiter.Allow(c.RealIP()) {
		state.Error = "Too many attempts. Please try again in a minute."
		return a.respondNewsletter(c, http.StatusTooManyRequests, state)
	}

	email := strings.TrimSpace(c.FormValue("email"))
	if !validEmail(email) {
		state.Error = "Please enter a valid email address."
		return a.respondNewsletter(c, http.StatusUnprocessableEntity, state)
	}

	if err := setSubscribed(c); err != nil {
		return err
	}
	c.Logger().Infof("newsletter signup from %s", c.RealIP())
	state.Subscribed = true
	return a.respondNewsletter(c, http.StatusOK, state)
}

// respondNewsletter renders the signup widget for htmx requests. htmx only
// swaps 2xx responses, so errors are reported in the body with status 200.
// Plain form posts are redirected home on success.
func (a *App) respondNewsletter(c echo.Context, code int, state views.Newsletter) error {
	if isHTMX(c) {
		code = http.StatusOK
	} else if state.Subscribed {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if a.Views.Newsletter == nil {
		return RenderStatus(c, code, nil)
	}
	return RenderStatus(c, code, a.Views.Newsletter(state))
}

func validEmail(s string) bool {
	if s == "" || len(s) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
