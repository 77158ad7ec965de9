package gate

import (
	"net/http"
	"time"
)

// SetSession writes the session cookie carrying raw.
func (g *Gate) SetSession(w http.ResponseWriter, raw string) {
	http.SetCookie(w, g.cookie(raw, int(g.cfg.MaxAge/time.Second)))
}

// ClearSession overwrites the session cookie with an empty, already expired one.
func (g *Gate) ClearSession(w http.ResponseWriter) {
	c := g.cookie("", -1)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (g *Gate) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     g.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
