package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/homestock-backend/pkg/config"
)

const bearerPrefix = "Bearer "

// Manager owns the session cookie lifecycle. Tokens themselves are minted by
// auth.Issuer; the manager only moves them in and out of HTTP messages.
type Manager struct {
	name   string
	maxAge time.Duration
	secure bool
}

// NewManager derives cookie attributes from configuration. The Secure flag is
// on in production or when explicitly forced.
func NewManager(cfg config.SessionConfig, app config.AppConfig) *Manager {
	name := strings.TrimSpace(cfg.CookieName)
	if name == "" {
		name = "homestock_session"
	}
	return &Manager{
		name:   name,
		maxAge: cfg.TTL,
		secure: app.IsProd() || cfg.ForceSecureCookie,
	}
}

// Set writes the session cookie carrying token.
func (m *Manager) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.cookie(token, int(m.maxAge/time.Second)))
}

// Clear expires the session cookie. It is safe to call without a session.
func (m *Manager) Clear(w http.ResponseWriter) {
	c := m.cookie("", -1)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromRequest returns the session token from the cookie, falling back to
// an Authorization bearer header. The empty string means no session was sent.
func (m *Manager) TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(m.name); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	return ""
}
