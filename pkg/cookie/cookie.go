package cookie

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Errors.
var (
	ErrNotFound = errors.New("cookie: not found")
)

// Manager handles cookie operations.
type Manager struct {
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager with the given options.
// Cookies default to HttpOnly, Secure, Path=/ and SameSite=Lax.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		secure:   true,
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ForSite drops the SameSite attribute when siteURL points at a local
// development host, where browsers reject Lax cookies on the callback hop.
func ForSite(siteURL string) Option {
	return func(m *Manager) {
		if IsLoopback(siteURL) {
			m.sameSite = http.SameSiteDefaultMode
		}
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) {
		m.httpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set sets a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.Cookie(name, value, maxAge))
}

// Delete expires a cookie immediately.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.Cookie(name, "", -1))
}

// Cookie builds a cookie with the manager's defaults without writing it.
// A negative maxAge expires the cookie.
func (m *Manager) Cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}

// IsLoopback reports whether siteURL is a plain-http local development origin.
func IsLoopback(siteURL string) bool {
	u, err := url.Parse(siteURL)
	if err != nil || u.Scheme != "http" {
		return false
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// ValidValue reports whether v survives http.SetCookie unchanged: printable
// ASCII without whitespace, double quote, comma, semicolon or backslash.
func ValidValue(v string) bool {
	for i := range len(v) {
		b := v[i]
		if b <= 0x20 || b >= 0x7f || b == '"' || b == ',' || b == ';' || b == '\\' {
			return false
		}
	}
	return true
}
