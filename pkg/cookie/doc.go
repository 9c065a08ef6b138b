// Package cookie builds and reads the plain HTTP cookies that carry a session.
//
// A Manager applies one attribute policy to every cookie it writes. The
// defaults are HttpOnly, Secure, Path=/ and SameSite=Lax:
//
//	m := cookie.New(cookie.ForSite("https://example.com"))
//	m.Set(w, "session", value, 28800)
//	m.Delete(w, "csrf")
//
//	value, err := m.Get(r, "session")
//	if errors.Is(err, cookie.ErrNotFound) {
//		// no cookie
//	}
//
// ForSite omits SameSite when the site runs on a plain-http loopback origin
// such as http://localhost:8888.
//
// Delete writes an empty value with MaxAge -1, serialized by net/http as
// Max-Age=0, which browsers treat as an immediate expiry.
package cookie
