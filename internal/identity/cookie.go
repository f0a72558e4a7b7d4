package identity

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// CookieName is the cookie carrying the device identifier in HTTP requests.
const CookieName = "folio_device"

const cookieMaxAge = 365 * 24 * time.Hour

// CookieProvider is a request-scoped provider. It reuses the identifier sent
// in the request cookie or mints a new one and sets it on the response.
type CookieProvider struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool

	once sync.Once
	id   string
}

// NewCookieProvider binds a provider to a single request/response pair.
func NewCookieProvider(w http.ResponseWriter, r *http.Request, secure bool) *CookieProvider {
	return &CookieProvider{w: w, r: r, secure: secure}
}

// DeviceID returns the request's identifier. Malformed cookies are replaced.
func (p *CookieProvider) DeviceID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.once.Do(func() {
		if c, err := p.r.Cookie(CookieName); err == nil && Valid(c.Value) {
			p.id = c.Value
			return
		}
		p.id = NewID()
		http.SetCookie(p.w, &http.Cookie{
			Name:     CookieName,
			Value:    p.id,
			Path:     "/",
			MaxAge:   int(cookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   p.secure,
			SameSite: http.SameSiteLaxMode,
		})
	})
	return p.id, nil
}
