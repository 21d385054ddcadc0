package middleware

import (
	"ctchen222/Recipe-Box/internal/api/response"
	"ctchen222/Recipe-Box/internal/session"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const contextSession = "session"

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Session loads the request's session from its cookie and keeps the cookie
// in step with whatever state the handler leaves the session in.
func Session(m *session.Manager, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(opts.Name)

		sess, err := m.Load(c.Request.Context(), token)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "session store unavailable", "error", err)
			response.ErrorResponse(c, http.StatusServiceUnavailable, response.KindInternal, "session store unavailable")
			return
		}

		c.Set(contextSession, sess)
		c.Writer = &cookieWriter{
			ResponseWriter: c.Writer,
			sync: func(h http.Header) {
				syncCookie(h, opts, token, sess.Token())
			},
		}
		c.Next()
	}
}

// FromContext returns the session loaded by Session, or an anonymous one.
func FromContext(c *gin.Context) *session.Session {
	if v, ok := c.Get(contextSession); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return session.Anonymous()
}

func syncCookie(h http.Header, opts CookieOptions, sent, current string) {
	if sent == current {
		return
	}

	cookie := &http.Cookie{
		Name:     opts.Name,
		Value:    current,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if current == "" {
		cookie.MaxAge = -1
	} else if opts.TTL > 0 {
		cookie.MaxAge = int(opts.TTL.Seconds())
	}
	h.Add("Set-Cookie", cookie.String())
}

// cookieWriter runs sync once, right before the status line goes out.
type cookieWriter struct {
	gin.ResponseWriter
	sync   func(http.Header)
	synced bool
}

func (w *cookieWriter) flushCookie() {
	if w.synced {
		return
	}
	w.synced = true
	w.sync(w.Header())
}

func (w *cookieWriter) WriteHeader(code int) {
	w.flushCookie()
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieWriter) WriteHeaderNow() {
	w.flushCookie()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cookieWriter) Write(data []byte) (int, error) {
	w.flushCookie()
	return w.ResponseWriter.Write(data)
}

func (w *cookieWriter) WriteString(s string) (int, error) {
	w.flushCookie()
	return w.ResponseWriter.WriteString(s)
}
