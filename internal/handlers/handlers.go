package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"spendlog/internal/models"
	"spendlog/internal/service"

	"github.com/sirupsen/logrus"
)

// Context key type to avoid collisions.
type contextKey string

const (
	// UserContextKey is the context key for the authenticated user.
	UserContextKey contextKey = "user"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	auth         *service.Auth
	expenses     *service.Expenses
	log          *logrus.Logger
	templateDir  string
	secureCookie bool
}

// New creates a Handlers instance.
func New(auth *service.Auth, expenses *service.Expenses, log *logrus.Logger, templateDir string, secureCookie bool) *Handlers {
	return &Handlers{
		auth:         auth,
		expenses:     expenses,
		log:          log,
		templateDir:  templateDir,
		secureCookie: secureCookie,
	}
}

// UserFromContext retrieves the authenticated user from request context.
func UserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// RequireAuth wraps handlers to require a valid session. The resolved user is
// placed in the request context; anonymous requests are redirected to login.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		session, err := h.auth.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthenticated) {
				h.log.WithError(err).Error("session validation failed")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			h.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		if session.Renewed {
			h.setSessionCookie(w, cookie.Value, session.ExpiresAt)
		}

		ctx := context.WithValue(r.Context(), UserContextKey, session.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Index redirects to the dashboard when a session exists, otherwise to login.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.auth.Authenticate(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Healthz is a liveness probe.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) render(w http.ResponseWriter, viewName string, data any) {
	tmpl, err := template.ParseFiles(
		filepath.Join(h.templateDir, "base.html"),
		filepath.Join(h.templateDir, viewName),
	)
	if err != nil {
		h.log.WithError(err).WithField("view", viewName).Error("template parse failed")
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		h.log.WithError(err).WithField("view", viewName).Error("template execution failed")
	}
}
