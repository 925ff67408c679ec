package handlers

import (
	"errors"
	"net/http"
	"strings"

	"spendlog/internal/service"
)

// LoginViewModel holds data for the login page.
type LoginViewModel struct {
	Error  string
	Notice string
	Email  string
}

// RegisterViewModel holds data for the registration page.
type RegisterViewModel struct {
	Error    string
	Username string
	Email    string
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	// Already logged in users go straight to the dashboard
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.auth.Authenticate(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
	}

	vm := LoginViewModel{}
	if r.URL.Query().Get("registered") == "1" {
		vm.Notice = "Registration successful! Please log in."
	}
	h.render(w, "login.html", vm)
}

// Login handles the login form submission.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "login.html", LoginViewModel{Error: "Invalid form submission"})
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.render(w, "login.html", LoginViewModel{Error: "Email and password are required", Email: email})
		return
	}

	token, expiresAt, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.render(w, "login.html", LoginViewModel{Error: "Invalid email or password", Email: email})
			return
		}
		h.log.WithError(err).Error("login failed")
		h.render(w, "login.html", LoginViewModel{Error: "An error occurred. Please try again.", Email: email})
		return
	}

	h.setSessionCookie(w, token, expiresAt)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// RegisterForm renders the registration page.
func (h *Handlers) RegisterForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "register.html", RegisterViewModel{})
}

// Register handles the registration form submission.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "register.html", RegisterViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	_, err := h.auth.Register(r.Context(), username, email, password)
	if err != nil {
		vm := RegisterViewModel{Username: username, Email: email}

		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			vm.Error = vErr.Message
		case errors.Is(err, service.ErrDuplicateUser):
			vm.Error = "User already exists"
		default:
			h.log.WithError(err).Error("registration failed")
			vm.Error = "An error occurred. Please try again."
		}
		h.render(w, "register.html", vm)
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusFound)
}

// Logout destroys the session and clears the cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			h.log.WithError(err).Error("failed to delete session")
		}
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
