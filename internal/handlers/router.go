package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the application router. Protected routes are grouped behind
// the RequireAuth middleware; everything else is public.
func (h *Handlers) Routes(staticDir string) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)

	r.Get("/", h.Index)
	r.Get("/healthz", h.Healthz)

	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/add", h.AddExpenseForm)
		r.Post("/add", h.AddExpense)
		r.Post("/delete/{id}", h.DeleteExpense)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	return r
}
