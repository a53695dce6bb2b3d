package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает chi-роутер с веб-страницами и JSON API.
func NewRouter(web *UserWebHandler, api *UserAPIHandler, logger *slog.Logger, timeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/", web.ShowUserList)
	r.Get("/add-user", web.ShowAddUserForm)
	r.Post("/add-user", web.AddUser)
	r.Get("/edit-user/{id}", web.ShowEditUserForm)
	r.Post("/edit-user/{id}", web.EditUser)
	r.Get("/delete-user/{id}", web.DeleteUser)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", api.ListUsers)
		r.Post("/", api.CreateUser)
		r.Post("/import", api.ImportUsers)
		r.Post("/export", api.ExportUsers)
		r.Get("/{id}", api.GetUser)
		r.Put("/{id}", api.UpdateUser)
		r.Delete("/{id}", api.DeleteUser)
	})

	return r
}
