package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ekklesia/church-directory/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Profile(w http.ResponseWriter, r *http.Request)
	PasswordChange(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	SetUserRole(w http.ResponseWriter, r *http.Request)
	DeactivateUser(w http.ResponseWriter, r *http.Request)
}

type ChurchHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health   HealthHandler
	Auth     AuthHandler
	Churches ChurchHandler

	AuthMW    func(http.Handler) http.Handler
	CuratorMW func(http.Handler) http.Handler
	AdminMW   func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Churches == nil {
		return nil, fmt.Errorf("nil Churches handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.CuratorMW == nil {
		return nil, fmt.Errorf("nil Curator middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)

			r.With(deps.AuthMW).Get("/profile", deps.Auth.Profile)
			r.With(deps.AuthMW).Post("/change-password", deps.Auth.PasswordChange)

			r.Route("/users", func(r chi.Router) {
				r.Use(deps.AuthMW)
				r.Use(deps.AdminMW)

				r.Get("/", deps.Auth.ListUsers)
				r.Patch("/{id}/role", deps.Auth.SetUserRole)
				r.Delete("/{id}", deps.Auth.DeactivateUser)
			})
		})

		r.Route("/churches", func(r chi.Router) {
			r.Get("/", deps.Churches.List)
			r.Get("/search", deps.Churches.Search)
			r.Get("/{id}", deps.Churches.Get)

			r.With(deps.AuthMW, deps.CuratorMW).Post("/import", deps.Churches.Import)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMW)
				r.Use(deps.AdminMW)

				r.Post("/", deps.Churches.Create)
				r.Put("/{id}", deps.Churches.Update)
				r.Delete("/{id}", deps.Churches.Delete)
				r.Patch("/{id}/status", deps.Churches.UpdateStatus)
			})
		})
	})

	return r, nil
}
