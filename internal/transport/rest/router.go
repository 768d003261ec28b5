package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/integration-tracker/internal/attachment"
	"github.com/frahmantamala/integration-tracker/internal/auth"
	"github.com/frahmantamala/integration-tracker/internal/contact"
	"github.com/frahmantamala/integration-tracker/internal/project"
	"github.com/frahmantamala/integration-tracker/internal/risk"
	"github.com/frahmantamala/integration-tracker/internal/task"
	"github.com/frahmantamala/integration-tracker/internal/template"
	"github.com/frahmantamala/integration-tracker/internal/transport/middleware"
	"github.com/frahmantamala/integration-tracker/internal/transport/swagger"
	"github.com/frahmantamala/integration-tracker/internal/user"
)

// Handlers bundles everything the route table mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Project    *project.Handler
	Task       *task.Handler
	Contact    *contact.Handler
	Risk       *risk.Handler
	Attachment *attachment.Handler
	Template   *template.Handler
}

// RegisterAllRoutes mounts the API under /api/v1. Role gates follow the
// level ordering readonly < edit < teamlead < admin: reads need a valid
// session only, updates and uploads need edit, task/contact/risk
// create+delete need teamlead, and user/project/template management
// needs admin.
func RegisterAllRoutes(router *chi.Mux, db *sqlx.DB, h Handlers, sessions SessionCounter, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, sessions)

	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.Logging(logger))

	// OpenAPI contract and swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.Auth.Me)
			pr.With(h.Auth.RequireLevel(auth.LevelEdit)).
				Post("/users/me/password", h.User.ChangePassword)

			// User administration.
			pr.Route("/users", func(ur chi.Router) {
				ur.Use(h.Auth.RequireLevel(auth.LevelAdmin))
				ur.Get("/", h.User.List)
				ur.Post("/", h.User.Create)
				ur.Get("/{id}", h.User.Get)
				ur.Patch("/{id}", h.User.Update)
				ur.Delete("/{id}", h.User.Delete)
				ur.Post("/{id}/password", h.User.ResetPassword)
			})

			// Template catalog: read by everyone, mutated by admin.
			pr.Route("/workstreams", func(wr chi.Router) {
				wr.Get("/", h.Template.ListWorkstreams)
				wr.Group(func(ar chi.Router) {
					ar.Use(h.Auth.RequireLevel(auth.LevelAdmin))
					ar.Post("/", h.Template.CreateWorkstream)
					ar.Patch("/{id}", h.Template.UpdateWorkstream)
					ar.Delete("/{id}", h.Template.DeleteWorkstream)
				})
			})
			pr.Route("/task-templates", func(tr chi.Router) {
				tr.Get("/", h.Template.ListTaskTemplates)
				tr.Group(func(ar chi.Router) {
					ar.Use(h.Auth.RequireLevel(auth.LevelAdmin))
					ar.Post("/", h.Template.CreateTaskTemplate)
					ar.Patch("/{id}", h.Template.UpdateTaskTemplate)
					ar.Delete("/{id}", h.Template.DeleteTaskTemplate)
				})
			})

			pr.Get("/tasks/mine", h.Task.Mine)

			pr.Route("/projects", func(prj chi.Router) {
				prj.Get("/", h.Project.List)
				prj.With(h.Auth.RequireLevel(auth.LevelAdmin)).
					Post("/", h.Project.Create)

				prj.Route("/{projectID}", func(p chi.Router) {
					p.Get("/", h.Project.Get)
					p.Group(func(ar chi.Router) {
						ar.Use(h.Auth.RequireLevel(auth.LevelAdmin))
						ar.Patch("/", h.Project.Update)
						ar.Delete("/", h.Project.Delete)
					})

					p.Route("/tasks", func(t chi.Router) {
						t.Get("/", h.Task.List)
						t.With(h.Auth.RequireLevel(auth.LevelTeamLead)).
							Post("/", h.Task.Create)

						t.Route("/{taskID}", func(tt chi.Router) {
							tt.Get("/", h.Task.Get)
							tt.With(h.Auth.RequireLevel(auth.LevelEdit)).
								Patch("/", h.Task.Update)
							tt.With(h.Auth.RequireLevel(auth.LevelTeamLead)).
								Delete("/", h.Task.Delete)

							tt.Route("/attachments", func(at chi.Router) {
								at.Get("/", h.Attachment.List)
								at.Group(func(er chi.Router) {
									er.Use(h.Auth.RequireLevel(auth.LevelEdit))
									er.Post("/", h.Attachment.Upload)
									er.Delete("/{id}", h.Attachment.Delete)
								})
								at.Get("/{id}/download", h.Attachment.Download)
							})
						})
					})

					p.Route("/contacts", func(c chi.Router) {
						c.Get("/", h.Contact.List)
						c.With(h.Auth.RequireLevel(auth.LevelTeamLead)).
							Post("/", h.Contact.Create)
						c.With(h.Auth.RequireLevel(auth.LevelEdit)).
							Patch("/{id}", h.Contact.Update)
						c.With(h.Auth.RequireLevel(auth.LevelTeamLead)).
							Delete("/{id}", h.Contact.Delete)
					})

					p.Route("/risks", func(rk chi.Router) {
						rk.Get("/", h.Risk.List)
						rk.With(h.Auth.RequireLevel(auth.LevelTeamLead)).
							Post("/", h.Risk.Create)
						rk.With(h.Auth.RequireLevel(auth.LevelEdit)).
							Patch("/{riskID}", h.Risk.Update)
						rk.With(h.Auth.RequireLevel(auth.LevelTeamLead)).
							Delete("/{riskID}", h.Risk.Delete)
					})
				})
			})
		})
	})
}
