package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/techstock/engine/internal/api/handlers"
	mw "github.com/techstock/engine/internal/api/middleware"
)

type Dependencies struct {
	DB                    *gorm.DB
	ResourcesHandler      *handlers.ResourcesHandler
	SubscriptionsHandler  *handlers.SubscriptionsHandler
	ResourceGroupsHandler *handlers.ResourceGroupsHandler
	ApplicationsHandler   *handlers.ApplicationsHandler
	DashboardHandler      *handlers.DashboardHandler
	TagsHandler           *handlers.TagsHandler
	ImportHandler         *handlers.ImportHandler
	StatsHandler          *handlers.StatsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(50, 100))
	r.Use(mw.Metrics)
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler(dep.DB)
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/stats", dep.StatsHandler.Totals)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/resources", func(rr chi.Router) {
			rr.Get("/", dep.ResourcesHandler.List)
			rr.Post("/", dep.ResourcesHandler.Create)
			rr.Get("/stats", dep.ResourcesHandler.Stats)
			rr.Get("/{id}", dep.ResourcesHandler.Get)
			rr.Put("/{id}", dep.ResourcesHandler.Update)
			rr.Delete("/{id}", dep.ResourcesHandler.Delete)
		})

		api.Route("/subscriptions", func(sr chi.Router) {
			sr.Get("/", dep.SubscriptionsHandler.List)
			sr.Post("/", dep.SubscriptionsHandler.Create)
			sr.Get("/{id}", dep.SubscriptionsHandler.Get)
			sr.Put("/{id}", dep.SubscriptionsHandler.Update)
			sr.Delete("/{id}", dep.SubscriptionsHandler.Delete)
			sr.Get("/{id}/resources", dep.SubscriptionsHandler.Resources)
			sr.Get("/{id}/resource-groups", dep.SubscriptionsHandler.ResourceGroups)
		})

		api.Route("/resource-groups", func(gr chi.Router) {
			gr.Get("/", dep.ResourceGroupsHandler.List)
			gr.Post("/", dep.ResourceGroupsHandler.Create)
			gr.Get("/{id}", dep.ResourceGroupsHandler.Get)
			gr.Put("/{id}", dep.ResourceGroupsHandler.Update)
			gr.Delete("/{id}", dep.ResourceGroupsHandler.Delete)
			gr.Get("/{id}/resources", dep.ResourceGroupsHandler.Resources)
		})

		api.Route("/applications", func(ar chi.Router) {
			ar.Get("/", dep.ApplicationsHandler.List)
			ar.Post("/", dep.ApplicationsHandler.Create)
			ar.Get("/{id}", dep.ApplicationsHandler.Get)
			ar.Put("/{id}", dep.ApplicationsHandler.Update)
			ar.Delete("/{id}", dep.ApplicationsHandler.Delete)
			ar.Get("/{id}/resources", dep.ApplicationsHandler.Resources)
		})

		api.Get("/dashboard/summary", dep.DashboardHandler.Summary)

		api.Route("/tags", func(tr chi.Router) {
			tr.Get("/", dep.TagsHandler.Available)
			tr.Get("/suggestions", dep.TagsHandler.Suggestions)
		})

		api.Post("/import", dep.ImportHandler.Enqueue)
	})

	return r
}
