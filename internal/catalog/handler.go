package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexswami/portfolio-server/internal/api"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the portfolio data API.
type Handler struct {
	svc *Service
}

// NewHandler creates a catalog handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the portfolio data routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/projects", h.HandleProjects)
	r.Get("/api/skills", h.HandleSkills)
	r.Get("/api/certifications", h.HandleCertifications)
}

// HandleProjects handles GET /api/projects.
func (h *Handler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Projects(r.Context())
	if err != nil {
		writeCatalogError(w, r, err, "projects")
		return
	}
	api.JSON(w, http.StatusOK, projects)
}

// HandleSkills handles GET /api/skills with an optional category filter.
func (h *Handler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.svc.Skills(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeCatalogError(w, r, err, "skills")
		return
	}
	api.JSON(w, http.StatusOK, skills)
}

// HandleCertifications handles GET /api/certifications.
func (h *Handler) HandleCertifications(w http.ResponseWriter, r *http.Request) {
	certifications, err := h.svc.Certifications(r.Context())
	if err != nil {
		writeCatalogError(w, r, err, "certifications")
		return
	}
	api.JSON(w, http.StatusOK, certifications)
}

func writeCatalogError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	if errors.Is(err, context.Canceled) || r.Context().Err() != nil {
		// Client went away during the simulated latency window.
		return
	}
	slog.Error("Catalog request failed", "resource", resource, "error", err)
	api.Error(w, http.StatusInternalServerError, "failed to load "+resource)
}
