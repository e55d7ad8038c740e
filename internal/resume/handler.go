// Package resume exposes the AI resume review endpoint.
package resume

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexswami/portfolio-server/internal/api"
	"github.com/alexswami/portfolio-server/internal/domain"
	"github.com/alexswami/portfolio-server/internal/identity"
	"github.com/go-chi/chi/v5"
)

// maxResumeSize caps uploaded resumes (8MB).
const maxResumeSize = 8 << 20

// Analyzer is the document-analysis capability of the generative model.
// A nil report with a nil error means the model answer failed the report
// schema — absence of a result, not a server fault.
type Analyzer interface {
	AnalyzeResume(ctx context.Context, data []byte, mimeType string) (*domain.ResumeReport, error)
}

var allowedTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
}

// Handler handles resume analysis requests.
type Handler struct {
	analyzer Analyzer
}

// NewHandler creates a resume handler.
func NewHandler(analyzer Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// RegisterRoutes registers the resume routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/resume/analyze", h.HandleAnalyze)
}

// HandleAnalyze handles POST /api/resume/analyze. Expects a multipart form
// with a "resume" file part.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	visitorID := identity.VisitorIDFromContext(r.Context())
	if visitorID == "" {
		api.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize)
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Debug("Failed to close uploaded file", "error", closeErr)
		}
	}()

	mimeType := header.Header.Get("Content-Type")
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if !allowedTypes[mimeType] {
		api.Error(w, http.StatusUnsupportedMediaType, "resume must be a PDF or image")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "failed to read resume file")
		return
	}

	slog.Info("Resume analysis request",
		"visitor_id", visitorID,
		"mime_type", mimeType,
		"size_bytes", len(data),
	)

	report, err := h.analyzer.AnalyzeResume(r.Context(), data, mimeType)
	if err != nil {
		slog.Error("Resume analysis failed", "visitor_id", visitorID, "error", err)
		api.Error(w, http.StatusBadGateway, "resume analysis failed")
		return
	}
	if report == nil {
		api.Error(w, http.StatusBadGateway, "resume analysis returned no result")
		return
	}

	api.JSON(w, http.StatusOK, report)
}
