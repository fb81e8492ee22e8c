package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/parsenplate/scraper/internal/config"
	apperrors "github.com/parsenplate/scraper/internal/errors"
	"github.com/parsenplate/scraper/internal/output"
	"github.com/parsenplate/scraper/internal/pipeline"
	"github.com/parsenplate/scraper/internal/services/scraper"
	"github.com/parsenplate/scraper/internal/validation"
)

type Server struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	pages    scraper.PageSource
}

// NewServer wires the handlers. pages is used by the URL validator only.
func NewServer(cfg *config.Config, p *pipeline.Pipeline, pages scraper.PageSource) *Server {
	return &Server{
		cfg:      cfg,
		pipeline: p,
		pages:    pages,
	}
}

type URLRequest struct {
	URL any `json:"url"`
}

// url returns the requested URL, or "" when it is missing or not a string.
func (r URLRequest) url() string {
	s, _ := r.URL.(string)
	return s
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ParseRecipeResponse struct {
	Success      bool     `json:"success"`
	Title        string   `json:"title"`
	Ingredients  any      `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

type URLValidatorResponse struct {
	IsRecipe bool `json:"isRecipe"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error:   ErrorDetail{Code: code, Message: message},
	})
}

// HandleParseRecipe extracts the recipe at the posted URL.
func (s *Server) HandleParseRecipe(w http.ResponseWriter, r *http.Request) {
	var req URLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.url() == "" {
		writeError(w, http.StatusBadRequest, apperrors.CodeInvalidURL, "URL is required and must be a string")
		return
	}
	target := req.url()

	if err := validation.ValidateTargetURL(target); err != nil {
		appErr, _ := apperrors.As(err)
		writeError(w, appErr.StatusCode, appErr.Code(), appErr.Message)
		return
	}

	result, err := s.pipeline.Extract(r.Context(), target)
	if err != nil {
		code, message := extractionFailure(err)
		writeError(w, http.StatusUnprocessableEntity, code, message)
		return
	}

	if !validation.HasRecipeContent(result) {
		slog.WarnContext(r.Context(), "Extraction returned no recipe content", "url", target, "layer", result.Layer)
		writeError(w, http.StatusUnprocessableEntity, apperrors.CodeNoRecipeFound, "No recipe content found on this page")
		return
	}

	instructions := result.Instructions
	if instructions == nil {
		instructions = []string{}
	}
	writeJSON(w, http.StatusOK, ParseRecipeResponse{
		Success:      true,
		Title:        result.Title,
		Ingredients:  output.RenderIngredients(result, s.pipeline.Format()),
		Instructions: instructions,
	})
}

// extractionFailure maps an extraction error to an API error code and message.
func extractionFailure(err error) (string, string) {
	switch {
	case apperrors.IsType(err, apperrors.ErrorTypeTimeout):
		return apperrors.CodeTimeout, "Request timed out"
	case apperrors.IsType(err, apperrors.ErrorTypeFetch):
		return apperrors.CodeFetchFailed, "Could not connect to recipe site"
	case apperrors.IsType(err, apperrors.ErrorTypeDecode):
		return apperrors.CodeFetchFailed, "Could not read the recipe page"
	default:
		return apperrors.CodeNoRecipeFound, "Could not extract recipe from this page"
	}
}

// HandleURLValidator reports whether the posted URL looks like a recipe page.
// Any failure answers false.
func (s *Server) HandleURLValidator(w http.ResponseWriter, r *http.Request) {
	var req URLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, URLValidatorResponse{IsRecipe: false})
		return
	}
	target := req.url()

	if err := validation.ValidateTargetURL(target); err != nil {
		writeJSON(w, http.StatusOK, URLValidatorResponse{IsRecipe: false})
		return
	}

	page, err := s.pages.Fetch(r.Context(), target)
	if err != nil {
		slog.InfoContext(r.Context(), "URL validation fetch failed", "url", target, "error", err.Error())
		writeJSON(w, http.StatusOK, URLValidatorResponse{IsRecipe: false})
		return
	}

	verdict := validation.LooksLikeRecipe(page.HTML)
	slog.DebugContext(r.Context(), "URL validated",
		"url", target,
		"is_recipe", verdict.IsValid,
		"confidence", verdict.Confidence,
		"reason", verdict.Reason)

	writeJSON(w, http.StatusOK, URLValidatorResponse{IsRecipe: verdict.IsValid})
}

// HandleHealth answers liveness probes.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
