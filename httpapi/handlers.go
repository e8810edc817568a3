// Package httpapi is the HTTP boundary: request decoding, response
// encoding, and translating coordinator/store errors into status codes.
// Handlers stay thin, delegating all analysis logic to the coordinator.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sentinel-refactor/coordinator"
	"sentinel-refactor/models"
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
	"sentinel-refactor/store"
	"sentinel-refactor/validation"
)

// Handler holds the collaborators every route needs. Constructed once in
// the composition root, passed by pointer — no package-level state.
type Handler struct {
	Coordinator      *coordinator.Coordinator
	Store            store.Store
	RuleRegistry     *rules.Registry
	ProviderRegistry *refactor.Registry
	DevMode          bool
	startedAt        time.Time
}

// NewHandler constructs a Handler. startedAt is recorded here for the
// health endpoint's uptime field.
func NewHandler(c *coordinator.Coordinator, s store.Store, ruleRegistry *rules.Registry, providerRegistry *refactor.Registry, devMode bool) *Handler {
	return &Handler{
		Coordinator:      c,
		Store:            s,
		RuleRegistry:     ruleRegistry,
		ProviderRegistry: providerRegistry,
		DevMode:          devMode,
		startedAt:        time.Now(),
	}
}

var analyzeValidator = &validation.CompositeValidator{
	Validators: []validation.Validator{
		&validation.StringValidator{Field: "code", Required: true},
		&validation.StringValidator{Field: "fileName", Required: true},
		&validation.StringValidator{Field: "language", Required: true, Enum: []string{"js", "ts"}},
	},
}

// Analyze handles POST /api/analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Bad Request", Message: "invalid JSON body"})
		return
	}

	if err := analyzeValidator.Validate(map[string]interface{}{
		"code": req.Code, "fileName": req.FileName, "language": req.Language,
	}); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Bad Request", Message: err.Error()})
		return
	}

	result, err := h.Coordinator.Analyze(r.Context(), req.Code, req.FileName, req.Language)
	if err != nil {
		writeError(w, err, h.DevMode)
		return
	}

	writeJSON(w, http.StatusOK, toAnalyzeResponse(result))
}

// Upload handles POST /api/upload: a multipart file is stored verbatim and
// analyzed using the language inferred from its extension.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Bad Request", Message: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Bad Request", Message: "no file provided"})
		return
	}
	defer file.Close()

	language, ok := languageFromExtension(header.Filename)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Bad Request", Message: "unsupported file extension"})
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Bad Request", Message: "failed reading upload"})
		return
	}

	result, err := h.Coordinator.Analyze(r.Context(), string(content), header.Filename, language)
	if err != nil {
		writeError(w, err, h.DevMode)
		return
	}

	fileRecord := store.FileRecord{
		ID:         result.Metadata.ID,
		Name:       header.Filename,
		Path:       "/uploads/" + header.Filename,
		Size:       len(content),
		Type:       language,
		Content:    content,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Store.SaveFile(r.Context(), fileRecord); err != nil {
		writeError(w, err, h.DevMode)
		return
	}

	writeJSON(w, http.StatusOK, models.UploadResponse{
		AnalyzeResponse: toAnalyzeResponse(result),
		FileID:          fileRecord.ID,
		FilePath:        fileRecord.Path,
	})
}

// languageFromExtension maps a file name's extension to a surface
// language, per spec §6's upload contract.
func languageFromExtension(name string) (string, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ts", ".tsx":
		return "ts", true
	case ".js", ".jsx":
		return "js", true
	default:
		return "", false
	}
}

// GetAnalysis handles GET /api/analysis/{id}.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request, id string) {
	result, err := h.Store.GetAnalysis(r.Context(), id)
	if err != nil {
		writeError(w, err, h.DevMode)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListAnalyses handles GET /api/analyses.
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.ListFilter{
		FileName: q.Get("fileName"),
		Language: q.Get("language"),
		Severity: store.Severity(q.Get("severity")),
		Desc:     q.Get("desc") == "true",
	}
	if sortBy := q.Get("sortBy"); sortBy != "" {
		filter.SortBy = store.SortField(sortBy)
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = offset
	}

	results, err := h.Store.ListAnalyses(r.Context(), filter)
	if err != nil {
		writeError(w, err, h.DevMode)
		return
	}

	writeJSON(w, http.StatusOK, models.ListAnalysesResponse{Count: len(results), Results: results})
}

var applyValidator = &validation.CompositeValidator{
	Validators: []validation.Validator{
		&validation.StringValidator{Field: "analysisId", Required: true},
		&validation.StringValidator{Field: "suggestionId", Required: true},
		&validation.StringValidator{Field: "code", Required: true},
	},
}

// ApplyRefactor handles POST /api/refactor/apply.
func (h *Handler) ApplyRefactor(w http.ResponseWriter, r *http.Request) {
	var req models.RefactorApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Bad Request", Message: "invalid JSON body"})
		return
	}

	if err := applyValidator.Validate(map[string]interface{}{
		"analysisId": req.AnalysisID, "suggestionId": req.SuggestionID, "code": req.Code,
	}); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Bad Request", Message: err.Error()})
		return
	}

	applied, err := h.Coordinator.ApplySuggestion(r.Context(), req.AnalysisID, req.SuggestionID, req.Code, req.FileName)
	if err != nil {
		writeError(w, err, h.DevMode)
		return
	}

	writeJSON(w, http.StatusOK, models.RefactorApplyResponse{
		Success:        applied.Success,
		RefactoredCode: applied.RefactoredCode,
		Error:          applied.Error,
	})
}

// Stats handles GET /api/stats: registry counts plus store-level counts.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ruleStats := models.RuleStats{
		ByCategory: make(map[string]int),
		BySeverity: make(map[string]int),
	}
	for _, rule := range h.RuleRegistry.GetRules() {
		meta := rule.Metadata()
		ruleStats.Total++
		ruleStats.ByCategory[string(meta.Category)]++
		ruleStats.BySeverity[string(meta.Severity)]++
		if cfg, ok := h.RuleRegistry.GetConfig(meta.ID); ok && cfg.Enabled {
			ruleStats.Enabled++
		}
	}

	storeStats := models.StoreStats{}
	if results, err := h.Store.ListAnalyses(r.Context(), store.ListFilter{}); err == nil {
		storeStats.TotalAnalyses = len(results)
	}

	writeJSON(w, http.StatusOK, models.StatsResponse{
		Rules:     ruleStats,
		Providers: models.ProviderStats{Total: h.ProviderRegistry.Count()},
		Store:     storeStats,
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UptimeMs:  time.Since(h.startedAt).Milliseconds(),
	})
}

func toAnalyzeResponse(result store.AnalysisResult) models.AnalyzeResponse {
	return models.AnalyzeResponse{
		AnalysisID:  result.Metadata.ID,
		Metadata:    result.Metadata,
		Issues:      result.Issues,
		Suggestions: result.Suggestions,
		Stats:       result.Stats,
	}
}
