package categories

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/quizwhiz/backend/internal/apperr"
	"github.com/quizwhiz/backend/internal/cache"
	"github.com/quizwhiz/backend/internal/models"
)

const categoriesNamespace = "categories"

type Handler struct {
	service *Service
	cache   cache.Cache
}

func NewHandler(service *Service, c cache.Cache) *Handler {
	return &Handler{service: service, cache: c}
}

type categoriesResponse struct {
	Success     bool              `json:"success"`
	Data        []models.Category `json:"data"`
	Cached      bool              `json:"cached"`
	Age         string            `json:"age,omitempty"`
	Latency     string            `json:"latency,omitempty"`
	GeneratedAt string            `json:"generatedAt"`
}

// GetCategories serves a cached page when one is fresh enough, otherwise
// generates a new batch. refresh=true always regenerates.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	var req models.GetCategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid request body"), "Invalid request")
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}

	if !req.Refresh {
		if entry, ok := h.cache.GetPage(categoriesNamespace, req.Page); ok {
			info, _ := h.cache.Info(categoriesNamespace, req.Page)
			resp := categoriesResponse{
				Success: true,
				Data:    entry.Data.([]models.Category),
				Cached:  true,
			}
			if info != nil {
				resp.Age = info.Age
				resp.GeneratedAt = info.GeneratedAt
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	start := time.Now()
	categories, err := h.service.GetCategories(r.Context(), req.CategoriesTitles)
	if err != nil {
		writeError(w, err, "Failed to fetch categories")
		return
	}
	latency := time.Since(start)

	h.cache.SetPage(categoriesNamespace, req.Page, categories)

	writeJSON(w, http.StatusOK, categoriesResponse{
		Success:     true,
		Data:        categories,
		Cached:      false,
		Latency:     fmt.Sprintf("%dms", latency.Milliseconds()),
		GeneratedAt: time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Cache cleared"})
}

func (h *Handler) SearchCategories(w http.ResponseWriter, r *http.Request) {
	var req models.SearchCategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid request body"), "Invalid request")
		return
	}
	if req.Search == "" {
		writeError(w, apperr.New(apperr.KindValidation, "Search query is required"), "Invalid request")
		return
	}

	// A meaningless search term yields an empty list, not an error.
	results, err := h.service.SearchCategories(r.Context(), req.Search, req.CategoriesTitles)
	if err != nil {
		writeError(w, err, "Failed to search categories")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    results,
		"count":   len(results),
	})
}

func (h *Handler) GetSubcategories(w http.ResponseWriter, r *http.Request) {
	var req models.GetSubcategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid request body"), "Invalid request")
		return
	}
	if req.Category == "" {
		writeError(w, apperr.New(apperr.KindValidation, "Category is required"), "Invalid request")
		return
	}

	subcategories, err := h.service.GetSubcategories(r.Context(), req.Category, req.ExistingSubcategories)
	if err != nil {
		writeError(w, err, "Failed to fetch subcategories")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    subcategories,
		"count":   len(subcategories),
	})
}

func (h *Handler) SearchSubcategories(w http.ResponseWriter, r *http.Request) {
	var req models.SearchSubcategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid request body"), "Invalid request")
		return
	}
	if req.CategoryTitle == "" || req.Query == "" {
		writeError(w, apperr.New(apperr.KindValidation, "Category title and search query are required"), "Invalid request")
		return
	}

	subcategories, err := h.service.SearchSubcategories(r.Context(), req.CategoryTitle, req.Query, req.ExistingSubcategories)
	if err != nil {
		writeError(w, err, "Failed to search subcategories")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    subcategories,
		"count":   len(subcategories),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps tagged errors to statuses; server faults get a generic
// message and a log line instead of leaking upstream detail.
func writeError(w http.ResponseWriter, err error, fallback string) {
	status := apperr.Status(err)
	message := fallback
	if status < http.StatusInternalServerError {
		message = err.Error()
	} else {
		log.Printf("[categories] %v", err)
	}
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
