package analytics

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/quizwhiz/backend/internal/apperr"
	"github.com/quizwhiz/backend/internal/models"
)

const defaultHistoryPage = 10

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetUserAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeError(w, apperr.New(apperr.KindAuth, "Unauthorized"), "Unauthorized")
		return
	}

	analytics, err := h.service.UserAnalytics(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to fetch user analytics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Analytics fetched successfully",
		"data":    analytics,
	})
}

func (h *Handler) GetCategoryAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeError(w, apperr.New(apperr.KindAuth, "Unauthorized"), "Unauthorized")
		return
	}

	var req models.CategoryAnalyticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid request body"), "Invalid request")
		return
	}
	if req.CategoryID == "" {
		writeError(w, apperr.New(apperr.KindValidation, "categoryId is required"), "Invalid request")
		return
	}

	analytics, err := h.service.CategoryAnalytics(r.Context(), userID, req.CategoryID)
	if err != nil {
		writeError(w, err, "Failed to fetch category analytics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Category analytics fetched successfully",
		"data":    analytics,
	})
}

// GetQuizHistory serves the history slice of the dashboard on its own,
// truncated to the requested limit.
func (h *Handler) GetQuizHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeError(w, apperr.New(apperr.KindAuth, "Unauthorized"), "Unauthorized")
		return
	}

	req := models.QuizHistoryRequest{Limit: defaultHistoryPage}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Limit <= 0 {
		req.Limit = defaultHistoryPage
	}

	analytics, err := h.service.UserAnalytics(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to fetch quiz history")
		return
	}

	history := analytics.QuizHistory
	if len(history) > req.Limit {
		history = history[:req.Limit]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Quiz history fetched successfully",
		"data": models.QuizHistoryPage{
			QuizHistory: history,
			Total:       len(analytics.QuizHistory),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	status := apperr.Status(err)
	message := fallback
	if status < http.StatusInternalServerError {
		message = err.Error()
	} else {
		log.Printf("[analytics] %v", err)
	}
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
