package quiz

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/quizwhiz/backend/internal/apperr"
	"github.com/quizwhiz/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeError(w, apperr.New(apperr.KindAuth, "Unauthorized"), "Unauthorized")
		return
	}

	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid request body"), "Invalid request body")
		return
	}
	if req.CategoryID == "" || req.CategoryTitle == "" || req.SubcategoryTitle == "" {
		writeError(w, apperr.New(apperr.KindValidation, "Category and subcategory are required"), "Invalid request")
		return
	}

	resp, err := h.service.Start(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to start quiz")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": resp})
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeError(w, apperr.New(apperr.KindAuth, "Unauthorized"), "Unauthorized")
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid request body"), "Invalid request body")
		return
	}
	if req.QuizData.QuizID == 0 || req.CurrentQuestion == nil || req.UserAnswer == "" || req.Progress == nil {
		writeError(w, apperr.New(apperr.KindValidation, "Quiz data, current question, user answer and progress are required"), "Invalid request")
		return
	}

	resp, err := h.service.SubmitAnswer(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to submit answer")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": resp})
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeError(w, apperr.New(apperr.KindAuth, "Unauthorized"), "Unauthorized")
		return
	}

	var req models.ResumeQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid request body"), "Invalid request body")
		return
	}
	if req.QuizID == 0 {
		writeError(w, apperr.New(apperr.KindValidation, "Quiz ID is required"), "Invalid request")
		return
	}

	resp, err := h.service.Resume(r.Context(), userID, req.QuizID)
	if err != nil {
		writeError(w, err, "Failed to resume quiz")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": resp})
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeError(w, apperr.New(apperr.KindAuth, "Unauthorized"), "Unauthorized")
		return
	}

	quizID, err := strconv.ParseInt(mux.Vars(r)["quizId"], 10, 64)
	if err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid quiz ID"), "Invalid request")
		return
	}

	resp, err := h.service.Preview(r.Context(), userID, quizID)
	if err != nil {
		writeError(w, err, "Failed to fetch quiz")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": resp})
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
		log.Printf("[quiz] %v", err)
	}
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
