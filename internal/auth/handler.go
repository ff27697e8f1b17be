package auth

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/quizwhiz/backend/internal/apperr"
	"github.com/quizwhiz/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	db     *sql.DB
	secret []byte
}

func NewHandler(db *sql.DB, secret []byte) *Handler {
	return &Handler{db: db, secret: secret}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid request body"), "Invalid request")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if req.Email == "" || req.Name == "" || req.Password == "" {
		writeError(w, apperr.New(apperr.KindValidation, "All fields are required"), "Invalid request")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "hash password", err), "Internal server error")
		return
	}

	var user models.User
	err = h.db.QueryRow(
		`INSERT INTO users (email, name, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, email, name, created_at, updated_at`,
		req.Email, req.Name, string(hashedPassword), time.Now(), time.Now(),
	).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeError(w, apperr.New(apperr.KindConflict, "User already exists"), "User already exists")
			return
		}
		writeError(w, apperr.Wrap(apperr.KindPersistence, "create user", err), "Failed to create account")
		return
	}

	token, err := GenerateToken(h.secret, user.ID, user.Name)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "sign token", err), "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.KindValidation, "Invalid request body"), "Invalid request")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Email == "" || req.Password == "" {
		writeError(w, apperr.New(apperr.KindValidation, "Email and password are required"), "Invalid request")
		return
	}

	var user models.User
	var hashedPassword string
	err := h.db.QueryRow(
		`SELECT id, email, name, password, created_at, updated_at FROM users WHERE email = $1`,
		req.Email,
	).Scan(&user.ID, &user.Email, &user.Name, &hashedPassword, &user.CreatedAt, &user.UpdatedAt)

	// Unknown email and wrong password produce the same response on purpose.
	if err == sql.ErrNoRows {
		writeError(w, apperr.New(apperr.KindAuth, "Invalid credentials"), "Invalid credentials")
		return
	}
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindPersistence, "look up user", err), "Internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		writeError(w, apperr.New(apperr.KindAuth, "Invalid credentials"), "Invalid credentials")
		return
	}

	token, err := GenerateToken(h.secret, user.ID, user.Name)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "sign token", err), "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

// ValidateAuthToken sits behind the auth middleware; reaching it at all
// means the token checked out.
func (h *Handler) ValidateAuthToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
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
		log.Printf("[auth] %v", err)
	}
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
