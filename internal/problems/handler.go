package problems

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/classmate-ai/backend/internal/middleware"
	"github.com/classmate-ai/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers problem endpoints on the protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/problems", h.ListProblems).Methods("GET")
	protected.HandleFunc("/problems", h.CreateProblem).Methods("POST")
	protected.HandleFunc("/problems/{id}", h.GetProblem).Methods("GET")
	protected.HandleFunc("/admin/fill-answers", h.FillAnswers).Methods("POST")
}

func (h *Handler) ListProblems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var subject *models.Subject
	if v := q.Get("subject"); v != "" {
		s := models.Subject(v)
		if !models.ValidSubjects[s] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
			return
		}
		subject = &s
	}

	var difficulty *models.Difficulty
	if v := q.Get("difficulty"); v != "" {
		d := models.Difficulty(v)
		if !models.ValidDifficulties[d] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid difficulty"})
			return
		}
		difficulty = &d
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	problems, err := h.service.ListProblems(r.Context(), subject, difficulty, limit, offset)
	if err != nil {
		log.Printf("[problems] ListProblems error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list problems"})
		return
	}
	if problems == nil {
		problems = []models.Problem{}
	}
	writeJSON(w, http.StatusOK, problems)
}

func (h *Handler) GetProblem(w http.ResponseWriter, r *http.Request) {
	problemID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid problem ID"})
		return
	}

	problem, err := h.service.GetProblem(r.Context(), problemID)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Problem not found"})
		return
	}
	if err != nil {
		log.Printf("[problems] GetProblem error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch problem"})
		return
	}
	writeJSON(w, http.StatusOK, problem)
}

func (h *Handler) CreateProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !models.ValidSubjects[req.Subject] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
		return
	}
	if !models.ValidDifficulties[req.Difficulty] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid difficulty"})
		return
	}
	if strings.TrimSpace(req.Statement) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Statement is required"})
		return
	}

	problem, err := h.service.CreateProblem(r.Context(), userID, req, models.SourceManual)
	if err != nil {
		log.Printf("[problems] CreateProblem error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create problem"})
		return
	}
	writeJSON(w, http.StatusCreated, problem)
}

// FillAnswers runs one backfill batch on demand instead of waiting for the
// hourly worker.
func (h *Handler) FillAnswers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.FillAnswers(r.Context())
	if err != nil {
		log.Printf("[problems] FillAnswers error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fill answers"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
