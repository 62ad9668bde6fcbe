package tutor

import (
	"encoding/json"
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

// RegisterRoutes registers tutor endpoints on the protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/tutor/explain", h.Explain).Methods("POST")
	protected.HandleFunc("/tutor/similar", h.Similar).Methods("POST")
	protected.HandleFunc("/tutor/solved", h.MarkSolved).Methods("POST")
	protected.HandleFunc("/tutor/recent", h.RecentQueries).Methods("GET")
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !models.ValidSubjects[req.Subject] || strings.TrimSpace(req.ProblemText) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Missing subject or problem_text"})
		return
	}

	exp, err := h.service.Explain(r.Context(), userID, req)
	if err != nil {
		log.Printf("[tutor] Explain error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get AI response"})
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	var req models.SimilarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !models.ValidSubjects[req.Subject] || strings.TrimSpace(req.ProblemText) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Missing subject or problem_text"})
		return
	}

	resp, err := h.service.Similar(r.Context(), req)
	if err != nil {
		log.Printf("[tutor] Similar error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get AI response"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) MarkSolved(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.MarkSolvedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !models.ValidSubjects[req.Subject] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
		return
	}
	if strings.TrimSpace(req.ProblemText) == "" || strings.TrimSpace(req.FinalAnswer) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Missing problem_text or final_answer"})
		return
	}

	resp, err := h.service.MarkSolved(r.Context(), userID, req)
	if err != nil {
		log.Printf("[tutor] MarkSolved error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record solved problem"})
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) RecentQueries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	queries, err := h.service.RecentQueries(r.Context(), userID, limit)
	if err != nil {
		log.Printf("[tutor] RecentQueries error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list recent queries"})
		return
	}
	if queries == nil {
		queries = []models.RecentQuery{}
	}
	writeJSON(w, http.StatusOK, queries)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
