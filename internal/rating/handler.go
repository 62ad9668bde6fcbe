package rating

import (
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

// RegisterRoutes registers attempt endpoints on the protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/problems/{id}/attempts", h.SubmitAttempt).Methods("POST")
	protected.HandleFunc("/attempts", h.RecentAttempts).Methods("GET")
}

func (h *Handler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	problemID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid problem ID"})
		return
	}

	var req models.SubmitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Answer is required"})
		return
	}

	resp, err := h.service.SubmitAttempt(r.Context(), userID, problemID, req.Answer)
	switch {
	case errors.Is(err, ErrProblemNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Problem not found"})
	case errors.Is(err, ErrNoAnswer):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "This problem doesn't have a correct answer set"})
	case errors.Is(err, ErrClockSkew):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Attempt timestamp is invalid"})
	case errors.Is(err, ErrVersionConflict):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Too many concurrent submissions, please retry"})
	case err != nil:
		log.Printf("[rating] SubmitAttempt error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit attempt"})
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) RecentAttempts(w http.ResponseWriter, r *http.Request) {
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

	attempts, err := h.service.RecentAttempts(r.Context(), userID, limit)
	if err != nil {
		log.Printf("[rating] RecentAttempts error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list attempts"})
		return
	}
	if attempts == nil {
		attempts = []models.Attempt{}
	}
	writeJSON(w, http.StatusOK, attempts)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
