package profile

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

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

// RegisterRoutes registers profile endpoints on the protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/profile", h.Profile).Methods("GET")
	protected.HandleFunc("/profile/rating-history", h.RatingHistory).Methods("GET")
	protected.HandleFunc("/leaderboard", h.Leaderboard).Methods("GET")
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		log.Printf("[profile] Profile error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load profile"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) RatingHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var subject *models.Subject
	if v := r.URL.Query().Get("subject"); v != "" {
		s := models.Subject(v)
		if !models.ValidSubjects[s] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
			return
		}
		subject = &s
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	points, err := h.service.RatingHistory(r.Context(), userID, subject, limit)
	if err != nil {
		log.Printf("[profile] RatingHistory error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load rating history"})
		return
	}
	if points == nil {
		points = []models.RatingPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.service.Leaderboard(r.Context(), userID, limit)
	if err != nil {
		log.Printf("[profile] Leaderboard error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load leaderboard"})
		return
	}
	if resp.Entries == nil {
		resp.Entries = []models.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
