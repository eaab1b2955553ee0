package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/careerconnect/internal/server/middleware"
	"github.com/jonathan/careerconnect/internal/types"
)

// Recommender produces ranked job recommendations for a candidate.
type Recommender interface {
	Recommend(ctx context.Context, userID uuid.UUID) ([]types.MatchResult, error)
}

// recommendationsResponse is the recommendation endpoint payload.
type recommendationsResponse struct {
	Success         bool                `json:"success"`
	Recommendations []types.MatchResult `json:"recommendations"`
}

// handleRecommendations serves GET /api/recommendations for the
// authenticated candidate. Employer accounts are rejected before the
// engine runs.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	role, err := middleware.GetRole(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if role == types.RoleEmployer {
		err := &ErrForbiddenRole{Role: role}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	results, err := s.recommender.Recommend(r.Context(), userID)
	if err != nil {
		s.log.Error("recommendation request failed",
			zap.String("userId", userID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to compute recommendations")
		return
	}

	s.jsonResponse(w, http.StatusOK, recommendationsResponse{
		Success:         true,
		Recommendations: results,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
