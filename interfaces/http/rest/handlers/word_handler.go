// Package handlers implements the REST endpoints.
package handlers

import (
	"net/http"

	"wordaday-backend/application/services"
	"wordaday-backend/pkg/auth"
	"wordaday-backend/pkg/common"

	"go.uber.org/zap"
)

// WordHandler serves the daily word endpoints.
type WordHandler struct {
	orchestrator *services.Orchestrator
	logger       *zap.Logger
}

// NewWordHandler creates a word handler.
func NewWordHandler(orchestrator *services.Orchestrator, logger *zap.Logger) *WordHandler {
	return &WordHandler{orchestrator: orchestrator, logger: logger}
}

// todaysWordResponse is the wire shape of a daily word answer.
type todaysWordResponse struct {
	Word        interface{} `json:"word"`
	Generated   bool        `json:"generated"`
	Regenerated bool        `json:"regenerated"`
}

// GetTodaysWord handles GET /words/today. An optional date query parameter
// (YYYY-MM-DD) reads a specific day; past days are never generated.
func (h *WordHandler) GetTodaysWord(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	date := r.URL.Query().Get("date")
	result, err := h.orchestrator.GetTodaysWord(r.Context(), user.UserID, date)
	if err != nil {
		h.logger.Error("Failed to get today's word",
			zap.String("userID", user.UserID),
			zap.String("date", date),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, todaysWordResponse{
		Word:        result.Record,
		Generated:   result.Generated,
		Regenerated: result.Regenerated,
	})
}
