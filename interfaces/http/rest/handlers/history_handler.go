package handlers

import (
	"net/http"
	"strconv"

	"wordaday-backend/application/services"
	"wordaday-backend/pkg/auth"
	"wordaday-backend/pkg/common"

	"go.uber.org/zap"
)

// maxHistoryLimit bounds the page size a caller can request.
const maxHistoryLimit = 100

// HistoryHandler serves the word history endpoint.
type HistoryHandler struct {
	history *services.HistoryService
	logger  *zap.Logger
}

// NewHistoryHandler creates a history handler.
func NewHistoryHandler(history *services.HistoryService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, logger: logger}
}

// GetHistory handles GET /words/history. Query parameters: startDate,
// endDate (YYYY-MM-DD), search, limit.
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxHistoryLimit {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION",
				"limit must be an integer between 1 and 100")
			return
		}
	}

	page, err := h.history.Query(r.Context(), user.UserID, services.HistoryQuery{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Search:    q.Get("search"),
		Limit:     limit,
	})
	if err != nil {
		h.logger.Error("Failed to query word history",
			zap.String("userID", user.UserID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, page)
}
