package handlers

import (
	"net/http"

	"wordaday-backend/application/services"
	"wordaday-backend/pkg/auth"
	"wordaday-backend/pkg/common"
	"wordaday-backend/pkg/utils"

	"go.uber.org/zap"
)

const maxFeedbackBody = 64 * 1024

// FeedbackHandler serves the feedback submission endpoint.
type FeedbackHandler struct {
	processor *services.FeedbackProcessor
	logger    *zap.Logger
}

// NewFeedbackHandler creates a feedback handler.
func NewFeedbackHandler(processor *services.FeedbackProcessor, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{processor: processor, logger: logger}
}

// submitFeedbackRequest is the POST /feedback body.
type submitFeedbackRequest struct {
	WordID            string `json:"wordId" validate:"required"`
	Date              string `json:"date" validate:"required,datetime=2006-01-02"`
	Rating            int    `json:"rating" validate:"min=0,max=5"`
	Practiced         bool   `json:"practiced"`
	Encountered       bool   `json:"encountered"`
	Difficulty        string `json:"difficulty" validate:"omitempty,oneof=too_easy appropriate too_difficult"`
	AdditionalContext string `json:"additionalContext" validate:"max=500"`
	Comments          string `json:"comments" validate:"max=1000"`
}

// SubmitFeedback handles POST /feedback.
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	var req submitFeedbackRequest
	if err := common.ParseJSONBody(r, &req, maxFeedbackBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	fb, err := h.processor.Process(r.Context(), user.UserID, services.FeedbackInput{
		WordID:            req.WordID,
		Date:              req.Date,
		Rating:            req.Rating,
		Practiced:         req.Practiced,
		Encountered:       req.Encountered,
		Difficulty:        req.Difficulty,
		AdditionalContext: req.AdditionalContext,
		Comments:          req.Comments,
	})
	if err != nil {
		h.logger.Error("Failed to process feedback",
			zap.String("userID", user.UserID),
			zap.String("wordID", req.WordID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, fb)
}
