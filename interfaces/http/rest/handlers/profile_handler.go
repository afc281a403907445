package handlers

import (
	"net/http"
	"time"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"
	"wordaday-backend/pkg/auth"
	"wordaday-backend/pkg/common"
	"wordaday-backend/pkg/utils"

	"go.uber.org/zap"
)

const maxProfileBody = 64 * 1024

// ProfileHandler serves the user preferences endpoints.
type ProfileHandler struct {
	profiles ports.ProfileRepository
	logger   *zap.Logger
}

// NewProfileHandler creates a profile handler.
func NewProfileHandler(profiles ports.ProfileRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// GetProfile handles GET /profile. A user without a stored profile receives
// the defaults they would be generated with.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	profile, err := h.profiles.Get(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("Failed to get profile",
			zap.String("userID", user.UserID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}
	if profile == nil {
		profile = users.DefaultProfile(user.UserID)
	}

	common.RespondJSON(w, http.StatusOK, profile)
}

// updateProfileRequest is the PUT /profile body. Pointer fields distinguish
// "not sent" from zero values so partial updates work.
type updateProfileRequest struct {
	Name                    *string                        `json:"name" validate:"omitempty,max=100"`
	Email                   *string                        `json:"email" validate:"omitempty,email"`
	AgeGroup                *string                        `json:"ageGroup" validate:"omitempty,oneof=child teen young_adult adult senior"`
	Context                 *string                        `json:"context" validate:"omitempty,max=100"`
	ExamPrep                *string                        `json:"examPrep" validate:"omitempty,max=50"`
	Timezone                *string                        `json:"timezone" validate:"omitempty,max=64"`
	Language                *string                        `json:"language" validate:"omitempty,len=2"`
	NotificationPreferences *users.NotificationPreferences `json:"notificationPreferences"`
	ContactInfo             *users.ContactInfo             `json:"contactInfo"`
}

// UpdateProfile handles PUT /profile.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	var req updateProfileRequest
	if err := common.ParseJSONBody(r, &req, maxProfileBody); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	profile, err := h.profiles.Get(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("Failed to load profile for update",
			zap.String("userID", user.UserID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}
	if profile == nil {
		profile = users.DefaultProfile(user.UserID)
		profile.CreatedAt = time.Now().UTC()
	}

	applyUpdate(profile, &req)
	profile.UpdatedAt = time.Now().UTC()

	if err := h.profiles.Put(r.Context(), profile); err != nil {
		h.logger.Error("Failed to store profile",
			zap.String("userID", user.UserID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, profile)
}

func applyUpdate(profile *users.Profile, req *updateProfileRequest) {
	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.AgeGroup != nil {
		profile.AgeGroup = words.AgeGroup(*req.AgeGroup)
	}
	if req.Context != nil {
		profile.Context = *req.Context
	}
	if req.ExamPrep != nil {
		profile.ExamPrep = *req.ExamPrep
	}
	if req.Timezone != nil {
		profile.Timezone = *req.Timezone
	}
	if req.Language != nil {
		profile.Language = *req.Language
	}
	if req.NotificationPreferences != nil {
		profile.NotificationPreferences = *req.NotificationPreferences
	}
	if req.ContactInfo != nil {
		profile.ContactInfo = *req.ContactInfo
	}
}
