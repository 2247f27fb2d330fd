package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	professionalRepo "saudeplus/database/repository/professional"
	userRepo "saudeplus/database/repository/user"
	"saudeplus/middleware"
	"saudeplus/utils"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	Users         userRepo.UserRepository
	Professionals professionalRepo.ProfessionalRepository
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(users userRepo.UserRepository, professionals professionalRepo.ProfessionalRepository) *ProfileHandler {
	return &ProfileHandler{Users: users, Professionals: professionals}
}

// GetMeHandler returns the caller's profile, including professional linkage.
func (h *ProfileHandler) GetMeHandler(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not_authenticated", "")
		return
	}

	resp := gin.H{
		"email":           user.Email,
		"name":            user.Name,
		"phone":           user.Phone,
		"is_professional": false,
	}
	pro, err := h.Professionals.GetByUserID(c.Request.Context(), user.ID)
	if err != nil && !errors.Is(err, professionalRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch profile", err.Error())
		return
	}
	if pro != nil {
		resp["is_professional"] = true
		resp["professional_id"] = pro.ID
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateMeHandler updates the caller's basic profile fields.
func (h *ProfileHandler) UpdateMeHandler(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not_authenticated", "")
		return
	}

	var in struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	name := user.Name
	phone := user.Phone
	if in.Name != nil {
		name = *in.Name
	}
	if in.Phone != nil {
		phone = *in.Phone
	}
	if err := h.Users.UpdateProfile(c.Request.Context(), user.ID, name, phone); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
