package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	professionalRepo "saudeplus/database/repository/professional"
	"saudeplus/models"
	"saudeplus/services/professional"
	"saudeplus/utils"
)

// ProfessionalHandler serves the public catalogue and admin management
// endpoints for professionals.
type ProfessionalHandler struct {
	Svc professional.ProfessionalService
}

// NewProfessionalHandler constructs a ProfessionalHandler.
func NewProfessionalHandler(svc professional.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{Svc: svc}
}

// ListSpecialtiesHandler lists the specialty catalogue.
func (h *ProfessionalHandler) ListSpecialtiesHandler(c *gin.Context) {
	items, err := h.Svc.ListSpecialties(c.Request.Context(), c.Query("profession"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list specialties", err.Error())
		return
	}
	c.JSON(http.StatusOK, items)
}

func intQuery(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// ListProfessionalsHandler lists active professionals with optional filters,
// cheapest first.
func (h *ProfessionalHandler) ListProfessionalsHandler(c *gin.Context) {
	filter := professionalRepo.ListFilter{
		Profession: c.Query("profession"),
		City:       c.Query("city"),
		Modality:   c.Query("modality"),
		PriceMin:   intQuery(c, "price_min"),
		PriceMax:   intQuery(c, "price_max"),
		Term:       c.Query("q"),
	}
	items, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list professionals", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetProfessionalHandler returns a single professional profile.
func (h *ProfessionalHandler) GetProfessionalHandler(c *gin.Context) {
	p, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, professionalRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "not_found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch professional", err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

type professionalInput struct {
	FullName       *string   `json:"full_name"`
	Profession     *string   `json:"profession"`
	RegisterCode   *string   `json:"register_code"`
	City           *string   `json:"city"`
	State          *string   `json:"state"`
	Bio            *string   `json:"bio"`
	AvatarURL      *string   `json:"avatar_url"`
	WhatsApp       *string   `json:"whatsapp"`
	PriceCents     *int      `json:"price_cents"`
	SessionMinutes *int      `json:"session_minutes"`
	Modalities     *[]string `json:"modalities"`
	Rating         *float64  `json:"rating"`
	IsActive       *bool     `json:"is_active"`
	UserID         *string   `json:"user_id"`
	SpecialtyIDs   *[]string `json:"specialty_ids"`
}

// CreateProfessionalHandler creates a professional profile.
func (h *ProfessionalHandler) CreateProfessionalHandler(c *gin.Context) {
	var in professionalInput
	if err := c.ShouldBindJSON(&in); err != nil || in.FullName == nil || in.Profession == nil {
		utils.JSONError(c, http.StatusBadRequest, "full_name and profession are required", "")
		return
	}

	p := &models.Professional{
		FullName:   *in.FullName,
		Profession: *in.Profession,
		IsActive:   true,
	}
	if in.RegisterCode != nil {
		p.RegisterCode = *in.RegisterCode
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.State != nil {
		p.State = *in.State
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		p.AvatarURL = *in.AvatarURL
	}
	if in.WhatsApp != nil {
		p.WhatsApp = *in.WhatsApp
	}
	if in.PriceCents != nil {
		p.PriceCents = *in.PriceCents
	}
	if in.SessionMinutes != nil {
		p.SessionMinutes = *in.SessionMinutes
	}
	if in.Modalities != nil {
		p.Modalities = *in.Modalities
	}
	if in.Rating != nil {
		p.Rating = in.Rating
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.UserID != nil {
		p.UserID = *in.UserID
	}
	if in.SpecialtyIDs != nil {
		p.SpecialtyIDs = *in.SpecialtyIDs
	}
	if p.PriceCents < 0 {
		utils.JSONError(c, http.StatusBadRequest, "price_cents must be non-negative", "")
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), p)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create professional", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

// UpdateProfessionalHandler applies a partial update to a professional profile.
func (h *ProfessionalHandler) UpdateProfessionalHandler(c *gin.Context) {
	var in professionalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	fields := map[string]interface{}{}
	if in.FullName != nil {
		fields["full_name"] = *in.FullName
	}
	if in.Profession != nil {
		fields["profession"] = *in.Profession
	}
	if in.RegisterCode != nil {
		fields["register_code"] = *in.RegisterCode
	}
	if in.City != nil {
		fields["city"] = *in.City
	}
	if in.State != nil {
		fields["state"] = *in.State
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.AvatarURL != nil {
		fields["avatar_url"] = *in.AvatarURL
	}
	if in.WhatsApp != nil {
		fields["whatsapp"] = *in.WhatsApp
	}
	if in.PriceCents != nil {
		fields["price_cents"] = *in.PriceCents
	}
	if in.SessionMinutes != nil {
		fields["session_minutes"] = *in.SessionMinutes
	}
	if in.Modalities != nil {
		fields["modalities"] = *in.Modalities
	}
	if in.Rating != nil {
		fields["rating"] = *in.Rating
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.UserID != nil {
		fields["user_id"] = *in.UserID
	}
	if in.SpecialtyIDs != nil {
		fields["specialty_ids"] = *in.SpecialtyIDs
	}
	if len(fields) == 0 {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	err := h.Svc.Update(c.Request.Context(), c.Param("id"), fields)
	if errors.Is(err, professionalRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "not_found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update professional", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteProfessionalHandler removes a professional profile.
func (h *ProfessionalHandler) DeleteProfessionalHandler(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, professionalRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "not_found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete professional", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AddAvailabilityHandler registers a weekly availability slot.
func (h *ProfessionalHandler) AddAvailabilityHandler(c *gin.Context) {
	var in struct {
		Weekday   *int   `json:"weekday"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Weekday == nil || in.StartTime == "" || in.EndTime == "" {
		utils.JSONError(c, http.StatusBadRequest, "weekday, start_time and end_time are required", "")
		return
	}
	av, err := h.Svc.AddAvailability(c.Request.Context(), &models.Availability{
		ProfessionalID: c.Param("id"),
		Weekday:        *in.Weekday,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to add availability", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": av.ID})
}

// AddLocationHandler registers a physical location.
func (h *ProfessionalHandler) AddLocationHandler(c *gin.Context) {
	var in struct {
		Address   string   `json:"address"`
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
		IsPrimary *bool    `json:"is_primary"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Address == "" {
		utils.JSONError(c, http.StatusBadRequest, "address is required", "")
		return
	}
	loc := &models.Location{
		ProfessionalID: c.Param("id"),
		Address:        in.Address,
		Lat:            in.Lat,
		Lng:            in.Lng,
		IsPrimary:      true,
	}
	if in.IsPrimary != nil {
		loc.IsPrimary = *in.IsPrimary
	}
	created, err := h.Svc.AddLocation(c.Request.Context(), loc)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to add location", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}
