package professionalRepo

import (
	"context"

	"saudeplus/models"
)

// ListFilter narrows public professional listings. Zero values mean "no filter".
type ListFilter struct {
	Profession string
	City       string
	Modality   string
	PriceMin   *int
	PriceMax   *int
	Term       string
}

// ProfessionalRepository defines persistence operations for professional
// profiles and their satellite entities.
type ProfessionalRepository interface {
	Create(ctx context.Context, p *models.Professional) error
	GetByID(ctx context.Context, id string) (*models.Professional, error)
	GetByUserID(ctx context.Context, userID string) (*models.Professional, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]models.Professional, error)

	AddAvailability(ctx context.Context, av *models.Availability) error
	AddLocation(ctx context.Context, loc *models.Location) error
	ListSpecialties(ctx context.Context, profession string) ([]models.Specialty, error)
}
