package professional

import (
	"context"
	"time"

	"github.com/google/uuid"

	professionalRepo "saudeplus/database/repository/professional"
	"saudeplus/models"
)

// ProfessionalService defines catalogue management and public listing of
// professional profiles.
type ProfessionalService interface {
	Create(ctx context.Context, p *models.Professional) (*models.Professional, error)
	GetByID(ctx context.Context, id string) (*models.Professional, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter professionalRepo.ListFilter) ([]models.Professional, error)
	AddAvailability(ctx context.Context, av *models.Availability) (*models.Availability, error)
	AddLocation(ctx context.Context, loc *models.Location) (*models.Location, error)
	ListSpecialties(ctx context.Context, profession string) ([]models.Specialty, error)
}

// DefaultProfessionalService implements ProfessionalService.
type DefaultProfessionalService struct {
	Repo professionalRepo.ProfessionalRepository
}

func (svc *DefaultProfessionalService) Create(ctx context.Context, p *models.Professional) (*models.Professional, error) {
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now()
	if p.SessionMinutes <= 0 {
		p.SessionMinutes = 50
	}
	if len(p.Modalities) == 0 {
		p.Modalities = []string{"online"}
	}
	if err := svc.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (svc *DefaultProfessionalService) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	return svc.Repo.GetByID(ctx, id)
}

func (svc *DefaultProfessionalService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return svc.Repo.Update(ctx, id, fields)
}

func (svc *DefaultProfessionalService) Delete(ctx context.Context, id string) error {
	return svc.Repo.Delete(ctx, id)
}

func (svc *DefaultProfessionalService) List(ctx context.Context, filter professionalRepo.ListFilter) ([]models.Professional, error) {
	return svc.Repo.List(ctx, filter)
}

func (svc *DefaultProfessionalService) AddAvailability(ctx context.Context, av *models.Availability) (*models.Availability, error) {
	av.ID = uuid.New().String()
	if err := svc.Repo.AddAvailability(ctx, av); err != nil {
		return nil, err
	}
	return av, nil
}

func (svc *DefaultProfessionalService) AddLocation(ctx context.Context, loc *models.Location) (*models.Location, error) {
	loc.ID = uuid.New().String()
	if err := svc.Repo.AddLocation(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (svc *DefaultProfessionalService) ListSpecialties(ctx context.Context, profession string) ([]models.Specialty, error) {
	return svc.Repo.ListSpecialties(ctx, profession)
}
