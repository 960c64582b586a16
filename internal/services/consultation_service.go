package services

import (
	"context"

	"github.com/avismic/wrkbl/internal/database"
	"github.com/avismic/wrkbl/internal/dtos"
	"github.com/avismic/wrkbl/internal/models"
)

// ConsultationService handles the consulting-intake form.
type ConsultationService struct {
	store *database.Store
}

func NewConsultationService(store *database.Store) *ConsultationService {
	return &ConsultationService{store: store}
}

// Submit stores one consultation request and returns its id.
func (s *ConsultationService) Submit(ctx context.Context, req dtos.ConsultationRequest) (uint, error) {
	c := models.Consultation{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.store.CreateConsultation(ctx, &c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

// List returns all consultation requests, newest first.
func (s *ConsultationService) List(ctx context.Context) ([]models.Consultation, error) {
	return s.store.ListConsultations(ctx)
}
