package services

import (
	"context"
	"fmt"

	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/ports"
)

type alertService struct {
	repo ports.AlertRepository
}

func NewAlertService(repo ports.AlertRepository) ports.AlertService {
	return &alertService{repo: repo}
}

func (s *alertService) Create(ctx context.Context, input ports.CreateAlertInput) (*domain.Alert, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	alert := &domain.Alert{
		Title:       input.Title,
		Description: input.Description,
		Icon:        input.Icon,
		IsActive:    input.IsActive,
	}
	if err := s.repo.Save(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *alertService) Get(ctx context.Context, id int64) (*domain.Alert, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *alertService) List(ctx context.Context) ([]*domain.Alert, error) {
	return s.repo.GetAll(ctx)
}

func (s *alertService) Update(ctx context.Context, alert *domain.Alert) error {
	if alert.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	return s.repo.Update(ctx, alert)
}

func (s *alertService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
