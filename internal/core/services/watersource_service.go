package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/ports"
)

type waterSourceService struct {
	repo ports.WaterSourceRepository
}

func NewWaterSourceService(repo ports.WaterSourceRepository) ports.WaterSourceService {
	return &waterSourceService{repo: repo}
}

func (s *waterSourceService) Create(ctx context.Context, input ports.CreateWaterSourceInput) (*domain.WaterSource, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown water source type %q", domain.ErrInvalidInput, input.Type)
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown water source status %q", domain.ErrInvalidInput, input.Status)
	}

	now := time.Now()
	source := &domain.WaterSource{
		Name:          input.Name,
		Description:   input.Description,
		Location:      input.Location,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Type:          input.Type,
		Status:        input.Status,
		CreatedByID:   input.CreatedByID,
		LastInspected: input.LastInspected,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Save(ctx, source); err != nil {
		return nil, err
	}
	return source, nil
}

func (s *waterSourceService) Get(ctx context.Context, id int64) (*domain.WaterSource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *waterSourceService) List(ctx context.Context) ([]*domain.WaterSource, error) {
	return s.repo.GetAll(ctx)
}

// Update applies the new values and appends a history row recording the
// status transition, both inside one repository transaction.
func (s *waterSourceService) Update(ctx context.Context, id int64, input ports.UpdateWaterSourceInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return fmt.Errorf("%w: unknown water source type %q", domain.ErrInvalidInput, input.Type)
	}
	if !input.Status.Valid() {
		return fmt.Errorf("%w: unknown water source status %q", domain.ErrInvalidInput, input.Status)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	oldStatus := existing.Status
	lat, lon := input.Latitude, input.Longitude

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Location = input.Location
	existing.Latitude = input.Latitude
	existing.Longitude = input.Longitude
	existing.Type = input.Type
	existing.Status = input.Status
	existing.LastInspected = input.LastInspected
	existing.IsActive = input.IsActive
	existing.UpdatedAt = time.Now()

	update := &domain.WaterSourceUpdate{
		WaterSourceID: existing.ID,
		UpdateDate:    existing.UpdatedAt,
		Description:   input.UpdateDescription,
		OldStatus:     oldStatus,
		Status:        input.Status,
		Latitude:      &lat,
		Longitude:     &lon,
	}

	return s.repo.Update(ctx, existing, update)
}

func (s *waterSourceService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
