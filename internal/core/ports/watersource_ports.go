package ports

import (
	"context"
	"time"

	"github.com/aquaguard/api/internal/core/domain"
)

type WaterSourceRepository interface {
	Save(ctx context.Context, source *domain.WaterSource) error
	GetByID(ctx context.Context, id int64) (*domain.WaterSource, error)
	GetAll(ctx context.Context) ([]*domain.WaterSource, error)

	// Update persists the new field values and appends the given history row
	// in the same transaction. Returns domain.ErrWaterSourceNotFound when the
	// source does not exist.
	Update(ctx context.Context, source *domain.WaterSource, update *domain.WaterSourceUpdate) error

	Delete(ctx context.Context, id int64) error
}

type CreateWaterSourceInput struct {
	Name          string
	Description   string
	Location      string
	Latitude      float64
	Longitude     float64
	Type          domain.WaterSourceType
	Status        domain.WaterSourceStatus
	CreatedByID   int64
	LastInspected time.Time
}

type UpdateWaterSourceInput struct {
	Name              string
	Description       string
	Location          string
	Latitude          float64
	Longitude         float64
	Type              domain.WaterSourceType
	Status            domain.WaterSourceStatus
	LastInspected     time.Time
	IsActive          bool
	UpdateDescription string
}

type WaterSourceService interface {
	Create(ctx context.Context, input CreateWaterSourceInput) (*domain.WaterSource, error)
	Get(ctx context.Context, id int64) (*domain.WaterSource, error)
	List(ctx context.Context) ([]*domain.WaterSource, error)
	Update(ctx context.Context, id int64, input UpdateWaterSourceInput) error
	Delete(ctx context.Context, id int64) error
}
