package ports

import (
	"context"

	"github.com/aquaguard/api/internal/core/domain"
)

type AlertRepository interface {
	Save(ctx context.Context, alert *domain.Alert) error
	GetByID(ctx context.Context, id int64) (*domain.Alert, error)
	GetAll(ctx context.Context) ([]*domain.Alert, error)
	Update(ctx context.Context, alert *domain.Alert) error
	Delete(ctx context.Context, id int64) error
}

type CreateAlertInput struct {
	Title       string
	Description string
	Icon        string
	IsActive    bool
}

type AlertService interface {
	Create(ctx context.Context, input CreateAlertInput) (*domain.Alert, error)
	Get(ctx context.Context, id int64) (*domain.Alert, error)
	List(ctx context.Context) ([]*domain.Alert, error)
	Update(ctx context.Context, alert *domain.Alert) error
	Delete(ctx context.Context, id int64) error
}
