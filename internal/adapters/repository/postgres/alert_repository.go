package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/ports"
)

type alertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) ports.AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Save(ctx context.Context, alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (title, description, icon, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		alert.Title, alert.Description, alert.Icon, alert.IsActive,
	).Scan(&alert.ID)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

func (r *alertRepository) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	query := `
		SELECT id, title, description, icon, is_active
		FROM alerts
		WHERE id = $1
	`
	alert := &domain.Alert{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&alert.ID, &alert.Title, &alert.Description, &alert.Icon, &alert.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return alert, nil
}

func (r *alertRepository) GetAll(ctx context.Context) ([]*domain.Alert, error) {
	query := `
		SELECT id, title, description, icon, is_active
		FROM alerts
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		alert := &domain.Alert{}
		if err := rows.Scan(&alert.ID, &alert.Title, &alert.Description, &alert.Icon, &alert.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	query := `
		UPDATE alerts
		SET title = $2, description = $3, icon = $4, is_active = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.Title, alert.Description, alert.Icon, alert.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}

func (r *alertRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}
