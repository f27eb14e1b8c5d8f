package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/ports"
)

type waterSourceRepository struct {
	db *sql.DB
}

func NewWaterSourceRepository(db *sql.DB) ports.WaterSourceRepository {
	return &waterSourceRepository{db: db}
}

func (r *waterSourceRepository) Save(ctx context.Context, source *domain.WaterSource) error {
	query := `
		INSERT INTO water_sources
			(name, description, location, latitude, longitude, type, status,
			 created_by_id, last_inspected, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		source.Name, source.Description, source.Location, source.Latitude, source.Longitude,
		source.Type, source.Status, source.CreatedByID, source.LastInspected,
		source.IsActive, source.CreatedAt, source.UpdatedAt,
	).Scan(&source.ID)
	if err != nil {
		return fmt.Errorf("failed to insert water source: %w", err)
	}
	return nil
}

func (r *waterSourceRepository) GetByID(ctx context.Context, id int64) (*domain.WaterSource, error) {
	query := `
		SELECT id, name, description, location, latitude, longitude, type, status,
		       created_by_id, last_inspected, is_active, created_at, updated_at
		FROM water_sources
		WHERE id = $1
	`
	source := &domain.WaterSource{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&source.ID, &source.Name, &source.Description, &source.Location,
		&source.Latitude, &source.Longitude, &source.Type, &source.Status,
		&source.CreatedByID, &source.LastInspected, &source.IsActive,
		&source.CreatedAt, &source.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWaterSourceNotFound
		}
		return nil, fmt.Errorf("failed to get water source: %w", err)
	}

	updates, err := r.fetchUpdates(ctx, source.ID)
	if err != nil {
		return nil, err
	}
	source.Updates = updates

	return source, nil
}

func (r *waterSourceRepository) GetAll(ctx context.Context) ([]*domain.WaterSource, error) {
	query := `
		SELECT id, name, description, location, latitude, longitude, type, status,
		       created_by_id, last_inspected, is_active, created_at, updated_at
		FROM water_sources
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get water sources: %w", err)
	}
	defer rows.Close()

	var sources []*domain.WaterSource
	for rows.Next() {
		source := &domain.WaterSource{}
		err := rows.Scan(
			&source.ID, &source.Name, &source.Description, &source.Location,
			&source.Latitude, &source.Longitude, &source.Type, &source.Status,
			&source.CreatedByID, &source.LastInspected, &source.IsActive,
			&source.CreatedAt, &source.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan water source: %w", err)
		}
		sources = append(sources, source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating water sources: %w", err)
	}
	return sources, nil
}

// Update writes the new field values and the history row in one transaction
// so the audit trail can never drift from the entity.
func (r *waterSourceRepository) Update(ctx context.Context, source *domain.WaterSource, update *domain.WaterSourceUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryUpdate := `
		UPDATE water_sources
		SET name = $2, description = $3, location = $4, latitude = $5, longitude = $6,
		    type = $7, status = $8, last_inspected = $9, is_active = $10, updated_at = $11
		WHERE id = $1
	`
	res, err := tx.ExecContext(ctx, queryUpdate,
		source.ID, source.Name, source.Description, source.Location,
		source.Latitude, source.Longitude, source.Type, source.Status,
		source.LastInspected, source.IsActive, source.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update water source: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrWaterSourceNotFound
	}

	queryHistory := `
		INSERT INTO water_source_updates
			(water_source_id, update_date, description, old_status, status, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, queryHistory,
		update.WaterSourceID, update.UpdateDate, update.Description,
		update.OldStatus, update.Status, update.Latitude, update.Longitude,
	).Scan(&update.ID)
	if err != nil {
		return fmt.Errorf("failed to insert update record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *waterSourceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM water_sources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete water source: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrWaterSourceNotFound
	}
	return nil
}

func (r *waterSourceRepository) fetchUpdates(ctx context.Context, sourceID int64) ([]domain.WaterSourceUpdate, error) {
	query := `
		SELECT id, water_source_id, update_date, description, old_status, status, latitude, longitude
		FROM water_source_updates
		WHERE water_source_id = $1
		ORDER BY update_date
	`
	rows, err := r.db.QueryContext(ctx, query, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get update records: %w", err)
	}
	defer rows.Close()

	var updates []domain.WaterSourceUpdate
	for rows.Next() {
		var u domain.WaterSourceUpdate
		err := rows.Scan(
			&u.ID, &u.WaterSourceID, &u.UpdateDate, &u.Description,
			&u.OldStatus, &u.Status, &u.Latitude, &u.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan update record: %w", err)
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating update records: %w", err)
	}
	return updates, nil
}
