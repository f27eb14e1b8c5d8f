package domain

import "time"

type WaterSourceType string

const (
	WaterSourceTypeWell      WaterSourceType = "well"
	WaterSourceTypeSpring    WaterSourceType = "spring"
	WaterSourceTypeRiver     WaterSourceType = "river"
	WaterSourceTypeLake      WaterSourceType = "lake"
	WaterSourceTypeReservoir WaterSourceType = "reservoir"
)

func (t WaterSourceType) Valid() bool {
	switch t {
	case WaterSourceTypeWell, WaterSourceTypeSpring, WaterSourceTypeRiver,
		WaterSourceTypeLake, WaterSourceTypeReservoir:
		return true
	}
	return false
}

type WaterSourceStatus string

const (
	WaterSourceStatusPotable      WaterSourceStatus = "potable"
	WaterSourceStatusContaminated WaterSourceStatus = "contaminated"
)

func (s WaterSourceStatus) Valid() bool {
	return s == WaterSourceStatusPotable || s == WaterSourceStatusContaminated
}

type WaterSource struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description,omitempty"`
	Location      string              `json:"location,omitempty"`
	Latitude      float64             `json:"latitude"`
	Longitude     float64             `json:"longitude"`
	Type          WaterSourceType     `json:"type"`
	Status        WaterSourceStatus   `json:"status"`
	CreatedByID   int64               `json:"created_by_id"`
	LastInspected time.Time           `json:"last_inspected"`
	IsActive      bool                `json:"is_active"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Updates       []WaterSourceUpdate `json:"updates,omitempty"`
}

// WaterSourceUpdate is an audit row appended whenever a water source is
// updated, capturing the status transition and the position at that moment.
type WaterSourceUpdate struct {
	ID            int64             `json:"id"`
	WaterSourceID int64             `json:"water_source_id"`
	UpdateDate    time.Time         `json:"update_date"`
	Description   string            `json:"description,omitempty"`
	OldStatus     WaterSourceStatus `json:"old_status"`
	Status        WaterSourceStatus `json:"status"`
	Latitude      *float64          `json:"latitude,omitempty"`
	Longitude     *float64          `json:"longitude,omitempty"`
}
