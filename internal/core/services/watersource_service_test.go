package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/ports"
)

type fakeWaterSourceRepo struct {
	mu      sync.Mutex
	nextID  int64
	sources map[int64]*domain.WaterSource
}

func newFakeWaterSourceRepo() *fakeWaterSourceRepo {
	return &fakeWaterSourceRepo{sources: make(map[int64]*domain.WaterSource)}
}

func (r *fakeWaterSourceRepo) Save(_ context.Context, source *domain.WaterSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	source.ID = r.nextID
	cp := *source
	r.sources[source.ID] = &cp
	return nil
}

func (r *fakeWaterSourceRepo) GetByID(_ context.Context, id int64) (*domain.WaterSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sources[id]
	if !ok {
		return nil, domain.ErrWaterSourceNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeWaterSourceRepo) GetAll(_ context.Context) ([]*domain.WaterSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.WaterSource
	for id := int64(1); id <= r.nextID; id++ {
		if s, ok := r.sources[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWaterSourceRepo) Update(_ context.Context, source *domain.WaterSource, update *domain.WaterSourceUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.sources[source.ID]
	if !ok {
		return domain.ErrWaterSourceNotFound
	}
	updates := existing.Updates
	cp := *source
	cp.Updates = append(updates, *update)
	r.sources[source.ID] = &cp
	return nil
}

func (r *fakeWaterSourceRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sources[id]; !ok {
		return domain.ErrWaterSourceNotFound
	}
	delete(r.sources, id)
	return nil
}

func validSourceInput() ports.CreateWaterSourceInput {
	return ports.CreateWaterSourceInput{
		Name:          "Old Mill Well",
		Description:   "Hand-dug well by the mill",
		Location:      "Mill Road",
		Latitude:      -3.7319,
		Longitude:     -38.5267,
		Type:          domain.WaterSourceTypeWell,
		Status:        domain.WaterSourceStatusPotable,
		CreatedByID:   1,
		LastInspected: time.Now(),
	}
}

func TestWaterSourceService_Create(t *testing.T) {
	svc := NewWaterSourceService(newFakeWaterSourceRepo())

	source, err := svc.Create(context.Background(), validSourceInput())
	require.NoError(t, err)
	assert.NotZero(t, source.ID)
	assert.True(t, source.IsActive, "new sources start active")
	assert.False(t, source.CreatedAt.IsZero())
	assert.Equal(t, source.CreatedAt, source.UpdatedAt)
}

func TestWaterSourceService_CreateValidation(t *testing.T) {
	svc := NewWaterSourceService(newFakeWaterSourceRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*ports.CreateWaterSourceInput)
	}{
		{"missing name", func(in *ports.CreateWaterSourceInput) { in.Name = "" }},
		{"bad type", func(in *ports.CreateWaterSourceInput) { in.Type = "ocean" }},
		{"bad status", func(in *ports.CreateWaterSourceInput) { in.Status = "murky" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSourceInput()
			tt.mutate(&input)
			_, err := svc.Create(ctx, input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestWaterSourceService_UpdateRecordsStatusTransition(t *testing.T) {
	repo := newFakeWaterSourceRepo()
	svc := NewWaterSourceService(repo)
	ctx := context.Background()

	source, err := svc.Create(ctx, validSourceInput())
	require.NoError(t, err)

	err = svc.Update(ctx, source.ID, ports.UpdateWaterSourceInput{
		Name:              source.Name,
		Location:          source.Location,
		Latitude:          source.Latitude,
		Longitude:         source.Longitude,
		Type:              source.Type,
		Status:            domain.WaterSourceStatusContaminated,
		LastInspected:     time.Now(),
		IsActive:          true,
		UpdateDescription: "coliform detected in monthly sample",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WaterSourceStatusContaminated, got.Status)

	require.Len(t, got.Updates, 1)
	history := got.Updates[0]
	assert.Equal(t, domain.WaterSourceStatusPotable, history.OldStatus)
	assert.Equal(t, domain.WaterSourceStatusContaminated, history.Status)
	assert.Equal(t, "coliform detected in monthly sample", history.Description)
	require.NotNil(t, history.Latitude)
	assert.Equal(t, source.Latitude, *history.Latitude)
}

func TestWaterSourceService_UpdateMissingSource(t *testing.T) {
	svc := NewWaterSourceService(newFakeWaterSourceRepo())

	err := svc.Update(context.Background(), 99, ports.UpdateWaterSourceInput{
		Name:   "Ghost Well",
		Type:   domain.WaterSourceTypeWell,
		Status: domain.WaterSourceStatusPotable,
	})
	assert.ErrorIs(t, err, domain.ErrWaterSourceNotFound)
}

func TestWaterSourceService_ListAndDelete(t *testing.T) {
	svc := NewWaterSourceService(newFakeWaterSourceRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, validSourceInput())
	require.NoError(t, err)
	second := validSourceInput()
	second.Name = "East Spring"
	second.Type = domain.WaterSourceTypeSpring
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(ctx, first.ID))

	all, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, svc.Delete(ctx, first.ID), domain.ErrWaterSourceNotFound)
}
