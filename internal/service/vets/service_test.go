package vets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VetBookingService/internal/domain"
	vetRepo "github.com/m04kA/VetBookingService/internal/infra/storage/vet"
	"github.com/m04kA/VetBookingService/internal/service/vets/models"
)

type memVets struct {
	vets     map[int64]*domain.Vet
	settings map[int64]map[domain.AppointmentType]domain.AppointmentTypeSetting
}

func newMemVets() *memVets {
	return &memVets{
		vets:     map[int64]*domain.Vet{},
		settings: map[int64]map[domain.AppointmentType]domain.AppointmentTypeSetting{},
	}
}

func (m *memVets) Create(_ context.Context, vet *domain.Vet) (*domain.Vet, error) {
	if existing, ok := m.vets[vet.ID]; ok {
		return existing, nil
	}
	created := *vet
	created.CreatedAt = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	m.vets[vet.ID] = &created
	return &created, nil
}

func (m *memVets) GetByID(_ context.Context, id int64) (*domain.Vet, error) {
	if v, ok := m.vets[id]; ok {
		return v, nil
	}
	return nil, vetRepo.ErrVetNotFound
}

func (m *memVets) GetAppointmentTypes(_ context.Context, vetID int64) ([]domain.AppointmentTypeSetting, error) {
	var out []domain.AppointmentTypeSetting
	for _, t := range domain.AllAppointmentTypes {
		if s, ok := m.settings[vetID][t]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memVets) UpsertAppointmentType(_ context.Context, setting domain.AppointmentTypeSetting) error {
	if m.settings[setting.VetID] == nil {
		m.settings[setting.VetID] = map[domain.AppointmentType]domain.AppointmentTypeSetting{}
	}
	m.settings[setting.VetID][setting.Type] = setting
	return nil
}

func (m *memVets) InitAppointmentTypes(ctx context.Context, vetID int64) error {
	for _, s := range domain.DefaultAppointmentTypeSettings(vetID) {
		if _, ok := m.settings[vetID][s.Type]; ok {
			continue
		}
		_ = m.UpsertAppointmentType(ctx, s)
	}
	return nil
}

type memSchedule struct {
	initialized map[int64]int
	err         error
}

func (m *memSchedule) InitDefaults(_ context.Context, vetID int64) error {
	if m.err != nil {
		return m.err
	}
	m.initialized[vetID]++
	return nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *memVets, *memSchedule) {
	vets := newMemVets()
	schedule := &memSchedule{initialized: map[int64]int{}}
	return NewService(vets, schedule, inlineTx{}, nopLogger{}), vets, schedule
}

func TestRegisterSeedsDefaults(t *testing.T) {
	svc, _, schedule := newService()

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{VetID: 7, Name: "  Dr. Ivanova "})
	require.NoError(t, err)

	assert.Equal(t, "Dr. Ivanova", resp.Name)
	require.Len(t, resp.AppointmentTypes, 4)
	for _, s := range resp.AppointmentTypes {
		assert.False(t, s.Enabled)
		assert.Zero(t, s.Fee)
	}
	assert.Equal(t, 1, schedule.initialized[7])
}

func TestRegisterIsIdempotent(t *testing.T) {
	svc, vets, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{VetID: 7, Name: "Dr. Ivanova"})
	require.NoError(t, err)
	require.NoError(t, vets.UpsertAppointmentType(ctx, domain.AppointmentTypeSetting{VetID: 7, Type: domain.TypeOnline, Fee: 30, Enabled: true}))

	resp, err := svc.Register(ctx, &models.RegisterRequest{VetID: 7, Name: "Someone Else"})
	require.NoError(t, err)

	assert.Equal(t, "Dr. Ivanova", resp.Name)
	assert.Equal(t, "online", resp.AppointmentTypes[0].Type)
	assert.True(t, resp.AppointmentTypes[0].Enabled)
}

func TestRegisterValidationAndFailure(t *testing.T) {
	svc, _, schedule := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{VetID: 0, Name: "X"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Register(ctx, &models.RegisterRequest{VetID: 1, Name: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	schedule.err = errors.New("db down")
	_, err = svc.Register(ctx, &models.RegisterRequest{VetID: 1, Name: "X"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdateAppointmentType(t *testing.T) {
	svc, vets, _ := newService()
	ctx := context.Background()
	_, err := svc.Register(ctx, &models.RegisterRequest{VetID: 7, Name: "Dr. Ivanova"})
	require.NoError(t, err)

	resp, err := svc.UpdateAppointmentType(ctx, &models.UpdateAppointmentTypeRequest{
		UserID: 7, VetID: 7, Type: "emergency", Fee: 120, Enabled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "emergency", resp.Type)
	assert.True(t, vets.settings[7][domain.TypeEmergency].Enabled)

	_, err = svc.UpdateAppointmentType(ctx, &models.UpdateAppointmentTypeRequest{UserID: 8, VetID: 7, Type: "online"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.UpdateAppointmentType(ctx, &models.UpdateAppointmentTypeRequest{UserID: 7, VetID: 7, Type: "teleport"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateAppointmentType(ctx, &models.UpdateAppointmentTypeRequest{UserID: 7, VetID: 7, Type: "online", Fee: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateAppointmentType(ctx, &models.UpdateAppointmentTypeRequest{UserID: 9, VetID: 9, Type: "online"})
	assert.ErrorIs(t, err, ErrVetNotFound)
}

func TestUpdateAppointmentTypeAcceptsCamelCaseName(t *testing.T) {
	svc, vets, _ := newService()
	ctx := context.Background()
	_, err := svc.Register(ctx, &models.RegisterRequest{VetID: 7, Name: "Dr. Ivanova"})
	require.NoError(t, err)

	resp, err := svc.UpdateAppointmentType(ctx, &models.UpdateAppointmentTypeRequest{
		UserID: 7, VetID: 7, Type: "homeService", Fee: 80, Enabled: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "home_service", resp.Type)
	assert.True(t, vets.settings[7][domain.TypeHomeService].Enabled)
}
