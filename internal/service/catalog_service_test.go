package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalogService(ts *testStores) *CatalogService {
	return NewCatalogService(ts.enterprises, ts.professionals, ts.services, ts.clients, zap.NewNop())
}

func TestCatalogService_CreateEnterprise(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps raw interval", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestCatalogService(ts)

		ts.enterprises.On("Create", mock.Anything, mock.AnythingOfType("*model.Enterprise")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Enterprise).ID = 1
			}).
			Return(nil)

		enterprise, err := svc.CreateEnterprise(ctx, CreateEnterpriseInput{Name: " Barbearia ", Interval: strPtr(" 1h ")})
		require.NoError(t, err)

		assert.Equal(t, "Barbearia", enterprise.Name)
		require.NotNil(t, enterprise.Interval)
		assert.Equal(t, "1h", *enterprise.Interval)
	})

	t.Run("blank interval stored as absent", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestCatalogService(ts)

		ts.enterprises.On("Create", mock.Anything, mock.Anything).Return(nil)

		enterprise, err := svc.CreateEnterprise(ctx, CreateEnterpriseInput{Name: "Studio", Interval: strPtr("  ")})
		require.NoError(t, err)
		assert.Nil(t, enterprise.Interval)
	})

	t.Run("name required", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestCatalogService(ts)

		_, err := svc.CreateEnterprise(ctx, CreateEnterpriseInput{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCatalogService_WorkingHours(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input WorkingHoursInput
		want  error
	}{
		{"reversed times", WorkingHoursInput{WeekdayFrom: 1, WeekdayTo: 5, TimeFrom: "18:00", TimeTo: "08:00"}, ErrInvalidWorkingHours},
		{"equal times", WorkingHoursInput{WeekdayFrom: 1, WeekdayTo: 5, TimeFrom: "08:00", TimeTo: "08:00"}, ErrInvalidWorkingHours},
		{"weekday wraparound", WorkingHoursInput{WeekdayFrom: 5, WeekdayTo: 1, TimeFrom: "08:00", TimeTo: "18:00"}, ErrInvalidWorkingHours},
		{"weekday out of range", WorkingHoursInput{WeekdayFrom: 1, WeekdayTo: 7, TimeFrom: "08:00", TimeTo: "18:00"}, ErrInvalidInput},
		{"garbage time", WorkingHoursInput{WeekdayFrom: 1, WeekdayTo: 5, TimeFrom: "8am", TimeTo: "18:00"}, ErrInvalidWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestStores()
			svc := newTestCatalogService(ts)

			_, err := svc.UpdateWorkingHours(ctx, testProfessionalID, tt.input)
			assert.ErrorIs(t, err, tt.want)
			ts.assertExpectations(t)
		})
	}

	t.Run("update normalizes times", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestCatalogService(ts)

		want := model.WorkingHours{WeekdayFrom: 2, WeekdayTo: 6, TimeFrom: "09:00:00", TimeTo: "17:30:00"}
		ts.professionals.On("GetByID", mock.Anything, testProfessionalID).Return(testProfessional(), nil)
		ts.professionals.On("UpdateWorkingHours", mock.Anything, testProfessionalID, want).Return(nil)

		professional, err := svc.UpdateWorkingHours(ctx, testProfessionalID, WorkingHoursInput{
			WeekdayFrom: 2, WeekdayTo: 6, TimeFrom: "09:00", TimeTo: "17:30",
		})
		require.NoError(t, err)
		assert.Equal(t, want, professional.WorkingHours)

		ts.assertExpectations(t)
	})

	t.Run("create professional in missing enterprise", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestCatalogService(ts)

		ts.enterprises.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)

		_, err := svc.CreateProfessional(ctx, 9, CreateProfessionalInput{
			Name:         "Ana",
			WorkingHours: WorkingHoursInput{WeekdayFrom: 1, WeekdayTo: 5, TimeFrom: "08:00", TimeTo: "18:00"},
		})
		assert.ErrorIs(t, err, ErrEnterpriseNotFound)
	})
}

func TestCatalogService_CreateService(t *testing.T) {
	ctx := context.Background()

	ts := newTestStores()
	svc := newTestCatalogService(ts)

	_, err := svc.CreateService(ctx, testEnterpriseID, CreateServiceInput{Name: "Corte", DurationInMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	ts.enterprises.On("GetByID", mock.Anything, testEnterpriseID).Return(testEnterprise(), nil)
	ts.services.On("Create", mock.Anything, mock.AnythingOfType("*model.Service")).Return(nil)

	created, err := svc.CreateService(ctx, testEnterpriseID, CreateServiceInput{Name: "Corte", DurationInMinutes: 45, PriceCents: 5000})
	require.NoError(t, err)
	assert.Equal(t, 45, created.DurationInMinutes)
	assert.Equal(t, testEnterpriseID, created.EnterpriseID)
}

func TestCatalogService_CreateClient(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate phone", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestCatalogService(ts)

		ts.enterprises.On("GetByID", mock.Anything, testEnterpriseID).Return(testEnterprise(), nil)
		ts.clients.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateClient)

		_, err := svc.CreateClient(ctx, testEnterpriseID, CreateClientInput{Name: "Joao", Phone: "+5511999990000"})
		assert.ErrorIs(t, err, ErrClientExists)
	})

	t.Run("phone must be e164", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestCatalogService(ts)

		_, err := svc.CreateClient(ctx, testEnterpriseID, CreateClientInput{Name: "Joao", Phone: "11 99999-0000"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
