package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityService_GetAvailableTimes(t *testing.T) {
	ctx := context.Background()

	t.Run("wednesday with one appointment", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestAvailabilityService(t, ts)

		ts.professionals.On("GetByID", mock.Anything, testProfessionalID).Return(testProfessional(), nil)
		ts.enterprises.On("GetByID", mock.Anything, testEnterpriseID).Return(testEnterprise(), nil)
		ts.appointments.On("ListByProfessionalAndDate", mock.Anything, testProfessionalID, testDate).Return([]*model.Appointment{
			{ID: 1, Date: testDate, Time: "09:00:00", Status: model.AppointmentStatusScheduled, ServiceDurationInMinutes: 30},
		}, nil)

		slots, err := svc.GetAvailableTimes(ctx, testProfessionalID, testDate, nil)
		require.NoError(t, err)

		require.Len(t, slots, 21)
		assert.Equal(t, "08:00:00", slots[0].Value)
		assert.Equal(t, "08:00", slots[0].Label)
		assert.Equal(t, "18:00:00", slots[20].Value)
		for _, slot := range slots {
			assert.Equal(t, slot.Value != "09:00:00", slot.Available, slot.Value)
		}

		ts.assertExpectations(t)
	})

	t.Run("service duration needs two slots", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestAvailabilityService(t, ts)

		ts.professionals.On("GetByID", mock.Anything, testProfessionalID).Return(testProfessional(), nil)
		ts.enterprises.On("GetByID", mock.Anything, testEnterpriseID).Return(testEnterprise(), nil)
		ts.services.On("GetByID", mock.Anything, testServiceID).Return(testService(), nil)
		ts.appointments.On("ListByProfessionalAndDate", mock.Anything, testProfessionalID, testDate).Return([]*model.Appointment{}, nil)

		serviceID := testServiceID
		slots, err := svc.GetAvailableTimes(ctx, testProfessionalID, testDate, &serviceID)
		require.NoError(t, err)

		require.Len(t, slots, 21)
		assert.True(t, slots[19].Available, "17:30 fits")
		assert.False(t, slots[20].Available, "18:00 has no room for a second slot")
	})

	t.Run("sunday is empty", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestAvailabilityService(t, ts)

		ts.professionals.On("GetByID", mock.Anything, testProfessionalID).Return(testProfessional(), nil)
		ts.enterprises.On("GetByID", mock.Anything, testEnterpriseID).Return(testEnterprise(), nil)
		ts.appointments.On("ListByProfessionalAndDate", mock.Anything, testProfessionalID, "2026-10-11").Return(nil, nil)

		slots, err := svc.GetAvailableTimes(ctx, testProfessionalID, "2026-10-11", nil)
		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("professional not found", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestAvailabilityService(t, ts)

		ts.professionals.On("GetByID", mock.Anything, int64(404)).Return(nil, nil)

		_, err := svc.GetAvailableTimes(ctx, 404, testDate, nil)
		assert.ErrorIs(t, err, ErrProfessionalNotFound)
	})

	t.Run("service of another enterprise", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestAvailabilityService(t, ts)

		foreign := testService()
		foreign.EnterpriseID = 2

		ts.professionals.On("GetByID", mock.Anything, testProfessionalID).Return(testProfessional(), nil)
		ts.enterprises.On("GetByID", mock.Anything, testEnterpriseID).Return(testEnterprise(), nil)
		ts.services.On("GetByID", mock.Anything, testServiceID).Return(foreign, nil)

		serviceID := testServiceID
		_, err := svc.GetAvailableTimes(ctx, testProfessionalID, testDate, &serviceID)
		assert.ErrorIs(t, err, ErrEnterpriseMismatch)
	})

	t.Run("invalid date", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestAvailabilityService(t, ts)

		_, err := svc.GetAvailableTimes(ctx, testProfessionalID, "14/10/2026", nil)
		assert.ErrorIs(t, err, ErrInvalidDate)
		ts.assertExpectations(t)
	})

	t.Run("storage error is wrapped", func(t *testing.T) {
		ts := newTestStores()
		svc := newTestAvailabilityService(t, ts)

		dbErr := errors.New("connection reset")
		ts.professionals.On("GetByID", mock.Anything, testProfessionalID).Return(nil, dbErr)

		_, err := svc.GetAvailableTimes(ctx, testProfessionalID, testDate, nil)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAvailabilityService_IsTimeAvailable(t *testing.T) {
	ctx := context.Background()

	ts := newTestStores()
	svc := newTestAvailabilityService(t, ts)

	ts.professionals.On("GetByID", mock.Anything, testProfessionalID).Return(testProfessional(), nil)
	ts.enterprises.On("GetByID", mock.Anything, testEnterpriseID).Return(testEnterprise(), nil)
	ts.appointments.On("ListByProfessionalAndDate", mock.Anything, testProfessionalID, testDate).Return([]*model.Appointment{
		{ID: 1, Date: testDate, Time: "09:00:00", Status: model.AppointmentStatusScheduled},
	}, nil)

	tests := []struct {
		name string
		time string
		want bool
	}{
		{"free short form", "10:00", true},
		{"free long form", "10:00:00", true},
		{"occupied", "09:00", false},
		{"before working hours", "07:30", false},
		{"off grid", "10:15", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.IsTimeAvailable(ctx, testProfessionalID, testDate, tt.time, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	t.Run("malformed time", func(t *testing.T) {
		_, err := svc.IsTimeAvailable(ctx, testProfessionalID, testDate, "10h", nil)
		assert.ErrorIs(t, err, ErrInvalidTime)
	})

	t.Run("seconds inside a slot", func(t *testing.T) {
		_, err := svc.IsTimeAvailable(ctx, testProfessionalID, testDate, "10:00:30", nil)
		assert.ErrorIs(t, err, ErrInvalidTime)
	})
}
