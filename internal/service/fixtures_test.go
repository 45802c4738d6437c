package service

import (
	"testing"
	"time"

	"github.com/Freeeeeet/agenda/internal/availability"
	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testEnterpriseID   int64 = 1
	testProfessionalID int64 = 10
	testServiceID      int64 = 100
	testClientID       int64 = 1000
	testDate                 = "2026-10-14" // среда
	testLockTTL              = 5 * time.Second
)

var testLockKey = "appointments:lock:10:2026-10-14"

func strPtr(s string) *string { return &s }

func testEnterprise() *model.Enterprise {
	return &model.Enterprise{ID: testEnterpriseID, Name: "Barbearia"}
}

func testProfessional() *model.Professional {
	return &model.Professional{
		ID:           testProfessionalID,
		EnterpriseID: testEnterpriseID,
		Name:         "Ana",
		WorkingHours: model.WorkingHours{
			WeekdayFrom: 1,
			WeekdayTo:   5,
			TimeFrom:    "08:00:00",
			TimeTo:      "18:00:00",
		},
	}
}

func testService() *model.Service {
	return &model.Service{ID: testServiceID, EnterpriseID: testEnterpriseID, Name: "Corte", DurationInMinutes: 60}
}

func testClient() *model.Client {
	return &model.Client{ID: testClientID, EnterpriseID: testEnterpriseID, Name: "Joao", Phone: "+5511999990000"}
}

type testStores struct {
	enterprises   *MockEnterpriseStore
	professionals *MockProfessionalStore
	services      *MockServiceStore
	clients       *MockClientStore
	appointments  *MockAppointmentStore
	codes         *MockVerificationCodeStore
	locker        *MockLocker
	publisher     *MockPublisher
}

func newTestStores() *testStores {
	return &testStores{
		enterprises:   new(MockEnterpriseStore),
		professionals: new(MockProfessionalStore),
		services:      new(MockServiceStore),
		clients:       new(MockClientStore),
		appointments:  new(MockAppointmentStore),
		codes:         new(MockVerificationCodeStore),
		locker:        new(MockLocker),
		publisher:     new(MockPublisher),
	}
}

func (ts *testStores) assertExpectations(t *testing.T) {
	ts.enterprises.AssertExpectations(t)
	ts.professionals.AssertExpectations(t)
	ts.services.AssertExpectations(t)
	ts.clients.AssertExpectations(t)
	ts.appointments.AssertExpectations(t)
	ts.codes.AssertExpectations(t)
	ts.locker.AssertExpectations(t)
	ts.publisher.AssertExpectations(t)
}

func newTestAvailabilityService(t *testing.T, ts *testStores) *AvailabilityService {
	grid, err := availability.NewGrid(availability.DefaultGridCacheSize)
	require.NoError(t, err)

	return NewAvailabilityService(
		ts.enterprises,
		ts.professionals,
		ts.services,
		ts.appointments,
		availability.NewEvaluator(grid),
		zap.NewNop(),
	)
}

func newTestBookingService(t *testing.T, ts *testStores) *BookingService {
	return NewBookingService(
		newTestAvailabilityService(t, ts),
		ts.appointments,
		ts.clients,
		ts.locker,
		ts.publisher,
		testLockTTL,
		zap.NewNop(),
	)
}
