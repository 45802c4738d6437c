package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/agenda/internal/model"
	"github.com/Freeeeeet/agenda/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockEnterpriseStore struct {
	mock.Mock
}

func (m *MockEnterpriseStore) Create(ctx context.Context, enterprise *model.Enterprise) error {
	args := m.Called(ctx, enterprise)
	return args.Error(0)
}

func (m *MockEnterpriseStore) GetByID(ctx context.Context, id int64) (*model.Enterprise, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*model.Enterprise)
	return e, args.Error(1)
}

type MockProfessionalStore struct {
	mock.Mock
}

func (m *MockProfessionalStore) Create(ctx context.Context, p *model.Professional) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfessionalStore) GetByID(ctx context.Context, id int64) (*model.Professional, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Professional)
	return p, args.Error(1)
}

func (m *MockProfessionalStore) UpdateWorkingHours(ctx context.Context, id int64, hours model.WorkingHours) error {
	args := m.Called(ctx, id, hours)
	return args.Error(0)
}

type MockServiceStore struct {
	mock.Mock
}

func (m *MockServiceStore) Create(ctx context.Context, svc *model.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *MockServiceStore) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Service)
	return s, args.Error(1)
}

type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) Create(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientStore) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Client)
	return c, args.Error(1)
}

func (m *MockClientStore) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error) {
	args := m.Called(ctx, telegramID)
	c, _ := args.Get(0).(*model.Client)
	return c, args.Error(1)
}

func (m *MockClientStore) MarkVerified(ctx context.Context, id int64, verifiedAt time.Time, telegramID *int64) error {
	args := m.Called(ctx, id, verifiedAt, telegramID)
	return args.Error(0)
}

type MockAppointmentStore struct {
	mock.Mock
}

func (m *MockAppointmentStore) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Appointment)
	return a, args.Error(1)
}

func (m *MockAppointmentStore) ListByProfessionalAndDate(ctx context.Context, professionalID int64, date string) ([]*model.Appointment, error) {
	args := m.Called(ctx, professionalID, date)
	list, _ := args.Get(0).([]*model.Appointment)
	return list, args.Error(1)
}

func (m *MockAppointmentStore) Create(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentStore) UpdateSchedule(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentStore) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// WithinDayLock без транзакции: fn получает тот же мок
func (m *MockAppointmentStore) WithinDayLock(ctx context.Context, professionalID int64, date string, fn func(ctx context.Context, store repository.AppointmentStore) error) error {
	args := m.Called(ctx, professionalID, date)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

type MockVerificationCodeStore struct {
	mock.Mock
}

func (m *MockVerificationCodeStore) Create(ctx context.Context, code *model.VerificationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockVerificationCodeStore) GetLatestActive(ctx context.Context, phone string, now time.Time) (*model.VerificationCode, error) {
	args := m.Called(ctx, phone, now)
	c, _ := args.Get(0).(*model.VerificationCode)
	return c, args.Error(1)
}

func (m *MockVerificationCodeStore) Consume(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, id, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockVerificationCodeStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLocker) Unlock(ctx context.Context, key, token string) error {
	args := m.Called(ctx, key, token)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}
