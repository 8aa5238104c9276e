package booking

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/alnourclinic/clinic-scheduler/internal/audit"
	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
	"github.com/alnourclinic/clinic-scheduler/internal/notify"
)

var cairo = time.FixedZone("EET", 2*60*60)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, cairo)
}

// MockRepository is a mock implementation of domain.Repository. The
// PatientSameDay / DoctorNearby fields play the part of the rows the
// real repository locks before running the conflict check.
type MockRepository struct {
	mock.Mock

	PatientSameDay []models.Booking
	DoctorNearby   []models.Booking
}

func (m *MockRepository) CreateBooking(ctx context.Context, b *models.Booking, p domain.Proposal, window time.Duration, check domain.ConflictCheck) error {
	args := m.Called(b, p, window)
	if err := check(m.PatientSameDay, m.DoctorNearby); err != nil {
		return err
	}
	if err := args.Error(0); err != nil {
		return err
	}
	// writes for one doctor serialize, so a later check sees this row
	m.PatientSameDay = append(m.PatientSameDay, *b)
	m.DoctorNearby = append(m.DoctorNearby, *b)
	return nil
}

func (m *MockRepository) UpdateBookingSchedule(ctx context.Context, b *models.Booking, p domain.Proposal, window time.Duration, check domain.ConflictCheck) error {
	args := m.Called(b, p, window)
	if err := check(m.PatientSameDay, m.DoctorNearby); err != nil {
		return err
	}
	return args.Error(0)
}

func (m *MockRepository) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockRepository) SaveBooking(ctx context.Context, b *models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockRepository) DeleteBooking(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRepository) BookingsForPatientOnDate(ctx context.Context, patientID string, day time.Time) ([]models.Booking, error) {
	args := m.Called(patientID, day)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockRepository) BookingsForDoctorNear(ctx context.Context, doctorID string, atTime time.Time, window time.Duration) ([]models.Booking, error) {
	args := m.Called(doctorID, atTime, window)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockRepository) BookingsForDoctorOnDate(ctx context.Context, doctorID string, day time.Time) ([]models.Booking, error) {
	args := m.Called(doctorID, day)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockRepository) ListBookings(ctx context.Context, f domain.ListFilter) ([]models.Booking, error) {
	args := m.Called(f)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockRepository) BookingStats(ctx context.Context, now time.Time) (*domain.Stats, error) {
	args := m.Called(now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

// MockAccountDirectory is a mock implementation of
// domain.AccountDirectory.
type MockAccountDirectory struct {
	mock.Mock
}

func (m *MockAccountDirectory) ResolveAccount(ctx context.Context, id string) (*domain.AccountRef, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountRef), args.Error(1)
}

// captureAudit and captureNotify record dispatched events synchronously.
type captureAudit struct {
	events []audit.Event
}

func (c *captureAudit) Dispatch(ev audit.Event) {
	c.events = append(c.events, ev)
}

type captureNotify struct {
	events []notify.StatusChanged
}

func (c *captureNotify) Dispatch(ev notify.StatusChanged) {
	c.events = append(c.events, ev)
}

func activePatient(id string) *domain.AccountRef {
	return &domain.AccountRef{ID: id, Role: domain.RolePatient, Active: true}
}

func activeDoctor(id string) *domain.AccountRef {
	return &domain.AccountRef{ID: id, Role: domain.RoleDoctor, Active: true}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
