package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Create / Reschedule (atomic check-then-write)
// --------------------------------------------------

// CreateBooking runs the conflict check and the insert as one unit: the
// competing rows are read under SELECT ... FOR UPDATE, so two concurrent
// requests for the same slot serialize on the lock and the loser sees
// the winner's row. The partial unique indexes catch anything that still
// slips through.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	p domain.Proposal,
	window time.Duration,
	check domain.ConflictCheck,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		patientSameDay, doctorNearby, err := lockCompetingRows(tx, p, window)
		if err != nil {
			return domain.WrapErr(domain.KindUnavailable, err)
		}

		if err := check(patientSameDay, doctorNearby); err != nil {
			return err
		}

		if err := tx.Create(b).Error; err != nil {
			return translateWriteError(err)
		}
		return nil
	})
}

// UpdateBookingSchedule moves an existing booking to a new slot under the
// same locking discipline, and refuses the write when the stored version
// no longer matches the one the caller read.
func (r *BookingGormRepository) UpdateBookingSchedule(
	ctx context.Context,
	b *models.Booking,
	p domain.Proposal,
	window time.Duration,
	check domain.ConflictCheck,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		patientSameDay, doctorNearby, err := lockCompetingRows(tx, p, window)
		if err != nil {
			return domain.WrapErr(domain.KindUnavailable, err)
		}

		if err := check(patientSameDay, doctorNearby); err != nil {
			return err
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND version = ?", b.ID, b.Version).
			Updates(map[string]any{
				"scheduled_at": b.ScheduledAt,
				"notes":        b.Notes,
				"version":      b.Version + 1,
			})
		if res.Error != nil {
			return translateWriteError(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.Err(domain.KindStaleWrite)
		}

		b.Version++
		return nil
	})
}

func lockCompetingRows(
	tx *gorm.DB,
	p domain.Proposal,
	window time.Duration,
) (patientSameDay, doctorNearby []models.Booking, err error) {

	// Row locks alone cannot serialize two inserts at distinct times
	// inside one slot window: neither sees a competing row, so neither
	// blocks. The advisory lock makes writes for one doctor take turns,
	// so the second transaction reads the first one's committed row.
	if err := tx.Exec(
		"SELECT pg_advisory_xact_lock(hashtext(?))",
		p.DoctorID,
	).Error; err != nil {
		return nil, nil, err
	}

	dayStart := time.Date(
		p.ScheduledAt.Year(), p.ScheduledAt.Month(), p.ScheduledAt.Day(),
		0, 0, 0, 0,
		p.ScheduledAt.Location(),
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"patient_id = ? AND status <> 'cancelled' AND scheduled_at >= ? AND scheduled_at < ?",
			p.PatientID, dayStart, dayEnd,
		).
		Find(&patientSameDay).Error; err != nil {
		return nil, nil, err
	}

	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"doctor_id = ? AND status <> 'cancelled' AND scheduled_at >= ? AND scheduled_at < ?",
			p.DoctorID, p.ScheduledAt.Add(-window), p.ScheduledAt.Add(window),
		).
		Find(&doctorNearby).Error; err != nil {
		return nil, nil, err
	}

	return patientSameDay, doctorNearby, nil
}

// translateWriteError maps unique-index violations from the constraint
// backstop onto the matching conflict kind.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_bookings_patient_day":
			return domain.Err(domain.KindPatientDayConflict)
		case "uq_bookings_doctor_slot":
			return domain.Err(domain.KindDoctorSlotConflict)
		}
	}
	return domain.WrapErr(domain.KindUnavailable, err)
}

// --------------------------------------------------
// Load / mutate
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("id = ?", id).
		First(&b).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Err(domain.KindNotFound)
		}
		return nil, domain.WrapErr(domain.KindUnavailable, err)
	}

	return &b, nil
}

func (r *BookingGormRepository) SaveBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]any{
			"status":  b.Status,
			"reason":  b.Reason,
			"notes":   b.Notes,
			"version": b.Version + 1,
		})
	if res.Error != nil {
		return translateWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Err(domain.KindStaleWrite)
	}

	b.Version++
	return nil
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Booking{})
	if res.Error != nil {
		return domain.WrapErr(domain.KindUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Err(domain.KindNotFound)
	}
	return nil
}

// --------------------------------------------------
// Existing-bookings queries (exclude cancelled)
// --------------------------------------------------

func (r *BookingGormRepository) BookingsForPatientOnDate(
	ctx context.Context,
	patientID string,
	day time.Time,
) ([]models.Booking, error) {

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"patient_id = ? AND status <> 'cancelled' AND scheduled_at >= ? AND scheduled_at < ?",
			patientID, start, end,
		).
		Order("scheduled_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, domain.WrapErr(domain.KindUnavailable, err)
	}

	return bookings, nil
}

func (r *BookingGormRepository) BookingsForDoctorNear(
	ctx context.Context,
	doctorID string,
	at time.Time,
	window time.Duration,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND status <> 'cancelled' AND scheduled_at >= ? AND scheduled_at < ?",
			doctorID, at.Add(-window), at.Add(window),
		).
		Order("scheduled_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, domain.WrapErr(domain.KindUnavailable, err)
	}

	return bookings, nil
}

func (r *BookingGormRepository) BookingsForDoctorOnDate(
	ctx context.Context,
	doctorID string,
	day time.Time,
) ([]models.Booking, error) {

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "patient_id", "doctor_id", "scheduled_at", "status").
		Where(
			"doctor_id = ? AND status <> 'cancelled' AND scheduled_at >= ? AND scheduled_at < ?",
			doctorID, start, end,
		).
		Order("scheduled_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, domain.WrapErr(domain.KindUnavailable, err)
	}

	return bookings, nil
}

// --------------------------------------------------
// Listing / stats
// --------------------------------------------------

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Order("scheduled_at DESC")

	if f.PatientID != "" {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if f.DoctorID != "" {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.ExcludeCancelled {
		q = q.Where("status <> 'cancelled'")
	}
	if !f.From.IsZero() {
		q = q.Where("scheduled_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("scheduled_at < ?", f.To)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, domain.WrapErr(domain.KindUnavailable, err)
	}

	return bookings, nil
}

func (r *BookingGormRepository) BookingStats(
	ctx context.Context,
	now time.Time,
) (*domain.Stats, error) {

	stats := &domain.Stats{}
	model := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Booking{})
	}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.Total, model()},
		{&stats.Pending, model().Where("status = 'pending'")},
		{&stats.Confirmed, model().Where("status = 'confirmed'")},
		{&stats.Completed, model().Where("status = 'completed'")},
		{&stats.Cancelled, model().Where("status = 'cancelled'")},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, domain.WrapErr(domain.KindUnavailable, err)
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	if err := model().
		Where("status <> 'cancelled' AND scheduled_at >= ? AND scheduled_at < ?", dayStart, dayEnd).
		Count(&stats.Today).Error; err != nil {
		return nil, domain.WrapErr(domain.KindUnavailable, err)
	}

	if err := model().
		Where("status <> 'cancelled' AND scheduled_at >= ?", now).
		Count(&stats.Upcoming).Error; err != nil {
		return nil, domain.WrapErr(domain.KindUnavailable, err)
	}

	return stats, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
